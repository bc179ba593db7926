package handler

import (
	"net/http"
	"path/filepath"
)

// AssetsHandler serves the static web client (registration page and the
// firebase messaging service worker).
type AssetsHandler struct {
	publicDir string
}

// NewAssetsHandler creates a new AssetsHandler serving files from publicDir.
func NewAssetsHandler(publicDir string) *AssetsHandler {
	return &AssetsHandler{publicDir: publicDir}
}

// Index handles GET / - serve the registration page.
func (h *AssetsHandler) Index(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(h.publicDir, "index.html"))
}

// ServiceWorker handles GET /firebase-messaging-sw.js.
// The service worker must be served from the site root to control the page.
func (h *AssetsHandler) ServiceWorker(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(h.publicDir, "firebase-messaging-sw.js"))
}

// Assets returns a handler serving GET /assets/* - bundled client assets.
func (h *AssetsHandler) Assets(prefix string) http.Handler {
	fs := http.FileServer(http.Dir(filepath.Join(h.publicDir, "assets")))
	return http.StripPrefix(prefix, fs)
}
