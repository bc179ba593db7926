// Package admin provides the shared-secret gate for privileged operations.
package admin

import "crypto/subtle"

// Gate answers whether a presented secret authorizes privileged operations.
// It carries no other state and issues no sessions; every privileged call
// re-presents the secret.
type Gate struct {
	secret string
}

// NewGate creates a gate for the given process-wide secret.
func NewGate(secret string) *Gate {
	return &Gate{secret: secret}
}

// Authorize reports whether the presented secret matches the configured one.
// The comparison is constant-time.
func (g *Gate) Authorize(presented string) bool {
	return subtle.ConstantTimeCompare([]byte(g.secret), []byte(presented)) == 1
}
