package models

// CreateTokenRequest is the body of POST /tokens.
type CreateTokenRequest struct {
	Token string `json:"token"`
}

// CreateTokenResponse is the body of a successful POST /tokens.
type CreateTokenResponse struct {
	ID string `json:"id"`
}

// ListTokensResponse is the body of GET /admin/tokens.
type ListTokensResponse struct {
	Tokens []ListTokensResponseToken `json:"tokens"`
}

// ListTokensResponseToken is a single registration in the admin listing.
// The raw push token value is never included.
type ListTokensResponseToken struct {
	CreatedAt int64  `json:"created_at"`
	ID        string `json:"id"`
}
