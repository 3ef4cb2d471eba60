package auth

// Identity holds the claims extracted from a verified Google token.
// It lives only for the request; there is no server-side user record
// behind it.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// VerifyRequest is the payload for POST /api/auth/google/verify.
type VerifyRequest struct {
	Token string `json:"token" binding:"required"`
}

// VerifyResponse wraps the verified identity as {user: ...}.
type VerifyResponse struct {
	User *Identity `json:"user"`
}
