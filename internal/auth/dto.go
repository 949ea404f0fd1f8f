package auth

// LoginRequest exchanges an identity-provider ID token for a service session.
type LoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// RefreshRequest rotates an existing session. The access token may be expired.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest revokes the session tied to the access token.
type LogoutRequest struct {
	AccessToken string `json:"access_token" validate:"required"`
}

// SessionResponse carries a freshly minted token pair.
type SessionResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
