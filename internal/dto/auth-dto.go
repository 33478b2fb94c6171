package dto

import "github.com/google/uuid"

// AuthClaims is the verified identity carried through a request.
type AuthClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Iat    float64   `json:"iat"`
	Expiry float64   `json:"expiry"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string    `json:"token"`
	User  uuid.UUID `json:"user"`
	Email string    `json:"email"`
}
