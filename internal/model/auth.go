package model

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is returned by POST /auth/login. The dashboard stores
// the access token verbatim and sends it back on every admin request.
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
}

var ErrInvalidCredentials = errors.New("invalid credentials")

// TokenClaims are the JWT claims embedded in an access token.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
}
