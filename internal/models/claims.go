package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims are the JWT claims carried by an access token
type AccessClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}
