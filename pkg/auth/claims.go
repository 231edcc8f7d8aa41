package auth

import "github.com/golang-jwt/jwt/v5"

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID  int64
	IsStaff bool
	JTI     string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID  int64 `json:"user_id"`
	IsStaff bool  `json:"is_staff"`
	jwt.RegisteredClaims
}
