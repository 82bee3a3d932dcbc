package model

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is the JWT payload issued by the session endpoint. The
// provider token is the Google OAuth access token forwarded by the identity
// provider; it may be absent when the user has not connected their calendar.
type SessionClaims struct {
	UserID        string `json:"userId"`
	ProviderToken string `json:"providerToken,omitempty"`
	jwt.RegisteredClaims
}
