// Package session implements the session/token contract consumed by the
// reminder workflow: who the user is and, when their calendar is connected,
// the provider access token scoped to the Google Calendar API.
package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"remindchat/internal/model"
)

const tokenTTL = 60 * time.Minute

// Session is the current caller's identity plus the optional provider token.
type Session struct {
	UserID        string
	ProviderToken string
}

// Manager issues and verifies session tokens.
type Manager struct {
	secret []byte
}

// NewManager creates a Manager signing with the given HMAC secret.
func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

// Issue signs a session token for userID. providerToken may be empty when
// the user has not connected a calendar.
func (m *Manager) Issue(userID, providerToken string) (string, error) {
	claims := &model.SessionClaims{
		UserID:        userID,
		ProviderToken: providerToken,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "remindchat",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse verifies a signed token and returns the session it carries.
func (m *Manager) Parse(tokenString string) (Session, error) {
	claims := &model.SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return Session{}, err
	}
	if !token.Valid || claims.UserID == "" {
		return Session{}, fmt.Errorf("invalid session claims")
	}
	return Session{UserID: claims.UserID, ProviderToken: claims.ProviderToken}, nil
}
