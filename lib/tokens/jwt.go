package tokens

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

const SessionCookieName = "session"

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.StandardClaims
}

// GenerateSessionToken signs a cookie token referencing the server-held
// session ticket. The token expiry mirrors the store TTL; the store remains
// authoritative, so a stolen cookie dies with the ticket.
func GenerateSessionToken(secret []byte, sessionID string, ttl time.Duration) (string, error) {
	claims := &sessionClaims{
		SessionID: sessionID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseSessionToken verifies the cookie token and returns the session ID it
// references.
func ParseSessionToken(secret []byte, tokenString string) (string, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.SessionID == "" {
		return "", fmt.Errorf("invalid session token")
	}
	return claims.SessionID, nil
}
