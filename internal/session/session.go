// Package session carries the authenticated identity in a signed
// cookie, so logins survive server restarts for the configured number
// of days.
package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/trivora/trivora/internal/models"
)

// CookieName is the session cookie.
const CookieName = "session"

// Identity is the authenticated user carried by a request.
type Identity struct {
	UserID   int
	Username string
}

type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, days int) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    time.Duration(days) * 24 * time.Hour,
	}
}

// Issue signs a token for the user.
func (m *Manager) Issue(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(m.ttl).Unix(),
	})
	return token.SignedString(m.secret)
}

// Parse verifies a token and extracts the identity.
func (m *Manager) Parse(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid session claims")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid user id claim")
	}
	username, ok := claims["username"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid username claim")
	}

	return &Identity{UserID: int(userID), Username: username}, nil
}

// MaxAge is the cookie lifetime in seconds.
func (m *Manager) MaxAge() int {
	return int(m.ttl / time.Second)
}
