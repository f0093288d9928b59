package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/wichananm65/zoo-backend/internal/account"
)

// Issuer signs HS256 tokens carrying the user's email and role.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed token for the identity.
func (i *Issuer) Issue(email string, role account.Role) (string, error) {
	if email == "" {
		return "", errors.New("email is required")
	}
	claims := jwt.MapClaims{
		"email": email,
		"role":  role.String(),
		"exp":   i.now().Add(i.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}
