package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: bad signature, wrong
// signing method, malformed token, or expired token. Callers must not
// distinguish these toward clients.
var ErrInvalidToken = errors.New("invalid token")

// ==========================
// Issuer
// ==========================
// Issuer creates and verifies the signed session tokens that are the sole
// authorization mechanism. Tokens are self-contained; nothing is stored
// server-side, so a token cannot be revoked before it expires.
type Issuer struct {
	Secret []byte
	TTL    time.Duration
}

func New(secret []byte, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{Secret: secret, TTL: ttl}
}

// Issue signs a token embedding the user id and an absolute expiry.
func (i *Issuer) Issue(userID int) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(i.TTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.Secret)
}

// Verify checks signature and expiry and returns the embedded user id.
func (i *Issuer) Verify(tokenStr string) (int, error) {
	t, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.Secret, nil
	})
	if err != nil || !t.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0, ErrInvalidToken
	}
	return int(id), nil
}
