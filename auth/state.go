package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// StateCodec signs and verifies the OAuth state parameter so the redirect
// round-trip cannot be forged. Encoded states carry a unique nonce and an
// expiry alongside the caller's parameters.
type StateCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewStateCodec creates a codec signing with secret. States expire after
// ttl; a zero ttl defaults to ten minutes.
func NewStateCodec(secret []byte, ttl time.Duration) *StateCodec {
	if ttl == 0 {
		ttl = 10 * time.Minute
	}
	return &StateCodec{secret: secret, ttl: ttl}
}

// Encode signs params into a state token.
func (c *StateCodec) Encode(params map[string]string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"nonce": uuid.NewString(),
		"iat":   now.Unix(),
		"exp":   now.Add(c.ttl).Unix(),
	}
	if len(params) > 0 {
		data := make(map[string]any, len(params))
		for k, v := range params {
			data[k] = v
		}
		claims["data"] = data
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", authErrors.NewWithCause(ErrInvalidState, err)
	}
	return signed, nil
}

// Decode verifies a state token and returns the embedded parameters.
func (c *StateCodec) Decode(state string) (map[string]string, error) {
	token, err := jwt.Parse(state, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, authErrors.New(ErrInvalidState).
				WithDetail("alg", t.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, authErrors.NewWithCause(ErrStateExpired, err)
		}
		return nil, authErrors.NewWithCause(ErrInvalidState, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, authErrors.New(ErrInvalidState)
	}

	params := make(map[string]string)
	if data, ok := claims["data"].(map[string]any); ok {
		for k, v := range data {
			if s, ok := v.(string); ok {
				params[k] = s
			}
		}
	}
	return params, nil
}
