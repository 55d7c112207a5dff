// Package credentials holds the persisted token pair and its storage
// contract. A Credential is created on login or refresh, replaced
// wholesale on each refresh, and deleted on logout; at most one is
// persisted at a time.
package credentials

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// Credential is the access/refresh token pair issued by the backend.
type Credential struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ObtainedAt   time.Time `json:"obtained_at"`
}

// AccessExpiry decodes the expiry claim embedded in the access token.
// The claim is read without signature verification: the check is
// informational only and the backend remains the authority on whether
// the token is accepted.
func (c *Credential) AccessExpiry() (time.Time, error) {
	unverifiedToken, _, err := jwtlib.NewParser().ParseUnverified(c.AccessToken, jwtlib.MapClaims{})
	if err != nil {
		return time.Time{}, errors.Wrap(err, "[AccessExpiry] parse access token")
	}

	claims, ok := unverifiedToken.Claims.(jwtlib.MapClaims)
	if !ok {
		return time.Time{}, errors.New("[AccessExpiry] error extracting claims")
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}, errors.New("[AccessExpiry] token missing exp claim")
	}

	return time.Unix(int64(exp), 0), nil
}

// Expired reports whether the access token's embedded expiry has passed.
// A token whose expiry cannot be decoded is treated as expired.
func (c *Credential) Expired(now time.Time) bool {
	exp, err := c.AccessExpiry()
	if err != nil {
		return true
	}
	return !now.Before(exp)
}
