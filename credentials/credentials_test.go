package credentials_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/skillsmatch/go-skillsmatch/credentials"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwtlib.MapClaims) string {
	t.Helper()

	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestAccessExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	cred := &credentials.Credential{
		AccessToken: signedToken(t, jwtlib.MapClaims{"exp": exp.Unix(), "sub": "1"}),
	}

	got, err := cred.AccessExpiry()
	require.NoError(t, err)
	require.Equal(t, exp.Unix(), got.Unix())
}

func TestAccessExpiryMissingClaim(t *testing.T) {
	cred := &credentials.Credential{
		AccessToken: signedToken(t, jwtlib.MapClaims{"sub": "1"}),
	}

	_, err := cred.AccessExpiry()
	require.Error(t, err)
}

func TestAccessExpiryMalformedToken(t *testing.T) {
	cred := &credentials.Credential{AccessToken: "not-a-jwt"}

	_, err := cred.AccessExpiry()
	require.Error(t, err)
}

func TestExpired(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		token   string
		expired bool
	}{
		{
			name:    "future expiry",
			token:   signedToken(t, jwtlib.MapClaims{"exp": now.Add(time.Hour).Unix()}),
			expired: false,
		},
		{
			name:    "past expiry",
			token:   signedToken(t, jwtlib.MapClaims{"exp": now.Add(-time.Hour).Unix()}),
			expired: true,
		},
		{
			name:    "undecodable treated as expired",
			token:   "garbage",
			expired: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cred := &credentials.Credential{AccessToken: tt.token}
			require.Equal(t, tt.expired, cred.Expired(now))
		})
	}
}
