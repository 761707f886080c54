package supabase

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoSubject = errors.New("the access token has no subject")

// OwnerFromToken returns the user ID in the sub claim of an access token.
//
// The signature is not checked. The token is only used to address the
// user's rows, the platform verifies it on every request.
func OwnerFromToken(token string) (string, error) {
	claims := jwt.MapClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		return "", fmt.Errorf("parsing access token: %w", err)
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("reading subject: %w", err)
	}
	if sub == "" {
		return "", ErrNoSubject
	}

	return sub, nil
}
