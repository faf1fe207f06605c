// Package token issues and validates the bearer tokens the parse service's
// write endpoints require.
package token

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dekarrin/phpsyn/server/dao"
)

const issuer = "phpsyn-parse-service"

// Get extracts the bearer token from req's Authorization header. It returns
// an error if the header is missing or not in "Bearer <token>" format.
func Get(req *http.Request) (string, error) {
	authHeader := strings.TrimSpace(req.Header.Get("Authorization"))
	if authHeader == "" {
		return "", fmt.Errorf("no authorization header present")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(strings.TrimSpace(parts[0])) != "bearer" {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}

	return strings.TrimSpace(parts[1]), nil
}

// Issue signs a new bearer token for the given API key, valid for ttl.
func Issue(key dao.APIKey, secret []byte, ttl time.Duration) (string, error) {
	claims := &jwt.MapClaims{
		"iss": issuer,
		"sub": key.ID.String(),
		"exp": time.Now().Add(ttl).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)

	return tok.SignedString(signingKey(secret, key))
}

// Validate parses and verifies tok, looks up the API key it names via db,
// and returns that key if the token is valid, unexpired, and the key has
// not been revoked.
func Validate(ctx context.Context, tok string, secret []byte, db dao.APIKeyRepository) (dao.APIKey, error) {
	var key dao.APIKey

	_, err := jwt.Parse(tok, func(t *jwt.Token) (interface{}, error) {
		subj, err := t.Claims.GetSubject()
		if err != nil {
			return nil, fmt.Errorf("cannot get subject: %w", err)
		}

		id, err := uuid.Parse(subj)
		if err != nil {
			return nil, fmt.Errorf("cannot parse subject UUID: %w", err)
		}

		key, err = db.GetByID(ctx, id)
		if err != nil {
			if err == dao.ErrNotFound {
				return nil, fmt.Errorf("subject does not exist")
			}
			return nil, fmt.Errorf("subject could not be validated")
		}
		if key.Revoked {
			return nil, fmt.Errorf("subject has been revoked")
		}

		return signingKey(secret, key), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}), jwt.WithIssuer(issuer), jwt.WithLeeway(time.Minute))

	if err != nil {
		return dao.APIKey{}, err
	}

	return key, nil
}

// signingKey derives the per-token signing key from the service secret and
// the key's own hash, so revoking by rotating KeyHash also invalidates any
// tokens already issued for it.
func signingKey(secret []byte, key dao.APIKey) []byte {
	signKey := make([]byte, 0, len(secret)+len(key.KeyHash))
	signKey = append(signKey, secret...)
	signKey = append(signKey, key.KeyHash...)
	return signKey
}
