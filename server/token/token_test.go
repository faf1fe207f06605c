package token

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/phpsyn/server/dao"
	"github.com/dekarrin/phpsyn/server/dao/inmem"
)

func TestGet_ParsesBearerHeader(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc.def.ghi")

	tok, err := Get(req)
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)
}

func TestGet_RejectsMissingHeader(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	_, err := Get(req)
	assert.Error(t, err)
}

func TestGet_RejectsNonBearerScheme(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic abc123")
	_, err := Get(req)
	assert.Error(t, err)
}

func TestIssueAndValidate_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := inmem.NewAPIKeysRepository()
	secret := []byte("test-secret-at-least-32-bytes-long!!")

	key, err := repo.Create(ctx, dao.APIKey{Label: "ci", KeyHash: []byte("hashbytes")})
	require.NoError(t, err)

	tok, err := Issue(key, secret, time.Hour)
	require.NoError(t, err)

	validated, err := Validate(ctx, tok, secret, repo)
	require.NoError(t, err)
	assert.Equal(t, key.ID, validated.ID)
}

func TestValidate_RejectsRevokedKey(t *testing.T) {
	ctx := context.Background()
	repo := inmem.NewAPIKeysRepository()
	secret := []byte("test-secret-at-least-32-bytes-long!!")

	key, err := repo.Create(ctx, dao.APIKey{Label: "ci", KeyHash: []byte("hashbytes")})
	require.NoError(t, err)

	tok, err := Issue(key, secret, time.Hour)
	require.NoError(t, err)

	require.NoError(t, repo.Revoke(ctx, key.ID))

	_, err = Validate(ctx, tok, secret, repo)
	assert.Error(t, err)
}

func TestValidate_RejectsWrongSecret(t *testing.T) {
	ctx := context.Background()
	repo := inmem.NewAPIKeysRepository()

	key, err := repo.Create(ctx, dao.APIKey{Label: "ci", KeyHash: []byte("hashbytes")})
	require.NoError(t, err)

	tok, err := Issue(key, []byte("secret-one-at-least-32-bytes-long!!"), time.Hour)
	require.NoError(t, err)

	_, err = Validate(ctx, tok, []byte("secret-two-at-least-32-bytes-long!!"), repo)
	assert.Error(t, err)
}
