package inmem

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/phpsyn/server/dao"
)

func TestParseRecordsRepository_CreateAndGetByID(t *testing.T) {
	repo := NewParseRecordsRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, dao.ParseRecord{SourceHash: "abc", ByteLength: 10})
	require.NoError(t, err)
	assert.NotEqual(t, "", created.ID.String())

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "abc", fetched.SourceHash)
}

func TestParseRecordsRepository_GetByIDMissing(t *testing.T) {
	repo := NewParseRecordsRepository()
	_, err := repo.GetByID(context.Background(), mustUUID(t))
	assert.ErrorIs(t, err, dao.ErrNotFound)
}

func TestParseRecordsRepository_GetPageOrdersNewestFirst(t *testing.T) {
	repo := NewParseRecordsRepository()
	ctx := context.Background()

	older, err := repo.Create(ctx, dao.ParseRecord{SourceHash: "older", Created: time.Now().Add(-time.Hour)})
	require.NoError(t, err)
	newer, err := repo.Create(ctx, dao.ParseRecord{SourceHash: "newer", Created: time.Now()})
	require.NoError(t, err)

	page, err := repo.GetPage(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, newer.ID, page[0].ID)
	assert.Equal(t, older.ID, page[1].ID)
}

func TestParseRecordsRepository_GetPageRespectsLimitAndOffset(t *testing.T) {
	repo := NewParseRecordsRepository()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := repo.Create(ctx, dao.ParseRecord{Created: time.Now().Add(time.Duration(i) * time.Minute)})
		require.NoError(t, err)
	}

	page, err := repo.GetPage(ctx, 1, 2)
	require.NoError(t, err)
	assert.Len(t, page, 2)
}

func TestAPIKeysRepository_CreateGetRevoke(t *testing.T) {
	repo := NewAPIKeysRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, dao.APIKey{Label: "ci"})
	require.NoError(t, err)
	assert.False(t, created.Revoked)

	require.NoError(t, repo.Revoke(ctx, created.ID))

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, fetched.Revoked)
}

func TestAPIKeysRepository_RevokeMissing(t *testing.T) {
	repo := NewAPIKeysRepository()
	err := repo.Revoke(context.Background(), mustUUID(t))
	assert.ErrorIs(t, err, dao.ErrNotFound)
}

func mustUUID(t *testing.T) (u [16]byte) {
	t.Helper()
	return u
}
