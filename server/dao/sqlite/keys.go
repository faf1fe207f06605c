package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/dekarrin/phpsyn/server/dao"
	"github.com/dekarrin/phpsyn/server/serr"
)

// APIKeysDB is a dao.APIKeyRepository backed by a SQLite table.
type APIKeysDB struct {
	db *sql.DB
}

func (r *APIKeysDB) init() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS api_keys (
			id TEXT PRIMARY KEY NOT NULL,
			label TEXT NOT NULL,
			key_hash BLOB NOT NULL,
			created INTEGER NOT NULL,
			revoked INTEGER NOT NULL DEFAULT 0
		)
	`)
	return err
}

func (r *APIKeysDB) Close() error { return nil }

func (r *APIKeysDB) Create(ctx context.Context, key dao.APIKey) (dao.APIKey, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return dao.APIKey{}, err
	}
	key.ID = id
	if key.Created.IsZero() {
		key.Created = time.Now()
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO api_keys (id, label, key_hash, created, revoked) VALUES (?, ?, ?, ?, ?)
	`, key.ID.String(), key.Label, key.KeyHash, key.Created.Unix(), boolToInt(key.Revoked))
	if err != nil {
		return dao.APIKey{}, wrapDBError(err)
	}

	return key, nil
}

func (r *APIKeysDB) GetByID(ctx context.Context, id uuid.UUID) (dao.APIKey, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, label, key_hash, created, revoked FROM api_keys WHERE id = ?
	`, id.String())

	var key dao.APIKey
	var idStr string
	var created int64
	var revoked int

	err := row.Scan(&idStr, &key.Label, &key.KeyHash, &created, &revoked)
	if err != nil {
		return dao.APIKey{}, wrapDBError(err)
	}

	key.ID, err = uuid.Parse(idStr)
	if err != nil {
		return dao.APIKey{}, serr.New("decode id", err, dao.ErrDecodingFailure)
	}
	key.Created = time.Unix(created, 0)
	key.Revoked = revoked != 0

	return key, nil
}

func (r *APIKeysDB) Revoke(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `UPDATE api_keys SET revoked = 1 WHERE id = ?`, id.String())
	if err != nil {
		return wrapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrapDBError(err)
	}
	if n == 0 {
		return dao.ErrNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
