// Package sqlite provides a dao.Store backed by a single-file SQLite
// database via the pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"modernc.org/sqlite"

	"github.com/dekarrin/phpsyn/server/dao"
)

type store struct {
	dbFilename string
	db         *sql.DB

	records *ParseRecordsDB
	keys    *APIKeysDB
}

// NewDatastore opens (creating if necessary) a SQLite database rooted at
// storageDir and returns a dao.Store backed by it.
func NewDatastore(storageDir string) (dao.Store, error) {
	st := &store{dbFilename: "phpsyn.db"}

	fileName := filepath.Join(storageDir, st.dbFilename)

	var err error
	st.db, err = sql.Open("sqlite", fileName)
	if err != nil {
		return nil, wrapDBError(err)
	}

	st.records = &ParseRecordsDB{db: st.db}
	if err := st.records.init(); err != nil {
		return nil, err
	}

	st.keys = &APIKeysDB{db: st.db}
	if err := st.keys.init(); err != nil {
		return nil, err
	}

	return st, nil
}

func (s *store) ParseRecords() dao.ParseRecordRepository { return s.records }
func (s *store) APIKeys() dao.APIKeyRepository            { return s.keys }

func (s *store) Close() error {
	return s.db.Close()
}

func wrapDBError(err error) error {
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code() == 19 {
			return dao.ErrConstraintViolation
		}
		return fmt.Errorf("%s", sqlite.ErrorCodeString[sqliteErr.Code()])
	} else if errors.Is(err, sql.ErrNoRows) {
		return dao.ErrNotFound
	}
	return err
}
