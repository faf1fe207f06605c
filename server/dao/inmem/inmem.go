// Package inmem provides an in-memory dao.Store, used for local development
// and tests where durability across restarts does not matter.
package inmem

import (
	"github.com/dekarrin/phpsyn/server/dao"
)

type store struct {
	records *ParseRecordsRepository
	keys    *APIKeysRepository
}

// NewDatastore creates an empty in-memory dao.Store.
func NewDatastore() dao.Store {
	return &store{
		records: NewParseRecordsRepository(),
		keys:    NewAPIKeysRepository(),
	}
}

func (s *store) ParseRecords() dao.ParseRecordRepository { return s.records }
func (s *store) APIKeys() dao.APIKeyRepository            { return s.keys }
func (s *store) Close() error                             { return nil }
