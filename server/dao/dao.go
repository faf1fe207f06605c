// Package dao provides data access objects for the parse service's audit
// log and API key store.
package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound            = errors.New("the requested resource was not found")
	ErrConstraintViolation = errors.New("a uniqueness constraint was violated")
	ErrDecodingFailure     = errors.New("field could not be decoded from DB storage format to model format")
)

// Store holds the repositories the parse service needs.
type Store interface {
	ParseRecords() ParseRecordRepository
	APIKeys() APIKeyRepository
	Close() error
}

// ParseRecord is one audit-log entry: the outcome of a single call to
// POST /v1/parse.
type ParseRecord struct {
	ID           uuid.UUID
	SourceHash   string
	ByteLength   int
	NodeCount    int
	Elapsed      time.Duration
	ErrorMessage string // empty if the parse succeeded
	Created      time.Time
}

// Failed reports whether the recorded parse ended in a syntax error.
func (r ParseRecord) Failed() bool {
	return r.ErrorMessage != ""
}

type ParseRecordRepository interface {
	Create(ctx context.Context, rec ParseRecord) (ParseRecord, error)
	GetByID(ctx context.Context, id uuid.UUID) (ParseRecord, error)

	// GetPage returns up to limit records ordered newest first, skipping the
	// first offset.
	GetPage(ctx context.Context, offset, limit int) ([]ParseRecord, error)
	Close() error
}

// APIKey is a bearer credential the parse service accepts on its write
// endpoints. KeyHash holds a bcrypt hash of the raw secret handed to the
// holder at creation time; the raw secret itself is never stored.
type APIKey struct {
	ID      uuid.UUID
	Label   string
	KeyHash []byte
	Created time.Time
	Revoked bool
}

type APIKeyRepository interface {
	Create(ctx context.Context, key APIKey) (APIKey, error)
	GetByID(ctx context.Context, id uuid.UUID) (APIKey, error)
	Revoke(ctx context.Context, id uuid.UUID) error
	Close() error
}
