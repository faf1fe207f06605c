package inmem

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/dekarrin/phpsyn/server/dao"
)

// NewParseRecordsRepository creates an empty in-memory
// dao.ParseRecordRepository.
func NewParseRecordsRepository() *ParseRecordsRepository {
	return &ParseRecordsRepository{records: make(map[uuid.UUID]dao.ParseRecord)}
}

type ParseRecordsRepository struct {
	records map[uuid.UUID]dao.ParseRecord
}

func (r *ParseRecordsRepository) Close() error { return nil }

func (r *ParseRecordsRepository) Create(ctx context.Context, rec dao.ParseRecord) (dao.ParseRecord, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return dao.ParseRecord{}, fmt.Errorf("could not generate ID: %w", err)
	}
	rec.ID = id
	r.records[id] = rec
	return rec, nil
}

func (r *ParseRecordsRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.ParseRecord, error) {
	rec, ok := r.records[id]
	if !ok {
		return dao.ParseRecord{}, dao.ErrNotFound
	}
	return rec, nil
}

func (r *ParseRecordsRepository) GetPage(ctx context.Context, offset, limit int) ([]dao.ParseRecord, error) {
	all := make([]dao.ParseRecord, 0, len(r.records))
	for _, rec := range r.records {
		all = append(all, rec)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Created.After(all[j].Created) })

	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) || limit <= 0 {
		end = len(all)
	}
	return all[offset:end], nil
}
