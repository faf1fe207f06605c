package inmem

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dekarrin/phpsyn/server/dao"
)

// NewAPIKeysRepository creates an empty in-memory dao.APIKeyRepository.
func NewAPIKeysRepository() *APIKeysRepository {
	return &APIKeysRepository{keys: make(map[uuid.UUID]dao.APIKey)}
}

type APIKeysRepository struct {
	keys map[uuid.UUID]dao.APIKey
}

func (r *APIKeysRepository) Close() error { return nil }

func (r *APIKeysRepository) Create(ctx context.Context, key dao.APIKey) (dao.APIKey, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return dao.APIKey{}, fmt.Errorf("could not generate ID: %w", err)
	}
	key.ID = id
	r.keys[id] = key
	return key, nil
}

func (r *APIKeysRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.APIKey, error) {
	key, ok := r.keys[id]
	if !ok {
		return dao.APIKey{}, dao.ErrNotFound
	}
	return key, nil
}

func (r *APIKeysRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	key, ok := r.keys[id]
	if !ok {
		return dao.ErrNotFound
	}
	key.Revoked = true
	r.keys[id] = key
	return nil
}
