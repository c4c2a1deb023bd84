package memory

import (
	"context"

	"propdesk-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

type TargetRepository struct {
	store *Store
}

func (r *TargetRepository) Create(ctx context.Context, target *entity.Target) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if target.CreatedAt.IsZero() {
		target.CreatedAt = s.now()
	}
	c := *target
	s.targets.Set(key(target.OrganizationId, string(target.Kind), target.Id), &c, cache.NoExpiration)
	return nil
}

func (r *TargetRepository) Exists(ctx context.Context, organizationId string, kind entity.TargetKind, id string) (bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, found := s.targets.Get(key(organizationId, string(kind), id))
	return found, nil
}
