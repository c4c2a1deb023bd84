// Package memory is an in-process store behind the same repository contracts as the gorm
// implementation. It backs STORE_DRIVER=memory and the service tests.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"propdesk-be/internal/entity"
	"propdesk-be/internal/repository/contract"
	"propdesk-be/internal/repository/unitofwork"

	"github.com/patrickmn/go-cache"
)

// Store holds every table. Items never expire.
type Store struct {
	mu           sync.RWMutex
	documents    *cache.Cache
	associations *cache.Cache
	targets      *cache.Cache
	last         time.Time
}

func NewStore() *Store {
	return &Store{
		documents:    cache.New(cache.NoExpiration, 0),
		associations: cache.New(cache.NoExpiration, 0),
		targets:      cache.New(cache.NoExpiration, 0),
	}
}

// now is strictly increasing so creation order survives equal wall clock readings.
func (s *Store) now() time.Time {
	t := time.Now().UTC()
	if !t.After(s.last) {
		t = s.last.Add(time.Microsecond)
	}
	s.last = t
	return t
}

// stamp keeps a caller supplied creation time unless it would tie with or precede the last one.
func (s *Store) stamp(t time.Time) time.Time {
	if t.IsZero() {
		return s.now()
	}
	if !t.After(s.last) {
		t = s.last.Add(time.Microsecond)
	}
	s.last = t
	return t
}

func key(parts ...string) string {
	return strings.Join(parts, "\x00")
}

type repositoryFactory struct {
	store *Store
}

// NewRepositoryFactory returns a factory whose units of work all share store.
func NewRepositoryFactory(store *Store) unitofwork.RepositoryFactory {
	return &repositoryFactory{store: store}
}

func (f *repositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{store: f.store}
}

// unitOfWork has no transactions. Each repository call is atomic on its own.
type unitOfWork struct {
	store *Store
}

func (u *unitOfWork) Begin(ctx context.Context) error { return nil }
func (u *unitOfWork) Commit() error                   { return nil }
func (u *unitOfWork) Rollback() error                 { return nil }

func (u *unitOfWork) DocumentRepository() contract.DocumentRepository {
	return &DocumentRepository{store: u.store}
}

func (u *unitOfWork) AssociationRepository() contract.AssociationRepository {
	return &AssociationRepository{store: u.store}
}

func (u *unitOfWork) TargetRepository() contract.TargetRepository {
	return &TargetRepository{store: u.store}
}

func cloneMap(src map[string]interface{}) map[string]interface{} {
	if src == nil {
		return nil
	}
	dst := make(map[string]interface{}, len(src))
	for k, v := range src {
		dst[k] = cloneValue(v)
	}
	return dst
}

func cloneValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		return cloneMap(t)
	case []interface{}:
		out := make([]interface{}, len(t))
		for i := range t {
			out[i] = cloneValue(t[i])
		}
		return out
	default:
		return v
	}
}

func cloneDocument(d *entity.Document) *entity.Document {
	c := *d
	c.Metadata = cloneMap(d.Metadata)
	c.Associations = nil
	if d.UpdatedAt != nil {
		u := *d.UpdatedAt
		c.UpdatedAt = &u
	}
	return &c
}

func cloneAssociation(a *entity.Association) *entity.Association {
	c := *a
	c.Metadata = cloneMap(a.Metadata)
	return &c
}
