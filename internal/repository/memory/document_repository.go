package memory

import (
	"context"
	"sort"
	"strings"

	"propdesk-be/internal/entity"
	"propdesk-be/internal/pkg/apperror"

	"github.com/patrickmn/go-cache"
)

type DocumentRepository struct {
	store *Store
}

func (r *DocumentRepository) Create(ctx context.Context, doc *entity.Document) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	doc.CreatedAt = s.stamp(doc.CreatedAt)
	if err := s.documents.Add(key(doc.OrganizationId, doc.Id), cloneDocument(doc), cache.NoExpiration); err != nil {
		return apperror.Upstream(err, "create document")
	}
	return nil
}

func (r *DocumentRepository) Update(ctx context.Context, doc *entity.Document) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(doc.OrganizationId, doc.Id)
	x, found := s.documents.Get(k)
	if !found {
		return apperror.NotFound("document not found")
	}
	current := x.(*entity.Document)

	next := cloneDocument(doc)
	next.CreatedAt = current.CreatedAt
	now := s.now()
	next.UpdatedAt = &now
	s.documents.Set(k, next, cache.NoExpiration)

	doc.UpdatedAt = &now
	return nil
}

func (r *DocumentRepository) Delete(ctx context.Context, organizationId string, id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(organizationId, id)
	if _, found := s.documents.Get(k); !found {
		return apperror.NotFound("document not found")
	}
	s.documents.Delete(k)
	return nil
}

func (r *DocumentRepository) FindById(ctx context.Context, organizationId string, id string) (*entity.Document, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	x, found := s.documents.Get(key(organizationId, id))
	if !found {
		return nil, nil
	}
	return cloneDocument(x.(*entity.Document)), nil
}

func (r *DocumentRepository) FindAll(ctx context.Context, organizationId string, filter entity.DocumentFilter, page entity.Page) ([]*entity.Document, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := r.match(organizationId, filter)
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].Id < matched[j].Id
	})

	offset := page.Offset()
	if offset < 0 || offset >= len(matched) {
		return []*entity.Document{}, nil
	}
	end := offset + page.PageSize
	if end > len(matched) {
		end = len(matched)
	}

	result := make([]*entity.Document, 0, end-offset)
	for _, d := range matched[offset:end] {
		result = append(result, cloneDocument(d))
	}
	return result, nil
}

func (r *DocumentRepository) Count(ctx context.Context, organizationId string, filter entity.DocumentFilter) (int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(r.match(organizationId, filter))), nil
}

// match must be called with the read lock held.
func (r *DocumentRepository) match(organizationId string, filter entity.DocumentFilter) []*entity.Document {
	title := strings.ToLower(filter.Title)
	links := map[entity.TargetKind]string{
		entity.TargetKindProperty: filter.PropertyId,
		entity.TargetKindPerson:   filter.PersonId,
		entity.TargetKindTag:      filter.GroupId,
	}

	var matched []*entity.Document
	for _, item := range r.store.documents.Items() {
		d := item.Object.(*entity.Document)
		if d.OrganizationId != organizationId {
			continue
		}
		if title != "" && !strings.Contains(strings.ToLower(d.Title), title) {
			continue
		}
		if filter.Type != "" && d.Type != filter.Type {
			continue
		}
		if filter.Visibility != "" && d.Visibility != filter.Visibility {
			continue
		}

		linked := true
		for kind, targetId := range links {
			if targetId == "" {
				continue
			}
			if _, found := r.store.associations.Get(key(organizationId, d.Id, string(kind), targetId)); !found {
				linked = false
				break
			}
		}
		if linked {
			matched = append(matched, d)
		}
	}
	return matched
}
