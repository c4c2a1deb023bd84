package memory

import (
	"context"
	"sort"

	"propdesk-be/internal/entity"
	"propdesk-be/internal/pkg/apperror"
	"propdesk-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

type AssociationRepository struct {
	store *Store
}

func (r *AssociationRepository) Create(ctx context.Context, association *entity.Association) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.documents.Get(key(association.OrganizationId, association.DocumentId)); !found {
		return apperror.NotFound("document not found")
	}

	association.CreatedAt = s.stamp(association.CreatedAt)
	k := key(association.OrganizationId, association.DocumentId, string(association.TargetKind), association.TargetId)
	if err := s.associations.Add(k, cloneAssociation(association), cache.NoExpiration); err != nil {
		return contract.ErrAssociationExists
	}
	return nil
}

func (r *AssociationRepository) Delete(ctx context.Context, organizationId string, documentId string, kind entity.TargetKind, targetId string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(organizationId, documentId, string(kind), targetId)
	if _, found := s.associations.Get(k); !found {
		return apperror.NotFound("association not found")
	}
	s.associations.Delete(k)
	return nil
}

func (r *AssociationRepository) DeleteByDocument(ctx context.Context, organizationId string, documentId string) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for k, item := range s.associations.Items() {
		a := item.Object.(*entity.Association)
		if a.OrganizationId == organizationId && a.DocumentId == documentId {
			s.associations.Delete(k)
			removed++
		}
	}
	return removed, nil
}

func (r *AssociationRepository) FindOne(ctx context.Context, organizationId string, documentId string, kind entity.TargetKind, targetId string) (*entity.Association, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	x, found := s.associations.Get(key(organizationId, documentId, string(kind), targetId))
	if !found {
		return nil, nil
	}
	return cloneAssociation(x.(*entity.Association)), nil
}

func (r *AssociationRepository) FindByDocument(ctx context.Context, organizationId string, documentId string) ([]*entity.Association, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*entity.Association, 0)
	for _, item := range s.associations.Items() {
		a := item.Object.(*entity.Association)
		if a.OrganizationId == organizationId && a.DocumentId == documentId {
			result = append(result, cloneAssociation(a))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}
