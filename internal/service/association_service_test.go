package service

import (
	"context"
	"strings"
	"testing"

	"propdesk-be/internal/constant"
	"propdesk-be/internal/dto"
	"propdesk-be/internal/entity"
	"propdesk-be/internal/pkg/apperror"
	"propdesk-be/internal/pkg/logger"
	"propdesk-be/internal/repository/contract"
	"propdesk-be/internal/repository/unitofwork"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssociateRequiresTargetId(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		kind    entity.TargetKind
		message string
	}{
		{kind: entity.TargetKindProperty, message: "property_id is required"},
		{kind: entity.TargetKindPerson, message: "person_id is required"},
		{kind: entity.TargetKindTag, message: "tag_id is required"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			f := newFixture(t)
			doc := f.createDocument(t, "org", &dto.CreateDocumentRequest{Title: "Lease", Type: "markdown"})

			_, _, err := f.associations.Associate(ctx, "org", tt.kind, doc.Id, &dto.AssociateRequest{
				PropertyId: "  ",
				PersonId:   "  ",
				TagId:      "  ",
			})
			assert.ErrorIs(t, err, apperror.ErrValidation)
			assert.EqualError(t, err, tt.message)

			shown, err := f.documents.Show(ctx, "org", doc.Id)
			require.NoError(t, err)
			assert.Empty(t, shown.Associations)
		})
	}
}

func TestAssociateValidatesBeforeLookup(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.associations.Associate(context.Background(), "org", entity.TargetKindProperty, "d1", &dto.AssociateRequest{})
	assert.EqualError(t, err, "property_id is required")
}

func TestAssociateRejectsLongTargetId(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.associations.Associate(context.Background(), "org", entity.TargetKindPerson, "d1", &dto.AssociateRequest{
		PersonId: strings.Repeat("x", 65),
	})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestAssociateMissingEndpoints(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	doc := f.createDocument(t, "org", &dto.CreateDocumentRequest{Title: "Lease", Type: "markdown"})
	f.createTarget(t, "org", entity.TargetKindProperty, "p1")
	f.createTarget(t, "other", entity.TargetKindPerson, "u1")

	_, _, err := f.associations.Associate(ctx, "org", entity.TargetKindProperty, "d-missing", &dto.AssociateRequest{PropertyId: "p1"})
	assert.EqualError(t, err, "document not found")

	_, _, err = f.associations.Associate(ctx, "org", entity.TargetKindProperty, doc.Id, &dto.AssociateRequest{PropertyId: "p2"})
	assert.EqualError(t, err, "property not found")

	_, _, err = f.associations.Associate(ctx, "org", entity.TargetKindPerson, doc.Id, &dto.AssociateRequest{PersonId: "u1"})
	assert.EqualError(t, err, "person not found")
}

func TestAssociateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	doc := f.createDocument(t, "org", &dto.CreateDocumentRequest{Title: "Lease", Type: "markdown"})
	f.createTarget(t, "org", entity.TargetKindProperty, "p1")

	first, created, err := f.associations.Associate(ctx, "org", entity.TargetKindProperty, doc.Id, &dto.AssociateRequest{
		PropertyId: "p1",
		Metadata:   map[string]interface{}{"role": "primary"},
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "property", first.TargetKind)
	assert.Equal(t, "primary", first.Metadata["role"])

	second, created, err := f.associations.Associate(ctx, "org", entity.TargetKindProperty, doc.Id, &dto.AssociateRequest{PropertyId: "p1"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)

	shown, err := f.documents.Show(ctx, "org", doc.Id)
	require.NoError(t, err)
	require.Len(t, shown.Associations, 1)
	assert.Equal(t, "p1", shown.Associations[0].TargetId)

	assert.Equal(t, []string{constant.EventDocumentCreated, constant.EventDocumentAssociated}, f.publisher.types())
}

func TestAssociateTagAcceptsGroupId(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	doc := f.createDocument(t, "org", &dto.CreateDocumentRequest{Title: "Lease", Type: "markdown"})
	f.createTarget(t, "org", entity.TargetKindTag, "g1")

	res, created, err := f.associations.Associate(ctx, "org", entity.TargetKindTag, doc.Id, &dto.AssociateRequest{GroupId: "g1"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "g1", res.TargetId)

	list, err := f.documents.List(ctx, "org", &dto.ListDocumentsRequest{GroupId: "g1"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, doc.Id, list.Items[0].Id)
}

func TestDisassociate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	doc := f.createDocument(t, "org", &dto.CreateDocumentRequest{Title: "Lease", Type: "markdown"})
	f.createTarget(t, "org", entity.TargetKindPerson, "u1")

	_, err := f.associations.Disassociate(ctx, "org", entity.TargetKindPerson, doc.Id, "u1")
	assert.ErrorIs(t, err, apperror.NotFound("association not found"))

	_, _, err = f.associations.Associate(ctx, "org", entity.TargetKindPerson, doc.Id, &dto.AssociateRequest{PersonId: "u1"})
	require.NoError(t, err)

	res, err := f.associations.Disassociate(ctx, "org", entity.TargetKindPerson, doc.Id, "u1")
	require.NoError(t, err)
	assert.True(t, res.Success)

	_, err = f.associations.Disassociate(ctx, "org", entity.TargetKindPerson, doc.Id, "u1")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.associations.Disassociate(ctx, "org", entity.TargetKindPerson, doc.Id, "")
	assert.EqualError(t, err, "person_id is required")

	_, err = f.associations.Disassociate(ctx, "org", entity.TargetKindPerson, doc.Id, "u-missing")
	assert.EqualError(t, err, "person not found")
}

func TestUnsupportedKind(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.associations.Associate(context.Background(), "org", entity.TargetKind("vendor"), "d1", &dto.AssociateRequest{})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

// staleReadFactory hands out one unit of work whose FindOne never sees stored links,
// the way a request does when another request inserts the same link between its read and write.
type staleReadFactory struct {
	unitofwork.RepositoryFactory
	calls int
}

func (f *staleReadFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	f.calls++
	uow := f.RepositoryFactory.NewUnitOfWork(ctx)
	if f.calls > 1 {
		return uow
	}
	return staleReadUnit{UnitOfWork: uow}
}

type staleReadUnit struct {
	unitofwork.UnitOfWork
}

func (u staleReadUnit) AssociationRepository() contract.AssociationRepository {
	return staleAssociations{AssociationRepository: u.UnitOfWork.AssociationRepository()}
}

type staleAssociations struct {
	contract.AssociationRepository
}

func (staleAssociations) FindOne(ctx context.Context, organizationId string, documentId string, kind entity.TargetKind, targetId string) (*entity.Association, error) {
	return nil, nil
}

func TestAssociateLosingInsertReturnsExistingLink(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	doc := f.createDocument(t, "org", &dto.CreateDocumentRequest{Title: "Lease", Type: "markdown"})
	f.createTarget(t, "org", entity.TargetKindProperty, "p1")

	first, created, err := f.associations.Associate(ctx, "org", entity.TargetKindProperty, doc.Id, &dto.AssociateRequest{PropertyId: "p1"})
	require.NoError(t, err)
	require.True(t, created)

	racing := NewAssociationService(&staleReadFactory{RepositoryFactory: f.uowFactory}, f.publisher, DefaultTargetRules(), logger.NewNopLogger(), nil)
	second, created, err := racing.Associate(ctx, "org", entity.TargetKindProperty, doc.Id, &dto.AssociateRequest{PropertyId: "p1"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "p1", second.TargetId)
	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))

	shown, err := f.documents.Show(ctx, "org", doc.Id)
	require.NoError(t, err)
	assert.Len(t, shown.Associations, 1)
}
