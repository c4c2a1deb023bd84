package service

import (
	"context"
	"testing"

	"propdesk-be/internal/dto"
	"propdesk-be/internal/entity"
	"propdesk-be/internal/pkg/apperror"
	"propdesk-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchFallsBackToStore(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.createDocument(t, "org", &dto.CreateDocumentRequest{Title: "Lease Policy", Type: "markdown"})
	f.createDocument(t, "org", &dto.CreateDocumentRequest{Title: "Parking", Type: "markdown"})

	for _, index := range []*fakeIndex{nil, newFakeIndex(false)} {
		var svc ISearchService
		if index == nil {
			svc = NewSearchService(f.uowFactory, nil, logger.NewNopLogger(), nil)
		} else {
			svc = NewSearchService(f.uowFactory, index, logger.NewNopLogger(), nil)
		}

		res, err := svc.Search(ctx, "org", &dto.SearchDocumentsRequest{Query: "lease"})
		require.NoError(t, err)
		assert.Equal(t, "store", res.Source)
		require.Len(t, res.Items, 1)
		assert.Equal(t, "Lease Policy", res.Items[0].Title)
	}
}

func TestSearchUsesHealthyIndex(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	index := newFakeIndex(true)
	svc := NewSearchService(f.uowFactory, index, logger.NewNopLogger(), nil)

	svc.Index(&entity.Document{Id: "d1", OrganizationId: "org", Title: "Lease", Type: "markdown", Content: "rent"})
	svc.Index(&entity.Document{Id: "d2", OrganizationId: "org", Title: "Scan", Type: "pdf", Content: "JVBERi0="})

	res, err := svc.Search(ctx, "org", &dto.SearchDocumentsRequest{Query: "anything"})
	require.NoError(t, err)
	assert.Equal(t, "index", res.Source)
	assert.Len(t, res.Items, 2)

	pdf, ok := index.record("d2")
	require.True(t, ok)
	assert.Empty(t, pdf.Content)

	svc.Remove("d1")
	_, ok = index.record("d1")
	assert.False(t, ok)
}

func TestSearchRequiresQuery(t *testing.T) {
	f := newFixture(t)
	svc := NewSearchService(f.uowFactory, nil, logger.NewNopLogger(), nil)

	_, err := svc.Search(context.Background(), "org", &dto.SearchDocumentsRequest{Query: " "})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}
