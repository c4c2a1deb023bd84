package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDocumentReadsLegacyShapes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "org-1", r.Header.Get("X-Organization-ID"))
		switch r.URL.Path {
		case "/api/v1/documents/new":
			_, _ = io.WriteString(w, `{"id":"new","title":"Lease","type":"markdown","content":"# Lease","version":1,"created_at":"2024-01-01T00:00:00Z","associations":[{"document_id":"new","target_kind":"property","target_id":"p1"}]}`)
		case "/api/v1/documents/old":
			_, _ = io.WriteString(w, `{"data":{"id":"old","title":"Old","type":"markdown","data":"legacy text","createdAt":"2023-05-01T00:00:00Z"}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"code":404,"success":false,"message":"document not found"}`)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, WithOrganization("org-1"))
	ctx := context.Background()

	doc, err := c.GetDocument(ctx, "new")
	require.NoError(t, err)
	assert.Equal(t, "# Lease", doc.Content)
	assert.Equal(t, 1, doc.Version)
	require.Len(t, doc.Associations, 1)
	assert.Equal(t, "p1", doc.Associations[0].TargetId)

	old, err := c.GetDocument(ctx, "old")
	require.NoError(t, err)
	assert.Equal(t, "old", old.Id)
	assert.Equal(t, "legacy text", old.Content)
	assert.Equal(t, 2023, old.CreatedAt.Year())

	_, err = c.GetDocument(ctx, "missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "document not found")
}

func TestCreateAndAssociate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/documents":
			assert.Equal(t, "Lease Policy", body["title"])
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"id":"d1","title":"Lease Policy","type":"markdown","version":1}`)
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/documents/d1/properties":
			if body["property_id"] == "" || body["property_id"] == nil {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = io.WriteString(w, `{"code":400,"success":false,"message":"property_id is required"}`)
				return
			}
			if body["property_id"] == "p-existing" {
				_, _ = io.WriteString(w, `{"target_id":"p-existing"}`)
				return
			}
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"target_id":"p1"}`)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	ctx := context.Background()

	doc, err := c.CreateDocument(ctx, CreateInput{Title: "Lease Policy", Type: "markdown"})
	require.NoError(t, err)
	assert.Equal(t, "d1", doc.Id)
	assert.Equal(t, 1, doc.Version)

	created, err := c.Associate(ctx, "properties", "d1", "p1", nil)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = c.Associate(ctx, "properties", "d1", "p-existing", nil)
	require.NoError(t, err)
	assert.False(t, created)

	_, err = c.Associate(ctx, "properties", "d1", "", nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "property_id is required", apiErr.Message)

	_, err = c.Associate(ctx, "vendors", "d1", "v1", nil)
	assert.Error(t, err)
}

func TestDownloadMarkdownPrefersServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="Lease Policy.md"`)
		_, _ = io.WriteString(w, "# From server")
	}))
	defer srv.Close()

	doc := &Document{}
	doc.Id, doc.Title, doc.Content = "d1", "Lease Policy", "# Local"

	d, err := New(srv.URL).DownloadMarkdown(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, "Lease Policy.md", d.Filename)
	assert.Equal(t, []byte("# From server"), d.Body)
}

func TestDownloadMarkdownFallsBackLocally(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	doc := &Document{}
	doc.Id, doc.Title, doc.Content = "d1", "Lease Policy", "# Local"

	d, err := New(srv.URL).DownloadMarkdown(context.Background(), doc)
	require.NotNil(t, d)
	assert.Error(t, err)
	assert.Equal(t, "Lease Policy.md", d.Filename)
	assert.Equal(t, []byte("# Local"), d.Body)
}

func TestCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(srv.URL).GetDocument(ctx, "d1")
	assert.ErrorIs(t, err, context.Canceled)

	d, err := New(srv.URL).DownloadMarkdown(ctx, &Document{})
	assert.Nil(t, d)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestListDocumentsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "policy", r.URL.Query().Get("title"))
		assert.Equal(t, "g1", r.URL.Query().Get("group_id"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Empty(t, r.URL.Query().Get("type"))
		_, _ = io.WriteString(w, `{"items":[{"id":"a","title":"Lease Policy","data":"x"}],"hasMore":true,"totalCount":21}`)
	}))
	defer srv.Close()

	list, err := New(srv.URL).ListDocuments(context.Background(), ListOptions{Title: "policy", GroupId: "g1", Page: 2})
	require.NoError(t, err)
	assert.True(t, list.HasMore)
	assert.Equal(t, int64(21), list.TotalCount)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "x", list.Items[0].Content)
}

func TestFilterDocuments(t *testing.T) {
	docs := make([]Document, 3)
	docs[0].Title, docs[0].Type = "Lease Policy", "markdown"
	docs[1].Title, docs[1].Type, docs[1].Content = "Pets", "markdown", "No reptiles in the lease"
	docs[2].Title, docs[2].Type = "Floor plan", "pdf"

	assert.Len(t, FilterDocuments(docs, ""), 3)
	assert.Len(t, FilterDocuments(docs, "LEASE"), 2)
	assert.Len(t, FilterDocuments(docs, "lease reptiles"), 1)
	assert.Len(t, FilterDocuments(docs, "pdf"), 1)
	assert.Empty(t, FilterDocuments(docs, "garage"))
}
