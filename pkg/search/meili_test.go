package search

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeiliUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"down","code":"internal","type":"internal","link":""}`))
	}))
	defer srv.Close()

	m := NewMeili(srv.URL, "", "documents")
	defer m.Close()

	assert.False(t, m.Healthy())

	_, err := m.Query("org", "lease", 10)
	assert.ErrorIs(t, err, ErrUnavailable)

	// Five consecutive failures open the breaker.
	for i := 0; i < 5; i++ {
		err := m.Upsert(Record{Id: "d1", OrganizationId: "org", Title: "Lease"})
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnavailable)
	}
	assert.ErrorIs(t, m.Delete("d1"), ErrUnavailable)
}
