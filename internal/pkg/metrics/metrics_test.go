package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"propdesk-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareRecordsStatus(t *testing.T) {
	c := NewCollector("test")

	app := fiber.New()
	app.Use(c.Middleware())
	app.Get("/ok", func(ctx *fiber.Ctx) error { return ctx.SendString("ok") })
	app.Get("/missing/:id", func(ctx *fiber.Ctx) error { return apperror.NotFound("document not found") })
	app.Get("/metrics", c.Handler())

	for _, path := range []string{"/ok", "/missing/1", "/missing/2"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("GET", "/ok", "200")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("GET", "/missing/:id", "404")))

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "test_http_requests_total")
}

func TestDomainCounters(t *testing.T) {
	c := NewCollector("test")

	c.DocumentWritten("create")
	c.DocumentWritten("create")
	c.AssociationWritten("create", "tag")
	c.RenderFellBack()
	c.SearchFellBack()

	assert.Equal(t, 2.0, testutil.ToFloat64(c.DocumentWrites.WithLabelValues("create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.AssociationWrite.WithLabelValues("create", "tag")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.RenderFallbacks))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.SearchFallbacks))

	var none *Collector
	assert.NotPanics(t, func() {
		none.DocumentWritten("create")
		none.AssociationWritten("create", "tag")
		none.RenderFellBack()
		none.SearchFellBack()
	})
}
