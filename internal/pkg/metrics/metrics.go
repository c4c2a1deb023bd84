package metrics

import (
	"strconv"
	"time"

	"propdesk-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns its registry so several servers (tests) can coexist in one process.
// A nil *Collector is valid and records nothing.
type Collector struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	DocumentWrites   *prometheus.CounterVec
	AssociationWrite *prometheus.CounterVec
	RenderFallbacks  prometheus.Counter
	SearchFallbacks  prometheus.Counter
}

func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		DocumentWrites: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "document_writes_total",
				Help:      "Documents created, updated and deleted",
			},
			[]string{"operation"},
		),
		AssociationWrite: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "association_writes_total",
				Help:      "Associations created and removed, by target kind",
			},
			[]string{"operation", "kind"},
		),
		RenderFallbacks: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "render_fallbacks_total",
				Help:      "Markdown renders that fell back to raw text",
			},
		),
		SearchFallbacks: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "search_fallbacks_total",
				Help:      "Searches answered by the store because the index was unavailable",
			},
		),
	}

	registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.DocumentWrites,
		c.AssociationWrite,
		c.RenderFallbacks,
		c.SearchFallbacks,
		prometheus.NewGoCollector(),
	)

	return c
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) DocumentWritten(operation string) {
	if c == nil {
		return
	}
	c.DocumentWrites.WithLabelValues(operation).Inc()
}

func (c *Collector) AssociationWritten(operation, kind string) {
	if c == nil {
		return
	}
	c.AssociationWrite.WithLabelValues(operation, kind).Inc()
}

func (c *Collector) RenderFellBack() {
	if c == nil {
		return
	}
	c.RenderFallbacks.Inc()
}

func (c *Collector) SearchFellBack() {
	if c == nil {
		return
	}
	c.SearchFallbacks.Inc()
}

// Middleware records request count and latency under the matched route pattern.
func (c *Collector) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		status := ctx.Response().StatusCode()
		if err != nil {
			// The error handler has not written the response yet.
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = apperror.StatusCode(err)
			}
		}

		route := ctx.Route().Path
		c.HTTPRequests.WithLabelValues(ctx.Method(), route, strconv.Itoa(status)).Inc()
		c.HTTPDuration.WithLabelValues(ctx.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

func (c *Collector) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{}))
}
