package bootstrap

import (
	"context"
	"io"

	"propdesk-be/internal/config"
	"propdesk-be/internal/controller"
	"propdesk-be/internal/pkg/download"
	"propdesk-be/internal/pkg/logger"
	"propdesk-be/internal/pkg/metrics"
	"propdesk-be/internal/repository/unitofwork"
	"propdesk-be/internal/service"
	"propdesk-be/pkg/markdown"
	pktNats "propdesk-be/pkg/nats"
	"propdesk-be/pkg/search"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Controllers
	DocumentController    controller.IDocumentController
	AssociationController controller.IAssociationController
	RenderController      controller.IRenderController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Metrics *metrics.Collector
	Logger  logger.ILogger

	closers []func()
}

// NewContainer wires every service. Optional infrastructure (redis, minio, meilisearch, NATS)
// is only used when configured; otherwise in-process fallbacks take its place.
func NewContainer(uowFactory unitofwork.RepositoryFactory, cfg *config.Config, sysLogger logger.ILogger) *Container {
	c := &Container{Logger: sysLogger}

	// 1. Observability
	collector := metrics.NewCollector(cfg.App.MetricsNamespace)
	c.Metrics = collector

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	var natsPub *pktNats.Publisher
	if cfg.Events.NatsURL != "" {
		p, err := pktNats.NewPublisher(cfg.Events.NatsURL, cfg.Events.NatsStream)
		if err != nil {
			sysLogger.Warn("BOOTSTRAP", "Failed to connect to NATS, external events disabled", map[string]interface{}{"error": err.Error()})
		} else {
			natsPub = p
			c.closers = append(c.closers, p.Close)
		}
	}

	// 3. Search index
	var index search.Index
	if cfg.Search.MeiliURL != "" {
		m := search.NewMeili(cfg.Search.MeiliURL, cfg.Search.MeiliAPIKey, cfg.Search.Index)
		index = m
		c.closers = append(c.closers, m.Close)
	}

	// 4. Download links
	linker := newLinker(cfg, sysLogger)
	if closer, ok := linker.(io.Closer); ok {
		c.closers = append(c.closers, func() { _ = closer.Close() })
	}

	// 5. Services
	publisherService := service.NewPublisherService(cfg.Events.Topic, pubSub, natsPub, sysLogger)
	documentService := service.NewDocumentService(uowFactory, publisherService, sysLogger, collector)
	associationService := service.NewAssociationService(uowFactory, publisherService, service.DefaultTargetRules(), sysLogger, collector)
	renderService := service.NewRenderService(uowFactory, markdown.NewRenderer(), linker, sysLogger, collector)
	searchService := service.NewSearchService(uowFactory, index, sysLogger, collector)

	c.ConsumerService = service.NewConsumerService(
		pubSub,
		cfg.Events.Topic,
		uowFactory,
		searchService,
		cfg.Events.AssociationCleanup,
		sysLogger,
	)

	// 6. Controllers
	c.DocumentController = controller.NewDocumentController(documentService, searchService)
	c.AssociationController = controller.NewAssociationController(associationService)
	c.RenderController = controller.NewRenderController(renderService)

	return c
}

// newLinker prefers minio, then redis, then an in-process token store.
func newLinker(cfg *config.Config, sysLogger logger.ILogger) download.Linker {
	ttl := cfg.Redis.DownloadLinkTTL

	if store := cfg.ObjectStorage; store.Endpoint != "" {
		l, err := download.NewMinioLinker(context.Background(), store.Endpoint, store.AccessKey, store.SecretKey, store.Bucket, store.UseSSL, ttl)
		if err == nil {
			return l
		}
		sysLogger.Warn("BOOTSTRAP", "Object storage unavailable, falling back", map[string]interface{}{"error": err.Error()})
	}

	if cfg.Redis.URL != "" {
		l, err := download.NewRedisLinker(cfg.Redis.URL, cfg.App.BaseURL, ttl)
		if err == nil {
			return l
		}
		sysLogger.Warn("BOOTSTRAP", "Redis unavailable, download links kept in memory", map[string]interface{}{"error": err.Error()})
	}

	return download.NewMemoryLinker(cfg.App.BaseURL, ttl)
}

// Close releases the optional infrastructure connections.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
