package download

import (
	"context"
	"time"

	"propdesk-be/pkg/content"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// MemoryLinker keeps tickets in process. Used when no redis is configured.
type MemoryLinker struct {
	cache   *cache.Cache
	baseURL string
	ttl     time.Duration
}

func NewMemoryLinker(baseURL string, ttl time.Duration) *MemoryLinker {
	return &MemoryLinker{
		cache:   cache.New(ttl, 10*time.Minute),
		baseURL: baseURL,
		ttl:     ttl,
	}
}

func (l *MemoryLinker) Link(ctx context.Context, organizationId string, documentId string, d *content.Download) (*Link, error) {
	token := uuid.NewString()
	ticket := &Ticket{
		OrganizationId: organizationId,
		DocumentId:     documentId,
		ExpiresAt:      time.Now().UTC().Add(l.ttl),
	}
	l.cache.Set(token, ticket, cache.DefaultExpiration)
	return &Link{URL: tokenURL(l.baseURL, token), ExpiresAt: ticket.ExpiresAt}, nil
}

func (l *MemoryLinker) Resolve(ctx context.Context, token string) (*Ticket, error) {
	if x, found := l.cache.Get(token); found {
		t := *x.(*Ticket)
		return &t, nil
	}
	return nil, ErrTokenNotFound
}
