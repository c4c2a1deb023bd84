package download

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"propdesk-be/pkg/content"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisLinker stores tickets under "download:<token>" with the link TTL.
type RedisLinker struct {
	client  *redis.Client
	prefix  string
	baseURL string
	ttl     time.Duration
}

// NewRedisLinker connects to redisURL and pings it.
func NewRedisLinker(redisURL, baseURL string, ttl time.Duration) (*RedisLinker, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewRedisLinkerWithClient(client, baseURL, ttl), nil
}

func NewRedisLinkerWithClient(client *redis.Client, baseURL string, ttl time.Duration) *RedisLinker {
	return &RedisLinker{
		client:  client,
		prefix:  "download:",
		baseURL: baseURL,
		ttl:     ttl,
	}
}

func (l *RedisLinker) key(token string) string {
	return l.prefix + token
}

func (l *RedisLinker) Link(ctx context.Context, organizationId string, documentId string, d *content.Download) (*Link, error) {
	token := uuid.NewString()
	ticket := Ticket{
		OrganizationId: organizationId,
		DocumentId:     documentId,
		ExpiresAt:      time.Now().UTC().Add(l.ttl),
	}

	data, err := json.Marshal(ticket)
	if err != nil {
		return nil, fmt.Errorf("marshal ticket: %w", err)
	}
	if err := l.client.Set(ctx, l.key(token), data, l.ttl).Err(); err != nil {
		return nil, fmt.Errorf("store download token: %w", err)
	}

	return &Link{URL: tokenURL(l.baseURL, token), ExpiresAt: ticket.ExpiresAt}, nil
}

func (l *RedisLinker) Resolve(ctx context.Context, token string) (*Ticket, error) {
	data, err := l.client.Get(ctx, l.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("get download token: %w", err)
	}

	var ticket Ticket
	if err := json.Unmarshal(data, &ticket); err != nil {
		return nil, fmt.Errorf("unmarshal ticket: %w", err)
	}
	return &ticket, nil
}

func (l *RedisLinker) Close() error {
	return l.client.Close()
}
