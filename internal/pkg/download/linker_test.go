package download

import (
	"context"
	"strings"
	"testing"
	"time"

	"propdesk-be/pkg/content"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisLinker(t *testing.T, ttl time.Duration) (*RedisLinker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	linker := NewRedisLinkerWithClient(client, "http://localhost:3000/", ttl)
	t.Cleanup(func() { _ = linker.Close() })
	return linker, mr
}

func tokenOf(t *testing.T, url string) string {
	t.Helper()
	prefix := "http://localhost:3000" + TokenPath
	require.True(t, strings.HasPrefix(url, prefix), url)
	return strings.TrimPrefix(url, prefix)
}

func TestRedisLinkerRoundTrip(t *testing.T) {
	ctx := context.Background()
	linker, mr := newTestRedisLinker(t, time.Minute)

	link, err := linker.Link(ctx, "org", "d1", &content.Download{Filename: "a.md"})
	require.NoError(t, err)
	token := tokenOf(t, link.URL)

	assert.True(t, mr.Exists("download:"+token))
	assert.Equal(t, time.Minute, mr.TTL("download:"+token))

	ticket, err := linker.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "org", ticket.OrganizationId)
	assert.Equal(t, "d1", ticket.DocumentId)
}

func TestRedisLinkerExpiry(t *testing.T) {
	ctx := context.Background()
	linker, mr := newTestRedisLinker(t, time.Minute)

	link, err := linker.Link(ctx, "org", "d1", nil)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = linker.Resolve(ctx, tokenOf(t, link.URL))
	assert.ErrorIs(t, err, ErrTokenNotFound)

	_, err = linker.Resolve(ctx, "never-issued")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestMemoryLinker(t *testing.T) {
	ctx := context.Background()
	linker := NewMemoryLinker("http://localhost:3000", time.Minute)

	link, err := linker.Link(ctx, "org", "d1", nil)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), link.ExpiresAt, 5*time.Second)

	ticket, err := linker.Resolve(ctx, tokenOf(t, link.URL))
	require.NoError(t, err)
	assert.Equal(t, "d1", ticket.DocumentId)

	_, err = linker.Resolve(ctx, "nope")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}
