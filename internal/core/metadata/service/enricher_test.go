package metadataapp

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"agora/internal/core/metadata"
	"agora/internal/core/post"
	"agora/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func strPtr(s string) *string { return &s }

type fetcherFunc func(ctx context.Context, url string) (*metadata.SiteMetadata, error)

func (f fetcherFunc) Fetch(ctx context.Context, url string) (*metadata.SiteMetadata, error) {
	return f(ctx, url)
}

type mapCache struct {
	mu      sync.Mutex
	entries map[string]metadata.SiteMetadata
	getErr  error
}

func (c *mapCache) Get(ctx context.Context, url string) (*metadata.SiteMetadata, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	md, ok := c.entries[url]
	if !ok {
		return nil, nil
	}
	return &md, nil
}

func (c *mapCache) Set(ctx context.Context, url string, md *metadata.SiteMetadata, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[url] = *md
	return nil
}

func TestEnrichWithoutURL(t *testing.T) {
	called := false
	e := NewEnricher(fetcherFunc(func(ctx context.Context, url string) (*metadata.SiteMetadata, error) {
		called = true
		return nil, nil
	}), nil, time.Second, time.Minute, nil, zaptest.NewLogger(t))

	assert.True(t, (&metadata.SiteMetadata{}).Empty())
	md := e.Enrich(context.Background(), nil)
	assert.True(t, md.Empty())
	md = e.Enrich(context.Background(), strPtr(""))
	assert.True(t, md.Empty())
	assert.False(t, called)
}

func TestEnrichDegradesOnError(t *testing.T) {
	m := metrics.NewNop()
	e := NewEnricher(fetcherFunc(func(ctx context.Context, url string) (*metadata.SiteMetadata, error) {
		return nil, errors.New("connection refused")
	}), nil, time.Second, time.Minute, m, zaptest.NewLogger(t))

	md := e.Enrich(context.Background(), strPtr("http://unreachable.invalid"))
	assert.True(t, md.Empty())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MetadataFailures))
}

func TestEnrichRespectsTimeout(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	e := NewEnricher(fetcherFunc(func(ctx context.Context, url string) (*metadata.SiteMetadata, error) {
		<-block // ignores ctx on purpose
		return &metadata.SiteMetadata{Title: strPtr("late")}, nil
	}), nil, 50*time.Millisecond, time.Minute, nil, zaptest.NewLogger(t))

	start := time.Now()
	md := e.Enrich(context.Background(), strPtr("http://slow.example"))
	assert.True(t, md.Empty())
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestEnrichUsesCache(t *testing.T) {
	calls := 0
	cache := &mapCache{entries: map[string]metadata.SiteMetadata{}}
	m := metrics.NewNop()
	e := NewEnricher(fetcherFunc(func(ctx context.Context, url string) (*metadata.SiteMetadata, error) {
		calls++
		return &metadata.SiteMetadata{Title: strPtr("Hello")}, nil
	}), cache, time.Second, time.Minute, m, zaptest.NewLogger(t))

	first := e.Enrich(context.Background(), strPtr("http://example.com"))
	second := e.Enrich(context.Background(), strPtr("http://example.com"))

	assert.Equal(t, "Hello", *first.Title)
	assert.Equal(t, "Hello", *second.Title)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MetadataCacheHits))
}

func TestEnrichFallsThroughBrokenCache(t *testing.T) {
	cache := &mapCache{entries: map[string]metadata.SiteMetadata{}, getErr: errors.New("redis down")}
	e := NewEnricher(fetcherFunc(func(ctx context.Context, url string) (*metadata.SiteMetadata, error) {
		return &metadata.SiteMetadata{Description: strPtr("desc")}, nil
	}), cache, time.Second, time.Minute, nil, zaptest.NewLogger(t))

	md := e.Enrich(context.Background(), strPtr("http://example.com"))
	assert.Equal(t, "desc", *md.Description)
}

func TestEnrichDropsOversizedMediaURLs(t *testing.T) {
	long := "https://cdn.example.com/" + strings.Repeat("x", post.MaxURLLength)
	cache := &mapCache{entries: map[string]metadata.SiteMetadata{}}
	e := NewEnricher(fetcherFunc(func(ctx context.Context, url string) (*metadata.SiteMetadata, error) {
		return &metadata.SiteMetadata{
			Title:         strPtr("Article"),
			EmbedVideoURL: strPtr(long),
			ThumbnailURL:  strPtr(long),
		}, nil
	}), cache, time.Second, time.Minute, nil, zaptest.NewLogger(t))

	md := e.Enrich(context.Background(), strPtr("https://example.com/article"))
	assert.Equal(t, "Article", *md.Title)
	assert.Nil(t, md.EmbedVideoURL)
	assert.Nil(t, md.ThumbnailURL)

	cached := cache.entries["https://example.com/article"]
	assert.Nil(t, cached.ThumbnailURL, "oversized urls are not cached either")
}
