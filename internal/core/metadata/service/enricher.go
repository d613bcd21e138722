package metadataapp

import (
	"context"
	"time"
	"unicode/utf8"

	"agora/internal/core/metadata"
	"agora/internal/core/post"
	"agora/internal/metrics"
	metadataPort "agora/internal/ports/metadata"

	"go.uber.org/zap"
)

// Enricher دریافت متادیتای لینک با محدودیت زمانی؛ هر خطایی به «بدون متادیتا» تبدیل می‌شود
type Enricher struct {
	Fetcher  metadataPort.Fetcher
	Cache    metadataPort.Cache
	Timeout  time.Duration
	CacheTTL time.Duration
	Metrics  *metrics.Metrics
	Logger   *zap.Logger
}

func NewEnricher(fetcher metadataPort.Fetcher, cache metadataPort.Cache, timeout, cacheTTL time.Duration, m *metrics.Metrics, logger *zap.Logger) *Enricher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if m == nil {
		m = metrics.NewNop()
	}
	return &Enricher{
		Fetcher:  fetcher,
		Cache:    cache,
		Timeout:  timeout,
		CacheTTL: cacheTTL,
		Metrics:  m,
		Logger:   logger,
	}
}

// Enrich never fails; a nil url or any fetch problem yields empty metadata.
func (e *Enricher) Enrich(ctx context.Context, url *string) metadata.SiteMetadata {
	if url == nil || *url == "" {
		return metadata.SiteMetadata{}
	}

	if e.Cache != nil {
		md, err := e.Cache.Get(ctx, *url)
		if err != nil {
			e.Logger.Warn("Metadata cache read failed", zap.String("url", *url), zap.Error(err))
		} else if md != nil {
			e.Metrics.MetadataCacheHits.Inc()
			return e.fitColumns(*url, *md)
		}
	}

	e.Metrics.MetadataFetches.Inc()
	fetchCtx := ctx
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	md, err := e.fetch(fetchCtx, *url)
	if err != nil {
		e.Metrics.MetadataFailures.Inc()
		e.Logger.Warn("Link metadata unavailable", zap.String("url", *url), zap.Error(err))
		return metadata.SiteMetadata{}
	}
	fitted := e.fitColumns(*url, *md)
	md = &fitted

	if e.Cache != nil && !md.Empty() {
		if err := e.Cache.Set(ctx, *url, md, e.CacheTTL); err != nil {
			e.Logger.Warn("Metadata cache write failed", zap.String("url", *url), zap.Error(err))
		}
	}
	return *md
}

// fitColumns drops media urls that do not fit the post url columns.
func (e *Enricher) fitColumns(url string, md metadata.SiteMetadata) metadata.SiteMetadata {
	if tooLong(md.EmbedVideoURL) {
		e.Logger.Debug("Dropping oversized embed url", zap.String("url", url))
		md.EmbedVideoURL = nil
	}
	if tooLong(md.ThumbnailURL) {
		e.Logger.Debug("Dropping oversized thumbnail url", zap.String("url", url))
		md.ThumbnailURL = nil
	}
	return md
}

func tooLong(s *string) bool {
	return s != nil && utf8.RuneCountInString(*s) > post.MaxURLLength
}

// fetch runs the fetcher but returns as soon as ctx is done, even if the fetcher ignores ctx.
func (e *Enricher) fetch(ctx context.Context, url string) (*metadata.SiteMetadata, error) {
	type result struct {
		md  *metadata.SiteMetadata
		err error
	}
	done := make(chan result, 1)
	go func() {
		md, err := e.Fetcher.Fetch(ctx, url)
		done <- result{md, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		if r.err != nil {
			return nil, r.err
		}
		if r.md == nil {
			return &metadata.SiteMetadata{}, nil
		}
		return r.md, nil
	}
}
