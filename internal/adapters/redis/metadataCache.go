package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"agora/internal/core/metadata"

	"github.com/go-redis/redis/v8"
)

const metadataKeyPrefix = "metadata:"

// MetadataCacheRedis کش متادیتای لینک‌ها با TTL
type MetadataCacheRedis struct {
	Client *redis.Client
}

func NewMetadataCacheRedis(client *redis.Client) *MetadataCacheRedis {
	return &MetadataCacheRedis{Client: client}
}

// MetadataKey hashes the url so arbitrary lengths map onto a fixed-size key.
func MetadataKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return metadataKeyPrefix + hex.EncodeToString(sum[:])
}

func (c *MetadataCacheRedis) Get(ctx context.Context, url string) (*metadata.SiteMetadata, error) {
	raw, err := c.Client.Get(ctx, MetadataKey(url)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading cached metadata: %w", err)
	}

	var md metadata.SiteMetadata
	if err := json.Unmarshal(raw, &md); err != nil {
		return nil, fmt.Errorf("decoding cached metadata: %w", err)
	}
	return &md, nil
}

func (c *MetadataCacheRedis) Set(ctx context.Context, url string, md *metadata.SiteMetadata, ttl time.Duration) error {
	raw, err := json.Marshal(md)
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}
	if err := c.Client.Set(ctx, MetadataKey(url), raw, ttl).Err(); err != nil {
		return fmt.Errorf("caching metadata: %w", err)
	}
	return nil
}
