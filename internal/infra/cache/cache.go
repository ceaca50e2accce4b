package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sitemint/sitemint-backend/internal/infra/db"
	"github.com/sitemint/sitemint-backend/pkg/env"
)

type CacheConfig struct {
	Addr     string
	Password string
	TTL      time.Duration
}

func NewCacheConfig() CacheConfig {
	ttl, err := time.ParseDuration(env.GetEnv("CACHE_TTL", "5m"))
	if err != nil {
		ttl = 5 * time.Minute
	}
	return CacheConfig{
		Addr:     env.GetEnv("REDIS_ADDR", ""),
		Password: env.GetEnv("REDIS_PASSWORD", ""),
		TTL:      ttl,
	}
}

// SiteCache keeps fully loaded site records keyed by subdomain for the public
// renderer, plus the dashboard list. With no REDIS_ADDR configured every
// operation is a no-op.
type SiteCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSiteCache(cfg CacheConfig) *SiteCache {
	if cfg.Addr == "" {
		return &SiteCache{}
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
	})
	return &SiteCache{rdb: rdb, ttl: cfg.TTL}
}

const listKey = "sites:list"

func siteKey(subdomain string) string {
	return "sites:subdomain:" + subdomain
}

func (c *SiteCache) GetSite(ctx context.Context, subdomain string) (*db.SiteWithRelations, bool) {
	if c.rdb == nil {
		return nil, false
	}
	payload, err := c.rdb.Get(ctx, siteKey(subdomain)).Result()
	if err != nil {
		if err != redis.Nil {
			slog.Error("cache read failed", "subdomain", subdomain, "err", err)
		}
		return nil, false
	}
	var site db.SiteWithRelations
	if err := json.Unmarshal([]byte(payload), &site); err != nil {
		slog.Error("cache entry undecodable, dropping", "subdomain", subdomain, "err", err)
		c.rdb.Del(ctx, siteKey(subdomain))
		return nil, false
	}
	return &site, true
}

func (c *SiteCache) SetSite(ctx context.Context, site *db.SiteWithRelations) {
	if c.rdb == nil {
		return
	}
	payload, err := json.Marshal(site)
	if err != nil {
		slog.Error("cache write marshal failed", "subdomain", site.Subdomain, "err", err)
		return
	}
	if err := c.rdb.Set(ctx, siteKey(site.Subdomain), payload, c.ttl).Err(); err != nil {
		slog.Error("cache write failed", "subdomain", site.Subdomain, "err", err)
	}
}

// InvalidateSite drops the tenant's detail entry and the list entry.
func (c *SiteCache) InvalidateSite(ctx context.Context, subdomain string) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, siteKey(subdomain), listKey).Err(); err != nil {
		slog.Error("cache invalidation failed", "subdomain", subdomain, "err", err)
	}
}

func (c *SiteCache) InvalidateList(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, listKey).Err(); err != nil {
		slog.Error("cache invalidation failed", "key", listKey, "err", err)
	}
}

func (c *SiteCache) Close() {
	if c.rdb != nil {
		_ = c.rdb.Close()
	}
}
