package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mangaview/mangaview/internal/domain"
	"github.com/mangaview/mangaview/internal/metrics"
	"github.com/mangaview/mangaview/internal/store"
)

type Cache interface {
	GetCache(key string) ([]byte, error)
	SetCache(key string, data []byte, ttl time.Duration) error
	ClearCache() error
}

// CachedProvider is a read-through cache in front of another Provider.
// Errors are never cached.
type CachedProvider struct {
	provider Provider
	cache    Cache
	cacheTTL time.Duration
}

func NewCachedProvider(provider Provider, cache Cache, cacheTTL time.Duration) *CachedProvider {
	return &CachedProvider{
		provider: provider,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

func filterKey(f domain.ContentFilter) string {
	return fmt.Sprintf("%s:%t", f.Language, f.R18)
}

func (c *CachedProvider) MangasByTag(ctx context.Context, tagID string, limit, offset int, filter domain.ContentFilter) (*domain.MangaPage, error) {
	cacheKey := fmt.Sprintf("tag:%s:%d:%d:%s", tagID, limit, offset, filterKey(filter))

	var page domain.MangaPage
	hit, err := c.lookup("mangas_by_tag", cacheKey, &page)
	if err != nil {
		return nil, err
	}
	if hit {
		return &page, nil
	}

	result, err := c.provider.MangasByTag(ctx, tagID, limit, offset, filter)
	if err != nil {
		return nil, err
	}
	c.store(cacheKey, result)
	return result, nil
}

func (c *CachedProvider) TopRated(ctx context.Context, limit int, filter domain.ContentFilter) ([]domain.Manga, error) {
	cacheKey := fmt.Sprintf("top_rated:%d:%s", limit, filterKey(filter))

	var mangas []domain.Manga
	hit, err := c.lookup("top_rated", cacheKey, &mangas)
	if err != nil {
		return nil, err
	}
	if hit {
		return mangas, nil
	}

	result, err := c.provider.TopRated(ctx, limit, filter)
	if err != nil {
		return nil, err
	}
	c.store(cacheKey, result)
	return result, nil
}

func (c *CachedProvider) GetTag(ctx context.Context, id string) (*domain.Tag, error) {
	cacheKey := "tag_info:" + id

	var tag domain.Tag
	hit, err := c.lookup("get_tag", cacheKey, &tag)
	if err != nil {
		return nil, err
	}
	if hit {
		return &tag, nil
	}

	result, err := c.provider.GetTag(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(cacheKey, result)
	return result, nil
}

func (c *CachedProvider) GetManga(ctx context.Context, id, lang string) (*domain.Manga, error) {
	cacheKey := fmt.Sprintf("manga:%s:%s", id, lang)

	var manga domain.Manga
	hit, err := c.lookup("get_manga", cacheKey, &manga)
	if err != nil {
		return nil, err
	}
	if hit {
		return &manga, nil
	}

	result, err := c.provider.GetManga(ctx, id, lang)
	if err != nil {
		return nil, err
	}
	c.store(cacheKey, result)
	return result, nil
}

// lookup decodes a cached entry into target. Undecodable entries count as
// misses so a schema change only costs one refetch.
func (c *CachedProvider) lookup(method, key string, target interface{}) (bool, error) {
	data, err := c.cache.GetCache(key)
	if err != nil {
		return false, err
	}
	if data != nil && json.Unmarshal(data, target) == nil {
		metrics.CatalogCacheTotal.WithLabelValues(method, metrics.CacheHit).Inc()
		return true, nil
	}
	metrics.CatalogCacheTotal.WithLabelValues(method, metrics.CacheMiss).Inc()
	return false, nil
}

func (c *CachedProvider) store(key string, value interface{}) {
	if data, err := json.Marshal(value); err == nil {
		_ = c.cache.SetCache(key, data, c.cacheTTL)
	}
}

// ClearCache drops every cached catalog response.
func (c *CachedProvider) ClearCache() error {
	return c.cache.ClearCache()
}

var _ Provider = (*CachedProvider)(nil)

type storeCache struct {
	store *store.DB
}

// NewStoreCache adapts the SQLite cache table to the Cache interface.
func NewStoreCache(db *store.DB) Cache {
	return &storeCache{store: db}
}

func (s *storeCache) GetCache(key string) ([]byte, error) {
	return s.store.GetCache(key)
}

func (s *storeCache) SetCache(key string, data []byte, ttl time.Duration) error {
	return s.store.SetCache(key, data, ttl)
}

func (s *storeCache) ClearCache() error {
	return s.store.ClearCache()
}

var _ Cache = (*storeCache)(nil)
