package services

import (
	"context"
	"log/slog"
	"time"

	"seaside_restaurant/internal/models"
)

const completeMenuKey = "menu:complete"

// TempStore is the subset of internal/redis used for caching.
type TempStore interface {
	SetTempData(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	GetTempData(ctx context.Context, key string, dest interface{}) error
	DeleteTempData(ctx context.Context, key string) error
}

type MenuSection struct {
	Category models.Category   `json:"category"`
	Items    []models.MenuItem `json:"items"`
}

// MenuCache keeps the complete menu in redis between writes. A nil *MenuCache
// or one without a store caches nothing.
type MenuCache struct {
	store TempStore
	ttl   time.Duration
	log   *slog.Logger
}

func NewMenuCache(store TempStore, ttl time.Duration, log *slog.Logger) *MenuCache {
	return &MenuCache{store: store, ttl: ttl, log: log}
}

func (c *MenuCache) enabled() bool {
	return c != nil && c.store != nil
}

func (c *MenuCache) Get(ctx context.Context) ([]MenuSection, bool) {
	if !c.enabled() {
		return nil, false
	}
	var sections []MenuSection
	if err := c.store.GetTempData(ctx, completeMenuKey, &sections); err != nil {
		return nil, false
	}
	return sections, true
}

func (c *MenuCache) Put(ctx context.Context, sections []MenuSection) {
	if !c.enabled() {
		return
	}
	if err := c.store.SetTempData(ctx, completeMenuKey, sections, c.ttl); err != nil {
		c.log.Warn("failed to cache menu", "error", err)
	}
}

func (c *MenuCache) Invalidate(ctx context.Context) {
	if !c.enabled() {
		return
	}
	if err := c.store.DeleteTempData(ctx, completeMenuKey); err != nil {
		c.log.Warn("failed to invalidate menu cache", "error", err)
	}
}
