// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"

	"facets_backend/internal/feature/examples/domain/entity"
	"facets_backend/internal/feature/examples/usecase"
)

const (
	defaultTTL       = 5 * time.Minute
	defaultNamespace = "examples"
	scanCount        = 200
)

// CachingExampleRepository decorates an ExampleRepository with Redis caching.
// Single records (FindByID) and counters (Count) are cached; listings and
// FindForUpdate always hit the database. Every successful write invalidates
// the record key and all counter keys.
type CachingExampleRepository struct {
	inner     usecase.ExampleRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.ExampleRepository = (*CachingExampleRepository)(nil)

// NewCachingExampleRepository decorates an ExampleRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "examples".
// A nil rdb turns the decorator into a pass-through.
func NewCachingExampleRepository(rdb *redis.Client, ttl time.Duration, inner usecase.ExampleRepository, namespace string) *CachingExampleRepository {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if namespace == "" {
		namespace = defaultNamespace
	}
	return &CachingExampleRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create persists the record and drops every cached counter.
func (c *CachingExampleRepository) Create(ctx context.Context, e *entity.Example) error {
	if err := c.inner.Create(ctx, e); err != nil {
		return err
	}
	c.invalidate(ctx, 0)
	return nil
}

// FindByID checks the cache first, then falls back to the database.
// Not-found results are not cached.
func (c *CachingExampleRepository) FindByID(ctx context.Context, id uint) (*entity.Example, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.itemKey(id)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Example
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// FindForUpdate always reads from the database and never fills the cache.
// Read-modify-write must start from the stored row, not a cached copy.
func (c *CachingExampleRepository) FindForUpdate(ctx context.Context, id uint) (*entity.Example, error) {
	return c.inner.FindForUpdate(ctx, id)
}

// List always reads from the database.
func (c *CachingExampleRepository) List(ctx context.Context, filter usecase.ListFilter, page usecase.Page) ([]entity.Example, error) {
	return c.inner.List(ctx, filter, page)
}

// Count checks the cache first, then falls back to the database.
func (c *CachingExampleRepository) Count(ctx context.Context, filter usecase.ListFilter) (int64, error) {
	if c.rdb == nil {
		return c.inner.Count(ctx, filter)
	}

	key := c.countKey(filter)

	if n, err := c.rdb.Get(ctx, key).Int64(); err == nil {
		return n, nil
	}

	n, err := c.inner.Count(ctx, filter)
	if err != nil {
		return 0, err
	}
	_ = c.rdb.Set(ctx, key, n, c.ttl).Err()
	return n, nil
}

// Save writes the record and invalidates its key and every counter.
func (c *CachingExampleRepository) Save(ctx context.Context, e *entity.Example) error {
	if err := c.inner.Save(ctx, e); err != nil {
		return err
	}
	c.invalidate(ctx, e.ID)
	return nil
}

// Delete removes the record and invalidates its key and every counter.
func (c *CachingExampleRepository) Delete(ctx context.Context, id uint) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

// invalidate drops the record key (when id > 0) and all counter keys.
// Best effort: cache failures never fail the write.
func (c *CachingExampleRepository) invalidate(ctx context.Context, id uint) {
	if c.rdb == nil {
		return
	}
	if id > 0 {
		_ = c.rdb.Del(ctx, c.itemKey(id)).Err()
	}
	_ = c.deleteByPattern(ctx, c.countPrefix()+"*")
}

// itemKey generates the cache key for a single record.
func (c *CachingExampleRepository) itemKey(id uint) string {
	return fmt.Sprintf("%s:item:%d", c.namespace, id)
}

// countPrefix is shared by every counter key.
func (c *CachingExampleRepository) countPrefix() string {
	return c.namespace + ":count:"
}

// countKey generates a cache key for a specific filter combination.
func (c *CachingExampleRepository) countKey(f usecase.ListFilter) string {
	active := "any"
	if f.IsActive != nil {
		active = strconv.FormatBool(*f.IsActive)
	}
	return fmt.Sprintf("%s%s:%t:%s",
		c.countPrefix(),
		active,
		f.ActiveOnly,
		nameToken(f.Name),
	)
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingExampleRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, scanCount).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// nameToken はnameフィルタをキーの末尾用に固定長へ変換します。
// 大文字小文字の畳み込みはDB側で行うため、入力はそのままハッシュします。
// 空（フィルタなし）は空文字のままです。
func nameToken(name string) string {
	if name == "" {
		return ""
	}
	return "n" + strconv.FormatUint(xxhash.Sum64String(name), 16)
}
