package cache

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
)

// GeneralCache 通用本地缓存，支持 TTL。满足 mahjong.Memo，用来缓存和牌判定
type GeneralCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

// NewGeneralCache 创建通用缓存
// maxEntries: 每条成本记 1，即最多缓存的条目数
// ttl: 默认过期时间，0 表示不过期
func NewGeneralCache(maxEntries int64, ttl time.Duration) (*GeneralCache, error) {
	if maxEntries <= 0 {
		return nil, fmt.Errorf("maxEntries must be positive, got %d", maxEntries)
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxEntries * 10, // 官方建议为条目数的 10 倍
		MaxCost:     maxEntries,
		BufferItems: 64,
		Metrics:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("创建 ristretto 缓存失败: %w", err)
	}

	return &GeneralCache{
		cache: cache,
		ttl:   ttl,
	}, nil
}

// Set 设置缓存，使用默认 TTL。写入是异步的，可能被准入策略丢弃
func (c *GeneralCache) Set(key string, value any) bool {
	return c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL 设置缓存，指定 TTL
func (c *GeneralCache) SetWithTTL(key string, value any, ttl time.Duration) bool {
	return c.cache.SetWithTTL(key, value, 1, ttl)
}

// Get 获取缓存
func (c *GeneralCache) Get(key string) (any, bool) {
	return c.cache.Get(key)
}

// Wait 等待缓冲区中的写入生效
func (c *GeneralCache) Wait() {
	c.cache.Wait()
}

// HitRatio 命中率
func (c *GeneralCache) HitRatio() float64 {
	return c.cache.Metrics.Ratio()
}

// Delete 删除缓存
func (c *GeneralCache) Delete(key string) {
	c.cache.Del(key)
}

// Close 关闭缓存
func (c *GeneralCache) Close() {
	c.cache.Close()
}
