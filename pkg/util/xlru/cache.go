package xlru

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// maxSize 缓存最大条目数上限。
const maxSize = 1 << 24 // 16,777,216

// Config 定义缓存配置。
type Config struct {
	// Size 缓存最大条目数。
	// 必须大于 0 且不超过 16,777,216。
	Size int
}

// Cache 是固定容量的 LRU 缓存。
// 必须通过 [New] 创建，所有方法并发安全。
type Cache[K comparable, V any] struct {
	lru *lru.Cache[K, V]
}

// New 创建 LRU 缓存。
// 如果 cfg.Size <= 0，返回 ErrInvalidSize；超过上限返回 ErrSizeExceedsMax。
func New[K comparable, V any](cfg Config) (*Cache[K, V], error) {
	if cfg.Size <= 0 {
		return nil, ErrInvalidSize
	}
	if cfg.Size > maxSize {
		return nil, ErrSizeExceedsMax
	}

	c, err := lru.New[K, V](cfg.Size)
	if err != nil {
		return nil, err
	}
	return &Cache[K, V]{lru: c}, nil
}

// Get 获取缓存值并更新访问顺序。
func (c *Cache[K, V]) Get(key K) (V, bool) {
	return c.lru.Get(key)
}

// Set 设置缓存值，返回是否触发了淘汰。
func (c *Cache[K, V]) Set(key K, value V) bool {
	return c.lru.Add(key, value)
}

// Delete 删除条目，返回 key 是否存在。
func (c *Cache[K, V]) Delete(key K) bool {
	return c.lru.Remove(key)
}

// Len 返回当前条目数。
func (c *Cache[K, V]) Len() int {
	return c.lru.Len()
}

// Purge 清空所有条目。
func (c *Cache[K, V]) Purge() {
	c.lru.Purge()
}
