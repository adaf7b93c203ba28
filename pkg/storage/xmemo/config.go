package xmemo

import (
	"fmt"
	"time"
)

const (
	// DefaultMaxSize 默认条目数上限。
	DefaultMaxSize = 100
	// DefaultTTL 默认过期时间。
	DefaultTTL = 24 * time.Hour
)

// Config 缓存配置。
//
// 字段带有 koanf 标签，可直接由 xconf 反序列化：
//
//	memo:
//	  max_size: 100
//	  ttl: 24h
type Config struct {
	// MaxSize 条目数上限，必须大于 0。
	MaxSize int `koanf:"max_size" json:"max_size"`

	// TTL 条目自最后一次访问起的存活时间，必须大于 0。
	TTL time.Duration `koanf:"ttl" json:"ttl"`
}

// DefaultConfig 返回默认配置（100 个条目，24 小时）。
func DefaultConfig() Config {
	return Config{MaxSize: DefaultMaxSize, TTL: DefaultTTL}
}

// Validate 校验配置。
func (c Config) Validate() error {
	if c.MaxSize <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxSize, c.MaxSize)
	}
	if c.TTL <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidTTL, c.TTL)
	}
	return nil
}
