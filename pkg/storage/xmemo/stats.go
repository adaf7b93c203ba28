package xmemo

import "sync/atomic"

// Stats 缓存统计信息快照。
type Stats struct {
	// Hits Get 命中次数。
	Hits uint64
	// Misses Get 未命中次数（含过期与外部资源缺失）。
	Misses uint64
	// Saves 成功写入次数。
	Saves uint64
	// Evictions 因容量被淘汰的条目数。
	Evictions uint64
	// Expirations 因过期被移除的条目数。
	Expirations uint64
	// Cleans 成功调用 Clean 的次数。
	Cleans uint64
	// CleanErrors Clean 失败次数。
	CleanErrors uint64
}

// HitRatio 返回命中率 (0.0 - 1.0)，没有任何 Get 时返回 0。
func (s Stats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

type counters struct {
	hits        atomic.Uint64
	misses      atomic.Uint64
	saves       atomic.Uint64
	evictions   atomic.Uint64
	expirations atomic.Uint64
	cleans      atomic.Uint64
	cleanErrors atomic.Uint64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
		Saves:       c.saves.Load(),
		Evictions:   c.evictions.Load(),
		Expirations: c.expirations.Load(),
		Cleans:      c.cleans.Load(),
		CleanErrors: c.cleanErrors.Load(),
	}
}
