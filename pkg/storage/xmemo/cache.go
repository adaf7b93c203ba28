package xmemo

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/omeyang/xmemo/pkg/observability/xlog"
	"github.com/omeyang/xmemo/pkg/observability/xmetrics"
)

// entry 是索引中的条目。条目创建后不再修改，刷新时整体替换，
// 淘汰时据此判断快照中的条目是否仍是索引中的那一个。
type entry[S any] struct {
	touchedAt time.Time
	value     S
}

// EntryInfo 是 Dump 返回的条目诊断信息。
type EntryInfo[S any] struct {
	Key       string
	TouchedAt time.Time
	Value     S
	Expired   bool
}

// Func 是可被 Caching 包装的函数。
type Func[V any] func(args ...any) (V, error)

// Cache 是带 TTL 与容量上限的记忆化缓存。
//
// V 为逻辑值类型，S 为索引中保存的值类型，二者之间由 [Hooks] 转换。
// 必须通过 [New] 或 [NewMemory] 创建。
type Cache[V, S any] struct {
	cfg    Config
	hooks  Hooks[V, S]
	opts   options
	logger xlog.Logger

	// mu 只保护单次索引读写，不跨越钩子调用。
	mu    sync.RWMutex
	index map[string]*entry[S]

	// gcMu 串行化淘汰扫描。
	gcMu sync.Mutex

	stats counters
}

// New 创建使用 hooks 存取值的缓存。
func New[V, S any](cfg Config, hooks Hooks[V, S], opts ...Option) (*Cache[V, S], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if hooks == nil {
		return nil, ErrNilHooks
	}

	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return &Cache[V, S]{
		cfg:    cfg,
		hooks:  hooks,
		opts:   o,
		logger: o.logger.With(xlog.Component("xmemo")),
		index:  make(map[string]*entry[S], cfg.MaxSize+1),
	}, nil
}

// NewMemory 创建原样保存值的内存缓存。
func NewMemory[V any](cfg Config, opts ...Option) (*Cache[V, V], error) {
	return New[V, V](cfg, Identity[V]{}, opts...)
}

// Config 返回缓存配置。
func (c *Cache[V, S]) Config() Config { return c.cfg }

// =============================================================================
// 核心操作
// =============================================================================

// Save 以 args 为 key 保存 value。
//
// key 已存在时刷新访问时间并替换值，返回旧值与 replaced=true；
// 否则插入新条目，插入后条目数超过 MaxSize 时同步执行一次淘汰。
// Fake 钩子失败时返回 ErrFakeValue，索引不变。
// 回收被替换或被淘汰的值时 Clean 失败返回 ErrCleanValue，此时新值已写入索引。
func (c *Cache[V, S]) Save(value V, args ...any) (prev S, replaced bool, err error) {
	stored, err := c.hooks.Fake(value)
	if err != nil {
		return prev, false, fmt.Errorf("%w: %w", ErrFakeValue, err)
	}
	key := c.opts.codec.Key(args...)
	now := c.opts.clock()

	c.mu.Lock()
	old, replaced := c.index[key]
	c.index[key] = &entry[S]{touchedAt: now, value: stored}
	size := len(c.index)
	c.mu.Unlock()

	c.stats.saves.Add(1)

	if replaced {
		if c.opts.reclaimReplaced {
			err = c.reclaim(context.Background(), old.value)
		}
		return old.value, true, err
	}
	if size > c.cfg.MaxSize {
		err = c.gc()
	}
	return prev, false, err
}

// Get 返回 args 对应的值。
//
// 条目存在且未过期时刷新其访问时间并返回 Real 还原后的值；
// 过期条目被移出索引并回收。未命中、过期以及外部资源缺失都返回 ok=false；
// Real 的读取错误以 ErrRealValue 返回，回收过期值失败以 ErrCleanValue 返回。
func (c *Cache[V, S]) Get(args ...any) (V, bool, error) {
	var zero V
	key := c.opts.codec.Key(args...)

	stale, err := c.isExpired(key, true)
	if stale || err != nil {
		c.stats.misses.Add(1)
		return zero, false, err
	}
	stored, ok := c.touch(key)
	if !ok {
		c.stats.misses.Add(1)
		return zero, false, nil
	}

	value, ok, err := c.hooks.Real(stored)
	if err != nil {
		return zero, false, fmt.Errorf("%w: %w", ErrRealValue, err)
	}
	if !ok {
		c.stats.misses.Add(1)
		c.logger.Debug(context.Background(), "cached value unavailable", xlog.Key(key))
		return zero, false, nil
	}
	c.stats.hits.Add(1)
	return value, true, nil
}

// Caching 返回 fn 的记忆化版本。
//
// 命中时直接返回缓存值，不调用 fn；未命中时调用 fn，成功后 Save 并返回新值。
// fn 的错误原样返回且不缓存。同一参数的并发未命中可能重复调用 fn。
func (c *Cache[V, S]) Caching(fn Func[V]) Func[V] {
	return func(args ...any) (V, error) {
		return c.cached(args, func() (V, error) { return fn(args...) })
	}
}

// Memoize 返回单参数函数 fn 的记忆化版本。
func Memoize[A, V, S any](c *Cache[V, S], fn func(A) (V, error)) func(A) (V, error) {
	return func(arg A) (V, error) {
		return c.cached([]any{arg}, func() (V, error) { return fn(arg) })
	}
}

func (c *Cache[V, S]) cached(args []any, compute func() (V, error)) (V, error) {
	var zero V
	value, ok, err := c.Get(args...)
	if err != nil {
		return zero, err
	}
	if ok {
		return value, nil
	}

	_, span := xmetrics.Start(context.Background(), c.opts.observer, xmetrics.SpanOptions{
		Component: "xmemo",
		Operation: "compute",
		Kind:      xmetrics.KindInternal,
	})
	value, err = compute()
	if err == nil {
		_, _, err = c.Save(value, args...)
	}
	span.End(xmetrics.Result{Err: err})
	if err != nil {
		return zero, err
	}
	return value, nil
}

// =============================================================================
// 过期与淘汰
// =============================================================================

// isExpired 报告 key 对应的条目是否已过期，不存在的 key 视为未过期。
// pop 为 true 时把过期条目移出索引并回收其值，返回回收错误。
func (c *Cache[V, S]) isExpired(key string, pop bool) (bool, error) {
	now := c.opts.clock()

	c.mu.RLock()
	e, ok := c.index[key]
	c.mu.RUnlock()
	if !ok || !expired(e.touchedAt, now, c.cfg.TTL) {
		return false, nil
	}

	if !pop {
		return true, nil
	}
	removed := c.remove([]slot[S]{{key: key, entry: e}})
	if len(removed) == 0 {
		return true, nil
	}
	c.stats.expirations.Add(1)
	return true, c.reclaim(context.Background(), removed...)
}

// touch 刷新 key 的访问时间并返回保存的值。
func (c *Cache[V, S]) touch(key string) (S, bool) {
	now := c.opts.clock()

	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.index[key]
	if !ok {
		var zero S
		return zero, false
	}
	c.index[key] = &entry[S]{touchedAt: now, value: e.value}
	return e.value, true
}

// gc 淘汰过期条目以及超出容量的最久未访问条目，并回收不再被引用的值。
// 条目总会被移出索引，Clean 的错误合并后返回。
func (c *Cache[V, S]) gc() error {
	c.gcMu.Lock()
	defer c.gcMu.Unlock()

	snap := c.snapshot()
	if len(snap) <= c.cfg.MaxSize {
		return nil
	}

	stale, evicted, _ := partition(snap, c.opts.clock(), c.cfg.TTL, c.cfg.MaxSize)
	expiredValues := c.remove(stale)
	evictedValues := c.remove(evicted)
	c.stats.expirations.Add(uint64(len(expiredValues)))
	c.stats.evictions.Add(uint64(len(evictedValues)))

	ctx := context.Background()
	c.logger.Debug(ctx, "gc finished",
		xlog.Count(int64(len(snap))),
		slog.Int("expired", len(expiredValues)),
		slog.Int("evicted", len(evictedValues)))

	return c.reclaim(ctx, slices.Concat(expiredValues, evictedValues)...)
}

// Sweep 移除所有过期条目并回收其值，返回移除的条目数。
// Clean 失败时返回 ErrCleanValue，条目仍已被移除。
func (c *Cache[V, S]) Sweep() (int, error) {
	c.gcMu.Lock()
	defer c.gcMu.Unlock()

	stale, _, _ := partition(c.snapshot(), c.opts.clock(), c.cfg.TTL, c.cfg.MaxSize)
	removed := c.remove(stale)
	c.stats.expirations.Add(uint64(len(removed)))
	return len(removed), c.reclaim(context.Background(), removed...)
}

func (c *Cache[V, S]) snapshot() []slot[S] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snap := make([]slot[S], 0, len(c.index))
	for k, e := range c.index {
		snap = append(snap, slot[S]{key: k, entry: e})
	}
	return snap
}

// remove 移除仍与快照一致的条目，返回被移除条目的值。
// 快照之后被刷新或重新写入的条目保持不动。
func (c *Cache[V, S]) remove(slots []slot[S]) []S {
	if len(slots) == 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	values := make([]S, 0, len(slots))
	for _, s := range slots {
		if c.index[s.key] == s.entry {
			delete(c.index, s.key)
			values = append(values, s.entry.value)
		}
	}
	return values
}

// reclaim 对不再被索引引用的值调用 Clean，相同的值只清理一次。
// 错误会被记录与计数，并合并返回给需要的调用方。
func (c *Cache[V, S]) reclaim(ctx context.Context, values ...S) error {
	if len(values) == 0 {
		return nil
	}

	live := make(refSet)
	c.mu.RLock()
	for _, e := range c.index {
		live.add(e.value)
	}
	c.mu.RUnlock()

	done := make(refSet)
	var errs []error
	for _, v := range values {
		if live.has(v) || done.has(v) {
			continue
		}
		done.add(v)
		if err := c.hooks.Clean(v); err != nil {
			c.stats.cleanErrors.Add(1)
			c.logger.Warn(ctx, "clean value failed", xlog.Err(err))
			errs = append(errs, fmt.Errorf("%w: %w", ErrCleanValue, err))
			continue
		}
		c.stats.cleans.Add(1)
	}
	return errors.Join(errs...)
}

// =============================================================================
// 管理与诊断
// =============================================================================

// Delete 移除 args 对应的条目并回收其值。
// 返回条目是否存在；Clean 失败时返回 ErrCleanValue，此时条目已被移除。
func (c *Cache[V, S]) Delete(args ...any) (bool, error) {
	key := c.opts.codec.Key(args...)

	c.mu.Lock()
	e, ok := c.index[key]
	if ok {
		delete(c.index, key)
	}
	c.mu.Unlock()

	if !ok {
		return false, nil
	}
	return true, c.reclaim(context.Background(), e.value)
}

// Clear 清空索引并回收所有值。
func (c *Cache[V, S]) Clear() error {
	c.gcMu.Lock()
	defer c.gcMu.Unlock()

	c.mu.Lock()
	old := c.index
	c.index = make(map[string]*entry[S], c.cfg.MaxSize+1)
	c.mu.Unlock()

	values := make([]S, 0, len(old))
	for _, e := range old {
		values = append(values, e.value)
	}
	return c.reclaim(context.Background(), values...)
}

// Len 返回索引中的条目数，包括尚未被清理的过期条目。
func (c *Cache[V, S]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.index)
}

// Dump 返回索引内容，按最后访问时间升序排列，仅用于诊断。
// 不刷新访问时间，也不移除过期条目。
func (c *Cache[V, S]) Dump() []EntryInfo[S] {
	now := c.opts.clock()
	snap := c.snapshot()
	infos := make([]EntryInfo[S], 0, len(snap))
	for _, s := range snap {
		infos = append(infos, EntryInfo[S]{
			Key:       s.key,
			TouchedAt: s.entry.touchedAt,
			Value:     s.entry.value,
			Expired:   expired(s.entry.touchedAt, now, c.cfg.TTL),
		})
	}
	slices.SortStableFunc(infos, func(a, b EntryInfo[S]) int {
		if n := a.TouchedAt.Compare(b.TouchedAt); n != 0 {
			return n
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return infos
}

// Stats 返回统计信息快照。
func (c *Cache[V, S]) Stats() Stats {
	return c.stats.snapshot()
}
