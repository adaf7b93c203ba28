package xmemo

import (
	"reflect"
	"slices"
	"time"
)

// =============================================================================
// 纯函数：在快照上计算淘汰结果，不触碰索引
// =============================================================================

// slot 是索引快照中的一项。
type slot[S any] struct {
	key   string
	entry *entry[S]
}

// expired 报告最后访问于 touchedAt 的条目在 now 时是否已过期。
// 恰好经过 ttl 仍视为有效。
func expired(touchedAt, now time.Time, ttl time.Duration) bool {
	return now.Sub(touchedAt) > ttl
}

// partition 把快照划分为过期、超出容量与存活三部分。
//
// 过期条目先被剔除；其余按最后访问时间升序稳定排序，保留最后 maxSize 个。
// 返回的切片共享底层的 entry 指针，但不修改快照本身的顺序。
func partition[S any](snap []slot[S], now time.Time, ttl time.Duration, maxSize int) (stale, evicted, kept []slot[S]) {
	fresh := make([]slot[S], 0, len(snap))
	for _, s := range snap {
		if expired(s.entry.touchedAt, now, ttl) {
			stale = append(stale, s)
			continue
		}
		fresh = append(fresh, s)
	}

	slices.SortStableFunc(fresh, func(a, b slot[S]) int {
		return a.entry.touchedAt.Compare(b.entry.touchedAt)
	})

	cut := max(len(fresh)-maxSize, 0)
	return stale, fresh[:cut], fresh[cut:]
}

// =============================================================================
// 值引用判断
// =============================================================================

// refSet 记录仍被索引引用的值。
// 不可比较的值（如切片）无法判断相等，视为未被引用。
type refSet map[any]struct{}

func (r refSet) add(v any) {
	if hashable(v) {
		r[v] = struct{}{}
	}
}

func (r refSet) has(v any) bool {
	if !hashable(v) {
		return false
	}
	_, ok := r[v]
	return ok
}

func hashable(v any) bool {
	if v == nil {
		return true
	}
	return reflect.ValueOf(v).Comparable()
}
