package xmemo

// Hooks 定义值在缓存边界上的转换策略。
//
// V 是调用方看到的逻辑值，S 是索引中实际保存的值。
type Hooks[V, S any] interface {
	// Fake 在写入索引前转换值。返回错误时 Save 不会插入条目。
	Fake(value V) (S, error)

	// Real 把索引中保存的值还原为逻辑值。
	// 外部资源已不存在时返回 ok=false，调用方将其视为未命中。
	Real(stored S) (value V, ok bool, err error)

	// Clean 在条目被回收且没有其他条目引用同一值时释放外部资源。
	// 必须是幂等的：资源已不存在时返回 nil。
	Clean(stored S) error
}

// Identity 原样保存值，Clean 为空操作。
type Identity[V any] struct{}

// Fake 原样返回 value。
func (Identity[V]) Fake(value V) (V, error) { return value, nil }

// Real 原样返回 stored。
func (Identity[V]) Real(stored V) (V, bool, error) { return stored, true, nil }

// Clean 空操作。
func (Identity[V]) Clean(V) error { return nil }
