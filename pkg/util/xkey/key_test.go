package xkey

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type point struct{ X, Y int }

func (p point) String() string { return "P" }

func TestDerive(t *testing.T) {
	tests := []struct {
		name string
		args []any
		want string
	}{
		{name: "无参数", args: nil, want: "() {}"},
		{name: "位置参数", args: []any{1, "a", true}, want: "(1, a, true) {}"},
		{name: "命名参数排序", args: []any{Named{"b": 2, "a": 1}}, want: "() {a=1, b=2}"},
		{name: "混合参数", args: []any{1, Named{"a": 1}}, want: "(1) {a=1}"},
		{name: "命名参数位置无关", args: []any{Named{"a": 1}, 1}, want: "(1) {a=1}"},
		{name: "nil 参数", args: []any{nil}, want: "(<nil>) {}"},
		{name: "Stringer", args: []any{point{1, 2}}, want: "(P) {}"},
		{name: "int64", args: []any{int64(-3)}, want: "(-3) {}"},
		{name: "切片", args: []any{[]int{1, 2}}, want: "([1 2]) {}"},
		{name: "时长", args: []any{time.Second}, want: "(1s) {}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Derive(tt.args...))
		})
	}
}

func TestDerive_NamedMergeLaterWins(t *testing.T) {
	got := Derive(Named{"a": 1, "b": 1}, Named{"a": 2})
	assert.Equal(t, "() {a=2, b=1}", got)
}

func TestDerive_OrderSensitivePositional(t *testing.T) {
	assert.NotEqual(t, Derive(1, 2), Derive(2, 1))
}

func TestDerive_TextualAliasing(t *testing.T) {
	// 文本表示相同的值映射到同一个 key
	assert.Equal(t, Derive(1), Derive("1"))
	assert.Equal(t, Derive(Named{"a": 1}), Derive(Named{"a": "1"}))
}

func TestDerive_MapArgumentDeterministic(t *testing.T) {
	m := map[string]int{"z": 1, "a": 2, "m": 3}
	first := Derive(m)
	for range 20 {
		assert.Equal(t, first, Derive(m))
	}
}

func TestCodec_Key(t *testing.T) {
	t.Run("默认使用文本", func(t *testing.T) {
		var c Codec
		assert.Equal(t, "(1) {}", c.Key(1))
		assert.Equal(t, New().Key(1), c.Key(1))
	})

	t.Run("哈希模式", func(t *testing.T) {
		c := New(WithHashed())
		k1 := c.Key(1, Named{"a": "x"})
		k2 := c.Key(1, Named{"a": "x"})
		assert.Equal(t, k1, k2)
		assert.NotEqual(t, k1, c.Key(2, Named{"a": "x"}))
		assert.NotContains(t, k1, "(")
		assert.LessOrEqual(t, len(k1), 16)
	})

	t.Run("哈希模式保留别名语义", func(t *testing.T) {
		c := New(WithHashed())
		assert.Equal(t, c.Key(1), c.Key("1"))
	})

	t.Run("nil option 被忽略", func(t *testing.T) {
		c := New(nil)
		assert.Equal(t, "() {}", c.Key())
	})
}
