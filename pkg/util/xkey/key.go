package xkey

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Named 表示命名参数。
// 出现在参数列表任意位置的 Named 都被合并为命名参数，多个 Named 中
// 相同名字以靠后者为准；其余参数均视为位置参数。
type Named map[string]any

// Codec 将参数列表编码为缓存 key。
// 零值可用，等价于 [New]()。Codec 是无状态的，可并发使用。
type Codec struct {
	hashed bool
}

// Option 定义 Codec 配置函数类型。
type Option func(*Codec)

// WithHashed 使用文本表示的 xxhash64 作为 key。
// 适用于参数很大（如长文本、大切片）而又需要保持索引内存占用较小的场景。
func WithHashed() Option {
	return func(c *Codec) {
		c.hashed = true
	}
}

// New 创建 Codec。
func New(opts ...Option) Codec {
	var c Codec
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}

// Key 返回参数列表对应的 key。
func (c Codec) Key(args ...any) string {
	text := Derive(args...)
	if !c.hashed {
		return text
	}
	return strconv.FormatUint(xxhash.Sum64String(text), 16)
}

// Derive 返回参数列表的规范文本表示。
func Derive(args ...any) string {
	var named Named
	var b strings.Builder

	b.WriteByte('(')
	n := 0
	for _, arg := range args {
		if kw, ok := arg.(Named); ok {
			if named == nil {
				named = make(Named, len(kw))
			}
			for k, v := range kw {
				named[k] = v
			}
			continue
		}
		if n > 0 {
			b.WriteString(", ")
		}
		writeValue(&b, arg)
		n++
	}
	b.WriteString(") {")

	names := make([]string, 0, len(named))
	for k := range named {
		names = append(names, k)
	}
	sort.Strings(names)
	for i, k := range names {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteByte('=')
		writeValue(&b, named[k])
	}
	b.WriteByte('}')
	return b.String()
}

// writeValue 写入单个参数的文本表示。
// 常见类型走快速路径，其余交给 fmt。
func writeValue(b *strings.Builder, v any) {
	switch x := v.(type) {
	case nil:
		b.WriteString("<nil>")
	case string:
		b.WriteString(x)
	case int:
		b.WriteString(strconv.Itoa(x))
	case int64:
		b.WriteString(strconv.FormatInt(x, 10))
	case bool:
		b.WriteString(strconv.FormatBool(x))
	default:
		fmt.Fprintf(b, "%v", x)
	}
}
