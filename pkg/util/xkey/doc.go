// Package xkey 从调用参数派生稳定的缓存 key。
//
// 位置参数按顺序参与 key 计算，命名参数（[Named]）按 key 排序后参与计算，
// 因此命名参数的书写顺序不影响结果。
//
// # Key 格式
//
//	Derive(1, "a", xkey.Named{"b": 2, "a": 1})  // "(1, a) {a=1, b=2}"
//
// 参数值使用 fmt 的 %v 文本表示（实现 fmt.Stringer 的类型使用其 String 方法）。
//
// # 已知限制
//
// 文本表示相同的不同值会映射到同一个 key，例如 1 与 "1"。
// 这是有意保留的宽松相等语义，调用方可能依赖它；需要严格区分类型时，
// 请在调用方对参数做显式包装。
//
// 启用 [WithHashed] 后 key 变为文本表示的 xxhash64 十六进制串，
// 别名语义不变（哈希的输入是同一段文本）。
package xkey
