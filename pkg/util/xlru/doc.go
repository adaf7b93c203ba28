// Package xlru 提供固定容量的泛型 LRU 缓存。
//
// xlru 基于 github.com/hashicorp/golang-lru/v2 封装，不带 TTL，
// 也不启动任何后台 goroutine，适合作为存储层前面的热点读缓存。
//
// # 核心特性
//
//   - 泛型支持：任意 comparable 的键类型和任意值类型
//   - LRU 淘汰：缓存满时淘汰最久未访问的条目
//   - 并发安全：底层库使用 sync.Mutex 保护
//
// # 注意事项
//
//   - Size 是条目数量，不是内存大小
//   - 存入的切片等引用类型不会被复制，调用方不应修改已存入的值
package xlru
