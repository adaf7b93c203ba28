// Package storage 提供数据存储相关的子包。
//
// 子包列表：
//   - xcas: 文件系统上的内容寻址存储，按内容摘要存取字节
//   - xmemo: 带 TTL 与容量上限的记忆化缓存，可把值落到 xcas
//
// 设计原则：
//   - 索引只在内存中，磁盘只保存内容
//   - 不启动后台 goroutine，淘汰与过期清理在调用方同步完成
package storage
