// Package xcas 提供基于文件系统的内容寻址存储（content-addressed storage）。
//
// 每段字节内容以其摘要（默认 SHA-256 小写十六进制）命名，保存为 root/<digest>，
// 启用 [WithFanout] 后保存为 root/<digest[:2]>/<digest>。相同内容只保存一份，
// 重复 Put 是幂等的。
//
// # 核心操作
//
//   - Put：计算摘要并原子写入（临时文件 + rename），文件已存在时直接返回摘要
//   - Get：按摘要读取，文件不存在返回 (nil, false, nil)
//   - Delete：按摘要删除，文件不存在不报错（幂等）
//
// # 可选能力
//
//   - WithCompression：使用 zstd 压缩落盘内容，摘要仍基于原始内容计算；
//     无法解压的文件按“不存在”处理
//   - WithReadCache：在磁盘前加一层固定容量的 LRU 热点读缓存，Delete 时同步失效，
//     命中时仍以文件是否存在为准
//
// # 一致性说明
//
// Store 本身不维护索引，文件是否存在是唯一事实来源。
// 调用方（例如 xmemo.DiskCache）负责决定何时删除；文件存在并不代表
// 它仍被某个缓存条目引用。
//
// Store 不启动后台 goroutine，所有 I/O 都在调用方 goroutine 中同步完成。
package xcas
