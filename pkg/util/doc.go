// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xfile: 文件操作工具，目录创建、原子写入、幂等删除
//   - xkey: 把位置参数与命名参数编码为稳定的缓存 key
//   - xlru: 泛型 LRU 缓存，基于 hashicorp/golang-lru
//
// 设计原则：
//   - 无状态或并发安全
//   - 安全处理路径
package util
