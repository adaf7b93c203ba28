// Package xfile 提供通用文件系统操作工具。
//
// 本包只收录存储层实际需要的少量函数：
//
//   - EnsureDir / EnsureDirWithPerm：确保文件的父目录存在
//   - EnsureDirPath：确保目录本身存在
//   - WriteFileAtomic：先写临时文件、fsync、再 rename，失败时不留下目标文件
//
// # 原子写入
//
// WriteFileAtomic 的临时文件与目标文件位于同一目录（rename 必须在同一文件系统内），
// 文件名为 ".<base>.<uuid>.tmp"。写入、fsync 或 rename 任一步失败都会删除临时文件，
// 目标路径要么不存在，要么是完整内容。
//
// # 错误处理
//
// 预定义错误变量支持 [errors.Is] 判断：
//
//	err := xfile.EnsureDir("")
//	if errors.Is(err, xfile.ErrEmptyPath) {
//	    // 处理空路径
//	}
package xfile
