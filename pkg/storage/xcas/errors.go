package xcas

import "errors"

var (
	// ErrEmptyRoot 表示存储根目录为空。
	ErrEmptyRoot = errors.New("xcas: empty root directory")

	// ErrInvalidDigest 表示摘要不是合法的小写十六进制串。
	// 校验摘要同时保证拼接出的路径不会逃逸出根目录。
	ErrInvalidDigest = errors.New("xcas: invalid digest")

	// ErrNilDigester 表示传入的摘要函数为 nil。
	ErrNilDigester = errors.New("xcas: nil digester")
)
