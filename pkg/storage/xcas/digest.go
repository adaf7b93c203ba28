package xcas

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Digester 计算字节内容的摘要，返回值必须是非空小写十六进制串。
type Digester func(data []byte) string

// SHA256 返回 data 的 SHA-256 小写十六进制摘要（64 个字符）。
func SHA256(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// EnsureBytes 将任意值转换为字节内容。
//
//   - []byte 原样返回
//   - string 按 UTF-8 字节返回
//   - 其他值使用 fmt 的 %v 文本表示
func EnsureBytes(v any) []byte {
	switch x := v.(type) {
	case []byte:
		return x
	case string:
		return []byte(x)
	default:
		return fmt.Appendf(nil, "%v", x)
	}
}

// ValidDigest 报告 d 是否为合法摘要（非空小写十六进制）。
func ValidDigest(d string) bool {
	if d == "" {
		return false
	}
	for i := 0; i < len(d); i++ {
		c := d[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
