// Package xconf 提供基于 koanf 的配置加载。
//
// 支持 YAML 与 JSON 两种格式，可从文件（按扩展名识别格式）或字节数据加载。
// 反序列化使用 koanf 默认的 mapstructure 解码器，字符串形式的时长（如 "5s"）
// 会自动转换为 time.Duration，实现 encoding.TextUnmarshaler 的类型也会被识别。
//
//	cfg, err := xconf.New("/etc/xmemo/config.yaml")
//	var memo struct {
//		MaxSize int           `koanf:"max_size"`
//		TTL     time.Duration `koanf:"ttl"`
//	}
//	err = cfg.Unmarshal("memo", &memo)
//
// 未在配置中出现的字段保持目标结构体中的原值，因此可以先填默认值再 Unmarshal。
package xconf
