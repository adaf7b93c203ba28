package xlog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/omeyang/xmemo/pkg/util/xfile"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Builder 日志配置构建器。
type Builder struct {
	output    io.Writer
	levelVar  *slog.LevelVar
	format    string
	addSource bool
	closer    io.Closer
	err       error
}

// New 创建配置构建器（默认 stderr、Info 级别、text 格式）。
func New() *Builder {
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelInfo)
	return &Builder{
		output:   os.Stderr,
		levelVar: levelVar,
		format:   "text",
	}
}

// SetOutput 设置日志输出目标。
func (b *Builder) SetOutput(w io.Writer) *Builder {
	if w != nil {
		b.output = w
	}
	return b
}

// SetLevel 设置日志级别。
func (b *Builder) SetLevel(level Level) *Builder {
	b.levelVar.Set(slog.Level(level))
	return b
}

// SetLevelString 通过字符串设置日志级别。
func (b *Builder) SetLevelString(s string) *Builder {
	level, err := ParseLevel(s)
	if err != nil {
		b.setErr(err)
		return b
	}
	return b.SetLevel(level)
}

// SetFormat 设置输出格式：text 或 json，空值视为 text。
func (b *Builder) SetFormat(format string) *Builder {
	normalized := strings.ToLower(strings.TrimSpace(format))
	switch normalized {
	case "":
		b.format = "text"
	case "text", "json":
		b.format = normalized
	default:
		b.setErr(fmt.Errorf("xlog: unknown format %q", format))
	}
	return b
}

// SetAddSource 是否在日志中添加源码位置。
func (b *Builder) SetAddSource(enable bool) *Builder {
	b.addSource = enable
	return b
}

// RotationOption 配置 lumberjack 轮转参数。
type RotationOption func(*lumberjack.Logger)

// RotationMaxSizeMB 设置单个日志文件最大大小（MB）。
func RotationMaxSizeMB(mb int) RotationOption {
	return func(l *lumberjack.Logger) { l.MaxSize = mb }
}

// RotationMaxBackups 设置保留的备份文件数量。
func RotationMaxBackups(n int) RotationOption {
	return func(l *lumberjack.Logger) { l.MaxBackups = n }
}

// RotationMaxAgeDays 设置保留备份的天数。
func RotationMaxAgeDays(days int) RotationOption {
	return func(l *lumberjack.Logger) { l.MaxAge = days }
}

// RotationCompress 设置是否 gzip 压缩备份。
func RotationCompress(compress bool) RotationOption {
	return func(l *lumberjack.Logger) { l.Compress = compress }
}

// SetRotation 输出到按大小轮转的日志文件。
// 默认 100MB/7 个备份/30 天/压缩备份，父目录不存在时自动创建。
func (b *Builder) SetRotation(filename string, opts ...RotationOption) *Builder {
	if err := xfile.EnsureDir(filename); err != nil {
		b.setErr(fmt.Errorf("xlog: prepare log dir: %w", err))
		return b
	}
	lj := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    100,
		MaxBackups: 7,
		MaxAge:     30,
		Compress:   true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(lj)
		}
	}
	if lj.MaxSize <= 0 {
		b.setErr(fmt.Errorf("xlog: rotation max size must be positive, got %d", lj.MaxSize))
		return b
	}
	b.output = lj
	b.closer = lj
	return b
}

func (b *Builder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Build 构建 Logger 实例。
//
// 返回值：
//   - LoggerWithLevel: 日志实例，支持动态级别控制
//   - func() error: 清理函数（关闭轮转文件），可重复调用
//   - error: 配置错误
func (b *Builder) Build() (LoggerWithLevel, func() error, error) {
	if b.err != nil {
		return nil, nil, b.err
	}

	opts := &slog.HandlerOptions{
		Level:     b.levelVar,
		AddSource: b.addSource,
	}

	var handler slog.Handler
	switch b.format {
	case "json":
		handler = slog.NewJSONHandler(b.output, opts)
	default:
		handler = slog.NewTextHandler(b.output, opts)
	}

	var once sync.Once
	closer := b.closer
	cleanup := func() error {
		var err error
		once.Do(func() {
			if closer != nil {
				err = closer.Close()
			}
		})
		return err
	}

	return &xlogger{handler: handler, levelVar: b.levelVar}, cleanup, nil
}
