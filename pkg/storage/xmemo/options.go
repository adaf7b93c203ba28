package xmemo

import (
	"time"

	"github.com/omeyang/xmemo/pkg/observability/xlog"
	"github.com/omeyang/xmemo/pkg/observability/xmetrics"
	"github.com/omeyang/xmemo/pkg/util/xkey"
)

// Option 定义缓存配置函数类型。
type Option func(*options)

type options struct {
	clock           func() time.Time
	logger          xlog.Logger
	observer        xmetrics.Observer
	codec           xkey.Codec
	reclaimReplaced bool
}

func defaultOptions() options {
	return options{
		clock:    time.Now,
		logger:   xlog.Discard(),
		observer: xmetrics.NoopObserver{},
		codec:    xkey.New(),
	}
}

// WithClock 设置时钟，主要用于测试。nil 忽略。
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.clock = now
		}
	}
}

// WithLogger 设置日志记录器。nil 忽略。
func WithLogger(l xlog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver 设置观测器，Caching 未命中时的计算会被包在一个观测跨度中。
// nil 忽略。
func WithObserver(obs xmetrics.Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// WithKeyCodec 设置参数到 key 的编码方式，默认 xkey.New()。
// 零值 xkey.Codec 可直接使用，与 xkey.New() 等价。
func WithKeyCodec(codec xkey.Codec) Option {
	return func(o *options) {
		o.codec = codec
	}
}

// WithReclaimReplaced 让 Save 在覆盖已有条目时回收被替换的旧值
// （旧值不再被任何条目引用时才调用 Clean）。
//
// Save 仍然返回旧值，但其外部资源此时可能已被释放。
// NewDisk 默认启用该选项，避免覆盖写入留下无人引用的文件。
func WithReclaimReplaced(enable bool) Option {
	return func(o *options) {
		o.reclaimReplaced = enable
	}
}
