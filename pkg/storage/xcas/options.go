package xcas

import (
	"os"

	"github.com/omeyang/xmemo/pkg/observability/xlog"
	"github.com/omeyang/xmemo/pkg/util/xfile"
)

// Option 定义 Store 配置函数类型。
type Option func(*options)

type options struct {
	digester  Digester
	fanout    bool
	compress  bool
	readCache int
	dirPerm   os.FileMode
	filePerm  os.FileMode
	logger    xlog.Logger
}

func defaultOptions() options {
	return options{
		digester: SHA256,
		dirPerm:  xfile.DefaultDirPerm,
		filePerm: xfile.DefaultFilePerm,
		logger:   xlog.Discard(),
	}
}

// WithDigester 设置摘要函数，默认 [SHA256]。
// 传入 nil 时 New 返回 ErrNilDigester。
func WithDigester(fn Digester) Option {
	return func(o *options) {
		o.digester = fn
	}
}

// WithFanout 启用两级目录布局 root/<digest[:2]>/<digest>，
// 避免单个目录下文件过多。
func WithFanout(enable bool) Option {
	return func(o *options) {
		o.fanout = enable
	}
}

// WithCompression 启用 zstd 压缩落盘内容。
// 同一个根目录应始终使用相同的压缩设置。
func WithCompression(enable bool) Option {
	return func(o *options) {
		o.compress = enable
	}
}

// WithReadCache 设置热点读缓存的条目数，<= 0 表示不启用。
func WithReadCache(entries int) Option {
	return func(o *options) {
		o.readCache = entries
	}
}

// WithDirPerm 设置目录权限，默认 0750。
func WithDirPerm(perm os.FileMode) Option {
	return func(o *options) {
		if perm != 0 {
			o.dirPerm = perm
		}
	}
}

// WithLogger 设置日志记录器，nil 忽略。
func WithLogger(l xlog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
