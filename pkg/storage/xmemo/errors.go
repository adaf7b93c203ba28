package xmemo

import "errors"

var (
	// ErrInvalidMaxSize 表示 MaxSize 不是正数。
	ErrInvalidMaxSize = errors.New("xmemo: max size must be positive")

	// ErrInvalidTTL 表示 TTL 不是正数。
	ErrInvalidTTL = errors.New("xmemo: ttl must be positive")

	// ErrNilHooks 表示传入的 Hooks 为 nil。
	ErrNilHooks = errors.New("xmemo: nil hooks")

	// ErrNilStore 表示传入的 BlobStore 为 nil。
	ErrNilStore = errors.New("xmemo: nil blob store")

	// ErrFakeValue 表示 Fake 钩子转换值失败，此时索引不会被修改。
	ErrFakeValue = errors.New("xmemo: store value failed")

	// ErrRealValue 表示 Real 钩子读取值失败。
	ErrRealValue = errors.New("xmemo: load value failed")

	// ErrCleanValue 表示 Clean 钩子释放值失败。
	ErrCleanValue = errors.New("xmemo: clean value failed")
)
