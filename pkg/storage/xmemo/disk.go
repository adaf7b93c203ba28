package xmemo

import (
	"github.com/omeyang/xmemo/pkg/storage/xcas"
)

//go:generate mockgen -source=disk.go -destination=mock_blobstore_test.go -package=xmemo

// BlobStore 是按摘要存取字节内容的存储，*xcas.Store 实现了该接口。
type BlobStore interface {
	// Put 保存 data 并返回其摘要，相同内容返回相同摘要。
	Put(data []byte) (string, error)
	// Get 按摘要读取内容，内容不存在时返回 ok=false。
	Get(digest string) ([]byte, bool, error)
	// Delete 删除摘要对应的内容，内容不存在时返回 nil。
	Delete(digest string) error
}

var _ BlobStore = (*xcas.Store)(nil)

// DiskHooks 把值写入 BlobStore，索引中只保存摘要。
type DiskHooks struct {
	Store BlobStore
}

// Fake 保存 value 并返回摘要。
func (h DiskHooks) Fake(value []byte) (string, error) {
	return h.Store.Put(value)
}

// Real 读取摘要对应的内容，内容已被删除时返回 ok=false。
func (h DiskHooks) Real(digest string) ([]byte, bool, error) {
	return h.Store.Get(digest)
}

// Clean 删除摘要对应的内容。
func (h DiskHooks) Clean(digest string) error {
	return h.Store.Delete(digest)
}

// DiskCache 是值保存在 BlobStore 中的缓存。
//
// 索引只保存摘要，内存占用与值大小无关。条目被淘汰或过期移除时，
// 若没有其他条目引用同一摘要，对应内容会被删除。
type DiskCache struct {
	engine *Cache[[]byte, string]
}

// NewDisk 创建以 store 为值存储的缓存。
//
// 默认启用 [WithReclaimReplaced]，可通过传入 WithReclaimReplaced(false) 关闭。
func NewDisk(cfg Config, store BlobStore, opts ...Option) (*DiskCache, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	opts = append([]Option{WithReclaimReplaced(true)}, opts...)
	engine, err := New[[]byte, string](cfg, DiskHooks{Store: store}, opts...)
	if err != nil {
		return nil, err
	}
	return &DiskCache{engine: engine}, nil
}

// Save 以 args 为 key 保存 value。
// 非 []byte 的值按 xcas.EnsureBytes 规则转换为字节。
// 写入失败返回 ErrFakeValue；删除被淘汰或被替换的内容失败返回 ErrCleanValue。
func (d *DiskCache) Save(value any, args ...any) error {
	_, _, err := d.engine.Save(xcas.EnsureBytes(value), args...)
	return err
}

// Get 返回 args 对应的内容。
// 条目不存在、已过期或内容文件已被删除时返回 ok=false。
func (d *DiskCache) Get(args ...any) ([]byte, bool, error) {
	return d.engine.Get(args...)
}

// Caching 返回 fn 的记忆化版本，结果按 xcas.EnsureBytes 规则转换为字节。
// 首次调用与命中缓存时返回相同的字节内容。
func (d *DiskCache) Caching(fn func(args ...any) (any, error)) Func[[]byte] {
	return d.engine.Caching(func(args ...any) ([]byte, error) {
		v, err := fn(args...)
		if err != nil {
			return nil, err
		}
		return xcas.EnsureBytes(v), nil
	})
}

// Engine 返回底层缓存，用于 Len、Dump、Sweep、Delete、Clear、Stats 等操作。
func (d *DiskCache) Engine() *Cache[[]byte, string] {
	return d.engine
}
