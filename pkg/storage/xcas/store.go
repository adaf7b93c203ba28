package xcas

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/omeyang/xmemo/pkg/observability/xlog"
	"github.com/omeyang/xmemo/pkg/util/xfile"
	"github.com/omeyang/xmemo/pkg/util/xlru"
)

// Entry 描述存储中的一个内容文件。
type Entry struct {
	Digest  string
	Size    int64 // 磁盘占用（启用压缩时为压缩后大小）
	ModTime time.Time
}

// Store 是文件系统上的内容寻址存储。
// 必须通过 [New] 创建，所有方法并发安全。
type Store struct {
	root   string
	opts   options
	logger xlog.Logger

	// mu 串行化 Delete 与 Get 的读缓存回填，避免删除后读缓存里残留旧内容。
	mu    sync.RWMutex
	cache *xlru.Cache[string, []byte]

	enc       *zstd.Encoder
	dec       *zstd.Decoder
	closeOnce sync.Once
}

// New 创建 Store，root 不存在时递归创建。
func New(root string, opts ...Option) (*Store, error) {
	if root == "" {
		return nil, ErrEmptyRoot
	}

	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.digester == nil {
		return nil, ErrNilDigester
	}

	if err := xfile.EnsureDirPath(root, o.dirPerm); err != nil {
		return nil, fmt.Errorf("xcas: create root %s: %w", root, err)
	}

	s := &Store{
		root:   root,
		opts:   o,
		logger: o.logger.With(xlog.Component("xcas")),
	}

	if o.readCache > 0 {
		cache, err := xlru.New[string, []byte](xlru.Config{Size: o.readCache})
		if err != nil {
			return nil, fmt.Errorf("xcas: create read cache: %w", err)
		}
		s.cache = cache
	}

	if o.compress {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("xcas: create zstd encoder: %w", err)
		}
		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
		if err != nil {
			_ = enc.Close()
			return nil, fmt.Errorf("xcas: create zstd decoder: %w", err)
		}
		s.enc, s.dec = enc, dec
	}

	return s, nil
}

// Root 返回存储根目录。
func (s *Store) Root() string { return s.root }

// Path 返回摘要对应的文件路径，不检查摘要合法性与文件是否存在。
func (s *Store) Path(digest string) string {
	if s.opts.fanout && len(digest) > 2 {
		return filepath.Join(s.root, digest[:2], digest)
	}
	return filepath.Join(s.root, digest)
}

// Put 保存 data 并返回其摘要。
//
// 相同摘要的文件已存在时不会重写。写入失败时不会在摘要路径上留下文件。
func (s *Store) Put(data []byte) (string, error) {
	digest := s.opts.digester(data)
	if !ValidDigest(digest) {
		return "", fmt.Errorf("%w: digester returned %q", ErrInvalidDigest, digest)
	}

	path := s.Path(digest)
	if _, err := os.Stat(path); err == nil {
		return digest, nil
	}

	payload := data
	if s.enc != nil {
		payload = s.enc.EncodeAll(data, nil)
	}

	// 根目录可能在运行期间被外部删除，每次写入前都确保父目录存在
	if err := xfile.EnsureDirWithPerm(path, s.opts.dirPerm); err != nil {
		return "", fmt.Errorf("xcas: prepare dir for %s: %w", digest, err)
	}
	if err := xfile.WriteFileAtomic(path, payload, s.opts.filePerm); err != nil {
		return "", fmt.Errorf("xcas: write %s: %w", digest, err)
	}

	s.logger.Debug(context.Background(), "payload stored",
		xlog.Digest(digest), xlog.Count(int64(len(data))))
	return digest, nil
}

// Get 按摘要读取内容。
//
// 文件不存在返回 (nil, false, nil)；启用压缩时无法解压的文件同样视为不存在。
// 读缓存命中时仍会确认文件存在，文件被外部删除后缓存副本随之作废。
// 其他 I/O 错误原样返回。返回的切片归调用方所有。
func (s *Store) Get(digest string) ([]byte, bool, error) {
	if !ValidDigest(digest) {
		return nil, false, ErrInvalidDigest
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	path := s.Path(digest)
	if s.cache != nil {
		if data, ok := s.cache.Get(digest); ok {
			_, err := os.Stat(path)
			if err == nil {
				return bytes.Clone(data), true, nil
			}
			s.cache.Delete(digest)
			if errors.Is(err, fs.ErrNotExist) {
				s.logger.Debug(context.Background(), "cached payload removed externally",
					xlog.Digest(digest))
				return nil, false, nil
			}
			return nil, false, fmt.Errorf("xcas: stat %s: %w", digest, err)
		}
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("xcas: read %s: %w", digest, err)
	}

	data := raw
	if s.dec != nil {
		data, err = s.dec.DecodeAll(raw, nil)
		if err != nil {
			s.logger.Warn(context.Background(), "corrupt payload treated as missing",
				xlog.Digest(digest), xlog.Err(err))
			return nil, false, nil
		}
	}

	if s.cache != nil {
		s.cache.Set(digest, bytes.Clone(data))
	}
	return data, true, nil
}

// Has 报告摘要对应的文件是否存在。
func (s *Store) Has(digest string) bool {
	if !ValidDigest(digest) {
		return false
	}
	_, err := os.Stat(s.Path(digest))
	return err == nil
}

// Delete 删除摘要对应的文件，文件不存在时返回 nil。
func (s *Store) Delete(digest string) error {
	if !ValidDigest(digest) {
		return ErrInvalidDigest
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cache != nil {
		s.cache.Delete(digest)
	}
	if err := xfile.RemoveIfExists(s.Path(digest)); err != nil {
		return fmt.Errorf("xcas: delete %s: %w", digest, err)
	}
	s.logger.Debug(context.Background(), "payload deleted", xlog.Digest(digest))
	return nil
}

// List 返回存储中所有内容文件，按摘要排序。
// 临时文件与名称不是合法摘要的文件会被跳过。
func (s *Store) List() ([]Entry, error) {
	var entries []Entry
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if !ValidDigest(name) || s.Path(name) != path {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		entries = append(entries, Entry{Digest: name, Size: info.Size(), ModTime: info.ModTime()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("xcas: list %s: %w", s.root, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Digest < entries[j].Digest })
	return entries, nil
}

// Close 释放压缩器与读缓存。幂等；Close 后不应再使用 Store。
func (s *Store) Close() error {
	var err error
	s.closeOnce.Do(func() {
		if s.cache != nil {
			s.cache.Purge()
		}
		if s.dec != nil {
			s.dec.Close()
		}
		if s.enc != nil {
			err = s.enc.Close()
		}
	})
	return err
}
