package xfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// WriteFileAtomic 原子地写入文件。
//
// 数据先写入同目录下的临时文件并 fsync，再 rename 到 filename。
// 任一步骤失败都会删除临时文件并返回错误，filename 不会出现部分内容。
// 父目录必须已存在（可先调用 [EnsureDir]）。
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) (err error) {
	if err := checkPath(filename); err != nil {
		return err
	}

	dir, base := filepath.Split(filename)
	tmp := filepath.Join(dir, "."+base+"."+uuid.NewString()+".tmp")

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("xfile: create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	if _, err = f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("xfile: write temp file: %w", err)
	}
	if err = f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("xfile: sync temp file: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("xfile: close temp file: %w", err)
	}
	if err = os.Rename(tmp, filename); err != nil {
		return fmt.Errorf("xfile: rename temp file: %w", err)
	}
	return nil
}

// RemoveIfExists 删除文件，文件不存在时返回 nil。
func RemoveIfExists(filename string) error {
	if err := os.Remove(filename); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
