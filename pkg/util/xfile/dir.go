package xfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDirPerm 默认目录权限（所有者 rwx，组 r-x，其他无权限）。
const DefaultDirPerm = 0750

// DefaultFilePerm 默认文件权限。
const DefaultFilePerm = 0640

// EnsureDir 确保文件的父目录存在，使用默认权限 0750。
// 如果目录已存在，不会报错。
func EnsureDir(filename string) error {
	return EnsureDirWithPerm(filename, DefaultDirPerm)
}

// EnsureDirWithPerm 确保文件的父目录存在，使用指定权限。
//
// 参数：
//   - filename: 文件路径（不是目录路径），不能为空，不能包含空字节
//   - perm: 目录权限，必须包含所有者执行位（0100），否则目录无法遍历
//
// 如果目录已存在，不会修改其权限。
func EnsureDirWithPerm(filename string, perm os.FileMode) error {
	if err := checkPath(filename); err != nil {
		return err
	}
	dir := filepath.Dir(filename)
	if dir == "" || dir == "." {
		return nil
	}
	return mkdirAll(dir, perm)
}

// EnsureDirPath 确保目录 dir 本身存在（递归创建）。
func EnsureDirPath(dir string, perm os.FileMode) error {
	if err := checkPath(dir); err != nil {
		return err
	}
	return mkdirAll(dir, perm)
}

func mkdirAll(dir string, perm os.FileMode) error {
	// 目录必须包含所有者执行位（0100），否则无法进入和遍历
	if perm&0100 == 0 {
		return fmt.Errorf("directory permission %04o missing owner execute bit: %w", perm, ErrInvalidPerm)
	}
	return os.MkdirAll(dir, perm)
}

func checkPath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if strings.ContainsRune(path, 0) {
		return ErrNullByte
	}
	return nil
}
