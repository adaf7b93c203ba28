package xfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// EnsureDir 单元测试
// =============================================================================

func TestEnsureDir(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name     string
		filename string
		wantErr  error
	}{
		{name: "创建单层目录", filename: filepath.Join(tmpDir, "newdir", "app.log")},
		{name: "创建多层目录", filename: filepath.Join(tmpDir, "a", "b", "c", "app.log")},
		{name: "目录已存在", filename: filepath.Join(tmpDir, "app.log")},
		{name: "当前目录文件", filename: "app.log"},
		{name: "空路径", filename: "", wantErr: ErrEmptyPath},
		{name: "空字节", filename: "a\x00b/app.log", wantErr: ErrNullByte},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := EnsureDir(tt.filename)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("EnsureDir() 错误 = %v, 期望 %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("EnsureDir() 意外错误: %v", err)
			}
			info, err := os.Stat(filepath.Dir(tt.filename))
			if err != nil {
				t.Fatalf("父目录不存在: %v", err)
			}
			if !info.IsDir() {
				t.Errorf("%s 不是目录", filepath.Dir(tt.filename))
			}
		})
	}
}

func TestEnsureDirWithPerm_MissingExecuteBit(t *testing.T) {
	err := EnsureDirWithPerm(filepath.Join(t.TempDir(), "x", "f"), 0600)
	if !errors.Is(err, ErrInvalidPerm) {
		t.Errorf("期望 ErrInvalidPerm，实际 %v", err)
	}
}

func TestEnsureDirPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	if err := EnsureDirPath(dir, DefaultDirPerm); err != nil {
		t.Fatalf("EnsureDirPath() 意外错误: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("目录未创建: %v", err)
	}
	// 幂等
	if err := EnsureDirPath(dir, DefaultDirPerm); err != nil {
		t.Fatalf("重复调用 EnsureDirPath() 失败: %v", err)
	}
}
