// Package assets resolves the fonts and images a design refers to by name.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ByLCY/stickerpress/fonts"
)

// ErrNotFound 表示资源在当前存储中不存在；Chain 会继续尝试下一个存储。
var ErrNotFound = errors.New("资源不存在")

// Store 按名称返回资源的原始字节。
type Store interface {
	Load(ctx context.Context, name string) ([]byte, error)
}

// DirStore 从本地目录读取资源。BaseDir 为空时只接受绝对路径。
type DirStore struct {
	BaseDir string
}

func (s DirStore) Load(_ context.Context, name string) ([]byte, error) {
	if name == "" || strings.HasPrefix(name, fonts.Prefix) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	path := name
	if !filepath.IsAbs(path) {
		if s.BaseDir == "" {
			return nil, fmt.Errorf("未指定资源目录时不允许直接使用相对路径：%s", name)
		}
		path = filepath.Join(s.BaseDir, path)
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("读取资源 %s 失败: %w", name, err)
	}
	return data, nil
}

// Builtin 提供随程序发布的字体（builtin:go-regular 等）。
type Builtin struct{}

func (Builtin) Load(_ context.Context, name string) ([]byte, error) {
	if !fonts.IsBuiltin(name) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return fonts.Load(name)
}

// Memory 是注入到内存中的资源，常用于测试或由调用方预先读取的文件。
type Memory map[string][]byte

func (m Memory) Load(_ context.Context, name string) ([]byte, error) {
	data, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return data, nil
}

// Chain 依次查询多个存储，返回第一个命中的结果；非 ErrNotFound 的错误立即返回。
type Chain []Store

func (c Chain) Load(ctx context.Context, name string) ([]byte, error) {
	for _, s := range c {
		if s == nil {
			continue
		}
		data, err := s.Load(ctx, name)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Default 返回内置字体优先、其次本地目录的存储链。
func Default(baseDir string) Store {
	return Chain{Builtin{}, DirStore{BaseDir: baseDir}}
}
