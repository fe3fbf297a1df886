package assets

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"sync"
)

// ImageCache 缓存解码后的图片。同一批次里每张贴纸共用同一张底图，只需解码一次。
type ImageCache struct {
	store Store
	cache map[string]image.Image
	mu    sync.RWMutex
}

// NewImageCache 创建基于 store 的图片缓存。
func NewImageCache(store Store) *ImageCache {
	return &ImageCache{store: store, cache: make(map[string]image.Image)}
}

// Image 返回名称对应的图片。读取失败时返回的错误可用 errors.Is(err, ErrNotFound) 判断。
func (c *ImageCache) Image(ctx context.Context, name string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.cache[name]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	data, err := c.store.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("解码图片 %s 失败: %w", name, err)
	}

	c.mu.Lock()
	c.cache[name] = img
	c.mu.Unlock()
	return img, nil
}

// Len 返回已缓存的图片数量。
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}
