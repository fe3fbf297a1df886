// Package engine glues layout and rendering into a single call: given a
// design and a batch of records it returns the finished PDF.
package engine

import (
	"context"
	"fmt"

	"github.com/ByLCY/stickerpress/assets"
	"github.com/ByLCY/stickerpress/layout"
	canvasrenderer "github.com/ByLCY/stickerpress/renderer/canvas"
)

// Options 配置一次生成。
type Options struct {
	// Store 提供字体与图片；为空时使用内置字体加当前目录。
	Store assets.Store
	// MaxBatch 大于 0 时限制单次生成的记录数。
	MaxBatch int
}

// Document 是一次生成的产物。
type Document struct {
	PDF         []byte
	Pages       int
	Layout      *layout.Result
	Fingerprint string
}

// Generate 排版并渲染一批贴纸。空批次返回零页且 PDF 为空，不视为错误。
// 失败时不返回任何部分结果。
func Generate(ctx context.Context, d *layout.Design, records []layout.Record, opts Options) (*Document, error) {
	if d == nil {
		return nil, fmt.Errorf("设计不能为空")
	}
	// 使用快照，生成期间调用方对设计的修改不影响本次输出。
	d = d.Clone()

	r := canvasrenderer.NewRenderer(opts.Store)
	if len(records) > 0 {
		if err := r.Preload(ctx, d.Fonts); err != nil {
			return nil, err
		}
	}

	res, err := layout.Build(d, records, layout.BuildOptions{Typesetter: r, MaxBatch: opts.MaxBatch})
	if err != nil {
		return nil, fmt.Errorf("布局计算失败: %w", err)
	}
	fp, err := layout.Fingerprint(res)
	if err != nil {
		return nil, fmt.Errorf("计算布局摘要失败: %w", err)
	}
	doc := &Document{Pages: len(res.Pages), Layout: res, Fingerprint: fp}
	if doc.Pages == 0 {
		return doc, nil
	}

	pdfBytes, err := r.Render(ctx, res)
	if err != nil {
		return nil, fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	doc.PDF = pdfBytes
	return doc, nil
}
