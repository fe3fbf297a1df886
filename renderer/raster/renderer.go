// Package raster renders a low-resolution PNG preview of a layout result.
// The preview stacks every page vertically and is meant for on-screen
// checks before printing; the PDF from renderer/canvas stays authoritative.
package raster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"

	"github.com/ByLCY/stickerpress/assets"
	"github.com/ByLCY/stickerpress/layout"
	"github.com/ByLCY/stickerpress/renderer"
)

// DefaultDPI 是预览图的默认分辨率。
const DefaultDPI = 150

// pageGap 是相邻两页之间的留白（mm）。
const pageGap = 4.0

// Renderer 使用 fogleman/gg 绘制 PNG 预览。
type Renderer struct {
	store  assets.Store
	images *assets.ImageCache
	dpi    float64

	mu    sync.Mutex
	fonts map[string]*truetype.Font
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer 创建预览渲染器；dpi <= 0 时使用 DefaultDPI。
func NewRenderer(store assets.Store, dpi float64) *Renderer {
	if store == nil {
		store = assets.Default("")
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return &Renderer{
		store:  store,
		images: assets.NewImageCache(store),
		dpi:    dpi,
		fonts:  map[string]*truetype.Font{},
	}
}

// px 将毫米换算为像素。
func (r *Renderer) px(mm float64) float64 { return mm * r.dpi / 25.4 }

// Render 返回 PNG 字节。
func (r *Renderer) Render(ctx context.Context, result *layout.Result) ([]byte, error) {
	if result == nil || len(result.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}
	var widthMM, heightMM float64
	for i, p := range result.Pages {
		widthMM = math.Max(widthMM, p.Width)
		heightMM += p.Height
		if i > 0 {
			heightMM += pageGap
		}
	}

	dc := gg.NewContext(int(math.Ceil(r.px(widthMM))), int(math.Ceil(r.px(heightMM))))
	dc.SetRGB(0.85, 0.85, 0.85)
	dc.Clear()

	offset := 0.0
	for i, page := range result.Pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dc.SetRGB(1, 1, 1)
		dc.DrawRectangle(0, r.px(offset), r.px(page.Width), r.px(page.Height))
		dc.Fill()
		if err := r.drawPage(ctx, dc, page, offset, result.Fonts); err != nil {
			return nil, fmt.Errorf("第 %d 页: %w", i+1, err)
		}
		offset += page.Height + pageGap
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("写入 PNG 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawPage(ctx context.Context, dc *gg.Context, page layout.Page, offset float64, fonts layout.FontSet) error {
	for _, cell := range page.Cells {
		if cell.Background != nil {
			if err := r.drawImage(ctx, dc, *cell.Background, offset); err != nil {
				return err
			}
		}
		dc.SetRGB(0, 0, 0)
		for _, tb := range cell.Texts {
			name := fonts.Regular
			if tb.Bold {
				name = fonts.Bold
			}
			face, err := r.face(ctx, name, tb.FontSize)
			if err != nil {
				return err
			}
			dc.SetFontFace(face)
			ascent := float64(face.Metrics().Ascent) / 64
			advance := r.px(layout.LineHeight(tb.FontSize))
			y := r.px(tb.Y + offset)
			for _, line := range tb.Lines {
				dc.DrawString(line.Content, r.px(tb.X), y+ascent)
				y += advance
			}
		}
		for _, img := range cell.Images {
			if err := r.drawImage(ctx, dc, img, offset); err != nil {
				return err
			}
		}
		// 裁切线
		dc.SetRGB(0.7, 0.7, 0.7)
		dc.SetLineWidth(1)
		dc.DrawRectangle(r.px(cell.X), r.px(cell.Y+offset), r.px(cell.Width), r.px(cell.Height))
		dc.Stroke()
	}
	return nil
}

// drawImage 将图片缩放到盒子的像素尺寸后绘制。
func (r *Renderer) drawImage(ctx context.Context, dc *gg.Context, box layout.ImageBox, offset float64) error {
	src, err := r.images.Image(ctx, box.Path)
	if err != nil {
		if errors.Is(err, assets.ErrNotFound) {
			return fmt.Errorf("%w: %s", layout.ErrAssetMissing, box.Path)
		}
		return fmt.Errorf("%w: %s: %v", layout.ErrAssetMissing, box.Path, err)
	}
	w := int(math.Round(r.px(box.Width)))
	h := int(math.Round(r.px(box.Height)))
	if w <= 0 || h <= 0 {
		return nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	dc.DrawImage(dst, int(math.Round(r.px(box.X))), int(math.Round(r.px(box.Y+offset))))
	return nil
}

func (r *Renderer) face(ctx context.Context, name string, sizePt float64) (font.Face, error) {
	f, err := r.font(ctx, name)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{Size: sizePt, DPI: r.dpi}), nil
}

func (r *Renderer) font(ctx context.Context, name string) (*truetype.Font, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.fonts[name]; ok {
		return f, nil
	}
	data, err := r.store.Load(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", layout.ErrFontLoad, name, err)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", layout.ErrFontLoad, name, err)
	}
	r.fonts[name] = f
	return f, nil
}
