package canvasrenderer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"strings"
	"sync"
	"unicode"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"golang.org/x/image/draw"

	"github.com/ByLCY/stickerpress/assets"
	"github.com/ByLCY/stickerpress/layout"
	"github.com/ByLCY/stickerpress/renderer"
)

// Renderer draws layout results via github.com/tdewolff/canvas.
// It also acts as the layout Typesetter so that line widths are measured
// with exactly the faces used for drawing.
type Renderer struct {
	store  assets.Store
	images *assets.ImageCache

	fontMu       sync.Mutex
	fontFamilies map[layout.FontSpec]*canvas.FontFamily
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Typesetter = (*Renderer)(nil)
)

// NewRenderer creates a canvas-based renderer resolving fonts and images from store.
func NewRenderer(store assets.Store) *Renderer {
	if store == nil {
		store = assets.Default("")
	}
	return &Renderer{
		store:        store,
		images:       assets.NewImageCache(store),
		fontFamilies: map[layout.FontSpec]*canvas.FontFamily{},
	}
}

// Preload 预先加载常规与粗体字体，使后续的 LayoutLines 不再访问资源存储。
func (r *Renderer) Preload(ctx context.Context, set layout.FontSet) error {
	for _, spec := range []layout.FontSpec{{Name: set.Regular}, {Name: set.Bold, Bold: true}} {
		if _, err := r.ensureFontFamily(ctx, spec); err != nil {
			return err
		}
	}
	return nil
}

// Render renders the result into a PDF byte slice.
func (r *Renderer) Render(ctx context.Context, result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(result.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}
	if err := r.Preload(ctx, result.Fonts); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, result.Pages[0].Width, result.Pages[0].Height, nil)
	r.applyMeta(writer, result.Meta)
	for i, page := range result.Pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if i > 0 {
			writer.NewPage(page.Width, page.Height)
		}
		c := canvas.New(page.Width, page.Height)
		cctx := canvas.NewContext(c)
		cctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

		if err := r.drawPage(ctx, cctx, page, result.Fonts); err != nil {
			return nil, fmt.Errorf("第 %d 页: %w", i+1, err)
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	if writer == nil {
		return
	}
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

// LayoutLines 实现 layout.Typesetter 接口。width 为 mm，fontSize 为 pt；
// canvas 的 TextWidth 直接返回 mm，与 width 可直接比较。
func (r *Renderer) LayoutLines(content string, width float64, font layout.FontSpec, fontSize float64) ([]layout.TextLine, error) {
	face, err := r.fontFace(context.Background(), font, fontSize)
	if err != nil {
		return nil, err
	}
	if ch := missingGlyph(face, content); ch != 0 {
		return nil, fmt.Errorf("%w: %s 缺少字符 %q (U+%04X)", layout.ErrFontLoad, font.Name, ch, ch)
	}
	return layout.Wrap(content, width, face.TextWidth), nil
}

// missingGlyph 返回字体中第一个没有字形的可见字符，全部覆盖时返回 0。
func missingGlyph(face *canvas.FontFace, content string) rune {
	for _, ch := range content {
		if unicode.IsSpace(ch) || unicode.IsControl(ch) {
			continue
		}
		if face.Font.GlyphIndex(ch) == 0 {
			return ch
		}
	}
	return 0
}

// drawPage 依次绘制每个格子：白底、底图、文本、logo。
func (r *Renderer) drawPage(ctx context.Context, cctx *canvas.Context, page layout.Page, fonts layout.FontSet) error {
	for _, cell := range page.Cells {
		cctx.SetFillColor(canvas.White)
		cctx.DrawPath(cell.X, cell.Y, canvas.Rectangle(cell.Width, cell.Height))

		if cell.Background != nil {
			if err := r.drawBackground(ctx, cctx, *cell.Background); err != nil {
				return err
			}
		}
		for _, tb := range cell.Texts {
			if err := r.drawTextBox(ctx, cctx, tb, fonts); err != nil {
				return err
			}
		}
		if err := r.drawImages(ctx, cctx, cell.Images); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) drawTextBox(ctx context.Context, cctx *canvas.Context, tb layout.TextBox, fonts layout.FontSet) error {
	spec := layout.FontSpec{Name: fonts.Regular}
	if tb.Bold {
		spec = layout.FontSpec{Name: fonts.Bold, Bold: true}
	}
	face, err := r.fontFace(ctx, spec, tb.FontSize)
	if err != nil {
		return err
	}

	// 基线位置：行顶部加上字体上升部（Ascent，mm）；行距固定为字号的 1.2 倍。
	ascent := face.Metrics().Ascent
	advance := layout.LineHeight(tb.FontSize)
	cursorY := tb.Y
	for _, line := range tb.Lines {
		if line.Content != "" {
			cctx.DrawText(tb.X, cursorY+ascent, canvas.NewTextLine(face, line.Content, canvas.Left))
		}
		cursorY += advance
	}
	return nil
}

// drawBackground 将底图重采样为内容区宽高比后铺满内容区。
func (r *Renderer) drawBackground(ctx context.Context, cctx *canvas.Context, box layout.ImageBox) error {
	img, err := r.loadImage(ctx, box.Path)
	if err != nil {
		return err
	}
	fitted := fitAspect(img, box.Width, box.Height)
	dpmm := float64(fitted.Bounds().Dx()) / box.Width
	cctx.DrawImage(box.X, box.Y, fitted, canvas.DPMM(dpmm))
	return nil
}

func (r *Renderer) drawImages(ctx context.Context, cctx *canvas.Context, images []layout.ImageBox) error {
	for _, box := range images {
		if box.Path == "" || box.Width <= 0 {
			continue
		}
		img, err := r.loadImage(ctx, box.Path)
		if err != nil {
			return err
		}
		if box.Height > 0 {
			img = fitAspect(img, box.Width, box.Height)
		}
		dpmm := float64(img.Bounds().Dx()) / box.Width
		if dpmm <= 0 {
			dpmm = 1
		}
		cctx.DrawImage(box.X, box.Y, img, canvas.DPMM(dpmm))
	}
	return nil
}

func (r *Renderer) loadImage(ctx context.Context, name string) (image.Image, error) {
	img, err := r.images.Image(ctx, name)
	if errors.Is(err, assets.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", layout.ErrAssetMissing, name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", layout.ErrAssetMissing, name, err)
	}
	return img, nil
}

// fitAspect 保持像素宽度，按 w:h 调整高度并用 Catmull-Rom 重采样。
func fitAspect(src image.Image, w, h float64) image.Image {
	sb := src.Bounds()
	if sb.Dx() == 0 || w <= 0 || h <= 0 {
		return src
	}
	targetH := int(math.Round(float64(sb.Dx()) * h / w))
	if targetH < 1 {
		targetH = 1
	}
	if targetH == sb.Dy() {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, sb.Dx(), targetH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, sb, draw.Src, nil)
	return dst
}

func (r *Renderer) fontFace(ctx context.Context, font layout.FontSpec, sizePt float64) (*canvas.FontFace, error) {
	family, err := r.ensureFontFamily(ctx, font)
	if err != nil {
		return nil, err
	}
	return family.Face(sizePt, canvas.Black, fontStyle(font), canvas.FontNormal), nil
}

func (r *Renderer) ensureFontFamily(ctx context.Context, font layout.FontSpec) (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if family, ok := r.fontFamilies[font]; ok {
		return family, nil
	}
	if font.Name == "" {
		return nil, fmt.Errorf("%w: 未指定字体", layout.ErrFontLoad)
	}
	data, err := r.store.Load(ctx, font.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", layout.ErrFontLoad, font.Name, err)
	}
	family := canvas.NewFontFamily(font.Name)
	if err := family.LoadFont(data, 0, fontStyle(font)); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", layout.ErrFontLoad, font.Name, err)
	}
	r.fontFamilies[font] = family
	return family, nil
}

func fontStyle(font layout.FontSpec) canvas.FontStyle {
	if font.Bold {
		return canvas.FontBold
	}
	return canvas.FontRegular
}
