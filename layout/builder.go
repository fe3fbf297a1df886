package layout

import (
	"errors"
	"fmt"
)

// Build 按输入顺序把每条记录排入格子，当前页放满时换页。
// 任一字段解析或折行失败都会中止整次排版，不返回部分结果。
func Build(d *Design, records []Record, opts BuildOptions) (*Result, error) {
	if opts.Typesetter == nil {
		return nil, fmt.Errorf("layout: 缺少排版后端 Typesetter")
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if opts.MaxBatch > 0 && len(records) > opts.MaxBatch {
		return nil, fmt.Errorf("%w: %d 条记录超过上限 %d", ErrBatchTooLarge, len(records), opts.MaxBatch)
	}
	media, err := NewMedia(d)
	if err != nil {
		return nil, err
	}

	collector := newPageCollector(media)
	for i, rec := range records {
		origin, err := collector.nextCell()
		if err != nil {
			return nil, err
		}
		cell, err := composeCell(d, rec, i, origin, media, opts.Typesetter)
		if err != nil {
			return nil, fmt.Errorf("第 %d 条记录: %w", i+1, err)
		}
		collector.curr().cells = append(collector.curr().cells, cell)
	}

	return &Result{
		Pages: collector.pages(),
		Fonts: d.Fonts,
		Meta:  d.Meta,
	}, nil
}

// composeCell 解析全部字段，折行并平移到格子所在的页面坐标。
func composeCell(d *Design, rec Record, index int, origin Point, media Media, ts Typesetter) (Cell, error) {
	cw, ch := media.CellSize()
	content, err := Rect{X: origin.X, Y: origin.Y, W: cw, H: ch}.Inset(d.Label.Margin)
	if err != nil {
		return Cell{}, err
	}

	cell := Cell{
		Index:   index,
		X:       origin.X,
		Y:       origin.Y,
		Width:   cw,
		Height:  ch,
		Content: content,
	}
	if d.Background.Enabled {
		cell.Background = &ImageBox{
			Path:   d.Background.Path,
			X:      content.X,
			Y:      content.Y,
			Width:  content.W,
			Height: content.H,
		}
	}

	elements, err := ResolveAll(d, rec)
	if err != nil {
		return Cell{}, err
	}
	base := content.Origin()
	for _, el := range elements {
		if el.Image != "" {
			cell.Images = append(cell.Images, ImageBox{
				Field:  el.Field,
				Path:   el.Image,
				X:      base.X + el.X,
				Y:      base.Y + el.Y,
				Width:  el.MaxWidth,
				Height: el.Height,
			})
			continue
		}
		if el.Heading != nil {
			tb, err := composeTextBox(*el.Heading, base, d.Fonts, ts)
			if err != nil {
				return Cell{}, err
			}
			tb.Heading = true
			cell.Texts = append(cell.Texts, tb)
		}
		tb, err := composeTextBox(el, base, d.Fonts, ts)
		if err != nil {
			return Cell{}, err
		}
		cell.Texts = append(cell.Texts, tb)
	}
	return cell, nil
}

func composeTextBox(el Element, base Point, fonts FontSet, ts Typesetter) (TextBox, error) {
	font := FontSpec{Name: fonts.Regular}
	if el.Bold {
		font = FontSpec{Name: fonts.Bold, Bold: true}
	}
	lines, err := ts.LayoutLines(el.Text, el.MaxWidth, font, el.FontSize)
	if err != nil {
		return TextBox{}, fmt.Errorf("%s: %w", el.Field, err)
	}
	return TextBox{
		Field:    el.Field,
		X:        base.X + el.X,
		Y:        base.Y + el.Y,
		Width:    el.MaxWidth,
		FontSize: el.FontSize,
		Bold:     el.Bold,
		Lines:    lines,
		Height:   BlockHeight(len(lines), el.FontSize),
	}, nil
}

type pageAccumulator struct {
	cells []Cell
}

// pageCollector 维护当前页与格子游标。页面按需创建，零条记录时不产生页面。
type pageCollector struct {
	media   Media
	accs    []*pageAccumulator
	current int
	slot    int
}

func newPageCollector(media Media) *pageCollector {
	return &pageCollector{media: media}
}

func (pc *pageCollector) newPage() *pageAccumulator {
	acc := &pageAccumulator{}
	pc.accs = append(pc.accs, acc)
	pc.current = len(pc.accs) - 1
	pc.slot = 0
	return acc
}

func (pc *pageCollector) curr() *pageAccumulator {
	if len(pc.accs) == 0 {
		return pc.newPage()
	}
	return pc.accs[pc.current]
}

// nextCell 取当前页的下一个格子；当前页已满时结束该页并在新页上重试一次。
func (pc *pageCollector) nextCell() (Point, error) {
	if len(pc.accs) == 0 {
		pc.newPage()
	}
	origin, err := pc.media.NextCellOrigin(pc.slot)
	if errors.Is(err, errPageFull) {
		pc.newPage()
		origin, err = pc.media.NextCellOrigin(pc.slot)
	}
	if err != nil {
		if errors.Is(err, errPageFull) {
			return Point{}, fmt.Errorf("%w: 空白页面放不下任何标签", ErrLabelTooLargeForSheet)
		}
		return Point{}, err
	}
	pc.slot++
	return origin, nil
}

func (pc *pageCollector) pages() []Page {
	w, h := pc.media.PageSize()
	out := make([]Page, len(pc.accs))
	for i, acc := range pc.accs {
		out[i] = Page{Width: w, Height: h, Cells: acc.cells}
	}
	return out
}
