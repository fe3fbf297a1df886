package layout

import (
	"fmt"
	"math"
)

// paperPresets 以 mm 记录纵向纸张尺寸。
var paperPresets = map[PaperSize][2]float64{
	PaperA4: {210, 297},
	PaperA5: {148, 210},
}

// Media 决定物理页面尺寸以及每页可放置的贴纸格子。
// 对同一设计，格子坐标序列总是相同，与记录内容无关。
type Media interface {
	// PageSize 返回页面宽高（mm）。
	PageSize() (float64, float64)
	// CellSize 返回单个格子的宽高（mm），即标签尺寸。
	CellSize() (float64, float64)
	CellsPerPage() int
	// NextCellOrigin 返回当前页第 slot 个格子的左上角；放不下时返回 errPageFull。
	NextCellOrigin(slot int) (Point, error)
}

// NewMedia 根据打印机类型选择布局策略。
func NewMedia(d *Design) (Media, error) {
	switch d.Printer.Canonical() {
	case PrinterLabel:
		return labelMedia{w: d.Label.Width, h: d.Label.Height}, nil
	case PrinterSheet:
		return newSheetMedia(d)
	default:
		return nil, fmt.Errorf("%w: 未知的打印机类型 %q", ErrInvalidGeometry, d.Printer)
	}
}

// labelMedia：卷筒标签机，一页即一张贴纸。
type labelMedia struct {
	w, h float64
}

func (m labelMedia) PageSize() (float64, float64) { return m.w, m.h }
func (m labelMedia) CellSize() (float64, float64) { return m.w, m.h }
func (m labelMedia) CellsPerPage() int            { return 1 }

func (m labelMedia) NextCellOrigin(slot int) (Point, error) {
	if slot != 0 {
		return Point{}, errPageFull
	}
	return Point{}, nil
}

// sheetMedia：在纸张可写区域内按从左到右、从上到下的网格排布。
type sheetMedia struct {
	pageW, pageH float64
	writable     Rect
	cellW, cellH float64
	cols, rows   int
}

func newSheetMedia(d *Design) (*sheetMedia, error) {
	pw, ph, err := PaperDimensions(d.Paper)
	if err != nil {
		return nil, err
	}
	page := Rect{W: pw, H: ph}
	writable := page
	if d.Paper.Margin > 0 {
		writable, err = page.Inset(d.Paper.Margin)
		if err != nil {
			return nil, err
		}
	}
	lw, lh := d.Label.Width, d.Label.Height
	if lw > writable.W || lh > writable.H {
		return nil, fmt.Errorf("%w: 标签 %gx%gmm，可写区域 %gx%gmm", ErrLabelTooLargeForSheet, lw, lh, writable.W, writable.H)
	}
	return &sheetMedia{
		pageW:    pw,
		pageH:    ph,
		writable: writable,
		cellW:    lw,
		cellH:    lh,
		cols:     fitCount(writable.W, lw),
		rows:     fitCount(writable.H, lh),
	}, nil
}

func (m *sheetMedia) PageSize() (float64, float64) { return m.pageW, m.pageH }
func (m *sheetMedia) CellSize() (float64, float64) { return m.cellW, m.cellH }
func (m *sheetMedia) CellsPerPage() int            { return m.cols * m.rows }

func (m *sheetMedia) NextCellOrigin(slot int) (Point, error) {
	if slot < 0 || slot >= m.CellsPerPage() {
		return Point{}, errPageFull
	}
	col := slot % m.cols
	row := slot / m.cols
	return Point{
		X: m.writable.X + float64(col)*m.cellW,
		Y: m.writable.Y + float64(row)*m.cellH,
	}, nil
}

// PaperDimensions 返回应用方向后的纸张宽高（mm）。
func PaperDimensions(p Paper) (float64, float64, error) {
	var w, h float64
	switch p.Size {
	case PaperCustom:
		if p.Width <= 0 || p.Height <= 0 {
			return 0, 0, fmt.Errorf("%w: 自定义纸张需要正的宽高", ErrInvalidGeometry)
		}
		w, h = p.Width, p.Height
	default:
		base, ok := paperPresets[p.Size]
		if !ok {
			return 0, 0, fmt.Errorf("%w: 暂不支持的纸张尺寸 %q", ErrInvalidGeometry, p.Size)
		}
		w, h = base[0], base[1]
	}
	if p.Orientation == Landscape {
		w, h = h, w
	}
	return w, h, nil
}

// fitCount 返回 total 中最多能放下多少个 size，容忍浮点误差。
func fitCount(total, size float64) int {
	return int(math.Floor(total/size + 1e-9))
}
