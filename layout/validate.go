package layout

import (
	"fmt"
	"sort"
	"strings"
)

// Validate 检查设计的几何不变式。字段是否齐全由 Resolve 在使用时检查。
func (d *Design) Validate() error {
	if d == nil {
		return fmt.Errorf("%w: 设计为空", ErrInvalidGeometry)
	}
	if err := checkLengths(map[string]float64{
		"label.width":  d.Label.Width,
		"label.height": d.Label.Height,
		"label.margin": d.Label.Margin,
		"paper.margin": d.Paper.Margin,
	}); err != nil {
		return err
	}
	if d.Label.Width <= 0 || d.Label.Height <= 0 {
		return fmt.Errorf("%w: 标签尺寸必须为正数，当前 %gx%gmm", ErrInvalidGeometry, d.Label.Width, d.Label.Height)
	}
	if 2*d.Label.Margin >= minf(d.Label.Width, d.Label.Height) {
		return fmt.Errorf("%w: 标签边距 %gmm 过大", ErrInvalidGeometry, d.Label.Margin)
	}
	if d.ContentFontSize <= 0 || d.HeadingFontSize <= 0 {
		return fmt.Errorf("%w: 默认字号必须为正数", ErrInvalidGeometry)
	}

	switch d.Printer.Canonical() {
	case PrinterLabel:
	case PrinterSheet:
		if err := d.Paper.validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: 未知的打印机类型 %q", ErrInvalidGeometry, d.Printer)
	}
	// 启用的底图必须可解析，不能静默退化为白底。
	if d.Background.Enabled && strings.TrimSpace(d.Background.Path) == "" {
		return fmt.Errorf("%w: 底图已启用但未指定路径", ErrAssetMissing)
	}

	// 固定顺序，保证同一设计总是报告同一个错误。
	fields := make([]string, 0, len(d.Placements))
	for f := range d.Placements {
		fields = append(fields, string(f))
	}
	sort.Strings(fields)
	for _, name := range fields {
		p := d.Placements[Field(name)]
		if err := checkLengths(map[string]float64{
			name + ".top":       p.Top,
			name + ".left":      p.Left,
			name + ".max_width": p.MaxWidth,
			name + ".font_size": p.FontSize,
			name + ".height":    p.Height,
		}); err != nil {
			return err
		}
		if p.MaxWidth <= 0 {
			return fmt.Errorf("%w: %s 的 max_width 必须大于 0", ErrInvalidGeometry, name)
		}
	}
	for h, spec := range d.Headings {
		if err := checkLengths(map[string]float64{string(h) + ".font_size": spec.FontSize}); err != nil {
			return err
		}
	}
	return nil
}

func (p Paper) validate() error {
	switch p.Size {
	case PaperA4, PaperA5:
	case PaperCustom:
		if err := checkLengths(map[string]float64{"paper.width": p.Width, "paper.height": p.Height}); err != nil {
			return err
		}
		if p.Width <= 0 || p.Height <= 0 {
			return fmt.Errorf("%w: 自定义纸张需要正的宽高", ErrInvalidGeometry)
		}
	default:
		return fmt.Errorf("%w: 暂不支持的纸张尺寸 %q", ErrInvalidGeometry, p.Size)
	}
	switch p.Orientation {
	case "", Portrait, Landscape:
	default:
		return fmt.Errorf("%w: 未知的纸张方向 %q", ErrInvalidGeometry, p.Orientation)
	}
	return nil
}

func checkLengths(values map[string]float64) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := MM(values[k]); err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
	}
	return nil
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
