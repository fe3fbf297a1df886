package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// This file defines unit-safe types and helpers for lengths. All geometry in
// the layout package is expressed in millimeters; font sizes are in points.

// Unit represents the original unit of a length value as written in a design.
type Unit int

const (
	UnitNone Unit = iota // bare numbers, interpreted by the caller
	UnitMM               // millimeters
	UnitCM               // centimeters
	UnitIN               // inches
	UnitPT               // points
)

// Conversion constants between pt and mm.
const (
	PtToMm = 25.4 / 72
	MmToPt = 1.0 / PtToMm
)

// LineSpacing is the fixed leading factor applied to every text line.
const LineSpacing = 1.2

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	case UnitPT:
		return "pt"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// ToMM converts the length to millimeters. Bare numbers are already mm.
func (l Length) ToMM() float64 {
	switch l.Unit {
	case UnitCM:
		return l.Value * 10
	case UnitIN:
		return l.Value * 25.4
	case UnitPT:
		return l.Value * PtToMm
	default:
		return l.Value
	}
}

// ToPT converts the length to points. Bare numbers are already pt, which is
// how font sizes are written.
func (l Length) ToPT() float64 {
	switch l.Unit {
	case UnitMM, UnitCM, UnitIN:
		return l.ToMM() * MmToPt
	default:
		return l.Value
	}
}

// ParseLength parses "12", "12mm", "1.5cm", "1in" or "8pt" preserving the unit.
func ParseLength(value string) (Length, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, fmt.Errorf("%w: 空的长度值", ErrInvalidGeometry)
	}
	unit := UnitNone
	num := v
	for _, suf := range []struct {
		s string
		u Unit
	}{{"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"pt", UnitPT}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, fmt.Errorf("%w: 无法解析长度 %q", ErrInvalidGeometry, value)
	}
	if _, err := MM(f); err != nil {
		return Length{}, err
	}
	return Length{Value: f, Unit: unit}, nil
}

// MM validates a magnitude in millimeters: it must be finite and non-negative.
func MM(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: 非有限数值 %v", ErrInvalidGeometry, v)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: 负数长度 %v", ErrInvalidGeometry, v)
	}
	return v, nil
}

// ToDevice converts millimeters to PDF device units (points).
func ToDevice(mm float64) (float64, error) {
	v, err := MM(mm)
	if err != nil {
		return 0, err
	}
	return v * MmToPt, nil
}

// LineHeight returns the line advance in mm for a font size given in pt.
func LineHeight(fontSizePt float64) float64 {
	return fontSizePt * LineSpacing * PtToMm
}
