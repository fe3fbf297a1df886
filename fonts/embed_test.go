package fonts

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/sfnt"
)

func TestLoadBuiltin(t *testing.T) {
	for _, name := range []string{"builtin:go-regular", "go-bold", DefaultRegular, "dejavu-sans-bold"} {
		data, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%q) error: %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("Load(%q) returned empty data", name)
		}
	}
}

func TestLoadUnknown(t *testing.T) {
	if _, err := Load("builtin:comic-sans"); err == nil {
		t.Fatalf("expected error for unknown font")
	}
	if IsBuiltin("Inter-Regular.ttf") {
		t.Fatalf("file name should not be treated as builtin")
	}
}

func TestNames(t *testing.T) {
	want := []string{"dejavu-sans", "dejavu-sans-bold", "go-bold", "go-italic", "go-medium", "go-regular"}
	if diff := cmp.Diff(want, Names()); diff != "" {
		t.Fatalf("Names mismatch (-want +got):\n%s", diff)
	}
}

func glyphIndex(t *testing.T, name string, r rune) sfnt.GlyphIndex {
	t.Helper()
	data, err := Load(name)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", name, err)
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		t.Fatalf("parse %s: %v", name, err)
	}
	idx, err := f.GlyphIndex(&sfnt.Buffer{}, r)
	if err != nil {
		t.Fatalf("GlyphIndex(%q) in %s: %v", r, name, err)
	}
	return idx
}

// 默认字体必须覆盖 MRP 行中的每个字符，包括 ₹。
func TestDefaultFontsCoverMRPLine(t *testing.T) {
	for _, name := range []string{DefaultRegular, DefaultBold} {
		for _, r := range "MRP: ₹240.00 (₹2.40/g) Net Wt: 100g" {
			if r == ' ' {
				continue
			}
			if idx := glyphIndex(t, name, r); idx == 0 {
				t.Fatalf("%s has no glyph for %q", name, r)
			}
		}
	}
}

func TestGoFontLacksRupee(t *testing.T) {
	if idx := glyphIndex(t, "go-regular", '₹'); idx != 0 {
		t.Fatalf("expected go-regular to lack U+20B9, got glyph %d", idx)
	}
}
