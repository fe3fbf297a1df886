package raster

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"testing"

	"github.com/ByLCY/stickerpress/assets"
	"github.com/ByLCY/stickerpress/layout"
)

func sampleResult() *layout.Result {
	text := layout.TextBox{
		Field:    layout.FieldProductName,
		X:        5,
		Y:        5,
		Width:    30,
		FontSize: 7,
		Bold:     true,
		Lines:    []layout.TextLine{{Content: "Kaju Katli", Width: 12}},
	}
	cell := layout.Cell{Width: 50, Height: 40, Texts: []layout.TextBox{text}}
	return &layout.Result{
		Pages: []layout.Page{
			{Width: 50, Height: 40, Cells: []layout.Cell{cell}},
			{Width: 50, Height: 40, Cells: []layout.Cell{cell}},
		},
		Fonts: layout.FontSet{Regular: "builtin:go-regular", Bold: "builtin:go-bold"},
	}
}

func TestRenderStacksPages(t *testing.T) {
	r := NewRenderer(assets.Builtin{}, 100)
	out, err := r.Render(context.Background(), sampleResult())
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	// 两页 40mm 加 4mm 间隔，100 DPI
	wantH := 331 // ceil(84 * 100 / 25.4)
	if got := img.Bounds().Dy(); got != wantH {
		t.Fatalf("height mismatch: got %d want %d", got, wantH)
	}
	if got := img.Bounds().Dx(); got != 197 {
		t.Fatalf("width mismatch: got %d want 197", got)
	}
}

func TestRenderMissingFont(t *testing.T) {
	res := sampleResult()
	res.Fonts.Bold = "fonts/missing.ttf"
	r := NewRenderer(assets.Chain{assets.Builtin{}, assets.Memory{}}, 0)
	if _, err := r.Render(context.Background(), res); !errors.Is(err, layout.ErrFontLoad) {
		t.Fatalf("expected ErrFontLoad, got %v", err)
	}
}

func TestRenderEmpty(t *testing.T) {
	if _, err := NewRenderer(nil, 0).Render(context.Background(), &layout.Result{}); err == nil {
		t.Fatalf("expected error for empty result")
	}
}
