package layout

import (
	"errors"
	"math"
	"testing"
)

func TestValidate(t *testing.T) {
	cases := map[string]func(d *Design){
		"negative margin":   func(d *Design) { d.Label.Margin = -1 },
		"zero width":        func(d *Design) { d.Label.Width = 0 },
		"nan height":        func(d *Design) { d.Label.Height = math.NaN() },
		"zero max width":    func(d *Design) { p := d.Placements[FieldMRP]; p.MaxWidth = 0; d.Placements[FieldMRP] = p },
		"inf top":           func(d *Design) { p := d.Placements[FieldMRP]; p.Top = math.Inf(1); d.Placements[FieldMRP] = p },
		"unknown printer":   func(d *Design) { d.Printer = "laser" },
		"custom paper size": func(d *Design) { d.Printer = PrinterSheet; d.Paper = Paper{Size: PaperCustom} },
		"bad orientation":   func(d *Design) { d.Printer = PrinterSheet; d.Paper.Orientation = "diagonal" },
		"zero font size":    func(d *Design) { d.ContentFontSize = 0 },
	}
	for name, mutate := range cases {
		d := Default()
		mutate(d)
		if err := d.Validate(); !errors.Is(err, ErrInvalidGeometry) {
			t.Fatalf("%s: expected ErrInvalidGeometry, got %v", name, err)
		}
	}
	if err := Default().Validate(); err != nil {
		t.Fatalf("default design should validate: %v", err)
	}
}

func TestValidateBackgroundNeedsPath(t *testing.T) {
	d := Default()
	d.Background = Background{Enabled: true, Path: "  "}
	if err := d.Validate(); !errors.Is(err, ErrAssetMissing) {
		t.Fatalf("expected ErrAssetMissing, got %v", err)
	}
	d.Background.Enabled = false
	if err := d.Validate(); err != nil {
		t.Fatalf("disabled background should validate: %v", err)
	}
}

func TestValidateNormalPrinterAlias(t *testing.T) {
	d := Default()
	d.Printer = PrinterNormal
	if err := d.Validate(); err != nil {
		t.Fatalf("normal printer should validate: %v", err)
	}
	d.Paper = Paper{Size: PaperCustom}
	if err := d.Validate(); !errors.Is(err, ErrInvalidGeometry) {
		t.Fatalf("normal printer must check paper like sheet, got %v", err)
	}
	if PrinterNormal.Canonical() != PrinterSheet || PrinterLabel.Canonical() != PrinterLabel {
		t.Fatalf("unexpected canonical printer modes")
	}
}

func TestCloneIsDeep(t *testing.T) {
	d := Default()
	d.Store = &StoreInfo{Name: "A"}
	c := d.Clone()
	c.Placements[FieldMRP] = Placement{}
	c.Store.Name = "B"
	c.Headings[HeadingNutrition] = HeadingSpec{}
	if d.Placements[FieldMRP].MaxWidth == 0 || d.Store.Name != "A" || !d.Headings[HeadingNutrition].Enabled {
		t.Fatalf("clone shares state with the original")
	}
}
