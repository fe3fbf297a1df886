package layout

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const storeDesign = `
design Counter v2 {
  label 60mm 40mm margin 2mm
  printer normal
  paper custom 200mm 120mm landscape margin 5mm
  currency: "Rs."

  fonts {
    regular: "fonts/NotoSans-Regular.ttf"
    bold: "fonts/NotoSans-Bold.ttf"
    content-size: 5
    heading-size: 7pt
  }

  background "bg/counter.png"

  field product_name top 2 left 2 max-width 30 size 7 bold
  field mrp top 6 left 2 max-width 30
  field net_weight top 9 left 2 max-width 30
  field mfg_date top 12 left 2 max-width 30
  field exp_date top 15 left 2 max-width 30 { "Use by ${exp_date}" }
  field batch_no top 18 left 2 max-width 30
  field ingredients top 2 left 33 max-width 25
  field nutritional_facts top 14 left 33 max-width 25
  field allergen_info top 28 left 33 max-width 25
  field store_name top 30 left 2 max-width 30 bold

  heading allergen off
  heading nutrition on size 6 { "Per 100g" }

  store {
    name: "Sweet Mart"
    gst: "29ABCDE1234F1Z5"
  }

  meta {
    title: "Counter labels"
    keywords: ["sweets", "counter"]
  }
}
`

func TestLoadDesign(t *testing.T) {
	d, err := LoadDesign(strings.NewReader(storeDesign))
	if err != nil {
		t.Fatalf("LoadDesign error: %v", err)
	}
	if d.Name != "Counter" || d.Printer != PrinterSheet || d.Currency != "Rs." {
		t.Fatalf("unexpected header: %q %q %q", d.Name, d.Printer, d.Currency)
	}
	if diff := cmp.Diff(LabelSize{Width: 60, Height: 40, Margin: 2}, d.Label); diff != "" {
		t.Fatalf("label mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Paper{Size: PaperCustom, Width: 200, Height: 120, Orientation: Landscape, Margin: 5}, d.Paper); diff != "" {
		t.Fatalf("paper mismatch (-want +got):\n%s", diff)
	}
	if d.ContentFontSize != 5 || d.HeadingFontSize != 7 {
		t.Fatalf("font sizes: %g/%g", d.ContentFontSize, d.HeadingFontSize)
	}
	if d.Fonts.Bold != "fonts/NotoSans-Bold.ttf" {
		t.Fatalf("bold font: %q", d.Fonts.Bold)
	}
	if !d.Background.Enabled || d.Background.Path != "bg/counter.png" {
		t.Fatalf("background: %+v", d.Background)
	}
	want := Placement{Top: 2, Left: 2, MaxWidth: 30, FontSize: 7, Bold: true}
	if diff := cmp.Diff(want, d.Placements[FieldProductName]); diff != "" {
		t.Fatalf("product placement mismatch (-want +got):\n%s", diff)
	}
	if got := d.Placements[FieldExpDate].Template; got != "Use by ${exp_date}" {
		t.Fatalf("template: %q", got)
	}
	if d.Headings[HeadingAllergen].Enabled {
		t.Fatalf("allergen heading should be disabled")
	}
	nut := d.Headings[HeadingNutrition]
	if !nut.Enabled || nut.Text != "Per 100g" || nut.FontSize != 6 {
		t.Fatalf("nutrition heading: %+v", nut)
	}
	if d.Store == nil || d.Store.Name != "Sweet Mart" || d.Store.TaxID != "29ABCDE1234F1Z5" {
		t.Fatalf("store: %+v", d.Store)
	}
	if diff := cmp.Diff([]string{"sweets", "counter"}, d.Meta.Keywords); diff != "" {
		t.Fatalf("keywords mismatch (-want +got):\n%s", diff)
	}
	if err := d.Validate(); err != nil {
		t.Fatalf("loaded design should validate: %v", err)
	}
}

func TestLoadDesignUnits(t *testing.T) {
	src := `design U v1 {
  label 3in 4cm
  field product_name top 10pt left 1cm max-width 1in size 0.25cm
}`
	d, err := LoadDesign(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadDesign error: %v", err)
	}
	p := d.Placements[FieldProductName]
	if !eq(d.Label.Width, 76.2) || !eq(d.Label.Height, 40) {
		t.Fatalf("label: %+v", d.Label)
	}
	if !eq(p.Top, 10*PtToMm) || !eq(p.Left, 10) || !eq(p.MaxWidth, 25.4) {
		t.Fatalf("placement: %+v", p)
	}
	if math.Abs(p.FontSize-2.5*MmToPt) > 1e-9 {
		t.Fatalf("font size in pt: %g", p.FontSize)
	}
}

func TestLoadDesignErrors(t *testing.T) {
	cases := map[string]string{
		"unknown field":    `design X v1 { field price_tag top 1 left 1 max-width 1 }`,
		"unknown command":  `design X v1 { border 1mm }`,
		"bad length":       `design X v1 { label 85mm abc }`,
		"unknown template": `design X v1 { field mrp top 1 left 1 max-width 10 { "${discount}" } }`,
		"bad paper":        `design X v1 { paper letter }`,
		"bad switch":       `design X v1 { heading nutrition maybe }`,
		"syntax":           `design X v1 { label 85 95`,
	}
	for name, src := range cases {
		if _, err := LoadDesign(strings.NewReader(src)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
	_, err := LoadDesign(strings.NewReader(`design X v1 { label -5 10 }`))
	if err == nil {
		t.Fatalf("negative length should fail")
	}
}

func TestLoadDesignPlacementsAreExplicit(t *testing.T) {
	d, err := LoadDesign(strings.NewReader(`design Min v1 { label 85 95 margin 2.5 }`))
	if err != nil {
		t.Fatalf("LoadDesign error: %v", err)
	}
	if len(d.Placements) != 0 {
		t.Fatalf("expected no placements, got %d", len(d.Placements))
	}
	_, err = Build(d, []Record{sampleRecord("A")}, BuildOptions{Typesetter: &stubTypesetter{}})
	if !errors.Is(err, ErrMissingPlacement) {
		t.Fatalf("expected ErrMissingPlacement, got %v", err)
	}
}
