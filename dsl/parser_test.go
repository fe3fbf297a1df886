package dsl_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ByLCY/stickerpress/dsl"
)

const sampleDSL = `
// 门店默认模板
design Default v1 {
  label 85mm 95mm margin 2.5mm
  printer sheet
  paper A4 landscape margin 5mm
  currency: "₹"

  fonts {
    regular: "builtin:go-regular"
    bold: "builtin:go-bold"
    content-size: 6pt
  }

  meta {
    title: "Sweets"
    keywords: [
      "labels"
      "fssai"
    ]
  }

  field product_name top 43 left 36 max-width 30 size 7 bold
  field mrp top 47 left 36 max-width 30 { "MRP: ${currency}${price}" }
  heading nutrition on size 8 {
    "Nutritional Facts:"
  }
}
`

func TestParseDocument(t *testing.T) {
	doc, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if doc.Name != "Default" {
		t.Fatalf("expected design name Default, got %s", doc.Name)
	}
	if doc.Version != "v1" {
		t.Fatalf("expected version v1, got %s", doc.Version)
	}

	var names []string
	for _, st := range doc.Block.Statements {
		switch {
		case st.Command != nil:
			names = append(names, st.Command.Name)
		case st.Assignment != nil:
			names = append(names, st.Assignment.Key+":")
		}
	}
	want := []string{"label", "printer", "paper", "currency:", "fonts", "meta", "field", "field", "heading"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("statement mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCommandArgs(t *testing.T) {
	doc, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	label := doc.Block.Statements[0].Command
	var args []string
	for _, a := range label.Args {
		args = append(args, a.Type+"="+a.Value)
	}
	want := []string{"Number=85mm", "Number=95mm", "Ident=margin", "Number=2.5mm"}
	if diff := cmp.Diff(want, args); diff != "" {
		t.Fatalf("label args mismatch (-want +got):\n%s", diff)
	}

	mrp := doc.Block.Statements[7].Command
	if mrp.Block == nil || len(mrp.Block.Statements) != 1 || mrp.Block.Statements[0].Text == nil {
		t.Fatalf("expected template text block, got %+v", mrp.Block)
	}
	if got := string(mrp.Block.Statements[0].Text.Value); got != "MRP: ${currency}${price}" {
		t.Fatalf("unexpected template %q", got)
	}
}

func TestParseAssignmentsAndArrays(t *testing.T) {
	doc, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	currency := doc.Block.Statements[3].Assignment
	if currency == nil || currency.Value.Text() != "₹" {
		t.Fatalf("expected currency assignment, got %+v", doc.Block.Statements[3])
	}

	meta := doc.Block.Statements[5].Command
	keywords := meta.Block.Statements[1].Assignment
	if keywords == nil || keywords.Value.Array == nil {
		t.Fatalf("expected keywords array, got %+v", meta.Block.Statements[1])
	}
	var got []string
	for _, v := range keywords.Value.Array.Values {
		got = append(got, v.Text())
	}
	if diff := cmp.Diff([]string{"labels", "fssai"}, got); diff != "" {
		t.Fatalf("keywords mismatch (-want +got):\n%s", diff)
	}

	size := doc.Block.Statements[4].Command.Block.Statements[2].Assignment
	if size.Value.Number == nil || *size.Value.Number != "6pt" {
		t.Fatalf("expected number 6pt, got %+v", size.Value)
	}
}

func TestParseRejectsMissingHeader(t *testing.T) {
	if _, err := dsl.ParseString(`label 85 95`); err == nil {
		t.Fatalf("expected error without design header")
	}
}
