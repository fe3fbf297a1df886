package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func contents(lines []TextLine) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.Content)
	}
	return out
}

func TestWrapGreedy(t *testing.T) {
	got := Wrap("aa bb cc dd", 5, runeMeasure)
	if diff := cmp.Diff([]string{"aa bb", "cc dd"}, contents(got)); diff != "" {
		t.Fatalf("wrap mismatch (-want +got):\n%s", diff)
	}
	for _, l := range got {
		if l.Width > 5 {
			t.Fatalf("line %q exceeds limit: %g", l.Content, l.Width)
		}
	}
}

func TestWrapExplicitNewlines(t *testing.T) {
	got := Wrap("Energy 520kcal\n\nProtein 12g\r\n", 100, runeMeasure)
	want := []string{"Energy 520kcal", "", "Protein 12g"}
	if diff := cmp.Diff(want, contents(got)); diff != "" {
		t.Fatalf("wrap mismatch (-want +got):\n%s", diff)
	}
}

func TestWrapOverlongWordStaysWhole(t *testing.T) {
	got := Wrap("a verylongword b", 4, runeMeasure)
	want := []string{"a", "verylongword", "b"}
	if diff := cmp.Diff(want, contents(got)); diff != "" {
		t.Fatalf("wrap mismatch (-want +got):\n%s", diff)
	}
}

func TestWrapPreservesInnerSpacing(t *testing.T) {
	got := Wrap("Fat   10g", 100, runeMeasure)
	if diff := cmp.Diff([]string{"Fat   10g"}, contents(got)); diff != "" {
		t.Fatalf("wrap mismatch (-want +got):\n%s", diff)
	}
}

func TestWrapEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\n"} {
		if got := Wrap(in, 10, runeMeasure); len(got) != 0 {
			t.Fatalf("Wrap(%q) expected no lines, got %+v", in, got)
		}
	}
}

func TestWrapUnlimitedWidth(t *testing.T) {
	got := Wrap("one two three", 0, runeMeasure)
	if len(got) != 1 || got[0].Width != 13 {
		t.Fatalf("expected a single 13mm line, got %+v", got)
	}
}

func TestWrapNormalizesNFC(t *testing.T) {
	// "e" + 组合重音符，NFC 后为单个字符
	got := Wrap("Cafe\u0301", 100, runeMeasure)
	if len(got) != 1 || got[0].Content != "Caf\u00e9" || got[0].Width != 4 {
		t.Fatalf("expected NFC-normalized line, got %+v", got)
	}
}
