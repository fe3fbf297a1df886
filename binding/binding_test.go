package binding

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInterpolate(t *testing.T) {
	data := map[string]any{
		"price":    "240.00",
		"currency": "₹",
		"store":    map[string]any{"name": "Sweet Mart"},
	}
	got := Interpolate("MRP: ${currency}${price} @ ${store.name} ${ missing }", data)
	want := "MRP: ₹240.00 @ Sweet Mart ${ missing }"
	if got != want {
		t.Fatalf("Interpolate: got %q want %q", got, want)
	}
}

func TestInterpolateDoesNotReexpand(t *testing.T) {
	data := map[string]any{"a": "${b}", "b": "x"}
	if got := Interpolate("${a}", data); got != "${b}" {
		t.Fatalf("substituted values must not expand again, got %q", got)
	}
}

func TestInterpolateNilData(t *testing.T) {
	if got := Interpolate("${a}", nil); got != "${a}" {
		t.Fatalf("got %q", got)
	}
}

func TestPlaceholdersAndUnknown(t *testing.T) {
	text := "${a} ${store.name} ${a} ${store.fax}"
	if diff := cmp.Diff([]string{"a", "store.name", "store.fax"}, Placeholders(text)); diff != "" {
		t.Fatalf("placeholders mismatch (-want +got):\n%s", diff)
	}
	data := map[string]any{"a": 1, "store": map[string]any{"name": "x"}}
	if diff := cmp.Diff([]string{"store.fax"}, Unknown(text, data)); diff != "" {
		t.Fatalf("unknown mismatch (-want +got):\n%s", diff)
	}
}
