package printer

import (
	"errors"
	"strings"
	"testing"

	"github.com/printable/stencil/label"
)

func sampleDocument() ([]label.Element, label.Canvas) {
	elements := []label.Element{
		{Type: label.TypeText, X: 10, Y: 10, Props: label.TextProps{Text: "Hello", FontSize: 12}},
		{Type: label.TypeBarcode, X: 10, Y: 60, Height: 40, ZIndex: 1,
			Props: label.BarcodeProps{Data: "12345", Symbol: "CODE128"}},
	}
	return elements, label.Canvas{Width: 400, Height: 300}
}

func TestEmitDispatchesPerProtocol(t *testing.T) {
	elements, canvas := sampleDocument()
	cases := []struct {
		protocol Protocol
		marker   string
	}{
		{ProtocolZPL, "^XA"},
		{ProtocolEPL, "N\n"},
		{ProtocolSBPL, "\x02"},
	}
	for _, tc := range cases {
		out, err := Emit(tc.protocol, elements, canvas, Options{})
		if err != nil {
			t.Fatalf("Emit(%s): %v", tc.protocol, err)
		}
		if !strings.HasPrefix(out, tc.marker) {
			t.Fatalf("Emit(%s) missing prologue %q: %q", tc.protocol, tc.marker, out[:8])
		}
	}
}

func TestEmitUnknownProtocol(t *testing.T) {
	elements, canvas := sampleDocument()
	out, err := Emit(Protocol("dpl"), elements, canvas, Options{})
	if !errors.Is(err, ErrUnknownProtocol) {
		t.Fatalf("err = %v, want ErrUnknownProtocol", err)
	}
	if out != "" {
		t.Fatalf("unknown protocol must emit nothing, got %q", out)
	}
	if !strings.Contains(err.Error(), "dpl") {
		t.Fatalf("error must name the requested protocol: %v", err)
	}
}

func TestEmitPassesOptionsThrough(t *testing.T) {
	elements, canvas := sampleDocument()
	opts := Options{DPI: 300, PrintSpeed: 5, Density: 12, TearOff: 8, Copies: 4}

	out, err := Emit(ProtocolZPL, elements, canvas, opts)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"^PR5", "^MD12", "~TA008"} {
		if !strings.Contains(out, want) {
			t.Fatalf("zpl output missing %q:\n%s", want, out)
		}
	}

	out, err = Emit(ProtocolEPL, elements, canvas, opts)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"S5\n", "D12\n", "P4\n"} {
		if !strings.Contains(out, want) {
			t.Fatalf("epl output missing %q:\n%s", want, out)
		}
	}
}

func TestProtocols(t *testing.T) {
	got := Protocols()
	want := []Protocol{ProtocolZPL, ProtocolEPL, ProtocolSBPL}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
