package barcode

import "testing"

func TestLookup(t *testing.T) {
	spec, ok := Lookup(Code128)
	if !ok {
		t.Fatalf("Code 128 must be known")
	}
	if spec.ZPL != "^BC" || spec.EPL != "1" || spec.SBPL != "BG" {
		t.Fatalf("Code 128 fragments wrong: %+v", spec)
	}
	if spec.TwoD {
		t.Fatalf("Code 128 is not a 2D symbol")
	}

	if _, ok := Lookup(Symbol("NOPE")); ok {
		t.Fatalf("unknown symbol must report ok=false")
	}

	qr, ok := Lookup(QRCode)
	if !ok || !qr.TwoD {
		t.Fatalf("QR Code must be a known 2D symbol: %+v", qr)
	}
}

func TestSymbolsCoversTable(t *testing.T) {
	syms := Symbols()
	if len(syms) != 9 {
		t.Fatalf("got %d symbols, want 9", len(syms))
	}
	for _, sym := range syms {
		if _, ok := Lookup(sym); !ok {
			t.Fatalf("Symbols returned unknown key %q", sym)
		}
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		sym  Symbol
		data string
		want bool
	}{
		{Code128, "ABC-123", true},
		{Code128, "", false},
		{Code39, "ABC-123. $/+%", true},
		{Code39, "abc", false}, // lowercase not in the Code 39 set
		{EAN13, "123456789012", true},
		{EAN13, "1234567890128", true},
		{EAN13, "12345678901", false}, // 11 digits too short
		{EAN13, "12345678901a", false},
		{EAN8, "1234567", true},
		{EAN8, "123456", false},
		{UPCA, "03600029145", true},
		{UPCA, "036000291452", true},
		{ITF, "1234", true},
		{ITF, "123", false}, // odd length
		{QRCode, "https://example.com/?q=1", true},
		{DataMatrix, "payload", true},
		{PDF417, "payload", true},
		{Symbol("NOPE"), "anything", false},
	}
	for _, tc := range cases {
		if got := Validate(tc.data, tc.sym); got != tc.want {
			t.Fatalf("Validate(%q, %s) = %v, want %v", tc.data, tc.sym, got, tc.want)
		}
	}
}

func TestChecksum(t *testing.T) {
	cases := []struct {
		sym   Symbol
		data  string
		digit int
		ok    bool
	}{
		{EAN13, "12345678901", 4, true},
		{EAN13, "123456789012", 8, true},
		{UPCA, "03600029145", 2, true},
		{EAN13, "12345678901a", 0, false},
		{EAN13, "", 0, false},
		{Code128, "ABC", 0, false}, // no checksum rule
		{QRCode, "123", 0, false},
		{Symbol("NOPE"), "123", 0, false},
	}
	for _, tc := range cases {
		digit, ok := Checksum(tc.data, tc.sym)
		if digit != tc.digit || ok != tc.ok {
			t.Fatalf("Checksum(%q, %s) = (%d, %v), want (%d, %v)",
				tc.data, tc.sym, digit, ok, tc.digit, tc.ok)
		}
	}
}
