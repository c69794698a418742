// Package barcode holds the static symbol table shared by the printer
// emitters: for each logical barcode symbol the per-protocol command
// fragments, the validation rules and the checksum rules. The table is a
// process-wide read-only constant; nothing in the core ever writes to it.
package barcode

import "regexp"

// Symbol is a logical barcode type key as stored on barcode elements.
type Symbol string

const (
	Code128    Symbol = "CODE128"
	Code39     Symbol = "CODE39"
	EAN13      Symbol = "EAN13"
	EAN8       Symbol = "EAN8"
	UPCA       Symbol = "UPCA"
	ITF        Symbol = "ITF"
	QRCode     Symbol = "QRCODE"
	DataMatrix Symbol = "DATAMATRIX"
	PDF417     Symbol = "PDF417"
)

// Spec describes one symbol: display name, the command fragment each
// protocol uses to select it, whether it is a 2D symbol, and the
// pattern/length checks Validate applies.
type Spec struct {
	Name string

	// Command fragments per protocol.
	ZPL  string // ZPL barcode selector, e.g. ^BC
	EPL  string // EPL2 B/b command code, e.g. 1 for Code 128
	SBPL string // SBPL barcode record prefix

	TwoD bool

	pattern  *regexp.Regexp
	minLen   int
	maxBytes int
}

// qrMaxBytes is the capacity of a version 40 QR code in byte mode.
const qrMaxBytes = 2953

var table = map[Symbol]Spec{
	Code128: {
		Name: "Code 128", ZPL: "^BC", EPL: "1", SBPL: "BG",
		pattern: regexp.MustCompile(`^[\x20-\x7e]+$`), minLen: 1, maxBytes: 80,
	},
	Code39: {
		Name: "Code 39", ZPL: "^B3", EPL: "3", SBPL: "B1",
		pattern: regexp.MustCompile(`^[0-9A-Z\-. $/+%]+$`), minLen: 1, maxBytes: 60,
	},
	EAN13: {
		Name: "EAN-13", ZPL: "^BE", EPL: "E30", SBPL: "BD3",
		pattern: regexp.MustCompile(`^[0-9]{12,13}$`), minLen: 12, maxBytes: 13,
	},
	EAN8: {
		Name: "EAN-8", ZPL: "^B8", EPL: "E80", SBPL: "BD4",
		pattern: regexp.MustCompile(`^[0-9]{7,8}$`), minLen: 7, maxBytes: 8,
	},
	UPCA: {
		Name: "UPC-A", ZPL: "^BU", EPL: "UA0", SBPL: "BD1",
		pattern: regexp.MustCompile(`^[0-9]{11,12}$`), minLen: 11, maxBytes: 12,
	},
	ITF: {
		Name: "Interleaved 2 of 5", ZPL: "^B2", EPL: "2", SBPL: "B2",
		pattern: regexp.MustCompile(`^(?:[0-9]{2})+$`), minLen: 2, maxBytes: 40,
	},
	QRCode: {
		Name: "QR Code", ZPL: "^BQ", EPL: "Q", SBPL: "2D30", TwoD: true,
		minLen: 1, maxBytes: qrMaxBytes,
	},
	DataMatrix: {
		Name: "Data Matrix", ZPL: "^BX", EPL: "D", SBPL: "2D50", TwoD: true,
		minLen: 1, maxBytes: 1556,
	},
	PDF417: {
		Name: "PDF417", ZPL: "^B7", EPL: "P", SBPL: "2D20", TwoD: true,
		minLen: 1, maxBytes: 1850,
	},
}

// Lookup returns the spec for a symbol. Unknown symbols report ok=false;
// emitters skip those elements without failing the stream.
func Lookup(sym Symbol) (Spec, bool) {
	s, ok := table[sym]
	return s, ok
}

// Symbols returns every known symbol key. Order is unspecified.
func Symbols() []Symbol {
	out := make([]Symbol, 0, len(table))
	for sym := range table {
		out = append(out, sym)
	}
	return out
}

// Validate applies the symbol's pattern and length checks to data. It is a
// plausibility gate, not a full standards validation.
func Validate(data string, sym Symbol) bool {
	spec, ok := table[sym]
	if !ok {
		return false
	}
	if len(data) < spec.minLen || len(data) > spec.maxBytes {
		return false
	}
	if spec.pattern != nil && !spec.pattern.MatchString(data) {
		return false
	}
	return true
}

// Checksum computes the standard modulo-10 weighted check digit where the
// symbology defines one here: EAN-13 weights alternate 1/3 starting at
// position 0, UPC-A uses the inverse 3/1 weighting. Symbols without a rule
// report ok=false. Non-digit input reports ok=false.
func Checksum(data string, sym Symbol) (int, bool) {
	var startWeight int
	switch sym {
	case EAN13:
		startWeight = 1
	case UPCA:
		startWeight = 3
	default:
		return 0, false
	}
	if data == "" {
		return 0, false
	}
	sum := 0
	for i, c := range data {
		if c < '0' || c > '9' {
			return 0, false
		}
		w := startWeight
		if i%2 == 1 {
			w = 4 - startWeight // alternate between 1 and 3
		}
		sum += int(c-'0') * w
	}
	return (10 - sum%10) % 10, true
}
