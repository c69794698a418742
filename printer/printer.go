// Package printer dispatches a resolved label document to one of the
// supported printer command languages. Requesting an unsupported protocol
// is the only error the emission path ever surfaces; every data-quality
// problem inside a document is absorbed by the emitters themselves.
package printer

import (
	"errors"
	"fmt"

	"github.com/printable/stencil/label"
	"github.com/printable/stencil/printer/epl"
	"github.com/printable/stencil/printer/sbpl"
	"github.com/printable/stencil/printer/zpl"
)

// Protocol selects a target command language.
type Protocol string

const (
	ProtocolZPL  Protocol = "zpl"
	ProtocolEPL  Protocol = "epl"
	ProtocolSBPL Protocol = "sbpl"
)

// ErrUnknownProtocol reports a caller-contract violation: a protocol this
// build does not emit.
var ErrUnknownProtocol = errors.New("printer: unknown protocol")

// Options is the superset of per-protocol emission options. Each protocol
// reads the fields it understands and ignores the rest.
type Options struct {
	DPI        float64 // zpl, epl
	PrintSpeed int     // zpl ^PR, epl S
	Density    int     // zpl ^MD, epl D
	TearOff    int     // zpl ~TA
	Copies     int     // epl P
}

// Emit renders elements on canvas into the requested protocol's command
// stream. The same inputs always yield byte-identical output.
func Emit(p Protocol, elements []label.Element, canvas label.Canvas, opts Options) (string, error) {
	switch p {
	case ProtocolZPL:
		return zpl.Emit(elements, canvas, zpl.Options{
			DPI:        opts.DPI,
			PrintSpeed: opts.PrintSpeed,
			Density:    opts.Density,
			TearOff:    opts.TearOff,
		}), nil
	case ProtocolEPL:
		return epl.Emit(elements, canvas, epl.Options{
			Speed:   opts.PrintSpeed,
			Density: opts.Density,
			Copies:  opts.Copies,
			DPI:     opts.DPI,
		}), nil
	case ProtocolSBPL:
		return sbpl.Emit(elements, canvas), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownProtocol, p)
	}
}

// Protocols lists the supported protocol keys in a fixed order.
func Protocols() []Protocol {
	return []Protocol{ProtocolZPL, ProtocolEPL, ProtocolSBPL}
}
