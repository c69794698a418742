package label

import (
	"math"
)

// This file holds unit conversion helpers. Every conversion is routed
// through device dots at a given resolution so that canvas units,
// millimeters, inches and points stay mutually consistent.

// Unit represents the unit a length value was authored in.
type Unit int

const (
	UnitDot Unit = iota // device dots at the target resolution
	UnitPx              // canvas units, 96 per inch
	UnitMM              // millimeters
	UnitCM              // centimeters
	UnitIN              // inches
	UnitPT              // typographic points, 72 per inch
)

// Per-inch constants used when routing through dots.
const (
	PxPerInch = 96.0
	MmPerInch = 25.4
	CmPerInch = 2.54
	PtPerInch = 72.0
)

// UnitToString returns the short suffix for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitDot:
		return "dot"
	case UnitPx:
		return "px"
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	case UnitPT:
		return "pt"
	default:
		return ""
	}
}

// perInch returns how many of the given unit make up one inch. Dots are
// resolution dependent and handled by the callers directly.
func perInch(u Unit) float64 {
	switch u {
	case UnitPx:
		return PxPerInch
	case UnitMM:
		return MmPerInch
	case UnitCM:
		return CmPerInch
	case UnitIN:
		return 1
	case UnitPT:
		return PtPerInch
	default:
		return 1
	}
}

// ToDots converts a value in the given unit to device dots at dpi.
func ToDots(v float64, u Unit, dpi float64) float64 {
	if u == UnitDot {
		return v
	}
	return v / perInch(u) * dpi
}

// FromDots converts device dots at dpi back to the given unit, the exact
// inverse of ToDots: FromDots(ToDots(v, u, dpi), u, dpi) ≈ v.
func FromDots(dots float64, u Unit, dpi float64) float64 {
	if u == UnitDot {
		return dots
	}
	return dots / dpi * perInch(u)
}

// RoundDots rounds to the nearest whole dot, half away from zero, so
// emitted coordinates are byte-deterministic. NaN and infinities coerce
// to 0 per the invalid-geometry policy.
func RoundDots(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v < 0 {
		return -int(math.Floor(-v + 0.5))
	}
	return int(math.Floor(v + 0.5))
}
