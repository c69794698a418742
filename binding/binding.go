// Package binding implements the placeholder micro-language: named, typed
// runtime values and the {{name}} / {{name|format}} resolution applied to
// text-bearing label properties. Resolution never fails; missing names stay
// verbatim and malformed format directives degrade to the plain value.
package binding

import (
	"strconv"
	"strings"
	"time"
)

// Kind tags a bound value. The tag is assigned once when the binding is
// constructed; the resolver dispatches on it instead of re-inspecting the
// value's shape on every resolution.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindDate
)

// Value is a typed runtime variable. Exactly one of the payload fields is
// meaningful, selected by Kind.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
	Bool bool
	Time time.Time
}

// Map binds variable names to values. The core only reads it.
type Map map[string]Value

// String constructs a string-kinded value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Number constructs a number-kinded value.
func Number(f float64) Value { return Value{Kind: KindNumber, Num: f} }

// Bool constructs a boolean-kinded value.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Date constructs a date-kinded value.
func Date(t time.Time) Value { return Value{Kind: KindDate, Time: t} }

// dateLayouts are the accepted shapes for date-parseable strings, tried in
// order by Auto.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
}

// Auto sniffs the kind of a raw string once, at construction time:
// date-parseable strings become dates, numerics become numbers, true/false
// become booleans and everything else stays a string.
func Auto(raw string) Value {
	s := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date(t)
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Number(f)
	}
	switch s {
	case "true", "false":
		return Bool(s == "true")
	}
	return String(raw)
}

// Plain renders the value without any format spec applied.
func (v Value) Plain() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindDate:
		return formatDate(v.Time, defaultDateFormat)
	default:
		return v.Str
	}
}
