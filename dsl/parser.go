// Package dsl parses the textual label description format. A document names
// a canvas size and lists positioned elements:
//
//	label "shipping" 400 300 {
//	    text greeting 10 10 200 24 {
//	        content: "Hi {{name}}"
//	        size: 12
//	        align: center
//	    }
//	    barcode sku 10 60 200 80 { data: "{{sku}}" symbol: CODE128 }
//	}
//
// Parsing is one-way: the DSL feeds the document model and nothing
// serializes back to it.
package dsl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})`},
		{Name: "Number", Pattern: `-?(?:\d+\.\d+|\d+)`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Punct", Pattern: `[{}:;]`},
	})

	documentParser = participle.MustBuild[Document](
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "LineComment"),
	)
)

// Document is the root AST node for a label description file.
type Document struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Name     *StringLiteral `parser:"Newline* 'label' ( @String )?"`
	Width    string         `parser:"@Number"`
	Height   string         `parser:"@Number"`
	Elements []*ElementDecl `parser:"'{' Newline* ( @@ Newline* )* '}' Newline*"`
}

// ElementDecl declares one element: its type keyword, an optional name, the
// x/y/width/height header and an optional property block.
type ElementDecl struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Kind  string         `parser:"@('text' | 'line' | 'box' | 'circle' | 'image' | 'barcode')"`
	Name  string         `parser:"( @Ident )?"`
	X     string         `parser:"@Number"`
	Y     string         `parser:"@Number"`
	W     string         `parser:"@Number"`
	H     string         `parser:"@Number"`
	Block *Block         `parser:"( Newline* @@ )?"`
}

// Block is a delimited list of key: value assignments.
type Block struct {
	Entries []*Assignment `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Assignment uses colon syntax (key: value).
type Assignment struct {
	Key   string     `parser:"@Ident"`
	Value *ValueNode `parser:"':' Newline* @@"`
}

// ValueNode represents a property value: quoted string, number, hex color
// or bare word (alignment keywords, symbol keys, booleans).
type ValueNode struct {
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	Color  *string        `parser:"| @Color"`
	Word   *string        `parser:"| @Ident"`
}

// Text returns the raw textual form of the value regardless of its shape.
func (v *ValueNode) Text() string {
	switch {
	case v == nil:
		return ""
	case v.String != nil:
		return string(*v.String)
	case v.Number != nil:
		return *v.Number
	case v.Color != nil:
		return *v.Color
	case v.Word != nil:
		return *v.Word
	default:
		return ""
	}
}

// Float parses the value as a number, reporting ok=false for non-numeric
// shapes.
func (v *ValueNode) Float() (float64, bool) {
	if v == nil || v.Number == nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(*v.Number, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses DSL content from an io.Reader.
func Parse(r io.Reader) (*Document, error) {
	return documentParser.Parse("", r)
}

// ParseString parses DSL content from a string.
func ParseString(input string) (*Document, error) {
	return documentParser.ParseString("", input)
}
