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
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{8}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})\b`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Size", Pattern: `\d+(?:\.\d+)?x\d+(?:\.\d+)?`},
		{Name: "Number", Pattern: `-?(?:\d+\.\d+|\d+)(?:px|pt|mm|in|ms|s)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Punct", Pattern: `[:;,]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	parseOptions = []participle.Option{
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	}

	surfaceParser = participle.MustBuild[Document](parseOptions...)
	scriptParser  = participle.MustBuild[Script](parseOptions...)
)

// Document is the root AST node of a surface file.
type Document struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Name string         `parser:"Newline* 'surface' @Ident"`
	Size string         `parser:"@Size"`
	Body *Block         `parser:"@@ Newline*"`
}

// Script is the root AST node of a session script.
type Script struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Body *Block         `parser:"Newline* 'session' @@ Newline*"`
}

// Block 是由花括号包裹的一组语句。
type Block struct {
	Statements []*Statement `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Statement inside a block (assignment/command/text literal).
type Statement struct {
	Assignment *Assignment  `parser:"  @@"`
	Command    *Command     `parser:"| @@"`
	Text       *TextLiteral `parser:"| @@"`
}

// Assignment uses colon syntax (key: value).
type Assignment struct {
	Key   string `parser:"@Ident ':'"`
	Value *Arg   `parser:"@@"`
}

// Command is a named instruction with positional arguments and an optional body.
type Command struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Name  string         `parser:"@Ident"`
	Args  []*Arg         `parser:"@@*"`
	Block *Block         `parser:"( Newline* @@ )?"`
}

// TextLiteral encapsulates raw string statements within blocks.
type TextLiteral struct {
	Value StringLiteral `parser:"@String"`
}

// Arg is a single scalar token: string, size (WxH), number, color or identifier.
type Arg struct {
	Pos    lexer.Position `parser:"" json:"-"`
	String *StringLiteral `parser:"  @String"`
	Size   *string        `parser:"| @Size"`
	Number *string        `parser:"| @Number"`
	Color  *string        `parser:"| @Color"`
	Ident  *string        `parser:"| @Ident"`
}

// Kind reports which alternative the argument holds.
func (a *Arg) Kind() string {
	switch {
	case a == nil:
		return ""
	case a.String != nil:
		return "string"
	case a.Size != nil:
		return "size"
	case a.Number != nil:
		return "number"
	case a.Color != nil:
		return "color"
	case a.Ident != nil:
		return "ident"
	default:
		return ""
	}
}

// Text returns the argument's value as written (strings are unquoted).
func (a *Arg) Text() string {
	switch {
	case a == nil:
		return ""
	case a.String != nil:
		return string(*a.String)
	case a.Size != nil:
		return *a.Size
	case a.Number != nil:
		return *a.Number
	case a.Color != nil:
		return *a.Color
	case a.Ident != nil:
		return *a.Ident
	default:
		return ""
	}
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

// Parse parses a surface file from an io.Reader.
func Parse(r io.Reader) (*Document, error) {
	return surfaceParser.Parse("", r)
}

// ParseString parses a surface file from a string.
func ParseString(input string) (*Document, error) {
	return surfaceParser.ParseString("", input)
}

// ParseScript parses a session script from an io.Reader.
func ParseScript(r io.Reader) (*Script, error) {
	return scriptParser.Parse("", r)
}

// ParseScriptString parses a session script from a string.
func ParseScriptString(input string) (*Script, error) {
	return scriptParser.ParseString("", input)
}
