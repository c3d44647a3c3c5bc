// Package token implements the scanner: a regular-grammar-driven tokenizer
// producing an ordered sequence of (kind, text, line, column) tokens.
//
// The rule table is built with participle's stateful lexer engine (the same
// regex-table construction the Guix language's scanner uses), wrapped by
// Lexer below, which classifies each matched lexeme into Kind and converts
// participle's 1-based line/column reporting into this package's Token.
package token

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/participle/v2/lexer"
)

// Kind enumerates token categories.
type Kind int

const (
	EOF Kind = iota
	Identifier
	IntegerLit
	DecimalLit
	CharacterLit
	StringLit
	Keyword
	Operator
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Identifier:
		return "identifier"
	case IntegerLit:
		return "integer"
	case DecimalLit:
		return "decimal"
	case CharacterLit:
		return "character"
	case StringLit:
		return "string"
	case Keyword:
		return "keyword"
	case Operator:
		return "operator"
	default:
		return "?"
	}
}

// Token is one lexeme in the scanned sequence.
type Token struct {
	Kind   Kind
	Text   string
	Line   int
	Column int
}

var keywords = map[string]bool{
	"void": true, "int": true, "float": true, "char": true, "bool": true,
	"struct": true, "union": true, "enum": true,
	"if": true, "else": true, "while": true, "for": true,
	"return": true, "break": true, "continue": true,
	"true": true, "false": true, "nullptr": true,
}

// rule-table symbol names, in precedence order. Longest operators are
// listed first so the regex alternation prefers them over their prefixes.
var rules = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "BlockComment", Pattern: `/\*([^*]|\*[^/])*\*/`},
		{Name: "Decimal", Pattern: `\d+\.\d+`},
		{Name: "Hex", Pattern: `0[xX][0-9a-fA-F]+`},
		{Name: "Octal", Pattern: `0[0-7]+`},
		{Name: "Integer", Pattern: `\d+`},
		{Name: "Char", Pattern: `'(\\.|[^'\\])'`},
		{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "Op", Pattern: `(==|!=|<=|>=|&&|\|\||\+\+|--|\+=|-=|\*=|/=|%=|->|[+\-*/%<>=!&.,;(){}\[\]])`},
	},
})

// Lexer tokenizes a single source file, tracked under name for the
// (line, column) positions attached to each Token and to LexicalError.
type Lexer struct {
	inner lexer.Lexer
}

// New builds a Lexer over src, attributed to filename for diagnostics.
func New(filename, src string) (*Lexer, error) {
	inner, err := rules.LexString(filename, src)
	if err != nil {
		return nil, err
	}
	return &Lexer{inner: inner}, nil
}

// LexicalError is raised for a character the scanner's rule table does not
// match, per the language's lexical grammar.
type LexicalError struct {
	Line, Column int
	Rune         rune
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("LexicalError(%d, %d): unexpected character %q", e.Line, e.Column, e.Rune)
}

// Tokens scans the entire input and returns the ordered token sequence,
// terminated by a single EOF token. Whitespace and both comment forms are
// discarded at the rule-table level and never appear in the result.
func (l *Lexer) Tokens() ([]Token, error) {
	var out []Token
	for {
		tok, err := l.inner.Next()
		if err != nil {
			return nil, classifyLexError(err)
		}
		if tok.EOF() {
			out = append(out, Token{Kind: EOF, Line: tok.Pos.Line, Column: tok.Pos.Column})
			return out, nil
		}
		sym := rules.Symbols()[tok.Type]
		switch sym {
		case "Whitespace", "LineComment", "BlockComment":
			continue
		}
		out = append(out, classify(sym, tok))
	}
}

func classify(sym string, tok lexer.Token) Token {
	t := Token{Text: tok.Value, Line: tok.Pos.Line, Column: tok.Pos.Column}
	switch sym {
	case "Decimal":
		t.Kind = DecimalLit
	case "Hex", "Octal", "Integer":
		t.Kind = IntegerLit
	case "Char":
		t.Kind = CharacterLit
	case "String":
		t.Kind = StringLit
	case "Ident":
		if keywords[tok.Value] {
			t.Kind = Keyword
		} else {
			t.Kind = Identifier
		}
	case "Op":
		t.Kind = Operator
	}
	return t
}

func classifyLexError(err error) error {
	if le, ok := err.(interface {
		Position() lexer.Position
	}); ok {
		pos := le.Position()
		return &LexicalError{Line: pos.Line, Column: pos.Column}
	}
	return err
}

// ParseIntegerLiteral parses a scanned integer literal's text with
// base auto-detection (0x.. hex, 0.. octal, decimal otherwise), matching
// the lexer's "standard int-parsing with base auto-detection" contract.
func ParseIntegerLiteral(text string) (int, error) {
	v, err := strconv.ParseInt(text, 0, 64)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}
