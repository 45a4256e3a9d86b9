package lexer

import "fmt"

// Kind identifies the grammatical category of a token.
type Kind int

const (
	EOF Kind = iota
	Identifier
	Number
	BinaryOperator
	Equals
	OpenParen
	CloseParen
	Colon
	Semicolon
	DoubleQuote
	SingleQuote
	Equality
	Inequality
	Increment
	Decrement
	Not

	// keywords
	Let
	Const
	Bool
	Str
	Char
)

var kindNames = [...]string{
	EOF:            "EOF",
	Identifier:     "Identifier",
	Number:         "Number",
	BinaryOperator: "BinaryOperator",
	Equals:         "Equals",
	OpenParen:      "OpenParen",
	CloseParen:     "CloseParen",
	Colon:          "Colon",
	Semicolon:      "Semicolon",
	DoubleQuote:    "DoubleQuote",
	SingleQuote:    "SingleQuote",
	Equality:       "Equality",
	Inequality:     "Inequality",
	Increment:      "Increment",
	Decrement:      "Decrement",
	Not:            "Not",
	Let:            "Let",
	Const:          "Const",
	Bool:           "Bool",
	Str:            "Str",
	Char:           "Char",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// keywords maps reserved words to their token kinds.
var keywords = map[string]Kind{
	"let":   Let,
	"const": Const,
	"bool":  Bool,
	"str":   Str,
	"char":  Char,
}

// LookupKeyword reports the keyword kind for word, or Identifier.
func LookupKeyword(word string) Kind {
	if k, ok := keywords[word]; ok {
		return k
	}
	return Identifier
}

// EndOfFile is the lexeme carried by the EOF token.
const EndOfFile = "EndOfFile"

// Token is a single lexeme with its kind.
type Token struct {
	Kind  Kind
	Value string
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Kind, t.Value)
}
