package lexer

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func eof() Token { return Token{Kind: EOF, Value: EndOfFile} }

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "empty",
			input: "",
			want:  []Token{eof()},
		},
		{
			name:  "whitespace only",
			input: " \t\r\n",
			want:  []Token{eof()},
		},
		{
			name:  "declaration",
			input: "let x: i8 = 10;",
			want: []Token{
				{Kind: Let, Value: "let"},
				{Kind: Identifier, Value: "x"},
				{Kind: Colon, Value: ":"},
				{Kind: Identifier, Value: "i8"},
				{Kind: Equals, Value: "="},
				{Kind: Number, Value: "10"},
				{Kind: Semicolon, Value: ";"},
				eof(),
			},
		},
		{
			name:  "keywords",
			input: "const bool str char letter",
			want: []Token{
				{Kind: Const, Value: "const"},
				{Kind: Bool, Value: "bool"},
				{Kind: Str, Value: "str"},
				{Kind: Char, Value: "char"},
				{Kind: Identifier, Value: "letter"},
				eof(),
			},
		},
		{
			name:  "arithmetic",
			input: "(1 + 2.5) * a1 / b % c - d",
			want: []Token{
				{Kind: OpenParen, Value: "("},
				{Kind: Number, Value: "1"},
				{Kind: BinaryOperator, Value: "+"},
				{Kind: Number, Value: "2.5"},
				{Kind: CloseParen, Value: ")"},
				{Kind: BinaryOperator, Value: "*"},
				{Kind: Identifier, Value: "a1"},
				{Kind: BinaryOperator, Value: "/"},
				{Kind: Identifier, Value: "b"},
				{Kind: BinaryOperator, Value: "%"},
				{Kind: Identifier, Value: "c"},
				{Kind: BinaryOperator, Value: "-"},
				{Kind: Identifier, Value: "d"},
				eof(),
			},
		},
		{
			name:  "lookahead operators",
			input: "a === b !== c ++ --",
			want: []Token{
				{Kind: Identifier, Value: "a"},
				{Kind: Equality, Value: "==="},
				{Kind: Identifier, Value: "b"},
				{Kind: Inequality, Value: "!=="},
				{Kind: Identifier, Value: "c"},
				{Kind: Increment, Value: "++"},
				{Kind: Decrement, Value: "--"},
				eof(),
			},
		},
		{
			name:  "double equals is two tokens",
			input: "==",
			want: []Token{
				{Kind: Equals, Value: "="},
				{Kind: Equals, Value: "="},
				eof(),
			},
		},
		{
			name:  "quotes",
			input: `"'`,
			want: []Token{
				{Kind: DoubleQuote, Value: `"`},
				{Kind: SingleQuote, Value: "'"},
				eof(),
			},
		},
		{
			name:  "trailing bang",
			input: "!",
			want:  []Token{{Kind: Not, Value: "!"}, eof()},
		},
		{
			name:  "trailing equals",
			input: "x =",
			want:  []Token{{Kind: Identifier, Value: "x"}, {Kind: Equals, Value: "="}, eof()},
		},
		{
			name:  "truncated inequality",
			input: "!=",
			want:  []Token{{Kind: Not, Value: "!"}, {Kind: Equals, Value: "="}, eof()},
		},
		{
			name:  "trailing plus",
			input: "+",
			want:  []Token{{Kind: BinaryOperator, Value: "+"}, eof()},
		},
		{
			name:  "number followed by identifier",
			input: "12ab",
			want:  []Token{{Kind: Number, Value: "12"}, {Kind: Identifier, Value: "ab"}, eof()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("Tokenize() failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Tokenize() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTokenize_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *Error
	}{
		{
			name:  "second point",
			input: "1.2.3",
			want:  &Error{Text: "1.2.", Message: "unexpected '.' in number"},
		},
		{
			name:  "unknown character",
			input: "let x = 1 # 2;",
			want:  &Error{Text: "#", Message: "unrecognized character"},
		},
		{
			name:  "leading point",
			input: ".5",
			want:  &Error{Text: ".", Message: "unrecognized character"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			if err == nil {
				t.Fatalf("Tokenize() should fail")
			}
			var lexErr *Error
			if !errors.As(err, &lexErr) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if diff := cmp.Diff(tt.want, lexErr); diff != "" {
				t.Errorf("error mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	if got := Inequality.String(); got != "Inequality" {
		t.Errorf("Inequality.String() = %q", got)
	}
	if got := Kind(99).String(); got != "Kind(99)" {
		t.Errorf("Kind(99).String() = %q", got)
	}
}
