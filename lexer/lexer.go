// Package lexer turns jarlang source text into a flat token sequence.
package lexer

import (
	"fmt"
	"unicode"
)

// Error is returned when the source contains a character or sequence
// the lexer does not recognize.
type Error struct {
	Text    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("lex error: %s %q", e.Message, e.Text)
}

type lexer struct {
	src    []rune
	pos    int
	tokens []Token
}

// Tokenize scans src and returns its tokens, always terminated by an EOF token.
func Tokenize(src string) ([]Token, error) {
	l := &lexer{src: []rune(src)}
	for l.pos < len(l.src) {
		if err := l.next(); err != nil {
			return nil, err
		}
	}
	l.tokens = append(l.tokens, Token{Kind: EOF, Value: EndOfFile})
	return l.tokens, nil
}

func (l *lexer) emit(kind Kind, n int) {
	l.tokens = append(l.tokens, Token{Kind: kind, Value: string(l.src[l.pos : l.pos+n])})
	l.pos += n
}

// peek returns the rune at offset from the current position, or 0 past the end.
func (l *lexer) peek(offset int) rune {
	i := l.pos + offset
	if i < 0 || i >= len(l.src) {
		return 0
	}
	return l.src[i]
}

func (l *lexer) next() error {
	ch := l.src[l.pos]
	switch ch {
	case ' ', '\t', '\r', '\n':
		l.pos++
	case '(':
		l.emit(OpenParen, 1)
	case ')':
		l.emit(CloseParen, 1)
	case ';':
		l.emit(Semicolon, 1)
	case ':':
		l.emit(Colon, 1)
	case '"':
		l.emit(DoubleQuote, 1)
	case '\'':
		l.emit(SingleQuote, 1)
	case '*', '/', '%':
		l.emit(BinaryOperator, 1)
	case '+':
		if l.peek(1) == '+' {
			l.emit(Increment, 2)
		} else {
			l.emit(BinaryOperator, 1)
		}
	case '-':
		if l.peek(1) == '-' {
			l.emit(Decrement, 2)
		} else {
			l.emit(BinaryOperator, 1)
		}
	case '!':
		if l.peek(1) == '=' && l.peek(2) == '=' {
			l.emit(Inequality, 3)
		} else {
			l.emit(Not, 1)
		}
	case '=':
		if l.peek(1) == '=' && l.peek(2) == '=' {
			l.emit(Equality, 3)
		} else {
			l.emit(Equals, 1)
		}
	default:
		switch {
		case isDigit(ch):
			return l.number()
		case unicode.IsLetter(ch):
			l.word()
		default:
			return &Error{Text: string(ch), Message: "unrecognized character"}
		}
	}
	return nil
}

func (l *lexer) number() error {
	start := l.pos
	seenPoint := false
	for l.pos < len(l.src) {
		ch := l.src[l.pos]
		if ch == '.' {
			if seenPoint {
				return &Error{Text: string(l.src[start : l.pos+1]), Message: "unexpected '.' in number"}
			}
			seenPoint = true
		} else if !isDigit(ch) {
			break
		}
		l.pos++
	}
	l.tokens = append(l.tokens, Token{Kind: Number, Value: string(l.src[start:l.pos])})
	return nil
}

func (l *lexer) word() {
	start := l.pos
	for l.pos < len(l.src) && (unicode.IsLetter(l.src[l.pos]) || unicode.IsDigit(l.src[l.pos])) {
		l.pos++
	}
	text := string(l.src[start:l.pos])
	l.tokens = append(l.tokens, Token{Kind: LookupKeyword(text), Value: text})
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
