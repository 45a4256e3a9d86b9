// Package parser builds a syntax tree from the lexer's token sequence.
//
// The grammar is parsed by recursive descent with a single token of
// lookahead. Tokens are consumed left to right and never revisited; the
// first error aborts the whole parse.
//
//	program     = statement* EOF
//	statement   = declaration | expression ";"?
//	declaration = ("let" | "const") IDENT (":" TYPE)? ("=" expression)? ";"
//	expression  = additive ("=" additive ";")?
//	additive    = multiplicative (("+" | "-") multiplicative)*
//	multiplicative = primary (("*" | "/" | "%") primary)*
//	primary     = IDENT | NUMBER | "(" expression ")"
package parser

import (
	"fmt"
	"strings"

	"github.com/podhmo/jarlang/ast"
	"github.com/podhmo/jarlang/lexer"
)

// Error describes the first token the parser could not accept.
type Error struct {
	Expected string      // what the grammar required at this point
	Got      lexer.Token // the token actually found
	Message  string
}

func (e *Error) Error() string {
	if e.Expected == "" {
		return fmt.Sprintf("parse error: %s, got %s", e.Message, e.Got)
	}
	return fmt.Sprintf("parse error: %s: expected %s, got %s", e.Message, e.Expected, e.Got)
}

// TypeNames lists the scalar type annotations a declaration may carry.
var TypeNames = []string{
	"i8", "i16", "i32", "i64", "i128",
	"u8", "u16", "u32", "u64", "u128",
	"f32", "f64",
	"char", "str", "bool",
}

// IsTypeName reports whether name is a recognized scalar type annotation.
func IsTypeName(name string) bool {
	for _, n := range TypeNames {
		if n == name {
			return true
		}
	}
	return false
}

// Parser holds the remaining tokens of one input unit.
type Parser struct {
	tokens []lexer.Token
	pos    int
}

// New returns a parser over tokens. The sequence is expected to end with
// an EOF token, as produced by lexer.Tokenize.
func New(tokens []lexer.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != lexer.EOF {
		tokens = append(tokens, lexer.Token{Kind: lexer.EOF, Value: lexer.EndOfFile})
	}
	return &Parser{tokens: tokens}
}

// Parse tokenizes and parses src in one step.
func Parse(src string) (*ast.Program, error) {
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return New(tokens).ParseProgram()
}

// ParseProgram parses statements until the end of the token stream.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	program := &ast.Program{}
	for p.at().Kind != lexer.EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		program.Body = append(program.Body, stmt)
	}
	return program, nil
}

// at returns the current token without consuming it.
func (p *Parser) at() lexer.Token {
	return p.tokens[p.pos]
}

// eat consumes the current token. The trailing EOF is never consumed.
func (p *Parser) eat() lexer.Token {
	tok := p.tokens[p.pos]
	if tok.Kind != lexer.EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(kind lexer.Kind, message string) (lexer.Token, error) {
	tok := p.eat()
	if tok.Kind != kind {
		return tok, &Error{Expected: kind.String(), Got: tok, Message: message}
	}
	return tok, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.at().Kind {
	case lexer.Let, lexer.Const:
		return p.parseVariableDeclaration()
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	// An assignment has already consumed its own terminator.
	if _, ok := expr.(*ast.AssignmentExpression); !ok && p.at().Kind == lexer.Semicolon {
		p.eat()
	}
	return &ast.ExpressionStatement{Expression: expr}, nil
}

func (p *Parser) parseVariableDeclaration() (ast.Statement, error) {
	constant := p.eat().Kind == lexer.Const
	name, err := p.expect(lexer.Identifier, "declaration needs a name after let or const")
	if err != nil {
		return nil, err
	}
	decl := &ast.VariableDeclaration{Constant: constant, Name: name.Value}

	switch p.at().Kind {
	case lexer.Semicolon:
		tok := p.eat()
		if constant {
			return nil, &Error{Expected: lexer.Equals.String(), Got: tok, Message: "constant " + decl.Name + " must be initialized"}
		}
		return decl, nil
	case lexer.Colon:
		p.eat()
		typ, err := p.parseTypeAnnotation()
		if err != nil {
			return nil, err
		}
		decl.Type = typ
	}

	if _, err := p.expect(lexer.Equals, "declaration of "+decl.Name+" needs an initializer"); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	decl.Value = value
	if _, err := p.expect(lexer.Semicolon, "declaration must end with ';'"); err != nil {
		return nil, err
	}
	return decl, nil
}

// parseTypeAnnotation accepts an identifier naming a numeric kind or one
// of the bool, str and char keywords.
func (p *Parser) parseTypeAnnotation() (string, error) {
	tok := p.eat()
	switch tok.Kind {
	case lexer.Identifier, lexer.Bool, lexer.Str, lexer.Char:
		if IsTypeName(tok.Value) {
			return tok.Value, nil
		}
	}
	return "", &Error{Expected: "type name (" + strings.Join(TypeNames, ", ") + ")", Got: tok, Message: "unknown type in declaration"}
}

func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseAssignmentExpression()
}

func (p *Parser) parseAssignmentExpression() (ast.Expression, error) {
	left, err := p.parseAdditiveExpression()
	if err != nil {
		return nil, err
	}
	if p.at().Kind != lexer.Equals {
		return left, nil
	}
	p.eat()
	value, err := p.parseAdditiveExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Semicolon, "assignment must end with ';'"); err != nil {
		return nil, err
	}
	return &ast.AssignmentExpression{Target: left, Value: value}, nil
}

func (p *Parser) parseAdditiveExpression() (ast.Expression, error) {
	left, err := p.parseMultiplicativeExpression()
	if err != nil {
		return nil, err
	}
	for p.atOperator("+", "-") {
		op := p.eat().Value
		right, err := p.parseMultiplicativeExpression()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Left: left, Right: right, Operator: op}
	}
	return left, nil
}

func (p *Parser) parseMultiplicativeExpression() (ast.Expression, error) {
	left, err := p.parsePrimaryExpression()
	if err != nil {
		return nil, err
	}
	for p.atOperator("*", "/", "%") {
		op := p.eat().Value
		right, err := p.parsePrimaryExpression()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Left: left, Right: right, Operator: op}
	}
	return left, nil
}

func (p *Parser) atOperator(ops ...string) bool {
	tok := p.at()
	if tok.Kind != lexer.BinaryOperator {
		return false
	}
	for _, op := range ops {
		if tok.Value == op {
			return true
		}
	}
	return false
}

func (p *Parser) parsePrimaryExpression() (ast.Expression, error) {
	switch tok := p.at(); tok.Kind {
	case lexer.Identifier:
		return &ast.Identifier{Name: p.eat().Value}, nil
	case lexer.Number:
		p.eat()
		if strings.Contains(tok.Value, ".") {
			return &ast.FloatLiteral{Value: tok.Value}, nil
		}
		return &ast.IntegerLiteral{Value: tok.Value}, nil
	case lexer.OpenParen:
		p.eat()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.CloseParen, "unbalanced parenthesis"); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		return nil, &Error{Expected: "expression", Got: tok, Message: "unexpected token"}
	}
}
