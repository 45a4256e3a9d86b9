// Package ast declares the syntax tree produced by the parser.
package ast

import (
	"strconv"
	"strings"
)

// Node is implemented by every syntax tree node.
type Node interface {
	String() string
}

// Statement is a top-level unit of a program.
type Statement interface {
	Node
	statementNode()
}

// Expression is a node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root of every parsed source.
type Program struct {
	Body []Statement
}

func (p *Program) String() string {
	lines := make([]string, 0, len(p.Body))
	for _, s := range p.Body {
		lines = append(lines, s.String())
	}
	return strings.Join(lines, "\n")
}

// VariableDeclaration is `let` or `const` with an optional type and initializer.
type VariableDeclaration struct {
	Constant bool
	Name     string
	Type     string     // empty when no annotation is given
	Value    Expression // nil when no initializer is given
}

func (*VariableDeclaration) statementNode() {}

func (d *VariableDeclaration) String() string {
	var b strings.Builder
	if d.Constant {
		b.WriteString("const ")
	} else {
		b.WriteString("let ")
	}
	b.WriteString(d.Name)
	if d.Type != "" {
		b.WriteString(": ")
		b.WriteString(d.Type)
	}
	if d.Value != nil {
		b.WriteString(" = ")
		b.WriteString(d.Value.String())
	}
	b.WriteString(";")
	return b.String()
}

// ExpressionStatement wraps an expression used as a statement.
type ExpressionStatement struct {
	Expression Expression
}

func (*ExpressionStatement) statementNode() {}

func (s *ExpressionStatement) String() string {
	return s.Expression.String() + ";"
}

type Identifier struct {
	Name string
}

func (*Identifier) expressionNode()  {}
func (i *Identifier) String() string { return i.Name }

// IntegerLiteral keeps the source text; it is converted at evaluation time.
type IntegerLiteral struct {
	Value string
}

func (*IntegerLiteral) expressionNode()  {}
func (l *IntegerLiteral) String() string { return l.Value }

// FloatLiteral keeps the source text; it is converted at evaluation time.
type FloatLiteral struct {
	Value string
}

func (*FloatLiteral) expressionNode()  {}
func (l *FloatLiteral) String() string { return l.Value }

type CharacterLiteral struct {
	Value rune
}

func (*CharacterLiteral) expressionNode()  {}
func (l *CharacterLiteral) String() string { return strconv.QuoteRune(l.Value) }

type StringLiteral struct {
	Value string
}

func (*StringLiteral) expressionNode()  {}
func (l *StringLiteral) String() string { return strconv.Quote(l.Value) }

// BinaryExpression is `Left Operator Right` for one of + - * / %.
type BinaryExpression struct {
	Left     Expression
	Right    Expression
	Operator string
}

func (*BinaryExpression) expressionNode() {}

func (e *BinaryExpression) String() string {
	return "(" + e.Left.String() + " " + e.Operator + " " + e.Right.String() + ")"
}

// AssignmentExpression is `Target = Value`. The parser accepts any
// expression as the target; the evaluator rejects non-identifiers.
type AssignmentExpression struct {
	Target Expression
	Value  Expression
}

func (*AssignmentExpression) expressionNode() {}

func (e *AssignmentExpression) String() string {
	return e.Target.String() + " = " + e.Value.String()
}
