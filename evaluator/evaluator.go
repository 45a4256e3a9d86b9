// Package evaluator walks a jarlang syntax tree and computes its value
// against a scope arena.
package evaluator

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"

	"github.com/podhmo/jarlang/ast"
	"github.com/podhmo/jarlang/object"
	"github.com/podhmo/jarlang/scope"
)

var (
	ErrUndefined               = errors.New("undefined variable")
	ErrInvalidAssignmentTarget = errors.New("invalid assignment target")
	ErrUnsupportedNode         = errors.New("unsupported node")
	ErrInvalidLiteral          = errors.New("invalid literal")
)

// RuntimeError is an evaluation failure together with the node that caused it.
type RuntimeError struct {
	Node ast.Node
	Err  error
}

func (e *RuntimeError) Error() string {
	if e.Node == nil {
		return "runtime error: " + e.Err.Error()
	}
	return fmt.Sprintf("runtime error: %v (in %s)", e.Err, e.Node)
}

func (e *RuntimeError) Unwrap() error { return e.Err }

// Config holds the settings of an Evaluator.
type Config struct {
	Logger *slog.Logger
	// Strict turns arithmetic on mismatched or non-numeric operands into an
	// error. By default such an expression evaluates to null.
	Strict bool
}

// Evaluator evaluates nodes against the scopes of one arena.
type Evaluator struct {
	scopes *scope.Arena
	logger *slog.Logger
	strict bool
}

// New creates an Evaluator over scopes.
func New(scopes *scope.Arena, cfg Config) *Evaluator {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Evaluator{scopes: scopes, logger: logger, strict: cfg.Strict}
}

func (e *Evaluator) newError(node ast.Node, err error) error {
	return &RuntimeError{Node: node, Err: err}
}

// Eval is the dispatch on node kind. Errors are *RuntimeError values.
func (e *Evaluator) Eval(node ast.Node, env scope.ID) (object.Value, error) {
	switch n := node.(type) {
	case *ast.Program:
		return e.evalProgram(n, env)
	case *ast.VariableDeclaration:
		return e.evalVariableDeclaration(n, env)
	case *ast.ExpressionStatement:
		return e.Eval(n.Expression, env)
	case *ast.Identifier:
		return e.evalIdentifier(n, env)
	case *ast.IntegerLiteral:
		return e.evalIntegerLiteral(n)
	case *ast.FloatLiteral:
		return e.evalFloatLiteral(n)
	case *ast.CharacterLiteral:
		return object.Character(n.Value), nil
	case *ast.StringLiteral:
		return object.String(n.Value), nil
	case *ast.BinaryExpression:
		return e.evalBinaryExpression(n, env)
	case *ast.AssignmentExpression:
		return e.evalAssignmentExpression(n, env)
	}
	return object.NULL, e.newError(node, fmt.Errorf("%w: %T", ErrUnsupportedNode, node))
}

func (e *Evaluator) evalProgram(program *ast.Program, env scope.ID) (object.Value, error) {
	result := object.NULL
	for _, stmt := range program.Body {
		e.logger.Debug("eval statement", "type", fmt.Sprintf("%T", stmt))
		v, err := e.Eval(stmt, env)
		if err != nil {
			return object.NULL, err
		}
		result = v
	}
	return result, nil
}

func (e *Evaluator) evalVariableDeclaration(decl *ast.VariableDeclaration, env scope.ID) (object.Value, error) {
	val := object.NULL
	if decl.Value != nil {
		v, err := e.Eval(decl.Value, env)
		if err != nil {
			return object.NULL, err
		}
		val = v
	}

	if decl.Type != "" {
		kind, ok := object.ParseKind(decl.Type)
		if !ok {
			return object.NULL, e.newError(decl, fmt.Errorf("%w: unknown type %q", object.ErrTypeMismatch, decl.Type))
		}
		coerced, err := object.Coerce(val, kind)
		if err != nil {
			return object.NULL, e.newError(decl, fmt.Errorf("declaring %s: %w", decl.Name, err))
		}
		val = coerced
	}

	if err := e.scopes.Declare(env, decl.Name, val, decl.Constant); err != nil {
		return object.NULL, e.newError(decl, err)
	}
	e.logger.Debug("declare", "name", decl.Name, "kind", val.Kind(), "constant", decl.Constant)
	return val, nil
}

func (e *Evaluator) evalIdentifier(ident *ast.Identifier, env scope.ID) (object.Value, error) {
	val, ok := e.scopes.Lookup(env, ident.Name)
	if !ok {
		return object.NULL, e.newError(ident, fmt.Errorf("%w: %s", ErrUndefined, ident.Name))
	}
	return val, nil
}

// evalIntegerLiteral produces an i32. The lexer only emits digit runs, so a
// failure here means the literal does not fit in 32 bits.
func (e *Evaluator) evalIntegerLiteral(lit *ast.IntegerLiteral) (object.Value, error) {
	n, err := strconv.ParseInt(lit.Value, 10, 32)
	if err != nil {
		return object.NULL, e.newError(lit, fmt.Errorf("%w: %s does not fit in i32", ErrInvalidLiteral, lit.Value))
	}
	return object.Int32(int32(n)), nil
}

// evalFloatLiteral produces an f32.
func (e *Evaluator) evalFloatLiteral(lit *ast.FloatLiteral) (object.Value, error) {
	f, err := strconv.ParseFloat(lit.Value, 32)
	if err != nil || math.IsInf(f, 0) {
		return object.NULL, e.newError(lit, fmt.Errorf("%w: %s does not fit in f32", ErrInvalidLiteral, lit.Value))
	}
	return object.Float32(float32(f)), nil
}

func (e *Evaluator) evalBinaryExpression(expr *ast.BinaryExpression, env scope.ID) (object.Value, error) {
	left, err := e.Eval(expr.Left, env)
	if err != nil {
		return object.NULL, err
	}
	right, err := e.Eval(expr.Right, env)
	if err != nil {
		return object.NULL, err
	}

	result, err := object.Arithmetic(expr.Operator, left, right)
	if err != nil {
		if errors.Is(err, object.ErrOperandMismatch) && !e.strict {
			e.logger.Debug("operand mismatch yields null", "op", expr.Operator, "left", left.Kind(), "right", right.Kind())
			return object.NULL, nil
		}
		return object.NULL, e.newError(expr, err)
	}
	return result, nil
}

// evalAssignmentExpression coerces the new value to the kind currently
// stored under the target name. A binding that holds null takes the new
// value as it is.
func (e *Evaluator) evalAssignmentExpression(expr *ast.AssignmentExpression, env scope.ID) (object.Value, error) {
	ident, ok := expr.Target.(*ast.Identifier)
	if !ok {
		return object.NULL, e.newError(expr, fmt.Errorf("%w: expected identifier, got %s", ErrInvalidAssignmentTarget, expr.Target))
	}

	current, ok := e.scopes.Lookup(env, ident.Name)
	if !ok {
		return object.NULL, e.newError(expr, fmt.Errorf("%w: %s", ErrUndefined, ident.Name))
	}

	val, err := e.Eval(expr.Value, env)
	if err != nil {
		return object.NULL, err
	}
	if !current.IsNull() {
		val, err = object.Coerce(val, current.Kind())
		if err != nil {
			return object.NULL, e.newError(expr, fmt.Errorf("assigning %s: %w", ident.Name, err))
		}
	}

	if err := e.scopes.Assign(env, ident.Name, val); err != nil {
		return object.NULL, e.newError(expr, err)
	}
	e.logger.Debug("assign", "name", ident.Name, "kind", val.Kind())
	return val, nil
}
