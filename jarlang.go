// Package jarlang is the entry point of the jarlang interpreter. An
// Interpreter owns one scope arena for its whole life, so successive calls
// to EvalString or EvalLine see each other's bindings.
package jarlang

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/podhmo/jarlang/ast"
	"github.com/podhmo/jarlang/evaluator"
	"github.com/podhmo/jarlang/fs"
	"github.com/podhmo/jarlang/lexer"
	"github.com/podhmo/jarlang/object"
	"github.com/podhmo/jarlang/parser"
	"github.com/podhmo/jarlang/scope"
)

// Version is the interpreter version, checked against a config file's requires field.
const Version = "v0.3.0"

// ErrRootScope is returned by ExitScope when no nested scope is open.
var ErrRootScope = errors.New("cannot exit the root scope")

// Interpreter holds the state of one program run or one interactive session.
type Interpreter struct {
	scopes  *scope.Arena
	current scope.ID
	eval    *evaluator.Evaluator

	logger *slog.Logger
	strict bool
}

// Option is a functional option for configuring the Interpreter.
type Option func(*Interpreter)

// WithLogger sets the logger used by the interpreter and its evaluator.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Interpreter) {
		i.logger = logger
	}
}

// WithStrictArithmetic makes arithmetic on operands of different kinds an
// error instead of null.
func WithStrictArithmetic(strict bool) Option {
	return func(i *Interpreter) {
		i.strict = strict
	}
}

// New creates an interpreter with a fresh root scope.
func New(options ...Option) *Interpreter {
	i := &Interpreter{
		scopes:  scope.NewArena(),
		current: scope.Root,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		opt(i)
	}
	if i.logger == nil {
		i.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	i.eval = evaluator.New(i.scopes, evaluator.Config{
		Logger: i.logger,
		Strict: i.strict,
	})
	return i
}

// Parse runs the lexer and the parser over source.
func (i *Interpreter) Parse(source string) (*ast.Program, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	program, err := parser.New(tokens).ParseProgram()
	if err != nil {
		return nil, err
	}
	i.logger.Debug("parsed", "tokens", len(tokens), "statements", len(program.Body))
	return program, nil
}

// EvalString parses source completely and then evaluates it in the current
// scope. A lex or parse error means nothing is evaluated.
func (i *Interpreter) EvalString(source string) (object.Value, error) {
	program, err := i.Parse(source)
	if err != nil {
		return object.NULL, err
	}
	return i.eval.Eval(program, i.current)
}

// EvalLine evaluates one line of interactive input. Bindings made by earlier
// lines stay visible, and a failing line leaves them untouched.
func (i *Interpreter) EvalLine(ctx context.Context, line string) (object.Value, error) {
	if err := ctx.Err(); err != nil {
		return object.NULL, err
	}
	i.logger.DebugContext(ctx, "eval line", "line", line)
	return i.EvalString(line)
}

// RunFile reads path from fsys and evaluates its contents.
func (i *Interpreter) RunFile(ctx context.Context, fsys fs.FS, path string) (object.Value, error) {
	if err := ctx.Err(); err != nil {
		return object.NULL, err
	}
	source, err := fsys.ReadFile(path)
	if err != nil {
		return object.NULL, fmt.Errorf("reading file %q: %w", path, err)
	}
	i.logger.DebugContext(ctx, "run file", "path", path, "bytes", len(source))
	return i.EvalString(string(source))
}

// Lookup returns the value bound to name as seen from the current scope.
func (i *Interpreter) Lookup(name string) (object.Value, bool) {
	return i.scopes.Lookup(i.current, name)
}

// EnterScope opens a scope nested in the current one and makes it current.
func (i *Interpreter) EnterScope() scope.ID {
	id, err := i.scopes.NewScope(i.current)
	if err != nil {
		// the current scope always belongs to the arena
		panic(err)
	}
	i.current = id
	return id
}

// ExitScope returns to the parent of the current scope. Bindings of the
// exited scope are no longer visible.
func (i *Interpreter) ExitScope() error {
	parent, ok := i.scopes.Parent(i.current)
	if !ok {
		return ErrRootScope
	}
	i.current = parent
	return nil
}

// Depth reports how many scopes enclose the current one.
func (i *Interpreter) Depth() int {
	depth := 0
	for id := i.current; ; depth++ {
		parent, ok := i.scopes.Parent(id)
		if !ok {
			return depth
		}
		id = parent
	}
}
