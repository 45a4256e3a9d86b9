package jarlangtest

import (
	"context"
	"fmt"

	"github.com/podhmo/jarlang"
	"github.com/podhmo/jarlang/object"
)

// Result provides access to the state left by a session.
type Result struct {
	// Values holds the value of each input unit, in order.
	Values []object.Value
	interp *jarlang.Interpreter
}

// Get retrieves a variable by name from the session's current scope.
func (r *Result) Get(name string) (object.Value, bool) {
	return r.interp.Lookup(name)
}

// Last returns the value of the final input unit, or null.
func (r *Result) Last() object.Value {
	if len(r.Values) == 0 {
		return object.NULL
	}
	return r.Values[len(r.Values)-1]
}

// Runner is a test helper that feeds several input units to one interpreter,
// the way an interactive session does.
type Runner struct {
	options []jarlang.Option
}

// NewRunner creates a new test runner. The options are passed to every
// interpreter it creates.
func NewRunner(options ...jarlang.Option) *Runner {
	return &Runner{options: options}
}

// Run evaluates each line in a fresh session and stops at the first failure.
// On failure the returned Result still holds the values produced so far.
func (r *Runner) Run(ctx context.Context, lines ...string) (*Result, error) {
	interp := jarlang.New(r.options...)
	result := &Result{interp: interp}
	for n, line := range lines {
		v, err := interp.EvalLine(ctx, line)
		if err != nil {
			return result, fmt.Errorf("line %d %q: %w", n+1, line, err)
		}
		result.Values = append(result.Values, v)
	}
	return result, nil
}
