package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/podhmo/jarlang"
)

// prompter reads interactive input. *linerPrompter is the terminal
// implementation; tests use a scripted one.
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	Close() error
}

type linerPrompter struct {
	*liner.State
	history string
}

func newLinerPrompter(history string) (prompter, error) {
	ln := liner.NewLiner()
	ln.SetCtrlCAborts(true)
	if history != "" {
		if f, err := os.Open(history); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	return &linerPrompter{State: ln, history: history}, nil
}

// Close saves the history and restores the terminal.
func (p *linerPrompter) Close() error {
	if p.history != "" {
		if f, err := os.Create(p.history); err == nil {
			_, _ = p.WriteHistory(f)
			_ = f.Close()
		}
	}
	return p.State.Close()
}

func (a *app) runREPL(ctx context.Context, s settings) error {
	p, err := a.prompter(s.history)
	if err != nil {
		return fmt.Errorf("starting interactive session: %w", err)
	}
	defer p.Close()
	return a.repl(ctx, jarlang.New(a.options(s)...), p, s)
}

// repl evaluates one line at a time in a single session. A failing line is
// reported and the session continues with its bindings intact. The session
// ends on an empty line, "exit", or end of input.
func (a *app) repl(ctx context.Context, interp *jarlang.Interpreter, p prompter, s settings) error {
	for {
		line, err := p.Prompt(s.prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(a.stdout)
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "exit" {
			return nil
		}
		p.AppendHistory(line)

		if s.printAST {
			program, err := interp.Parse(line)
			if err != nil {
				fmt.Fprintln(a.stderr, err)
				continue
			}
			fmt.Fprintln(a.stdout, program)
			continue
		}

		v, err := interp.EvalLine(ctx, line)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			fmt.Fprintln(a.stderr, err)
			continue
		}
		fmt.Fprintln(a.stdout, v)
	}
}
