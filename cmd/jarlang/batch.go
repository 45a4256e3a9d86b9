package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/podhmo/jarlang"
	"golang.org/x/sync/errgroup"
)

type fileResult struct {
	output string
	err    error
}

// runBatch evaluates each file with its own interpreter, at most s.jobs at a
// time. Results are printed in argument order once every file has finished.
// The first failure cancels files that have not started yet.
func (a *app) runBatch(ctx context.Context, s settings, files []string) error {
	results := make([]fileResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.jobs)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			output, err := a.runFile(ctx, s, path)
			results[i] = fileResult{output: output, err: err}
			return err
		})
	}
	firstErr := g.Wait()

	failed := false
	for i, path := range files {
		r := results[i]
		if r.err != nil {
			failed = true
			// files skipped because of an earlier failure are not reported
			if errors.Is(r.err, context.Canceled) && !errors.Is(firstErr, context.Canceled) {
				continue
			}
			fmt.Fprintf(a.stderr, "%s: %v\n", path, r.err)
			continue
		}
		if len(files) > 1 {
			fmt.Fprintf(a.stdout, "%s: %s\n", path, r.output)
		} else {
			fmt.Fprintln(a.stdout, r.output)
		}
	}
	if failed {
		return errReported
	}
	return nil
}

func (a *app) runFile(ctx context.Context, s settings, path string) (string, error) {
	interp := jarlang.New(a.options(s)...)
	if s.printAST {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		source, err := a.fsys.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading file %q: %w", path, err)
		}
		program, err := interp.Parse(string(source))
		if err != nil {
			return "", err
		}
		return program.String(), nil
	}

	a.logger.InfoContext(ctx, "running file", "path", path)
	v, err := interp.RunFile(ctx, a.fsys, path)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}
