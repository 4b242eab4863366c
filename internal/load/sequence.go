// Package load composes the blocking lookups behind the console's screens.
//
// A screen load is a short chain of platform calls where each step feeds the
// next. Steps run off the UI loop (inside a tea.Cmd); the chain reports a
// single value or a single error, never a partial result.
package load

import (
	"context"
	"fmt"

	"github.com/atomicstack/pipeline-console/internal/logging"
	"golang.org/x/sync/errgroup"
)

// Step is one asynchronous stage of a load sequence.
type Step[In, Out any] func(ctx context.Context, in In) (Out, error)

// Named wraps step so its errors carry name as context.
func Named[In, Out any](name string, step Step[In, Out]) Step[In, Out] {
	return func(ctx context.Context, in In) (Out, error) {
		out, err := step(ctx, in)
		if err != nil {
			var zero Out
			return zero, &StageError{Stage: name, Err: err}
		}
		return out, nil
	}
}

// Then runs first and feeds its output to next. next never runs when first
// fails or the context is done.
func Then[A, B, C any](first Step[A, B], next Step[B, C]) Step[A, C] {
	return func(ctx context.Context, in A) (C, error) {
		var zero C
		mid, err := first(ctx, in)
		if err != nil {
			return zero, err
		}
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		return next(ctx, mid)
	}
}

// Both runs a and b concurrently and waits for both. If either fails, both
// results are dropped and the first error is returned.
func Both[A, B any](ctx context.Context, a func(context.Context) (A, error), b func(context.Context) (B, error)) (A, B, error) {
	var (
		ra A
		rb B
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := a(gctx)
		if err != nil {
			return err
		}
		ra = v
		return nil
	})
	g.Go(func() error {
		v, err := b(gctx)
		if err != nil {
			return err
		}
		rb = v
		return nil
	})
	if err := g.Wait(); err != nil {
		var za A
		var zb B
		return za, zb, err
	}
	return ra, rb, nil
}

// Detach starts fn in the background. Its error goes to onErr (or the error
// log when onErr is nil) and never reaches the caller.
func Detach(ctx context.Context, fn func(context.Context) error, onErr func(error)) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				report(onErr, fmt.Errorf("detached task panicked: %v", r))
			}
		}()
		if err := fn(ctx); err != nil {
			report(onErr, err)
		}
	}()
}

func report(onErr func(error), err error) {
	if onErr != nil {
		onErr(err)
		return
	}
	logging.Error(err)
}

// StageError records which step of a sequence failed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
