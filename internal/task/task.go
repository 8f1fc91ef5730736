// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package task runs one conversion off the calling goroutine and hands a
// single outcome back to the caller.
package task

import (
	"context"
	"fmt"
)

// Outcome is the final status of a task.
type Outcome struct {
	// Message is the user-facing status line on success.
	Message string

	// Err is the failure, if any.
	Err error

	// Reveal names a location the caller may open afterwards; empty for none.
	Reveal string
}

// Func is the unit of work.
type Func func(ctx context.Context) Outcome

// Start runs fn on its own goroutine. The returned channel delivers exactly
// one Outcome and is then closed. A panic inside fn is delivered as an error.
// There is no cancellation once fn is running beyond what fn does with ctx.
func Start(ctx context.Context, fn Func) <-chan Outcome {
	ch := make(chan Outcome, 1)
	go func() {
		defer close(ch)
		defer func() {
			if r := recover(); r != nil {
				ch <- Outcome{Err: fmt.Errorf("conversion aborted: %v", r)}
			}
		}()
		ch <- fn(ctx)
	}()
	return ch
}

// Run starts fn and blocks for its outcome.
func Run(ctx context.Context, fn Func) Outcome {
	return <-Start(ctx, fn)
}
