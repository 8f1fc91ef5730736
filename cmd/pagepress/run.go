// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/pagepress/internal/convert"
	"github.com/pdiddy/pagepress/internal/history"
	"github.com/pdiddy/pagepress/internal/reveal"
	"github.com/pdiddy/pagepress/internal/task"
	"github.com/pdiddy/pagepress/pkg/types"
)

// conversion describes one run handed to execute.
type conversion struct {
	kind   types.RunKind
	inputs []string
	output string

	// work performs the conversion and returns the page count.
	work func(ctx context.Context) (pages int, out task.Outcome)
}

// result is the --json rendering of a finished run.
type result struct {
	Kind    types.RunKind `json:"kind"`
	Output  string        `json:"output"`
	Pages   int           `json:"pages"`
	Message string        `json:"message"`
}

// execute runs c as a background task, records it in the history, reveals
// the output when configured, and prints the status line (or JSON) to w.
func execute(ctx context.Context, w io.Writer, c conversion, asJSON bool) error {
	started := time.Now()
	var pages int
	out := task.Run(ctx, func(ctx context.Context) task.Outcome {
		n, o := c.work(ctx)
		pages = n
		return o
	})

	recordRun(ctx, types.Run{
		Kind:      c.kind,
		Inputs:    c.inputs,
		Output:    c.output,
		Pages:     pages,
		Status:    statusOf(out.Err),
		ErrorKind: convert.Kind(out.Err),
		Error:     errString(out.Err),
		StartedAt: started,
		Duration:  time.Since(started),
	})

	if out.Err != nil {
		log.WithField("kind", convert.Kind(out.Err)).WithError(out.Err).Error("Conversion failed")
		return out.Err
	}

	if cfg.Output.Open && out.Reveal != "" {
		if err := reveal.New(nil).Reveal(ctx, out.Reveal); err != nil {
			if errors.Is(err, reveal.ErrReveal) {
				log.WithError(err).Warn("could not open output location")
			} else {
				return err
			}
		}
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result{Kind: c.kind, Output: c.output, Pages: pages, Message: out.Message})
	}
	_, err := fmt.Fprintln(w, out.Message)
	return err
}

// recordRun saves run to the history database. Failures are logged and
// never change the outcome of the conversion.
func recordRun(ctx context.Context, run types.Run) {
	if !cfg.History.Enabled {
		return
	}
	store, err := history.NewStore(cfg.History)
	if err != nil {
		log.WithError(err).Warn("history unavailable")
		return
	}
	defer store.Close()

	saved, err := store.Record(ctx, run)
	if err != nil {
		log.WithError(err).Warn("recording run")
		return
	}
	log.WithField("id", saved.ID).Debug("run recorded")
}

func statusOf(err error) types.RunStatus {
	if err != nil {
		return types.RunFailed
	}
	return types.RunSucceeded
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
