// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reveal opens an output location in the platform file browser.
// It is an optional post-action: callers log its failures and carry on.
package reveal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pdiddy/pagepress/internal/external"
)

// ErrReveal marks every failure to open an output location.
var ErrReveal = errors.New("cannot reveal output location")

// Opener launches the platform file browser.
type Opener struct {
	tool *external.Tool
}

// New returns an Opener for the running platform. A nil ex selects the
// real process executor.
func New(ex external.Executor) *Opener {
	return newForOS(runtime.GOOS, ex)
}

func newForOS(goos string, ex external.Executor) *Opener {
	return &Opener{tool: external.NewTool(openerFor(goos), "", ex)}
}

func openerFor(goos string) string {
	switch goos {
	case "darwin":
		return "open"
	case "windows":
		return "explorer"
	default:
		return "xdg-open"
	}
}

// Reveal opens dir. All failures wrap ErrReveal.
func (o *Opener) Reveal(ctx context.Context, dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReveal, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrReveal, dir)
	}
	if err := o.tool.Run(ctx, []string{dir}, nil); err != nil {
		return fmt.Errorf("%w: %v", ErrReveal, err)
	}
	return nil
}

// ContainingDir returns the directory that holds file, or the working
// directory when file has no directory part.
func ContainingDir(file string) string {
	dir := filepath.Dir(file)
	if dir == "." || dir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return dir
}
