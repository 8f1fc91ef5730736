// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package external locates and runs helper binaries: Poppler's pdftoppm for
// rasterization and the platform file opener used to reveal output.
package external

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Executor abstracts command execution for testing.
type Executor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// DefaultExecutor runs real processes.
var DefaultExecutor Executor = &osExecutor{}

// Tool is a named binary, optionally pinned to a directory. When dir is
// empty the binary is resolved on PATH.
type Tool struct {
	name string
	dir  string
	exec Executor
}

// NewTool returns a Tool for name, searched in dir (or PATH when dir is
// empty), executed through ex. A nil ex selects DefaultExecutor.
func NewTool(name, dir string, ex Executor) *Tool {
	if ex == nil {
		ex = DefaultExecutor
	}
	return &Tool{name: name, dir: dir, exec: ex}
}

// Path resolves the executable path.
func (t *Tool) Path() (string, error) {
	if t.dir == "" {
		p, err := t.exec.LookPath(t.name)
		if err != nil {
			return "", fmt.Errorf("%s not found on PATH: %w", t.name, err)
		}
		return p, nil
	}
	candidate := filepath.Join(t.dir, t.name+exeSuffix(runtime.GOOS))
	p, err := t.exec.LookPath(candidate)
	if err != nil {
		return "", fmt.Errorf("%s not found in %s: %w", t.name, t.dir, err)
	}
	return p, nil
}

// Available reports nil when the binary can be resolved.
func (t *Tool) Available() error {
	_, err := t.Path()
	return err
}

// Run executes the tool with args, writing its standard output to stdout.
// Standard error is captured and folded into the returned error.
func (t *Tool) Run(ctx context.Context, args []string, stdout io.Writer) error {
	p, err := t.Path()
	if err != nil {
		return err
	}
	if stdout == nil {
		stdout = io.Discard
	}
	var stderr bytes.Buffer
	if err := t.exec.Run(ctx, p, args, stdout, &stderr); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("running %s: %w: %s", t.name, err, msg)
		}
		return fmt.Errorf("running %s: %w", t.name, err)
	}
	return nil
}

func exeSuffix(goos string) string {
	if goos == "windows" {
		return ".exe"
	}
	return ""
}
