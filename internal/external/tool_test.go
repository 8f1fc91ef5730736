// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package external

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	paths   map[string]bool // file -> whether LookPath succeeds
	runFunc func(name string, args []string, stdout, stderr io.Writer) error
	calls   []string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.paths[file] {
		if filepath.IsAbs(file) {
			return file, nil
		}
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	m.calls = append(m.calls, name+" "+strings.Join(args, " "))
	if m.runFunc != nil {
		return m.runFunc(name, args, stdout, stderr)
	}
	return nil
}

func TestToolPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "poppler", "bin")
	pinned := filepath.Join(dir, "pdftoppm"+exeSuffix(runtime.GOOS))

	tests := []struct {
		name     string
		dir      string
		paths    map[string]bool
		wantPath string
		errMsg   string
	}{
		{
			name:     "resolves on PATH",
			paths:    map[string]bool{"pdftoppm": true},
			wantPath: "/usr/bin/pdftoppm",
		},
		{
			name:   "missing from PATH",
			paths:  map[string]bool{},
			errMsg: "pdftoppm not found on PATH",
		},
		{
			name:     "resolves in pinned directory",
			dir:      dir,
			paths:    map[string]bool{pinned: true},
			wantPath: pinned,
		},
		{
			name:   "pinned directory ignores PATH",
			dir:    dir,
			paths:  map[string]bool{"pdftoppm": true},
			errMsg: "not found in " + dir,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool := NewTool("pdftoppm", tt.dir, &mockExecutor{paths: tt.paths})
			got, err := tool.Path()
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Error(t, tool.Available())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, got)
			assert.NoError(t, tool.Available())
		})
	}
}

func TestToolRun(t *testing.T) {
	t.Run("passes arguments and captures stdout", func(t *testing.T) {
		ex := &mockExecutor{
			paths: map[string]bool{"pdftoppm": true},
			runFunc: func(name string, args []string, stdout, stderr io.Writer) error {
				_, _ = stdout.Write([]byte("ok"))
				return nil
			},
		}
		var out bytes.Buffer
		err := NewTool("pdftoppm", "", ex).Run(context.Background(), []string{"-v"}, &out)
		require.NoError(t, err)
		assert.Equal(t, "ok", out.String())
		assert.Equal(t, []string{"/usr/bin/pdftoppm -v"}, ex.calls)
	})

	t.Run("folds stderr into the error", func(t *testing.T) {
		ex := &mockExecutor{
			paths: map[string]bool{"pdftoppm": true},
			runFunc: func(name string, args []string, stdout, stderr io.Writer) error {
				_, _ = stderr.Write([]byte("Syntax Error: Couldn't read xref table\n"))
				return errors.New("exit status 1")
			},
		}
		err := NewTool("pdftoppm", "", ex).Run(context.Background(), nil, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exit status 1")
		assert.Contains(t, err.Error(), "Couldn't read xref table")
	})

	t.Run("does not run an unresolved binary", func(t *testing.T) {
		ex := &mockExecutor{paths: map[string]bool{}}
		err := NewTool("pdftoppm", "", ex).Run(context.Background(), nil, nil)
		require.Error(t, err)
		assert.Empty(t, ex.calls)
	})
}

func TestExeSuffix(t *testing.T) {
	assert.Equal(t, ".exe", exeSuffix("windows"))
	assert.Equal(t, "", exeSuffix("linux"))
	assert.Equal(t, "", exeSuffix("darwin"))
}
