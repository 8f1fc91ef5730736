// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reveal

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockExecutor struct {
	onPath map[string]bool
	runErr error
	ran    []string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.onPath[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	m.ran = append(m.ran, name+" "+args[0])
	return m.runErr
}

func TestOpenerFor(t *testing.T) {
	assert.Equal(t, "open", openerFor("darwin"))
	assert.Equal(t, "explorer", openerFor("windows"))
	assert.Equal(t, "xdg-open", openerFor("linux"))
	assert.Equal(t, "xdg-open", openerFor("freebsd"))
}

func TestReveal(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "out.pdf")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	tests := []struct {
		name    string
		target  string
		exec    *mockExecutor
		wantRan []string
		wantErr bool
	}{
		{
			name:    "opens directory",
			target:  dir,
			exec:    &mockExecutor{onPath: map[string]bool{"xdg-open": true}},
			wantRan: []string{"/usr/bin/xdg-open " + dir},
		},
		{
			name:    "opener missing",
			target:  dir,
			exec:    &mockExecutor{},
			wantErr: true,
		},
		{
			name:    "opener fails",
			target:  dir,
			exec:    &mockExecutor{onPath: map[string]bool{"xdg-open": true}, runErr: errors.New("no display")},
			wantRan: []string{"/usr/bin/xdg-open " + dir},
			wantErr: true,
		},
		{
			name:    "missing target",
			target:  filepath.Join(dir, "gone"),
			exec:    &mockExecutor{onPath: map[string]bool{"xdg-open": true}},
			wantErr: true,
		},
		{
			name:    "file target",
			target:  file,
			exec:    &mockExecutor{onPath: map[string]bool{"xdg-open": true}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newForOS("linux", tt.exec).Reveal(context.Background(), tt.target)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrReveal)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantRan, tt.exec.ran)
		})
	}
}

func TestContainingDir(t *testing.T) {
	assert.Equal(t, filepath.Join("a", "b"), ContainingDir(filepath.Join("a", "b", "out.pdf")))

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, wd, ContainingDir("out.pdf"))
}
