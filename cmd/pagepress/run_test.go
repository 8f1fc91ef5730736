// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pagepress/internal/convert"
	"github.com/pdiddy/pagepress/internal/history"
	"github.com/pdiddy/pagepress/internal/task"
	"github.com/pdiddy/pagepress/pkg/types"
)

// withTestState installs a history database and a capturing logger for the
// duration of the test.
func withTestState(t *testing.T) (*test.Hook, string) {
	t.Helper()
	oldCfg, oldLog := cfg, log
	t.Cleanup(func() { cfg, log = oldCfg, oldLog })

	dbPath := filepath.Join(t.TempDir(), "history.db")
	cfg = types.Config{History: types.HistoryConfig{Enabled: true, Path: dbPath}}
	l, hook := test.NewNullLogger()
	log = l
	return hook, dbPath
}

func listRuns(t *testing.T, dbPath string) []types.Run {
	t.Helper()
	store, err := history.NewStore(types.HistoryConfig{Enabled: true, Path: dbPath})
	require.NoError(t, err)
	defer store.Close()
	runs, err := store.List(context.Background(), history.ListOptions{})
	require.NoError(t, err)
	return runs
}

func TestExecute_Success(t *testing.T) {
	_, dbPath := withTestState(t)

	var out bytes.Buffer
	err := execute(context.Background(), &out, conversion{
		kind:   types.KindPDFToImages,
		inputs: []string{"doc.pdf"},
		output: "/tmp/pages",
		work: func(ctx context.Context) (int, task.Outcome) {
			return 3, task.Outcome{Message: "Done: 3 pages saved to /tmp/pages"}
		},
	}, false)
	require.NoError(t, err)
	assert.Equal(t, "Done: 3 pages saved to /tmp/pages\n", out.String())

	runs := listRuns(t, dbPath)
	require.Len(t, runs, 1)
	assert.Equal(t, types.RunSucceeded, runs[0].Status)
	assert.Equal(t, 3, runs[0].Pages)
	assert.Equal(t, []string{"doc.pdf"}, runs[0].Inputs)
}

func TestExecute_JSON(t *testing.T) {
	withTestState(t)
	cfg.History.Enabled = false

	var out bytes.Buffer
	err := execute(context.Background(), &out, conversion{
		kind:   types.KindImagesToPDF,
		output: "/tmp/out.pdf",
		work: func(ctx context.Context) (int, task.Outcome) {
			return 2, task.Outcome{Message: "Done: wrote PDF /tmp/out.pdf"}
		},
	}, true)
	require.NoError(t, err)

	var got result
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, types.KindImagesToPDF, got.Kind)
	assert.Equal(t, 2, got.Pages)
	assert.Equal(t, "/tmp/out.pdf", got.Output)
}

func TestExecute_FailureRecordsKind(t *testing.T) {
	hook, dbPath := withTestState(t)

	var out bytes.Buffer
	err := execute(context.Background(), &out, conversion{
		kind:   types.KindImagesToPDF,
		inputs: []string{"missing.png"},
		output: "/tmp/out.pdf",
		work: func(ctx context.Context) (int, task.Outcome) {
			return 0, task.Outcome{Err: fmt.Errorf("%w: no valid image files found", convert.ErrNotFound)}
		},
	}, false)
	require.ErrorIs(t, err, convert.ErrNotFound)
	assert.Empty(t, out.String())

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "not_found", entry.Data["kind"])

	runs := listRuns(t, dbPath)
	require.Len(t, runs, 1)
	assert.Equal(t, types.RunFailed, runs[0].Status)
	assert.Equal(t, "not_found", runs[0].ErrorKind)
}

func TestExecute_PanicBecomesFailure(t *testing.T) {
	withTestState(t)
	cfg.History.Enabled = false

	err := execute(context.Background(), &bytes.Buffer{}, conversion{
		kind: types.KindPDFToImages,
		work: func(ctx context.Context) (int, task.Outcome) {
			panic("boom")
		},
	}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestSingleDir(t *testing.T) {
	dir := t.TempDir()

	got, ok := singleDir([]string{dir}, "")
	assert.True(t, ok)
	assert.Equal(t, dir, got)

	_, ok = singleDir([]string{dir}, "list.txt")
	assert.False(t, ok)

	_, ok = singleDir([]string{dir, dir}, "")
	assert.False(t, ok)

	_, ok = singleDir([]string{filepath.Join(dir, "nope")}, "")
	assert.False(t, ok)
}

func TestGatherImages(t *testing.T) {
	withTestState(t)
	dir := t.TempDir()
	a := filepath.Join(dir, "a.png")
	b := filepath.Join(dir, "b.png")
	require.NoError(t, os.WriteFile(a, nil, 0o644))
	require.NoError(t, os.WriteFile(b, nil, 0o644))
	list := filepath.Join(dir, "pages.txt")
	require.NoError(t, os.WriteFile(list, []byte("# order\n"+a+"\n"+filepath.Join(dir, "gone.png")+"\n"), 0o644))

	t.Run("arguments then list entries", func(t *testing.T) {
		got, err := gatherImages([]string{b}, list)
		require.NoError(t, err)
		assert.Equal(t, []string{b, a}, got)
	})

	t.Run("missing list file", func(t *testing.T) {
		_, err := gatherImages([]string{a}, filepath.Join(dir, "nope.txt"))
		require.ErrorIs(t, err, convert.ErrNotFound)
		assert.Equal(t, "not_found", convert.Kind(err))
	})

	t.Run("nothing left", func(t *testing.T) {
		_, err := gatherImages([]string{filepath.Join(dir, "gone.png")}, "")
		require.ErrorIs(t, err, convert.ErrNotFound)
	})
}

func TestExecute_MissingListIsRecorded(t *testing.T) {
	_, dbPath := withTestState(t)
	missing := filepath.Join(t.TempDir(), "nope.txt")

	err := execute(context.Background(), &bytes.Buffer{}, conversion{
		kind:   types.KindImagesToPDF,
		inputs: []string{missing},
		output: "/tmp/out.pdf",
		work: func(ctx context.Context) (int, task.Outcome) {
			_, err := gatherImages(nil, missing)
			return 0, task.Outcome{Err: err}
		},
	}, false)
	require.ErrorIs(t, err, convert.ErrNotFound)

	runs := listRuns(t, dbPath)
	require.Len(t, runs, 1)
	assert.Equal(t, types.RunFailed, runs[0].Status)
	assert.Equal(t, "not_found", runs[0].ErrorKind)
}
