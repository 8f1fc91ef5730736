// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfinfo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePDF(t *testing.T, pages int) string {
	t.Helper()
	pdf := gofpdf.New("P", "pt", "A4", "")
	for i := 0; i < pages; i++ {
		pdf.AddPage()
	}
	path := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, pdf.OutputFileAndClose(path))
	return path
}

func TestPageCount(t *testing.T) {
	for _, pages := range []int{1, 3} {
		n, err := PageCount(writePDF(t, pages))
		require.NoError(t, err)
		assert.Equal(t, pages, n)
	}
}

func TestInspect(t *testing.T) {
	path := writePDF(t, 2)
	info, err := Inspect(path)
	require.NoError(t, err)
	assert.Equal(t, Info{Path: path, Pages: 2, Valid: true}, info)
}

func TestUnreadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a pdf"), 0o644))

	_, err := PageCount(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "counting pages")

	_, err = Inspect(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}
