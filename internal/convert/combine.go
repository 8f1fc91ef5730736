// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/pagepress/internal/pdfinfo"
	"github.com/pdiddy/pagepress/pkg/types"
)

const (
	// DefaultResolution is the DPI tag used to size output pages.
	DefaultResolution = 100.0

	defaultJPEGQuality = 95
)

// CombineOptions controls how images are placed into the output PDF.
type CombineOptions struct {
	// Resolution maps pixels to page size: points = pixels * 72 / Resolution.
	Resolution float64

	// Encoding selects PNG (lossless) or JPEG page images.
	Encoding types.PageEncoding

	// JPEGQuality applies when Encoding is JPEG.
	JPEGQuality int

	// AutoOrient applies EXIF orientation before normalizing.
	AutoOrient bool

	// Verify re-reads the written PDF and checks the page count.
	Verify bool
}

// OptionsFromConfig builds CombineOptions from the combine config section,
// filling defaults for unset fields.
func OptionsFromConfig(cfg types.CombineConfig) CombineOptions {
	return CombineOptions{
		Resolution:  cfg.Resolution,
		Encoding:    cfg.Encoding,
		JPEGQuality: cfg.JPEGQuality,
		AutoOrient:  cfg.AutoOrient,
		Verify:      cfg.Verify,
	}.withDefaults()
}

func (o CombineOptions) withDefaults() CombineOptions {
	if o.Resolution <= 0 {
		o.Resolution = DefaultResolution
	}
	if o.Encoding == "" {
		o.Encoding = types.EncodingPNG
	}
	if o.JPEGQuality <= 0 || o.JPEGQuality > 100 {
		o.JPEGQuality = defaultJPEGQuality
	}
	return o
}

// ImagesToPDF combines the images directly inside imagesDir whose names end
// in one of exts (case-insensitive) into outputPDF, one page per image in
// lexical filename order. It returns the absolute output path.
func ImagesToPDF(imagesDir, outputPDF string, exts []string, opts CombineOptions) (string, error) {
	imagesDir, err := filepath.Abs(imagesDir)
	if err != nil {
		return "", fmt.Errorf("resolving input directory: %w", err)
	}
	info, err := os.Stat(imagesDir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: input directory %s", ErrNotFound, imagesDir)
	}

	files, err := SelectImages(imagesDir, exts)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("%w: no images in %s with extensions %v", ErrNotFound, imagesDir, exts)
	}

	opts = opts.withDefaults()
	return combine(files, outputPDF, opts, newPDFWriter(opts))
}

// ImagesToPDFFromFiles combines paths into outputPDF in the order given.
// Callers filter out missing files beforehand; a missing entry still fails
// with ErrNotFound when it is decoded.
func ImagesToPDFFromFiles(paths []string, outputPDF string, opts CombineOptions) (string, error) {
	if len(paths) == 0 {
		return "", fmt.Errorf("%w: no image files provided", ErrNotFound)
	}
	opts = opts.withDefaults()
	return combine(paths, outputPDF, opts, newPDFWriter(opts))
}

// SelectImages lists the regular files directly inside dir whose names end
// in one of exts, compared case-insensitively, sorted by name. Symlinks count
// when they resolve to a regular file.
func SelectImages(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	lowered := make([]string, len(exts))
	for i, e := range exts {
		lowered[i] = strings.ToLower(e)
	}

	var names []string
	for _, e := range entries {
		if !isRegular(dir, e) {
			continue
		}
		if hasAnySuffix(strings.ToLower(e.Name()), lowered) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	files := make([]string, len(names))
	for i, n := range names {
		files[i] = filepath.Join(dir, n)
	}
	return files, nil
}

func isRegular(dir string, e os.DirEntry) bool {
	if e.Type().IsRegular() {
		return true
	}
	if e.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, e.Name()))
	return err == nil && info.Mode().IsRegular()
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suf := range suffixes {
		if suf != "" && strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

// combine decodes and normalizes every file in order, then writes the
// accumulated pages to outputPDF. Nothing is written unless every input
// decodes.
func combine(files []string, outputPDF string, opts CombineOptions, w pageWriter) (string, error) {
	out, err := filepath.Abs(outputPDF)
	if err != nil {
		return "", fmt.Errorf("resolving output path: %w", err)
	}

	for _, f := range files {
		img, err := decodeImage(f, opts.AutoOrient)
		if err != nil {
			return "", err
		}
		if err := w.AddPage(Normalize(img)); err != nil {
			return "", fmt.Errorf("adding %s: %w", filepath.Base(f), err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	if err := w.WriteFile(out); err != nil {
		return "", err
	}

	if opts.Verify {
		n, err := pdfinfo.PageCount(out)
		if err != nil {
			return "", fmt.Errorf("verifying %s: %w", out, err)
		}
		if n != len(files) {
			return "", fmt.Errorf("verifying %s: wrote %d pages, expected %d", out, n, len(files))
		}
	}
	return out, nil
}
