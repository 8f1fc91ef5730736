// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert implements the two pagepress conversions: rasterizing a
// PDF into numbered PNG files, and combining image files into one PDF.
package convert

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/pdiddy/pagepress/internal/raster"
)

// pageFileName returns the output name for page n (1-indexed, unpadded).
func pageFileName(n int) string {
	return fmt.Sprintf("page_%d.png", n)
}

// PDFToImages renders every page of pdfPath with r and writes it to
// outputDir as page_<n>.png, overwriting existing files. It returns the
// number of pages written. A missing PDF fails with ErrNotFound before the
// output directory is touched; a nil or unavailable rasterizer fails with
// ErrDependency. Pages written before a failure are left in place.
func PDFToImages(ctx context.Context, r raster.Rasterizer, pdfPath, outputDir string, dpi int) (int, error) {
	pdfPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return 0, fmt.Errorf("resolving PDF path: %w", err)
	}
	outputDir, err = filepath.Abs(outputDir)
	if err != nil {
		return 0, fmt.Errorf("resolving output directory: %w", err)
	}

	info, err := os.Stat(pdfPath)
	if err != nil || !info.Mode().IsRegular() {
		return 0, fmt.Errorf("%w: PDF %s", ErrNotFound, pdfPath)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return 0, fmt.Errorf("creating output directory: %w", err)
	}

	if r == nil {
		return 0, fmt.Errorf("%w: no rasterizer configured", ErrDependency)
	}
	if err := r.Available(); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrDependency, r.Name(), err)
	}

	count := 0
	err = r.Rasterize(ctx, pdfPath, dpi, func(page int, img image.Image) error {
		if err := writePNG(filepath.Join(outputDir, pageFileName(page)), img); err != nil {
			return err
		}
		count++
		return nil
	})
	return count, err
}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	return nil
}
