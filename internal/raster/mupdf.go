// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package raster

import (
	"context"
	"fmt"

	"github.com/gen2brain/go-fitz"
)

// MuPDF renders pages in-process with go-fitz.
type MuPDF struct{}

// NewMuPDF returns the in-process rasterizer.
func NewMuPDF() *MuPDF {
	return &MuPDF{}
}

func (m *MuPDF) Name() string { return "mupdf" }

// Available always succeeds: the library is linked into the binary.
func (m *MuPDF) Available() error { return nil }

func (m *MuPDF) Rasterize(ctx context.Context, pdfPath string, dpi int, fn PageFunc) error {
	if dpi <= 0 {
		dpi = DefaultDPI
	}

	doc, err := fitz.New(pdfPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", pdfPath, err)
	}
	defer doc.Close()

	for i := 0; i < doc.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		img, err := doc.ImageDPI(i, float64(dpi))
		if err != nil {
			return fmt.Errorf("rendering page %d: %w", i+1, err)
		}
		if err := fn(i+1, img); err != nil {
			return err
		}
	}
	return nil
}
