// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package raster renders PDF pages to in-memory images. Two engines are
// available: Poppler's pdftoppm, run as an external process, and MuPDF,
// linked in through go-fitz.
package raster

import (
	"context"
	"fmt"
	"image"

	"github.com/pdiddy/pagepress/internal/external"
	"github.com/pdiddy/pagepress/pkg/types"
)

// DefaultDPI matches the resolution the original desktop tool rendered at.
const DefaultDPI = 200

// PageFunc receives each rendered page in order. Pages are numbered from 1.
type PageFunc func(page int, img image.Image) error

// Rasterizer renders every page of a PDF, in page order.
type Rasterizer interface {
	// Name returns the engine name ("poppler" or "mupdf").
	Name() string

	// Available reports nil when the engine can run on this machine.
	Available() error

	// Rasterize renders each page of pdfPath at dpi and passes it to fn.
	// An error from fn stops rendering and is returned unchanged.
	Rasterize(ctx context.Context, pdfPath string, dpi int, fn PageFunc) error
}

// Select returns the rasterizer named by cfg.Backend. The auto backend
// prefers Poppler when pdftoppm resolves and otherwise uses MuPDF. A nil ex
// selects the real process executor.
func Select(cfg types.RasterConfig, ex external.Executor) (Rasterizer, error) {
	switch cfg.Backend {
	case types.BackendPoppler:
		return NewPoppler(cfg.PopplerPath, ex), nil
	case types.BackendMuPDF:
		return NewMuPDF(), nil
	case types.BackendAuto, "":
		// A configured Poppler directory is a request for Poppler; a missing
		// binary there surfaces as a dependency error instead of a fallback.
		p := NewPoppler(cfg.PopplerPath, ex)
		if cfg.PopplerPath != "" || p.Available() == nil {
			return p, nil
		}
		return NewMuPDF(), nil
	default:
		return nil, fmt.Errorf("unknown raster backend %q: use auto, poppler, or mupdf", cfg.Backend)
	}
}
