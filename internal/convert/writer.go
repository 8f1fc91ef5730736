// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/jung-kurt/gofpdf"

	"github.com/pdiddy/pagepress/pkg/types"
)

// pointsPerInch is the PDF user-space unit density.
const pointsPerInch = 72.0

// pageWriter accumulates pages in memory and writes them out in one go.
type pageWriter interface {
	AddPage(img image.Image) error
	WriteFile(path string) error
}

// gofpdfWriter places each image on its own page sized to the image at
// the configured resolution.
type gofpdfWriter struct {
	pdf   *gofpdf.Fpdf
	opts  CombineOptions
	pages int
}

func newPDFWriter(opts CombineOptions) *gofpdfWriter {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "pt"})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("pagepress", true)
	return &gofpdfWriter{pdf: pdf, opts: opts}
}

// pageSize converts pixel bounds to points at resolution DPI.
func pageSize(b image.Rectangle, resolution float64) gofpdf.SizeType {
	return gofpdf.SizeType{
		Wd: float64(b.Dx()) * pointsPerInch / resolution,
		Ht: float64(b.Dy()) * pointsPerInch / resolution,
	}
}

func (w *gofpdfWriter) AddPage(img image.Image) error {
	var buf bytes.Buffer
	imageType := "PNG"
	switch w.opts.Encoding {
	case types.EncodingJPEG:
		imageType = "JPG"
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: w.opts.JPEGQuality}); err != nil {
			return fmt.Errorf("encoding page %d: %w", w.pages+1, err)
		}
	default:
		if err := png.Encode(&buf, img); err != nil {
			return fmt.Errorf("encoding page %d: %w", w.pages+1, err)
		}
	}

	w.pages++
	name := fmt.Sprintf("page-%d", w.pages)
	size := pageSize(img.Bounds(), w.opts.Resolution)
	opt := gofpdf.ImageOptions{ImageType: imageType}

	w.pdf.AddPageFormat("P", size)
	w.pdf.RegisterImageOptionsReader(name, opt, &buf)
	w.pdf.ImageOptions(name, 0, 0, size.Wd, size.Ht, false, opt, 0, "")
	return w.pdf.Error()
}

func (w *gofpdfWriter) WriteFile(path string) error {
	if err := w.pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
