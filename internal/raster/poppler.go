// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package raster

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/pdiddy/pagepress/internal/external"
)

const (
	binPdftoppm = "pdftoppm"
	pagePrefix  = "page"
)

// pdftoppm pads the page number to the width of the last page number,
// so a 12-page document yields page-01.png ... page-12.png.
var popplerPageRe = regexp.MustCompile(`^` + pagePrefix + `-(\d+)\.png$`)

// Poppler renders pages by running pdftoppm into a scratch directory and
// decoding the PNG files it leaves behind.
type Poppler struct {
	tool *external.Tool
}

// NewPoppler returns a Poppler rasterizer. binDir is the directory holding
// pdftoppm; empty means PATH.
func NewPoppler(binDir string, ex external.Executor) *Poppler {
	return &Poppler{tool: external.NewTool(binPdftoppm, binDir, ex)}
}

func (p *Poppler) Name() string { return "poppler" }

func (p *Poppler) Available() error {
	return p.tool.Available()
}

func (p *Poppler) Rasterize(ctx context.Context, pdfPath string, dpi int, fn PageFunc) error {
	if dpi <= 0 {
		dpi = DefaultDPI
	}

	tmpDir, err := os.MkdirTemp("", "pagepress-poppler-*")
	if err != nil {
		return fmt.Errorf("creating scratch directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	args := []string{"-r", strconv.Itoa(dpi), "-png", pdfPath, filepath.Join(tmpDir, pagePrefix)}
	if err := p.tool.Run(ctx, args, nil); err != nil {
		return fmt.Errorf("rasterizing %s: %w", pdfPath, err)
	}

	files, err := collectPages(tmpDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%s produced no pages for %s", binPdftoppm, pdfPath)
	}

	for i, f := range files {
		img, err := decodePNG(f)
		if err != nil {
			return err
		}
		if err := fn(i+1, img); err != nil {
			return err
		}
	}
	return nil
}

// collectPages returns the pdftoppm output files in dir ordered by page number.
func collectPages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s output: %w", binPdftoppm, err)
	}

	type numbered struct {
		n    int
		path string
	}
	var pages []numbered
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := popplerPageRe.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		pages = append(pages, numbered{n: n, path: filepath.Join(dir, e.Name())})
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].n < pages[j].n })

	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = p.path
	}
	return out, nil
}

func decodePNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening rendered page: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding rendered page %s: %w", filepath.Base(path), err)
	}
	return img, nil
}
