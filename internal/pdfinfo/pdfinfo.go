// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfinfo reads structural facts about PDF files with pdfcpu.
package pdfinfo

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

func init() {
	// pdfcpu otherwise writes a default config under the user config dir.
	api.DisableConfigDir()
}

// Info summarizes a PDF file.
type Info struct {
	Path  string `json:"path"`
	Pages int    `json:"pages"`

	// Valid reports whether pdfcpu's relaxed validation passed.
	Valid bool `json:"valid"`

	// Problem holds the validation failure, if any.
	Problem string `json:"problem,omitempty"`
}

// PageCount returns the number of pages in the PDF at path.
func PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("counting pages of %s: %w", path, err)
	}
	return n, nil
}

// Validate checks path against the PDF standard in relaxed mode.
func Validate(path string) error {
	if err := api.ValidateFile(path, nil); err != nil {
		return fmt.Errorf("validating %s: %w", path, err)
	}
	return nil
}

// Inspect returns the page count and validation result for path. A file
// that cannot be read at all is an error; a validation failure is reported
// in Info.
func Inspect(path string) (Info, error) {
	n, err := PageCount(path)
	if err != nil {
		return Info{}, err
	}
	info := Info{Path: path, Pages: n, Valid: true}
	if err := Validate(path); err != nil {
		info.Valid = false
		info.Problem = err.Error()
	}
	return info, nil
}
