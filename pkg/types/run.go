// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for pagepress: configuration
// sections and the run records kept in the history database.
package types

import "time"

// RunKind identifies which conversion a run performed.
type RunKind string

const (
	KindPDFToImages RunKind = "pdf-to-images"
	KindImagesToPDF RunKind = "images-to-pdf"
)

// RunStatus is the terminal state of a conversion run.
type RunStatus string

const (
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
)

// Run is one recorded conversion.
type Run struct {
	// ID is assigned by the history store.
	ID int64 `json:"id" yaml:"id"`

	Kind RunKind `json:"kind" yaml:"kind"`

	// Inputs lists the source PDF, directory, or image files in the order
	// they were given.
	Inputs []string `json:"inputs" yaml:"inputs"`

	// Output is the output directory (pdf-to-images) or PDF path (images-to-pdf).
	Output string `json:"output" yaml:"output"`

	// Pages is the number of pages written.
	Pages int `json:"pages" yaml:"pages"`

	Status RunStatus `json:"status" yaml:"status"`

	// ErrorKind classifies a failure (not_found, dependency, decode, unexpected).
	ErrorKind string `json:"error_kind,omitempty" yaml:"error_kind,omitempty"`

	// Error is the failure message.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	StartedAt time.Time     `json:"started_at" yaml:"started_at"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
}
