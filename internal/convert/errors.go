// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import "errors"

// Failure classes. Converters wrap these with %w so callers can test with
// errors.Is; anything else is an unexpected failure.
var (
	// ErrNotFound reports a missing input file or directory, or an empty
	// selection of images.
	ErrNotFound = errors.New("not found")

	// ErrDependency reports that the rasterization engine cannot run.
	ErrDependency = errors.New("dependency unavailable")

	// ErrDecode reports an image file the decoder does not understand.
	ErrDecode = errors.New("cannot decode image")
)

// Kind names the failure class of err for logs and the run history:
// "not_found", "dependency", "decode", or "unexpected". It returns the
// empty string for a nil error.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrDependency):
		return "dependency"
	case errors.Is(err, ErrDecode):
		return "decode"
	default:
		return "unexpected"
	}
}
