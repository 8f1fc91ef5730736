// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package selection turns user input into an ordered list of image files
// for the file-list combiner. Input arrives as semicolon-separated paths,
// positional arguments, or a list file with one path per line.
package selection

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pagepress/pkg/types"
)

// ErrListNotFound is returned when a list file does not exist.
var ErrListNotFound = errors.New("list file not found")

// Separator joins several paths in a single input field.
const Separator = ";"

// Split breaks a semicolon-separated input into trimmed, non-empty paths,
// keeping their order.
func Split(input string) []string {
	var out []string
	for _, p := range strings.Split(input, Separator) {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Expand applies Split to every argument and concatenates the results.
func Expand(args []string) []string {
	var out []string
	for _, a := range args {
		out = append(out, Split(a)...)
	}
	return out
}

// LoadList reads a list file: one path per line, blank lines and lines
// starting with # ignored.
func LoadList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrListNotFound, path)
		}
		return nil, fmt.Errorf("opening list file %s: %w", path, err)
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading list file %s: %w", path, err)
	}
	return out, nil
}

// Existing keeps the paths that name regular files, in order. Skipped
// entries are logged as warnings; they do not abort the selection. Files
// whose extension is outside types.SelectionExtensions are kept with a
// warning, since the decoder may still understand them.
func Existing(paths []string, log logrus.FieldLogger) []string {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		switch {
		case err != nil:
			log.WithField("path", p).Warn("skipping missing file")
		case !info.Mode().IsRegular():
			log.WithField("path", p).Warn("skipping non-file entry")
		default:
			if !slices.Contains(types.SelectionExtensions, strings.ToLower(filepath.Ext(p))) {
				log.WithField("path", p).Warn("unusual image extension")
			}
			out = append(out, p)
		}
	}
	return out
}
