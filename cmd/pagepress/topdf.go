// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pagepress/internal/convert"
	"github.com/pdiddy/pagepress/internal/pdfinfo"
	"github.com/pdiddy/pagepress/internal/reveal"
	"github.com/pdiddy/pagepress/internal/selection"
	"github.com/pdiddy/pagepress/internal/task"
	"github.com/pdiddy/pagepress/pkg/types"
)

var toPDFCmd = &cobra.Command{
	Use:   "topdf <directory> | <image>... ",
	Short: "Combine images into a single PDF",
	Long: `Combine images into one PDF, one page per image.

With a single directory argument, every .png, .jpg and .jpeg file directly
inside it is used, sorted by file name. Otherwise the arguments (and any
--list file) name the images in page order; ';' separates several paths in
one argument. Missing files in a list are skipped with a warning.`,
	RunE: runToPDF,
}

func init() {
	toPDFCmd.Flags().StringP("output", "o", "", "output PDF path (required)")
	toPDFCmd.Flags().String("list", "", "file listing image paths, one per line")
	toPDFCmd.Flags().StringSlice("ext", nil, "extensions accepted in directory mode (default from config)")
	toPDFCmd.Flags().Bool("open", false, "open the folder containing the PDF when done")
	toPDFCmd.Flags().Bool("json", false, "print the result as JSON")
	_ = toPDFCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(toPDFCmd)
}

func runToPDF(cmd *cobra.Command, args []string) error {
	outPDF, _ := cmd.Flags().GetString("output")
	if outPDF == "" {
		return fmt.Errorf("an output PDF path is required")
	}
	listFile, _ := cmd.Flags().GetString("list")
	asJSON, _ := cmd.Flags().GetBool("json")
	if cmd.Flags().Changed("open") {
		cfg.Output.Open, _ = cmd.Flags().GetBool("open")
	}

	if len(args) == 0 && listFile == "" {
		return fmt.Errorf("give an image directory, image files, or --list")
	}

	absOut, err := filepath.Abs(outPDF)
	if err != nil {
		return fmt.Errorf("resolving output path: %w", err)
	}
	opts := convert.OptionsFromConfig(cfg.Combine)

	if dir, ok := singleDir(args, listFile); ok {
		exts := cfg.Combine.Extensions
		if cmd.Flags().Changed("ext") {
			exts, _ = cmd.Flags().GetStringSlice("ext")
		}
		log.WithField("dir", dir).WithField("extensions", exts).Info("Combining directory into PDF")

		return execute(cmd.Context(), cmd.OutOrStdout(), conversion{
			kind:   types.KindImagesToPDF,
			inputs: []string{dir},
			output: absOut,
			work: func(ctx context.Context) (int, task.Outcome) {
				return finishCombine(convert.ImagesToPDF(dir, absOut, exts, opts))
			},
		}, asJSON)
	}

	paths := selection.Expand(args)
	inputs := paths
	if listFile != "" {
		inputs = append(append([]string(nil), paths...), listFile)
	}
	log.WithField("files", len(paths)).WithField("list", listFile).Info("Combining selected images into PDF")

	return execute(cmd.Context(), cmd.OutOrStdout(), conversion{
		kind:   types.KindImagesToPDF,
		inputs: inputs,
		output: absOut,
		work: func(ctx context.Context) (int, task.Outcome) {
			existing, err := gatherImages(paths, listFile)
			if err != nil {
				return 0, task.Outcome{Err: err}
			}
			return finishCombine(convert.ImagesToPDFFromFiles(existing, absOut, opts))
		},
	}, asJSON)
}

// gatherImages appends the entries of listFile (if any) to paths and keeps
// the ones that exist, in order. A missing list file or an empty result
// fails with convert.ErrNotFound.
func gatherImages(paths []string, listFile string) ([]string, error) {
	if listFile != "" {
		listed, err := selection.LoadList(listFile)
		if err != nil {
			if errors.Is(err, selection.ErrListNotFound) {
				return nil, fmt.Errorf("%w: %w", convert.ErrNotFound, err)
			}
			return nil, err
		}
		paths = append(append([]string(nil), paths...), listed...)
	}

	existing := selection.Existing(paths, log)
	if len(existing) == 0 {
		return nil, fmt.Errorf("%w: no valid image files found", convert.ErrNotFound)
	}
	return existing, nil
}

// singleDir reports whether the arguments name exactly one directory and
// nothing else.
func singleDir(args []string, listFile string) (string, bool) {
	if len(args) != 1 || listFile != "" {
		return "", false
	}
	info, err := os.Stat(args[0])
	if err != nil || !info.IsDir() {
		return "", false
	}
	return args[0], true
}

// finishCombine turns a combiner result into a task outcome. The page count
// is read back from the written file.
func finishCombine(out string, err error) (int, task.Outcome) {
	if err != nil {
		return 0, task.Outcome{Err: err}
	}
	pages, perr := pdfinfo.PageCount(out)
	if perr != nil {
		log.WithError(perr).Debug("reading page count")
	}
	return pages, task.Outcome{
		Message: fmt.Sprintf("Done: wrote PDF %s", out),
		Reveal:  reveal.ContainingDir(out),
	}
}
