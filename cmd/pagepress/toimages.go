// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pagepress/internal/convert"
	"github.com/pdiddy/pagepress/internal/raster"
	"github.com/pdiddy/pagepress/internal/task"
	"github.com/pdiddy/pagepress/pkg/types"
)

var toImagesCmd = &cobra.Command{
	Use:   "toimages <file.pdf>",
	Short: "Render every page of a PDF to PNG files",
	Long: `Render every page of a PDF to page_1.png, page_2.png, ... in the output
directory. Existing files with the same names are overwritten.

Rasterization uses Poppler's pdftoppm when it is available and falls back to
the embedded MuPDF engine (raster.backend selects one explicitly).`,
	Args: cobra.ExactArgs(1),
	RunE: runToImages,
}

func init() {
	toImagesCmd.Flags().StringP("output", "o", "", "output directory (required)")
	toImagesCmd.Flags().String("poppler-path", "", "directory holding the Poppler binaries")
	toImagesCmd.Flags().String("backend", "", "rasterizer: auto, poppler, or mupdf")
	toImagesCmd.Flags().Int("dpi", 0, "rendering resolution (default from config, 200)")
	toImagesCmd.Flags().Bool("open", false, "open the output directory when done")
	toImagesCmd.Flags().Bool("json", false, "print the result as JSON")
	_ = toImagesCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(toImagesCmd)
}

func runToImages(cmd *cobra.Command, args []string) error {
	pdfPath := args[0]
	outDir, _ := cmd.Flags().GetString("output")
	if outDir == "" {
		return fmt.Errorf("an output directory is required")
	}
	asJSON, _ := cmd.Flags().GetBool("json")

	rc := cfg.Raster
	if cmd.Flags().Changed("poppler-path") {
		rc.PopplerPath, _ = cmd.Flags().GetString("poppler-path")
	}
	if cmd.Flags().Changed("backend") {
		b, _ := cmd.Flags().GetString("backend")
		rc.Backend = types.RasterBackend(b)
	}
	if cmd.Flags().Changed("dpi") {
		rc.DPI, _ = cmd.Flags().GetInt("dpi")
	}
	if cmd.Flags().Changed("open") {
		cfg.Output.Open, _ = cmd.Flags().GetBool("open")
	}

	r, err := raster.Select(rc, nil)
	if err != nil {
		return err
	}

	absOut, err := filepath.Abs(outDir)
	if err != nil {
		return fmt.Errorf("resolving output directory: %w", err)
	}

	log.WithField("pdf", pdfPath).WithField("backend", r.Name()).WithField("dpi", rc.DPI).Info("Converting PDF to images")

	return execute(cmd.Context(), cmd.OutOrStdout(), conversion{
		kind:   types.KindPDFToImages,
		inputs: []string{pdfPath},
		output: absOut,
		work: func(ctx context.Context) (int, task.Outcome) {
			n, err := convert.PDFToImages(ctx, r, pdfPath, absOut, rc.DPI)
			if err != nil {
				return n, task.Outcome{Err: err}
			}
			return n, task.Outcome{
				Message: fmt.Sprintf("Done: %d pages saved to %s", n, absOut),
				Reveal:  absOut,
			}
		},
	}, asJSON)
}
