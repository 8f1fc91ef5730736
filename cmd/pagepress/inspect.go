// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pagepress/internal/pdfinfo"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.pdf>...",
	Short: "Report page count and validity of PDF files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		infos := make([]pdfinfo.Info, 0, len(args))
		for _, path := range args {
			info, err := pdfinfo.Inspect(path)
			if err != nil {
				return err
			}
			infos = append(infos, info)
		}

		w := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(infos)
		}
		for _, info := range infos {
			status := "valid"
			if !info.Valid {
				status = "invalid: " + info.Problem
			}
			fmt.Fprintf(w, "%s\t%d pages\t%s\n", info.Path, info.Pages, status)
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().Bool("json", false, "print results as JSON")
	rootCmd.AddCommand(inspectCmd)
}
