// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pagepress/internal/history"
	"github.com/pdiddy/pagepress/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent conversions",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().String("kind", "", "filter by kind: pdf-to-images or images-to-pdf")
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to show")
	historyCmd.Flags().String("format", "table", "output format: table, json, or yaml")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	if !cfg.History.Enabled {
		fmt.Fprintln(w, "History is disabled (history.enabled: false).")
		return nil
	}

	kind, _ := cmd.Flags().GetString("kind")
	limit, _ := cmd.Flags().GetInt("limit")
	format, _ := cmd.Flags().GetString("format")

	switch types.RunKind(kind) {
	case "", types.KindPDFToImages, types.KindImagesToPDF:
	default:
		return fmt.Errorf("unknown kind %q", kind)
	}

	store, err := history.NewStore(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.List(cmd.Context(), history.ListOptions{Kind: types.RunKind(kind), Limit: limit})
	if err != nil {
		return err
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	case "yaml":
		out, err := yaml.Marshal(runs)
		if err != nil {
			return fmt.Errorf("encoding runs: %w", err)
		}
		_, err = w.Write(out)
		return err
	case "table":
	default:
		return fmt.Errorf("unknown format %q: use table, json, or yaml", format)
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tWHEN\tKIND\tSTATUS\tPAGES\tOUTPUT\tINPUTS")
	for _, r := range runs {
		status := string(r.Status)
		if r.ErrorKind != "" {
			status += " (" + r.ErrorKind + ")"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\t%s\n",
			r.ID, r.StartedAt.Local().Format(time.DateTime), r.Kind, status, r.Pages, r.Output, strings.Join(r.Inputs, ", "))
	}
	return tw.Flush()
}
