// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pagepress CLI: convert PDFs to
// page images and combine images into a PDF.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pagepress/internal/logging"
	"github.com/pdiddy/pagepress/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// cfg is the effective configuration, loaded before every command runs.
	cfg types.Config

	// log is the shared logger, built from cfg.Log.
	log = logrus.New()
)

// rootCmd is the base command for the pagepress CLI.
var rootCmd = &cobra.Command{
	Use:   "pagepress",
	Short: "Convert PDFs to page images and images to PDF",
	Long: `pagepress converts between PDF documents and page images.

  toimages  renders every page of a PDF to page_<n>.png files
  topdf     combines a folder of images, or a list of image files, into one PDF

Settings come from pagepress.yaml (in the working directory or
~/.config/pagepress/), PAGEPRESS_* environment variables, and flags.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := decodeConfig(viper.GetViper())
		if err != nil {
			return err
		}
		cfg = c

		l, err := logging.New(cfg.Log, os.Stderr)
		if err != nil {
			return err
		}
		log = l
		if used := viper.ConfigFileUsed(); used != "" {
			log.WithField("file", used).Debug("using config file")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pagepress.yaml or ~/.config/pagepress/pagepress.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "text", "log format: text or json")

	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	configure(viper.GetViper(), cfgFile)

	// A missing config file is fine; defaults apply.
	_ = viper.ReadInConfig()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
