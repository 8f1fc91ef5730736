// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pagepress/internal/convert"
	"github.com/pdiddy/pagepress/internal/history"
	"github.com/pdiddy/pagepress/internal/raster"
	"github.com/pdiddy/pagepress/pkg/types"
)

// configure points v at the config file and environment and installs
// defaults. An empty cfgFile searches . and ~/.config/pagepress.
func configure(v *viper.Viper, cfgFile string) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("pagepress")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "pagepress"))
		}
	}

	v.SetEnvPrefix("PAGEPRESS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("raster.backend", string(types.BackendAuto))
	v.SetDefault("raster.poppler_path", "")
	v.SetDefault("raster.dpi", raster.DefaultDPI)

	v.SetDefault("combine.resolution", convert.DefaultResolution)
	v.SetDefault("combine.extensions", types.DirectoryExtensions)
	v.SetDefault("combine.encoding", string(types.EncodingPNG))
	v.SetDefault("combine.jpeg_quality", 95)
	v.SetDefault("combine.auto_orient", false)
	v.SetDefault("combine.verify", true)

	v.SetDefault("output.open", false)

	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", history.DefaultPath())

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// decodeConfig reads the effective configuration out of v and checks the
// enumerated fields.
func decodeConfig(v *viper.Viper) (types.Config, error) {
	var c types.Config
	if err := v.Unmarshal(&c); err != nil {
		return types.Config{}, fmt.Errorf("decoding configuration: %w", err)
	}

	switch c.Raster.Backend {
	case types.BackendAuto, types.BackendPoppler, types.BackendMuPDF:
	default:
		return types.Config{}, fmt.Errorf("raster.backend %q: use auto, poppler, or mupdf", c.Raster.Backend)
	}
	switch c.Combine.Encoding {
	case types.EncodingPNG, types.EncodingJPEG:
	default:
		return types.Config{}, fmt.Errorf("combine.encoding %q: use png or jpeg", c.Combine.Encoding)
	}
	if len(c.Combine.Extensions) == 0 {
		return types.Config{}, fmt.Errorf("combine.extensions must list at least one suffix")
	}
	return c, nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := yaml.Marshal(&cfg)
		if err != nil {
			return fmt.Errorf("encoding configuration: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
