// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the gps2shp CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/gps2shp/internal/history"
	"github.com/pdiddy/gps2shp/internal/ogr"
	"github.com/pdiddy/gps2shp/internal/pipeline"
	"github.com/pdiddy/gps2shp/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the conversion command itself; subcommands cover everything else.
var rootCmd = &cobra.Command{
	Use:   "gps2shp [flags] file...",
	Short: "Convert lng/lat vector lists to KML & ESRI shapefile formats",
	Long: `gps2shp converts plain-text longitude/latitude coordinate lists into KML
polygon documents and, via the GDAL ogr2ogr tool, into ESRI Shapefiles.

Every input file and every destination path is validated before any output
is written, so a multi-file batch never leaves a half-converted result set.

Input files contain one "longitude latitude" pair per non-blank line,
single-space separated. A polygon needs at least three pairs.`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "gps2shp v%s\n\n", version)

	cfg := convertConfig(cmd)

	// The tool identity check runs once per batch, before any validation
	// or writes.
	var tool pipeline.Converter
	if cfg.WriteShapefile {
		t, err := ogr.Find(cfg.ExePath, cfg.ToolTimeout)
		if err != nil {
			return err
		}
		tool = t
	}

	var rec pipeline.Recorder
	if cfg.HistoryDB != "" {
		store, err := history.Open(cfg.HistoryDB)
		if err != nil {
			return err
		}
		defer store.Close()
		rec = store
	}

	p := pipeline.New(cfg, tool, rec, out)
	_, err := p.Run(cmd.Context(), args)
	return err
}

// convertConfig assembles the run configuration from flags, the config file,
// and built-in defaults. Flags win over the config file.
func convertConfig(cmd *cobra.Command) types.ConvertConfig {
	overwrite, _ := cmd.Flags().GetBool("overwrite")
	noKML, _ := cmd.Flags().GetBool("no-kml")
	noSHP, _ := cmd.Flags().GetBool("no-shp")
	exePath, _ := cmd.Flags().GetString("exe-path")

	style := types.DefaultStyle()
	if v := viper.GetString("style.line_color"); v != "" {
		style.LineColor = v
	}
	if v := viper.GetFloat64("style.line_width"); v > 0 {
		style.LineWidth = v
	}
	if v := viper.GetString("style.poly_color"); v != "" {
		style.PolyColor = v
	}
	if viper.IsSet("style.poly_fill") {
		style.PolyFill = viper.GetBool("style.poly_fill")
	}
	if viper.IsSet("style.poly_outline") {
		style.PolyOutline = viper.GetBool("style.poly_outline")
	}

	timeout := viper.GetDuration("tool_timeout")
	if timeout == 0 {
		timeout = 5 * time.Minute
	}

	return types.ConvertConfig{
		Overwrite:      overwrite,
		WriteKML:       !noKML,
		WriteShapefile: !noSHP,
		ExePath:        exePath,
		ToolTimeout:    timeout,
		Style:          style,
		HistoryDB:      viper.GetString("history_db"),
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./gps2shp.yaml or ~/.config/gps2shp/config.yaml)")

	rootCmd.Flags().BoolP("overwrite", "w", false, "overwrite destination files")
	rootCmd.Flags().BoolP("no-kml", "k", false, "don't create KML files")
	rootCmd.Flags().BoolP("no-shp", "s", false, "don't create SHP, DBF, PRJ & SHX files")
	rootCmd.Flags().StringP("exe-path", "p", "", "alternate path for the ogr2ogr binary (default: search PATH)")
	rootCmd.MarkFlagsMutuallyExclusive("no-kml", "no-shp")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("gps2shp")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "gps2shp"))
		}
	}

	viper.SetEnvPrefix("GPS2SHP")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
