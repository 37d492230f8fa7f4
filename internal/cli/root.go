// Package cli wires the spistory commands: the interactive story, dataset
// validation and configuration helpers.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"spistory/internal/config"
	"spistory/internal/dataset"
	"spistory/internal/logger"
	"spistory/internal/scene"
	"spistory/internal/tui"
)

// Version is stamped at build time with -ldflags "-X spistory/internal/cli.Version=...".
var Version = "dev"

var cfgFile string

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "spistory",
	Short: "spistory - a terminal data story for the Social Progress Index",
	Long: `spistory walks through the Social Progress Index from a world map down to
a single country, its three pillars and their components.

Data comes from a CSV with one row per country and a world boundary file
(TopoJSON or GeoJSON), either local paths or http(s) URLs.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runStory,
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "spistory %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	config.SetDefaults(viper.GetViper())

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.spistory/config.yaml)")
	pf.String("data", "", "metrics CSV path or URL")
	pf.String("world", "", "world boundaries path or URL (TopoJSON or GeoJSON)")
	pf.String("world-object", "", "TopoJSON object holding the countries")
	pf.Duration("timeout", 0, "load timeout")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.String("log-file", "", "write logs to this file")
	rootCmd.Flags().Int("top-n", 0, "countries in the top/bottom panels (1-10)")
	rootCmd.Flags().String("palette", "", "map palette ("+joinPalettes()+")")

	// Bind flags to viper
	_ = viper.BindPFlag("data.countries", pf.Lookup("data"))
	_ = viper.BindPFlag("data.world", pf.Lookup("world"))
	_ = viper.BindPFlag("data.world_object", pf.Lookup("world-object"))
	_ = viper.BindPFlag("data.timeout", pf.Lookup("timeout"))
	_ = viper.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = viper.BindPFlag("log.file", pf.Lookup("log-file"))
	_ = viper.BindPFlag("view.top_n", rootCmd.Flags().Lookup("top-n"))
	_ = viper.BindPFlag("view.palette", rootCmd.Flags().Lookup("palette"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads .env, the config file and SPISTORY_* variables.
func initConfig() {
	_ = godotenv.Load(".env")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".spistory"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}
	config.BindEnv(viper.GetViper())
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
		}
	}
}

func runStory(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("stdout is not a terminal; use 'spistory validate' to check the data without the UI")
	}
	// The UI owns the terminal, so logs go to a file or nowhere.
	var w io.Writer = io.Discard
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		w = f
	}
	log, err := logger.Setup(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, Writer: w})
	if err != nil {
		return err
	}
	sc, err := scene.NewScale(cfg.View.Palette)
	if err != nil {
		return err
	}
	log.Info("starting", "version", Version, "countries", cfg.Data.Countries, "world", cfg.Data.World)
	return tui.Run(tui.Options{
		Context:        cmd.Context(),
		Loader:         newLoader(cfg, log),
		Scale:          sc,
		TopN:           cfg.View.TopN,
		SortComponents: cfg.View.SortComponents,
		Logger:         log,
	})
}

func newLoader(cfg config.Config, log *slog.Logger) *dataset.Loader {
	return dataset.NewLoader(dataset.Options{
		Countries:   cfg.Data.Countries,
		World:       cfg.Data.World,
		WorldObject: cfg.Data.WorldObject,
		Timeout:     cfg.Data.Timeout,
		Logger:      log,
	})
}

func joinPalettes() string {
	return strings.Join(scene.Palettes(), ", ")
}
