package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"spistory/internal/config"
	"spistory/internal/logger"
)

var listMisses bool

// validateCmd loads both resources and reports how well they join.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load the dataset and report join misses",
	Long: `Validate fetches the metrics CSV and the world boundaries exactly as the
story does, then prints record and feature counts, boundaries without a
metrics row (drawn in the neutral colour) and countries without a boundary.

Example:
  spistory validate --data spi.csv --world countries-110m.json --misses`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolVar(&listMisses, "misses", false, "list every unmatched name")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	log, err := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, Writer: os.Stderr})
	if err != nil {
		return err
	}
	d, err := newLoader(cfg, log).Load(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	misses, unmapped := d.Misses(), d.Unmapped()
	fmt.Fprintf(out, "countries:  %d (%s)\n", len(d.Countries), cfg.Data.Countries)
	fmt.Fprintf(out, "boundaries: %d (%s)\n", len(d.Boundaries), cfg.Data.World)
	fmt.Fprintf(out, "boundaries without metrics: %d\n", len(misses))
	if listMisses && len(misses) > 0 {
		fmt.Fprintf(out, "  %s\n", strings.Join(misses, "\n  "))
	}
	fmt.Fprintf(out, "countries without boundary: %d\n", len(unmapped))
	if listMisses && len(unmapped) > 0 {
		fmt.Fprintf(out, "  %s\n", strings.Join(unmapped, "\n  "))
	}
	return nil
}
