// Package cli provides the command-line interface for colorwaver.
package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/colorwaver/colorwaver/internal/version"
)

// Environment variables providing flag defaults.
const (
	envQuality  = "COLORWAVER_QUALITY"
	envInterval = "COLORWAVER_INTERVAL"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	verbose bool
	quiet   bool
}

// logger builds the command logger: debug with --verbose, errors only with
// --quiet, info otherwise. Output goes to the command's stderr.
func (o *globalOptions) logger(cmd *cobra.Command) hclog.Logger {
	level := hclog.Info
	switch {
	case o.verbose:
		level = hclog.Debug
	case o.quiet:
		level = hclog.Error
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "colorwaver",
		Output: cmd.ErrOrStderr(),
		Level:  level,
		Color:  hclog.AutoColor,
	})
}

// NewRootCmd builds the complete command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "colorwaver",
		Short: "Extract four-colour palettes from images and camera frames",
		Long: `colorwaver extracts a representative four-colour palette (primary,
secondary, background, detail) from still images and raw camera frames.

Analysis resolution is controlled by a quality tier: lowest (50px wide),
low (100px), high (250px) or highest (no resize).`,
		Version:      version.Short(),
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.SetVersionTemplate(version.String() + "\n")
	rootCmd.SetGlobalNormalizationFunc(normaliseFlagName)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newExtractCmd(opts))
	rootCmd.AddCommand(newFrameCmd(opts))
	rootCmd.AddCommand(newWatchCmd(opts))

	return rootCmd
}

// Execute runs the root command, exiting non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

// normaliseFlagName accepts underscores in place of dashes, so
// --pixel_spacing and --pixel-spacing name the same flag.
func normaliseFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

// envOr returns the environment value for key, or fallback when unset.
func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// envDuration returns the duration in key, or fallback when unset or invalid.
func envDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
