package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/remarklens/remarklens/cmd/convert"
	"github.com/remarklens/remarklens/cmd/count"
	"github.com/remarklens/remarklens/cmd/diff"
	"github.com/remarklens/remarklens/cmd/version"
	"github.com/remarklens/remarklens/pkg/shared/config"
)

var (
	cfgFile   string
	logLevel  string
	colorMode string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "remarklens [command]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Remarklens compares, counts and converts compiler optimization remarks.",
		Long: `Remarklens reads the optimization remark streams emitted by a compiler and
reports how two compilations differ, aggregates remarks into counting tables,
and converts remark streams between serialization formats.
`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to the configuration file (default is ~/.remarklens/config.yml).")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log verbosity: trace, debug, info, warn or error.")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "", "Color mode for human-readable reports: auto, on or off.")
	rootCmd.AddCommand(version.NewVersionCmd())
	rootCmd.AddCommand(diff.DiffCmd)
	rootCmd.AddCommand(count.CountCmd)
	rootCmd.AddCommand(convert.ConvertCmd)
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

// initConfig loads the configuration file and applies the persistent flag
// overrides before any subcommand runs.
func initConfig() {
	var err error

	AppConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if logLevel != "" {
		AppConfig.Logger.Level = logLevel
	}
	if colorMode != "" {
		AppConfig.Output.Color = colorMode
	}

	if err := config.ValidateConfig(AppConfig); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	version.Init(AppConfig)
	diff.Init(AppConfig)
	count.Init(AppConfig)
	convert.Init(AppConfig)
}
