package diff

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/remarklens/remarklens/cmd/version"
	engine "github.com/remarklens/remarklens/internal/diff"
	"github.com/remarklens/remarklens/internal/filter"
	"github.com/remarklens/remarklens/internal/remark"
	"github.com/remarklens/remarklens/internal/report"
	"github.com/remarklens/remarklens/pkg/shared"
	"github.com/remarklens/remarklens/pkg/shared/config"
	"github.com/remarklens/remarklens/pkg/shared/errors"
	"github.com/remarklens/remarklens/pkg/shared/files"
	"github.com/remarklens/remarklens/pkg/shared/logger"
)

// RunOptionsDiff holds the arguments for the diff command.
type RunOptionsDiff struct {
	Parser        string
	Format        string
	OutputPath    string
	Verbose       bool
	StrictCompare bool
	OnlyCommon    bool
	OnlyDifferent bool
	TypeDiffOnly  bool
	ArgDiffOnly   bool
	Filter        filter.Spec
}

// Global variables for configuration and command arguments
var (
	AppConfig        *config.Config
	diffOptions      RunOptionsDiff
	exampleDiffUsage = `  # Comparing the remarks of two compilations
  remarklens diff before.opt.yaml after.opt.yaml

  # Limiting the comparison to the inlining pass and writing JSON
  remarklens diff --pass-name inline --format json before.opt.yaml after.opt.yaml

  # Producing a SARIF report for code review tooling
  remarklens diff --format sarif --output remarks.sarif before.opt.yaml after.opt.yaml

  # Showing only header-matched remarks whose types changed
  remarklens diff --only-show-common-remarks --show-remark-type-diff-only before.opt.yaml after.opt.yaml

  # Comparing msgpack streams with argument locations kept in play
  remarklens diff --parser msgpack --use-strict-compare before.opt after.opt`
)

// DiffCmd represents the diff command.
var DiffCmd = &cobra.Command{
	Use:                   "diff [--parser/-p PARSER] [--format/-f FORMAT] [--output/-o PATH] [flags] FILE_A FILE_B",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleDiffUsage,
	Short:                 "Compare the remarks of two compilations location by location",
	RunE:                  runDiffCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runDiffCommand executes the diff command.
func runDiffCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	logger := logger.NewLogger(AppConfig, "core-diff")

	if diffOptions.Format == "" {
		diffOptions.Format = config.SetThen(AppConfig.Output.FormatFor("text", "json", "sarif"), "text")
	}
	if err := validateDiffArgs(&diffOptions, args); err != nil {
		logger.Error("invalid diff arguments", "error", err)
		return err
	}

	format, err := remark.ParseFormat(diffOptions.Parser)
	if err != nil {
		logger.Error("invalid diff arguments", "error", err)
		return err
	}
	filters, err := diffOptions.Filter.Build()
	if err != nil {
		logger.Error("invalid diff arguments", "error", err)
		return err
	}

	pathA, pathB := args[0], args[1]
	var indexA, indexB *engine.Index
	var g errgroup.Group
	g.Go(func() error {
		var err error
		indexA, err = buildIndex(pathA, format, filters)
		return err
	})
	g.Go(func() error {
		var err error
		indexB, err = buildIndex(pathB, format, filters)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Error("failed to read remarks", "error", err)
		return err
	}
	logger.Debug("inputs indexed", "locations_a", indexA.Len(), "locations_b", indexB.Len())

	diffs := engine.Diff(indexA, indexB, engine.Options{
		StrictCompare: diffOptions.StrictCompare,
		OnlyCommon:    diffOptions.OnlyCommon,
		OnlyDifferent: diffOptions.OnlyDifferent,
		TypeDiffOnly:  diffOptions.TypeDiffOnly,
		ArgDiffOnly:   diffOptions.ArgDiffOnly,
	})

	out, err := files.CreateOutput(diffOptions.OutputPath)
	if err != nil {
		logger.Error("failed to open the report destination", "error", err)
		return err
	}
	defer out.Close()

	if err := writeReport(out, report.Inputs{A: pathA, B: pathB}, diffs); err != nil {
		err = errors.NewSinkError(files.DisplayName(diffOptions.OutputPath), err)
		logger.Error("failed to write the report", "error", err)
		return err
	}

	logger.Info("diff command completed successfully")
	return nil
}

// buildIndex reads one input end to end into a location index.
func buildIndex(path string, format remark.Format, filters filter.Filters) (*engine.Index, error) {
	in, err := files.OpenInput(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	ix, err := engine.BuildIndex(format.NewSource(in), filters)
	if err != nil {
		return nil, errors.NewSourceError(path, err)
	}
	return ix, nil
}

// writeReport renders the diffs in the selected format.
func writeReport(w io.Writer, in report.Inputs, diffs []engine.LocationDiff) error {
	switch diffOptions.Format {
	case "json":
		return report.WriteDiffJSON(w, in, diffs, diffOptions.Verbose)
	case "sarif":
		semver := version.CoreVersion
		if semver == "unknown" {
			semver = ""
		}
		return report.WriteDiffSarif(w, in, diffs, semver)
	default:
		return report.WriteDiffText(w, diffs, report.TextOptions{
			Color:   useColor(diffOptions.OutputPath),
			Verbose: diffOptions.Verbose,
		})
	}
}

// useColor resolves the color mode for this invocation. Auto mode enables
// color only when the report goes to a terminal; forcing color on overrides
// the color library's own terminal detection.
func useColor(outputPath string) bool {
	switch AppConfig.Output.Color {
	case config.ColorOn:
		color.NoColor = false
		return true
	case config.ColorOff:
		return false
	}
	if outputPath != "" && outputPath != files.StdStream {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Initialize flags for the diff command.
func init() {
	DiffCmd.Flags().StringVarP(&diffOptions.Parser, "parser", "p", "yaml", "Serialization format of the input files: yaml or msgpack.")
	DiffCmd.Flags().StringVarP(&diffOptions.Format, "format", "f", "", "Report format: text, json or sarif. Defaults to the configured output format, or text.")
	DiffCmd.Flags().StringVarP(&diffOptions.OutputPath, "output", "o", "", "Path to the output file. Defaults to stdout.")
	DiffCmd.Flags().BoolVarP(&diffOptions.Verbose, "verbose", "v", false, "Include the arguments shared by both sides in the report.")
	DiffCmd.Flags().BoolVar(&diffOptions.StrictCompare, "use-strict-compare", false, "Keep location-bearing arguments when comparing remarks.")
	DiffCmd.Flags().BoolVar(&diffOptions.OnlyCommon, "only-show-common-remarks", false, "Suppress remarks that appear on one side only.")
	DiffCmd.Flags().BoolVar(&diffOptions.OnlyDifferent, "only-show-different-remarks", false, "Suppress header-matched remark pairs.")
	DiffCmd.Flags().BoolVar(&diffOptions.TypeDiffOnly, "show-remark-type-diff-only", false, "Keep only header-matched pairs whose types differ.")
	DiffCmd.Flags().BoolVar(&diffOptions.ArgDiffOnly, "show-arg-diff-only", false, "Keep only header-matched pairs of the same type that differ in arguments.")
	DiffCmd.Flags().BoolP("help", "h", false, "Show help for the diff command.")
	filter.RegisterFlags(DiffCmd.Flags(), &diffOptions.Filter)
}
