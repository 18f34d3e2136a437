package count

import (
	"io"

	"github.com/spf13/cobra"

	counter "github.com/remarklens/remarklens/internal/count"
	"github.com/remarklens/remarklens/internal/filter"
	"github.com/remarklens/remarklens/internal/remark"
	"github.com/remarklens/remarklens/internal/report"
	"github.com/remarklens/remarklens/pkg/shared"
	"github.com/remarklens/remarklens/pkg/shared/config"
	"github.com/remarklens/remarklens/pkg/shared/errors"
	"github.com/remarklens/remarklens/pkg/shared/files"
	"github.com/remarklens/remarklens/pkg/shared/logger"
)

// RunOptionsCount holds the arguments for the count command.
type RunOptionsCount struct {
	Parser     string
	Format     string
	OutputPath string
	CountBy    string
	GroupBy    string
	Keys       []string
	RKeys      []string
	Filter     filter.Spec
}

// Global variables for configuration and command arguments
var (
	AppConfig         *config.Config
	countOptions      RunOptionsCount
	exampleCountUsage = `  # Counting remarks per source file
  remarklens count compilation.opt.yaml

  # Counting inlining remarks per function
  remarklens count --pass-name inline --group-by function compilation.opt.yaml

  # Summing the 'Cost' argument of inlining remarks per function
  remarklens count --count-by key --keys Cost --pass-name inline --group-by function compilation.opt.yaml

  # Summing every integer-valued argument key, rendered as an aligned table
  remarklens count --count-by key --format table compilation.opt.yaml`
)

// CountCmd represents the count command.
var CountCmd = &cobra.Command{
	Use:                   "count [--parser/-p PARSER] [--format/-f FORMAT] [--output/-o PATH] [--count-by MODE] [--group-by MODE] [flags] FILE",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleCountUsage,
	Short:                 "Aggregate remarks into grouped tallies or argument key sums",
	RunE:                  runCountCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runCountCommand executes the count command.
func runCountCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	logger := logger.NewLogger(AppConfig, "core-count")

	if countOptions.Format == "" {
		countOptions.Format = config.SetThen(AppConfig.Output.FormatFor("csv", "table"), "csv")
	}
	if err := validateCountArgs(&countOptions, args); err != nil {
		logger.Error("invalid count arguments", "error", err)
		return err
	}

	format, err := remark.ParseFormat(countOptions.Parser)
	if err != nil {
		logger.Error("invalid count arguments", "error", err)
		return err
	}
	groupBy, err := counter.ParseGroupBy(countOptions.GroupBy)
	if err != nil {
		logger.Error("invalid count arguments", "error", err)
		return err
	}
	filters, err := countOptions.Filter.Build()
	if err != nil {
		logger.Error("invalid count arguments", "error", err)
		return err
	}

	path := args[0]
	table, err := buildTable(path, format, filters, groupBy)
	if err != nil {
		logger.Error("failed to count remarks", "error", err)
		return err
	}
	logger.Debug("remarks counted", "groups", len(table.Rows), "columns", len(table.Columns))

	out, err := files.CreateOutput(countOptions.OutputPath)
	if err != nil {
		logger.Error("failed to open the report destination", "error", err)
		return err
	}
	defer out.Close()

	if err := writeTable(out, table); err != nil {
		err = errors.NewSinkError(files.DisplayName(countOptions.OutputPath), err)
		logger.Error("failed to write the report", "error", err)
		return err
	}

	logger.Info("count command completed successfully")
	return nil
}

// buildTable reads the input and aggregates it with the configured counter.
// Key counting buffers the stream once and replays it, since key discovery
// and collection are separate passes.
func buildTable(path string, format remark.Format, filters filter.Filters, groupBy counter.GroupBy) (counter.Table, error) {
	in, err := files.OpenInput(path)
	if err != nil {
		return counter.Table{}, err
	}
	defer in.Close()
	src := format.NewSource(in)

	if countOptions.CountBy == "remark" {
		rc := counter.NewRemarkCounter(groupBy)
		if err := counter.Run(src, filters, rc); err != nil {
			return counter.Table{}, errors.NewSourceError(path, err)
		}
		return rc.Table(), nil
	}

	keyMatchers, err := buildKeyMatchers(countOptions.Keys, countOptions.RKeys)
	if err != nil {
		return counter.Table{}, err
	}
	remarks, err := remark.ReadAll(src)
	if err != nil {
		return counter.Table{}, errors.NewSourceError(path, err)
	}

	kc := counter.NewKeyCounter(groupBy)
	if err := kc.DiscoverKeys(remark.NewSliceSource(remarks), filters, keyMatchers); err != nil {
		return counter.Table{}, err
	}
	if err := counter.Run(remark.NewSliceSource(remarks), filters, kc); err != nil {
		return counter.Table{}, err
	}
	return kc.Table(), nil
}

// buildKeyMatchers compiles the key selection. With no keys given every
// argument key is eligible.
func buildKeyMatchers(keys, rkeys []string) ([]filter.Matcher, error) {
	exprs, isRegex := keys, false
	if len(keys) == 0 {
		exprs, isRegex = rkeys, true
		if len(rkeys) == 0 {
			exprs = []string{".*"}
		}
	}

	matchers := make([]filter.Matcher, 0, len(exprs))
	for _, expr := range exprs {
		m, err := filter.NewMatcher(expr, isRegex)
		if err != nil {
			return nil, err
		}
		matchers = append(matchers, m)
	}
	return matchers, nil
}

// writeTable renders the table in the selected format.
func writeTable(w io.Writer, t counter.Table) error {
	if countOptions.Format == "table" {
		return report.WriteCountTable(w, t)
	}
	return report.WriteCountCSV(w, t)
}

// Initialize flags for the count command.
func init() {
	CountCmd.Flags().StringVarP(&countOptions.Parser, "parser", "p", "yaml", "Serialization format of the input file: yaml or msgpack.")
	CountCmd.Flags().StringVarP(&countOptions.Format, "format", "f", "", "Report format: csv or table. Defaults to the configured output format, or csv.")
	CountCmd.Flags().StringVarP(&countOptions.OutputPath, "output", "o", "", "Path to the output file. Defaults to stdout.")
	CountCmd.Flags().StringVar(&countOptions.CountBy, "count-by", "remark", "Counting strategy: remark tallies remarks, key sums integer argument values.")
	CountCmd.Flags().StringVar(&countOptions.GroupBy, "group-by", "source", "Grouping key: total, source, function or function-with-loc.")
	CountCmd.Flags().StringArrayVar(&countOptions.Keys, "keys", nil, "Argument key to sum; repeatable. Requires counting by key.")
	CountCmd.Flags().StringArrayVar(&countOptions.RKeys, "rkeys", nil, "Regular expression selecting argument keys to sum; repeatable. Requires counting by key.")
	CountCmd.Flags().BoolP("help", "h", false, "Show help for the count command.")
	filter.RegisterFlags(CountCmd.Flags(), &countOptions.Filter)
}
