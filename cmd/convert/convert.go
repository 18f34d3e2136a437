package convert

import (
	"github.com/spf13/cobra"

	"github.com/remarklens/remarklens/internal/remark"
	"github.com/remarklens/remarklens/pkg/shared"
	"github.com/remarklens/remarklens/pkg/shared/config"
	"github.com/remarklens/remarklens/pkg/shared/errors"
	"github.com/remarklens/remarklens/pkg/shared/files"
	"github.com/remarklens/remarklens/pkg/shared/logger"
)

// RunOptionsConvert holds the arguments for the convert command.
type RunOptionsConvert struct {
	From       string
	To         string
	OutputPath string
}

// Global variables for configuration and command arguments
var (
	AppConfig           *config.Config
	convertOptions      RunOptionsConvert
	exampleConvertUsage = `  # Converting a YAML remark stream to msgpack
  remarklens convert --to msgpack --output compilation.opt compilation.opt.yaml

  # Converting a msgpack stream back to YAML for inspection
  remarklens convert --from msgpack compilation.opt

  # Normalizing a YAML stream read from stdin
  remarklens convert -`
)

// ConvertCmd represents the convert command.
var ConvertCmd = &cobra.Command{
	Use:                   "convert [--from FORMAT] [--to FORMAT] [--output/-o PATH] FILE",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleConvertUsage,
	Short:                 "Convert a remark stream between serialization formats",
	RunE:                  runConvertCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runConvertCommand executes the convert command.
func runConvertCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	logger := logger.NewLogger(AppConfig, "core-convert")

	if err := validateConvertArgs(&convertOptions, args); err != nil {
		logger.Error("invalid convert arguments", "error", err)
		return err
	}

	from, err := remark.ParseFormat(convertOptions.From)
	if err != nil {
		logger.Error("invalid convert arguments", "error", err)
		return err
	}
	to, err := remark.ParseFormat(convertOptions.To)
	if err != nil {
		logger.Error("invalid convert arguments", "error", err)
		return err
	}

	path := args[0]
	in, err := files.OpenInput(path)
	if err != nil {
		logger.Error("failed to open the input", "error", err)
		return err
	}
	defer in.Close()

	out, err := files.CreateOutput(convertOptions.OutputPath)
	if err != nil {
		logger.Error("failed to open the output", "error", err)
		return err
	}
	defer out.Close()

	outName := files.DisplayName(convertOptions.OutputPath)
	sink := to.NewSink(out)
	converted := 0
	err = remark.Drain(from.NewSource(in), func(r *remark.Remark) error {
		if err := sink.Write(r); err != nil {
			return errors.NewSinkError(outName, err)
		}
		converted++
		return nil
	})
	if err != nil {
		if _, ok := err.(*errors.SinkError); !ok {
			err = errors.NewSourceError(path, err)
		}
		logger.Error("conversion failed", "error", err, "converted", converted)
		return err
	}

	logger.Info("convert command completed successfully", "records", converted)
	return nil
}

// Initialize flags for the convert command.
func init() {
	ConvertCmd.Flags().StringVar(&convertOptions.From, "from", "yaml", "Serialization format of the input: yaml or msgpack.")
	ConvertCmd.Flags().StringVar(&convertOptions.To, "to", "yaml", "Serialization format of the output: yaml or msgpack.")
	ConvertCmd.Flags().StringVarP(&convertOptions.OutputPath, "output", "o", "", "Path to the output file. Defaults to stdout.")
	ConvertCmd.Flags().BoolP("help", "h", false, "Show help for the convert command.")
}
