package diff

import (
	"fmt"

	"github.com/remarklens/remarklens/pkg/shared/files"
)

// validateDiffArgs validates the arguments provided to the diff command.
func validateDiffArgs(options *RunOptionsDiff, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("exactly two input files must be specified")
	}

	if args[0] == files.StdStream && args[1] == files.StdStream {
		return fmt.Errorf("only one of the inputs may read from stdin")
	}

	switch options.Format {
	case "text", "json", "sarif":
	default:
		return fmt.Errorf("the 'format' flag must be one of: text, json, sarif")
	}

	return nil
}
