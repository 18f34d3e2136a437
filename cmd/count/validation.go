package count

import (
	"fmt"
)

// validateCountArgs validates the arguments provided to the count command.
func validateCountArgs(options *RunOptionsCount, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("exactly one input file must be specified")
	}

	switch options.Format {
	case "csv", "table":
	default:
		return fmt.Errorf("the 'format' flag must be one of: csv, table")
	}

	switch options.CountBy {
	case "remark", "key":
	default:
		return fmt.Errorf("the 'count-by' flag must be one of: remark, key")
	}

	if options.CountBy == "remark" && (len(options.Keys) > 0 || len(options.RKeys) > 0) {
		return fmt.Errorf("the 'keys' and 'rkeys' flags require counting by key")
	}
	if len(options.Keys) > 0 && len(options.RKeys) > 0 {
		return fmt.Errorf("the 'keys' and 'rkeys' flags are mutually exclusive")
	}

	return nil
}
