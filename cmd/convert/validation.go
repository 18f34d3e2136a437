package convert

import (
	"fmt"
)

// validateConvertArgs validates the arguments provided to the convert command.
func validateConvertArgs(options *RunOptionsConvert, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("exactly one input file must be specified")
	}
	return nil
}
