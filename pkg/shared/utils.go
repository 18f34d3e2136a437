package shared

import (
	"github.com/spf13/pflag"
)

// HasFlags reports whether at least one flag in the set was set on the
// command line.
func HasFlags(flags *pflag.FlagSet) bool {
	set := false
	flags.Visit(func(*pflag.Flag) {
		set = true
	})
	return set
}
