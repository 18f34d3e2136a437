package filter

import (
	"github.com/spf13/pflag"
)

// RegisterFlags binds the filter flags shared by the reading commands onto
// the given flag set. The bound Spec is validated later by Build.
func RegisterFlags(flags *pflag.FlagSet, spec *Spec) {
	flags.StringVar(&spec.Name, "remark-name", "", "Keep only remarks with this exact name.")
	flags.StringVar(&spec.NameRegex, "rremark-name", "", "Keep only remarks whose name matches this regular expression.")
	flags.StringVar(&spec.Pass, "pass-name", "", "Keep only remarks emitted by this exact pass.")
	flags.StringVar(&spec.PassRegex, "rpass-name", "", "Keep only remarks whose pass name matches this regular expression.")
	flags.StringVar(&spec.Arg, "filter-arg", "", "Keep only remarks carrying an argument with this exact value.")
	flags.StringVar(&spec.ArgRegex, "rfilter-arg", "", "Keep only remarks carrying an argument value matching this regular expression.")
	flags.StringVar(&spec.Type, "remark-type", "", "Keep only remarks of this type: passed, missed, analysis, analysis-fp-commute, analysis-aliasing or failure.")
}
