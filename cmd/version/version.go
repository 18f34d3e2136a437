package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/remarklens/remarklens/pkg/shared/config"
)

// Build information for the core binary, injected at build time via ldflags.
var (
	AppConfig     *config.Config
	CoreVersion   = "unknown"
	GolangVersion = "unknown"
	BuildTime     = "unknown"
)

// Info holds version information for the core application.
type Info struct {
	Version       string `json:"version"`
	GolangVersion string `json:"golang_version"`
	BuildTime     string `json:"build_time"`
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// NewVersionCmd creates a new cobra.Command for the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "version",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Print the version number of the application",
		Run: func(cmd *cobra.Command, args []string) {
			printVersionInfo(&Info{
				Version:       CoreVersion,
				GolangVersion: GolangVersion,
				BuildTime:     BuildTime,
			})
		},
	}
}

// printVersionInfo prints the version information for the core application.
func printVersionInfo(info *Info) {
	fmt.Printf("Core Version: v%s\n", info.Version)
	fmt.Printf("Go Version: %s\n", info.GolangVersion)
	fmt.Printf("Build Time: %s\n", info.BuildTime)
}
