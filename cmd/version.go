package cmd

import (
	"runtime"

	"github.com/spf13/cobra"
)

// versionCmd shows the verbose version for diagnostic purposes.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of emistat.",
	Long: `Display version and build information.

Shows the release version, git commit hash, build timestamp and Go runtime
version. Include this output when reporting issues: trained models and
forecasts are deterministic per build, so the exact version matters when
comparing stored results across machines.

Examples:
  # Print version details
  emistat version`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("emistat CLI\n")
		cmd.Printf("  Version: %s\n", version)
		cmd.Printf("  Commit:  %s\n", commit)
		cmd.Printf("  Built:   %s\n", date)
		cmd.Printf("  Runtime: %s\n", runtime.Version())
	},
}
