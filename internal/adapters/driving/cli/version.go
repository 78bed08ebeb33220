package cli

import (
	"runtime"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("dexter version %s\n", version)
		cmd.Printf("  go:      %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		if settingsService == nil {
			return
		}
		if settings, err := settingsService.Get(); err == nil {
			cmd.Printf("  catalog: %s\n", settings.API.BaseURL)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
