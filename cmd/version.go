package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// versionCmd returns the caller's installed chipvm version
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Retrieve the currently installed chipvm version",
	Long:  "Run `chipvm version` to get your current chipvm version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(currentReleaseVersion)
	},
}
