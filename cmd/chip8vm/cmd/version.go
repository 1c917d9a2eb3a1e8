package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// versionCmd returns the caller's installed chip8vm version.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print the installed chip8vm version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(currentReleaseVersion)
	},
}
