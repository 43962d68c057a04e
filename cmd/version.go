package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the yascl release.  It is set at build time with -ldflags.
var Version = "devel"

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the yascl version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "yascl %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
