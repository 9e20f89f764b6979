package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.3.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the dali CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "dali version %s\n", version)
		fmt.Fprintln(cmd.OutOrStdout(), "Crypto transaction normalization and tax configuration")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
