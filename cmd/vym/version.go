package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/sz10101/vym"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of vym",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "vym version %s\n", strings.TrimSpace(vym.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
