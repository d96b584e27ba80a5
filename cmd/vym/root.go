package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/sz10101/vym/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "vym",
	Short: "vym scripts mind maps from Lua or shell",
	Long: `vym opens mind maps and drives them through the vym and map scripting
objects. Scripts run in Lua or in a POSIX shell dialect, from files, from an
interactive prompt, over HTTP or as MCP tools.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Configuration file (default vym.yaml if present)")
	rootCmd.PersistentFlags().String("log-level", "", "Override the configured log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("exporters", "", "YAML or JSON file registering external exporters")
	rootCmd.PersistentFlags().String("dir", "", "Directory relative map paths resolve against")
}

// sessionOptions reads the persistent flags shared by every command.
func sessionOptions(cmd *cobra.Command, files []string) cli.Options {
	configPath, _ := cmd.Flags().GetString("config")
	level, _ := cmd.Flags().GetString("log-level")
	exporters, _ := cmd.Flags().GetString("exporters")
	dir, _ := cmd.Flags().GetString("dir")
	return cli.Options{
		ConfigPath:    configPath,
		LogLevel:      level,
		ExportersPath: exporters,
		WorkDir:       dir,
		Files:         files,
	}
}
