package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/sz10101/vym/internal/cli"
	"github.com/sz10101/vym/internal/presentation/tui"
)

var replCmd = &cobra.Command{
	Use:   "repl [map...]",
	Short: "Run script statements interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _ := cmd.Flags().GetString("engine")

		env, err := cli.NewSession(sessionOptions(cmd, args))
		if err != nil {
			return err
		}
		defer env.Session.Close()

		if tui.IsTerminal(os.Stdout) {
			tui.PrintBanner(os.Stdout)
		}

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()
		err = cli.RunREPL(sigCtx, env.Session, engine, os.Stdin, os.Stdout, os.Stderr)
		if sigCtx.Signal() != nil {
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
	replCmd.Flags().StringP("engine", "e", "shell", "Statement language: lua or shell")
}
