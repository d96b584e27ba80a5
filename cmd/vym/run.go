package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/sz10101/vym/internal/cli"
)

var runCmd = &cobra.Command{
	Use:   "run <script> [map...]",
	Short: "Run a script against the given maps",
	Long: `Runs a Lua (.lua) or shell script. The maps named after the script are
opened in order and the last one is focused; with none an empty map is created.

With --watch the script is run again in a fresh session every time it changes.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		script, files := args[0], args[1:]
		engine, _ := cmd.Flags().GetString("engine")
		watch, _ := cmd.Flags().GetBool("watch")
		save, _ := cmd.Flags().GetBool("save")
		opts := sessionOptions(cmd, files)

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		runOnce := func(ctx context.Context) error {
			env, err := cli.NewSession(opts)
			if err != nil {
				return err
			}
			defer env.Session.Close()

			if err := env.Session.RunFile(ctx, script, engine, os.Stdout, os.Stderr); err != nil {
				return err
			}
			if save {
				return saveModified(env)
			}
			return nil
		}

		if !watch {
			return runOnce(sigCtx)
		}
		return cli.RunWatch(sigCtx, cli.WatchOptions{Path: script, Out: os.Stderr}, runOnce)
	},
}

type savable interface {
	IsModified() bool
	FileName() string
	Save() error
}

// saveModified writes back every modified map that has a file.
func saveModified(env *cli.Env) error {
	for _, m := range env.Session.Host().Models() {
		s, ok := m.(savable)
		if !ok || !s.IsModified() || s.FileName() == "" {
			continue
		}
		if err := s.Save(); err != nil {
			return fmt.Errorf("save %s: %w", s.FileName(), err)
		}
		env.Logger.Info("saved map", "file", s.FileName())
	}
	return nil
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringP("engine", "e", "", "Script language: lua or shell (default by extension)")
	runCmd.Flags().BoolP("watch", "w", false, "Rerun the script when it changes")
	runCmd.Flags().Bool("save", false, "Save modified maps after the script succeeds")
}
