package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "run <hook>",
		Short:             "Run a hook if changed files match (called by git)",
		GroupID:           GroupShim,
		Hidden:            true,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeHookNames,
		Long: `Run a hook in the current repository.

This is what the scripts in .git/hooks call. The hook's command only runs
when a staged, unstaged, untracked or unpushed file matches one of its glob
patterns. Its exit status becomes hookr's exit status.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			repo, cwd, err := currentRepo(ctx)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(ctx, repo)
			if err != nil {
				return err
			}
			hook, err := cfg.Find(args[0])
			if err != nil {
				return err
			}

			app, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close(context.WithoutCancel(ctx))

			return app.Runner.Run(ctx, hook, repo, cwd)
		},
	}

	return cmd
}
