package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/raphi011/hookr/internal/log"
	"github.com/raphi011/hookr/internal/trigger"
)

func newRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "remove <hook> <trigger>",
		Short:             "Uninstall a hook from a trigger point",
		Aliases:           []string{"rm"},
		GroupID:           GroupCore,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeHookThenTrigger,
		Long: `Uninstall a hook from one of the repository's trigger points.

Other hooks chained at the same trigger keep running. When the last one is
removed the hook script is deleted. The hook definition and its statistics
are kept; use 'hookr delete' to retire a hook everywhere.`,
		Example: `  hookr remove lint pre-commit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			name := args[0]
			point, err := trigger.Parse(args[1])
			if err != nil {
				return err
			}

			repo, _, err := currentRepo(ctx)
			if err != nil {
				return err
			}

			app, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close(context.WithoutCancel(ctx))

			removed, err := app.Runner.Remove(ctx, repo, name, point)
			if err != nil {
				return err
			}
			if !removed {
				l.Printf("%s is not installed at %s in %s\n", name, point, repo)
				return nil
			}

			l.Printf("Removed %s from %s in %s\n", name, point, repo)
			return nil
		},
	}

	return cmd
}
