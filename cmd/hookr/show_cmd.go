package main

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/raphi011/hookr/internal/log"
	"github.com/raphi011/hookr/internal/output"
	"github.com/raphi011/hookr/internal/trigger"
)

func newShowCmd() *cobra.Command {
	var copyScript bool

	cmd := &cobra.Command{
		Use:               "show <trigger>",
		Short:             "Print the hook script of a trigger point",
		GroupID:           GroupUtility,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeTriggers,
		Long: `Print the script hookr manages at .git/hooks/<trigger> in the current
repository, as generated from the applied hooks.`,
		Example: `  hookr show pre-commit
  hookr show pre-push --copy   # Also copy it to the clipboard`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			point, err := trigger.Parse(args[0])
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

			script, err := app.Installer.Script(ctx, repo, point)
			if err != nil {
				return err
			}
			out.Print(script)

			if copyScript {
				if err := clipboard.WriteAll(script); err != nil {
					return fmt.Errorf("failed to copy to clipboard: %w", err)
				}
				l.Println("Copied to clipboard")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&copyScript, "copy", "c", false, "Copy the script to the clipboard")

	return cmd
}
