package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/hookr/internal/log"
	"github.com/raphi011/hookr/internal/ui/prompt"
)

func newDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:               "delete <hook>",
		Short:             "Uninstall a hook everywhere and drop its history",
		GroupID:           GroupCore,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeHookNames,
		Long: `Retire a hook: remove it from every repository it was applied to and
delete its run statistics. The definition in the config file is left alone.

Asks for confirmation unless -y is given.`,
		Example: `  hookr delete lint      # Confirm, then delete
  hookr delete lint -y   # No prompt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			name := args[0]

			if !yes {
				if !isInteractive() {
					return errors.New("refusing to delete without confirmation: use -y")
				}
				res, err := prompt.Confirm(fmt.Sprintf("Delete %s from all repositories and drop its history?", name))
				if err != nil {
					return err
				}
				if !res.Confirmed {
					l.Println("Aborted")
					return nil
				}
			}

			app, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close(context.WithoutCancel(ctx))

			deleted, err := app.Runner.Delete(ctx, name)
			if err != nil {
				return err
			}
			if !deleted {
				l.Printf("%s is not registered\n", name)
				return nil
			}

			l.Printf("Deleted %s\n", name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}
