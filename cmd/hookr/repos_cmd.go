package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/raphi011/hookr/internal/log"
	"github.com/raphi011/hookr/internal/output"
	"github.com/raphi011/hookr/internal/ui/static"
)

func newReposCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "repos",
		Short:   "List repositories with installed hooks",
		GroupID: GroupUtility,
		Args:    cobra.NoArgs,
		Example: `  hookr repos
  hookr repos --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			app, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close(context.WithoutCancel(ctx))

			bindings, err := app.Store.AllBindings(ctx)
			if err != nil {
				return err
			}
			if asJSON {
				return out.JSON(bindings)
			}
			if len(bindings) == 0 {
				l.Println("No hooks applied yet")
				return nil
			}

			out.Print(static.RenderTable(static.BindingHeaders, static.BindingRows(bindings)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}
