package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/hookr/internal/log"
	"github.com/raphi011/hookr/internal/output"
	"github.com/raphi011/hookr/internal/ui/static"
)

func newListCmd() *cobra.Command {
	var asTable bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List hook definitions",
		Aliases: []string{"ls"},
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `List the hooks defined in the config.

Inside a repository, hooks from its .hookr.toml are merged in.`,
		Example: `  hookr list          # Print every hook definition
  hookr list --table  # One row per hook`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			repo, _, err := currentRepo(ctx)
			if err != nil {
				l.Debug("not in a repository, using global config", "reason", err)
			}

			cfg, err := loadConfig(ctx, repo)
			if err != nil {
				return err
			}
			if len(cfg.Hooks) == 0 {
				l.Printf("No hooks configured in %s\n", cfg.Path)
				return nil
			}

			if asTable {
				rows := make([][]string, 0, len(cfg.Hooks))
				for _, h := range cfg.Hooks {
					rows = append(rows, static.HookTableRow(h))
				}
				out.Print(static.RenderTable(static.HookHeaders, rows))
				return nil
			}

			out.Println("Hooks:")
			for _, h := range cfg.Hooks {
				out.Println(h.String())
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&asTable, "table", "t", false, "Render as a table")

	return cmd
}

