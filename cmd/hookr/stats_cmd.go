package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/raphi011/hookr/internal/log"
	"github.com/raphi011/hookr/internal/output"
	"github.com/raphi011/hookr/internal/ui/static"
)

func newStatsCmd() *cobra.Command {
	var (
		history string
		limit   int
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:     "stats",
		Short:   "Show run statistics",
		GroupID: GroupUtility,
		Args:    cobra.NoArgs,
		Long: `Show how often each registered hook ran and how often it passed.

With --history, list the most recent runs of one hook instead.`,
		Example: `  hookr stats                  # Counters for every hook
  hookr stats --history lint   # Last runs of 'lint'
  hookr stats --json           # Machine-readable counters`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			app, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close(context.WithoutCancel(ctx))

			if history != "" {
				runs, err := app.Store.History(ctx, history, limit)
				if err != nil {
					return err
				}
				if asJSON {
					return out.JSON(runs)
				}
				if len(runs) == 0 {
					l.Printf("No runs recorded for %s\n", history)
					return nil
				}
				rows := make([][]string, 0, len(runs))
				for _, r := range runs {
					rows = append(rows, static.RunTableRow(r))
				}
				out.Print(static.RenderTable(static.RunHeaders, rows))
				return nil
			}

			records, err := app.Store.Hooks(ctx)
			if err != nil {
				return err
			}
			if asJSON {
				return out.JSON(records)
			}
			if len(records) == 0 {
				l.Println("No hooks registered yet")
				return nil
			}
			rows := make([][]string, 0, len(records))
			for _, r := range records {
				rows = append(rows, static.StatsTableRow(r))
			}
			out.Print(static.RenderTable(static.StatsHeaders, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&history, "history", "", "Show recent runs of this hook")
	cmd.Flags().IntVarP(&limit, "number", "n", 20, "Number of runs to show with --history (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	cmd.RegisterFlagCompletionFunc("history", completeHookNames)

	return cmd
}
