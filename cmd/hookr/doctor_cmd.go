package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/hookr/internal/doctor"
	"github.com/raphi011/hookr/internal/git"
	"github.com/raphi011/hookr/internal/output"
)

func newDoctorCmd() *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:     "doctor",
		Short:   "Diagnose and repair installed shims",
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		Long: `Check that every shim hookr installed still matches the hooks applied to it.

Checks:
- Git is available
- Bound repositories still exist
- Shims exist, are executable and list the applied hooks
- Shims were not replaced by other scripts

With --fix, outdated or missing shims are rewritten and bindings of
repositories that no longer exist are dropped. Replaced shims are never
overwritten.`,
		Example: `  hookr doctor          # Check for issues
  hookr doctor --fix    # Repair what can be repaired`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			if err := git.CheckGit(); err != nil {
				out.Printf("✗ %v\n", err)
			} else {
				out.Println("✓ Git is available")
			}

			app, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close(context.WithoutCancel(ctx))

			issues, err := doctor.Run(ctx, app.Store, app.Installer, out.Writer(), fix)
			if err != nil {
				return err
			}
			if len(issues) > 0 && !fix {
				return fmt.Errorf("%d issues found", len(issues))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Repair recoverable issues")

	return cmd
}
