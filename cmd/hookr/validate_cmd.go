package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/hookr/internal/config"
	"github.com/raphi011/hookr/internal/log"
	"github.com/raphi011/hookr/internal/output"
	"github.com/raphi011/hookr/internal/ui/styles"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "validate",
		Short:   "Check hook definitions without running them",
		Aliases: []string{"test"},
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		Long: `Validate every hook definition and report all problems at once.

Checks that names are set and unique, that each command resolves to an
executable (in its directory or on PATH), that configured directories
exist, and that every hook has at least one valid glob pattern. Nothing
is executed.`,
		Example: `  hookr validate
  hookr validate --config ./hooks.yml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			repo, _, err := currentRepo(ctx)
			if err != nil {
				l.Debug("not in a repository, validating global config only", "reason", err)
			}

			cfg, err := loadConfig(ctx, repo)
			if err != nil {
				return err
			}

			err = config.Validate(cfg)
			var verr *config.ValidationError
			if errors.As(err, &verr) {
				for _, p := range verr.Problems {
					out.Println(styles.ErrorStyle.Render("✗") + " " + p.Error())
				}
				return fmt.Errorf("%w: %d problems in %s", config.ErrConfig, len(verr.Problems), cfg.Path)
			}
			if err != nil {
				return err
			}

			out.Printf("%s %d hooks valid\n", styles.SuccessStyle.Render("✓"), len(cfg.Hooks))
			return nil
		},
	}

	return cmd
}
