package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/hookr/internal/config"
	"github.com/raphi011/hookr/internal/log"
	"github.com/raphi011/hookr/internal/trigger"
	"github.com/raphi011/hookr/internal/ui/prompt"
)

func newApplyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "apply [hook] <trigger>",
		Short:             "Install a hook at a trigger point",
		Aliases:           []string{"add"},
		GroupID:           GroupCore,
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: completeHookThenTrigger,
		Long: `Install a hook at one of the repository's git trigger points.

The first hook applied to a trigger creates .git/hooks/<trigger>. Further
hooks are chained onto the same script and run in the order they were
applied. A hook script that hookr did not create is never overwritten.

Without a hook name, an interactive picker is shown.`,
		Example: `  hookr apply lint pre-commit   # Run 'lint' before every commit
  hookr apply test pre-push     # Chain 'test' before pushes
  hookr apply pre-commit        # Pick the hook interactively`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			point, err := trigger.Parse(args[len(args)-1])
			if err != nil {
				return err
			}

			repo, _, err := currentRepo(ctx)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(ctx, repo)
			if err != nil {
				return err
			}

			var name string
			if len(args) == 2 {
				name = args[0]
			} else {
				name, err = pickHook(cfg)
				if err != nil {
					return err
				}
				if name == "" {
					return nil
				}
			}

			hook, err := cfg.Find(name)
			if err != nil {
				return err
			}
			if problems := config.ValidateHook(0, hook); len(problems) > 0 {
				return &config.ValidationError{Problems: problems}
			}

			app, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close(context.WithoutCancel(ctx))

			if err := app.Runner.Apply(ctx, repo, hook.Name, point); err != nil {
				return err
			}

			l.Printf("Applied %s to %s in %s\n", hook.Name, point, repo)
			return nil
		},
	}

	return cmd
}

// pickHook asks for a hook interactively. An empty name means the user
// cancelled.
func pickHook(cfg *config.Config) (string, error) {
	if !isInteractive() {
		return "", errors.New("hook name required (no terminal for interactive selection)")
	}
	if len(cfg.Hooks) == 0 {
		return "", fmt.Errorf("%w: no hooks defined in %s", config.ErrConfig, cfg.Path)
	}

	options := make([]prompt.Option, len(cfg.Hooks))
	for i, h := range cfg.Hooks {
		options[i] = prompt.Option{Label: h.Name, Description: h.Description}
	}

	res, err := prompt.Select("Select a hook to apply", options)
	if err != nil {
		return "", err
	}
	if res.Cancelled {
		return "", nil
	}
	return res.Value, nil
}
