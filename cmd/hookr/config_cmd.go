package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/raphi011/hookr/internal/config"
	"github.com/raphi011/hookr/internal/log"
	"github.com/raphi011/hookr/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage hookr configuration.

Global config: ~/.config/hookr/config.toml (or config.yaml / config.yml)
Local config:  .hookr.toml (in the repository root)`,
		Example: `  hookr config init    # Create default global config
  hookr config path    # Show which files are used`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Example: `  hookr config init      # Create global config
  hookr config init -f   # Overwrite existing config`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveConfigPath()
			if err != nil {
				return err
			}
			if err := config.Init(path, force); err != nil {
				return err
			}
			log.FromContext(cmd.Context()).Printf("Created config file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")

	return cmd
}

func newConfigPathCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Show config and database locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			cfgPath, err := resolveConfigPath()
			if err != nil {
				return err
			}
			dbPath, err := resolveDBPath()
			if err != nil {
				return err
			}

			out.Printf("config:   %s%s\n", cfgPath, missingSuffix(cfgPath))
			if repo, _, err := currentRepo(ctx); err == nil {
				for _, name := range config.LocalConfigFileNames {
					p := filepath.Join(repo, name)
					if _, err := os.Stat(p); err == nil {
						out.Printf("local:    %s\n", p)
						break
					}
				}
			}
			out.Printf("database: %s%s\n", dbPath, missingSuffix(dbPath))
			return nil
		},
	}

	return cmd
}

func missingSuffix(path string) string {
	if _, err := os.Stat(path); err != nil {
		return " (not created yet)"
	}
	return ""
}
