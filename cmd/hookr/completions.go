package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/hookr/internal/trigger"
)

// completeHookNames completes hook names from the effective config.
func completeHookNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return hookCompletions(cmd.Context(), toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeTriggers completes trigger point names.
func completeTriggers(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return filterPrefix(trigger.Names(), toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeHookThenTrigger completes `<hook> <trigger>`.
func completeHookThenTrigger(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return hookCompletions(cmd.Context(), toComplete), cobra.ShellCompDirectiveNoFileComp
	case 1:
		return filterPrefix(trigger.Names(), toComplete), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

// hookCompletions lists hook names, with descriptions, that start with
// prefix. Errors produce no completions.
func hookCompletions(ctx context.Context, prefix string) []string {
	if ctx == nil {
		ctx = context.Background()
	}
	repo, _, _ := currentRepo(ctx)
	cfg, err := loadConfig(ctx, repo)
	if err != nil {
		return nil
	}

	var out []string
	for _, h := range cfg.Hooks {
		if !strings.HasPrefix(h.Name, prefix) {
			continue
		}
		if h.Description != "" {
			out = append(out, h.Name+"\t"+h.Description)
		} else {
			out = append(out, h.Name)
		}
	}
	return out
}

func filterPrefix(values []string, prefix string) []string {
	var out []string
	for _, v := range values {
		if strings.HasPrefix(v, prefix) {
			out = append(out, v)
		}
	}
	return out
}
