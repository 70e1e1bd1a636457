package config

// MergeLocal merges a per-repo config into the global config, returning a
// new Config without mutating global. Returns global unchanged if local is
// nil.
//
// Hooks merge by name: a local hook replaces the global hook in place, new
// local hooks are appended in their local order, and a local hook with
// enabled = false removes the global one.
func MergeLocal(global *Config, local *Config) *Config {
	if local == nil {
		return global
	}

	overrides := make(map[string]Hook, len(local.Hooks))
	for _, h := range local.Hooks {
		overrides[h.Name] = h
	}

	merged := Config{Path: global.Path}
	seen := make(map[string]bool, len(global.Hooks))

	for _, h := range global.Hooks {
		seen[h.Name] = true
		if o, ok := overrides[h.Name]; ok {
			if !o.IsEnabled() {
				continue
			}
			h = o
		}
		merged.Hooks = append(merged.Hooks, h)
	}

	for _, h := range local.Hooks {
		if seen[h.Name] || !h.IsEnabled() {
			continue
		}
		seen[h.Name] = true
		merged.Hooks = append(merged.Hooks, h)
	}

	return &merged
}
