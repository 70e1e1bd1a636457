package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Args are the arguments passed to a hook command.
//
// In config files args is either a string, split on whitespace with no
// quoting or escaping, or a list of strings used verbatim.
type Args []string

// ParseArgs splits s on whitespace.
func ParseArgs(s string) Args {
	return Args(strings.Fields(s))
}

// UnmarshalTOML implements toml.Unmarshaler.
func (a *Args) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case string:
		*a = ParseArgs(v)
		return nil
	case []any:
		out := make(Args, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("args[%d]: expected string, got %T", i, item)
			}
			out = append(out, s)
		}
		*a = out
		return nil
	default:
		return fmt.Errorf("args: expected string or list of strings, got %T", v)
	}
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *Args) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			*a = nil
			return nil
		}
		var s string
		if err := n.Decode(&s); err != nil {
			return err
		}
		*a = ParseArgs(s)
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := n.Decode(&list); err != nil {
			return err
		}
		*a = Args(list)
		return nil
	default:
		return fmt.Errorf("line %d: args must be a string or a list of strings", n.Line)
	}
}

// String joins the arguments with spaces, quoting any that contain
// whitespace.
func (a Args) String() string {
	parts := make([]string, len(a))
	for i, s := range a {
		if s == "" || strings.ContainsAny(s, " \t\n") {
			s = fmt.Sprintf("%q", s)
		}
		parts[i] = s
	}
	return strings.Join(parts, " ")
}
