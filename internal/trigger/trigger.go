// Package trigger defines the closed set of Git hook points a hook can be
// bound to.
package trigger

import (
	"fmt"
	"strings"
)

// Point is a Git hook point such as pre-commit or pre-push.
// The zero value is not a valid point.
type Point int

const (
	_ Point = iota
	ApplypatchMsg
	PreApplypatch
	PostApplypatch
	PreCommit
	PreMergeCommit
	PrepareCommitMsg
	CommitMsg
	PostCommit
	PreRebase
	PostCheckout
	PostMerge
	PrePush
	PreReceive
	Update
	PostReceive
	PostUpdate
	PushToCheckout
	PreAutoGC
	PostRewrite
)

// names is indexed by Point and uses the file names Git looks for in
// .git/hooks.
var names = [...]string{
	ApplypatchMsg:    "applypatch-msg",
	PreApplypatch:    "pre-applypatch",
	PostApplypatch:   "post-applypatch",
	PreCommit:        "pre-commit",
	PreMergeCommit:   "pre-merge-commit",
	PrepareCommitMsg: "prepare-commit-msg",
	CommitMsg:        "commit-msg",
	PostCommit:       "post-commit",
	PreRebase:        "pre-rebase",
	PostCheckout:     "post-checkout",
	PostMerge:        "post-merge",
	PrePush:          "pre-push",
	PreReceive:       "pre-receive",
	Update:           "update",
	PostReceive:      "post-receive",
	PostUpdate:       "post-update",
	PushToCheckout:   "push-to-checkout",
	PreAutoGC:        "pre-auto-gc",
	PostRewrite:      "post-rewrite",
}

// All returns every valid point in declaration order.
func All() []Point {
	all := make([]Point, 0, len(names)-1)
	for p := ApplypatchMsg; p <= PostRewrite; p++ {
		all = append(all, p)
	}
	return all
}

// Names returns the string form of every valid point.
func Names() []string {
	all := All()
	out := make([]string, len(all))
	for i, p := range all {
		out[i] = p.String()
	}
	return out
}

// Parse returns the point named s. Matching is exact.
func Parse(s string) (Point, error) {
	for _, p := range All() {
		if names[p] == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("invalid trigger point %q: must be one of %s", s, strings.Join(Names(), ", "))
}

// Valid reports whether p is a member of the enumeration.
func (p Point) Valid() bool {
	return p >= ApplypatchMsg && p <= PostRewrite
}

func (p Point) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Point(%d)", int(p))
	}
	return names[p]
}

// MarshalText implements encoding.TextMarshaler.
func (p Point) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid trigger point %d", int(p))
	}
	return []byte(names[p]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Point) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Set implements pflag.Value so a Point can back a command-line flag.
func (p *Point) Set(s string) error {
	return p.UnmarshalText([]byte(s))
}

// Type implements pflag.Value.
func (p *Point) Type() string {
	return "trigger"
}
