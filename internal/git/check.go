package git

import (
	"errors"
	"fmt"
	"os/exec"
)

// ErrGitNotFound indicates git is not installed or not in PATH
var ErrGitNotFound = fmt.Errorf("git not found: please install git (https://git-scm.com)")

// ErrRepository is matched by every repository precondition failure.
var ErrRepository = errors.New("repository error")

var (
	// ErrNotARepository means the path is not inside a git working tree.
	ErrNotARepository = fmt.Errorf("%w: not inside a git working tree", ErrRepository)
	// ErrNoCommits means HEAD does not resolve yet.
	ErrNoCommits = fmt.Errorf("%w: no commits yet", ErrRepository)
	// ErrNoGitDir means the directory has no .git directory of its own.
	ErrNoGitDir = fmt.Errorf("%w: no .git directory", ErrRepository)
)

// CheckGit verifies that git is available in PATH
func CheckGit() error {
	_, err := exec.LookPath("git")
	if err != nil {
		return ErrGitNotFound
	}
	return nil
}
