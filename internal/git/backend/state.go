package backend

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5"
)

// RepoState is the multi-step operation in progress in a repository, derived
// from the control files git leaves in its directory.
type RepoState uint8

const (
	StateClean RepoState = iota
	StateMerge
	StateRevert
	StateRevertSequence
	StateCherryPick
	StateCherryPickSequence
	StateBisect
	StateRebase
	StateRebaseInteractive
	StateRebaseMerge
	StateApplyMailbox
	StateApplyMailboxOrRebase
)

var repoStateNames = [...]string{
	StateClean:                "Clean",
	StateMerge:                "Merge",
	StateRevert:               "Revert",
	StateRevertSequence:       "RevertSequence",
	StateCherryPick:           "CherryPick",
	StateCherryPickSequence:   "CherryPickSequence",
	StateBisect:               "Bisect",
	StateRebase:               "Rebase",
	StateRebaseInteractive:    "RebaseInteractive",
	StateRebaseMerge:          "RebaseMerge",
	StateApplyMailbox:         "ApplyMailbox",
	StateApplyMailboxOrRebase: "ApplyMailboxOrRebase",
}

func (s RepoState) String() string {
	if int(s) < len(repoStateNames) {
		return repoStateNames[s]
	}
	return fmt.Sprintf("RepoState(%d)", uint8(s))
}

// stateFromGitDir inspects the git directory exposed by fs. The first marker
// found wins, so rebase markers take precedence over MERGE_HEAD.
func stateFromGitDir(fs billy.Filesystem) (RepoState, error) {
	checks := []struct {
		path  string
		dir   bool
		state RepoState
	}{
		{path: "rebase-merge/interactive", state: StateRebaseInteractive},
		{path: "rebase-merge", dir: true, state: StateRebaseMerge},
		{path: "rebase-apply/rebasing", state: StateRebase},
		{path: "rebase-apply/applying", state: StateApplyMailbox},
		{path: "rebase-apply", dir: true, state: StateApplyMailboxOrRebase},
		{path: "MERGE_HEAD", state: StateMerge},
		{path: "REVERT_HEAD", state: StateRevert},
		{path: "CHERRY_PICK_HEAD", state: StateCherryPick},
		{path: "BISECT_LOG", state: StateBisect},
	}
	for _, check := range checks {
		found, err := pathExists(fs, check.path, check.dir)
		if err != nil {
			return StateClean, fmt.Errorf("read repository state: %w", err)
		}
		if !found {
			continue
		}
		switch check.state {
		case StateRevert, StateCherryPick:
			seq, err := pathExists(fs, "sequencer/todo", false)
			if err != nil {
				return StateClean, fmt.Errorf("read repository state: %w", err)
			}
			if seq {
				// *Sequence immediately follows its single-commit state.
				return check.state + 1, nil
			}
		}
		return check.state, nil
	}
	return StateClean, nil
}

func pathExists(fs billy.Filesystem, path string, wantDir bool) (bool, error) {
	info, err := fs.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir() == wantDir, nil
}
