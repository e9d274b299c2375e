package git

import (
	"errors"

	gitbackend "github.com/thiagokokada/gitprompt-go/internal/git/backend"
)

var (
	// ErrNotARepository means the working directory is not inside a git working copy.
	ErrNotARepository = gitbackend.ErrNotARepository
	// ErrUnresolvableHead means HEAD could not be read or does not point at a commit yet.
	ErrUnresolvableHead = errors.New("HEAD cannot be resolved")
	// ErrDetachedHead means HEAD has no branch name: it is detached or its branch is unborn.
	ErrDetachedHead = errors.New("HEAD is not on a branch")
	// ErrStatusQuery wraps failures computing the index/working tree status.
	ErrStatusQuery = errors.New("status query failed")
)
