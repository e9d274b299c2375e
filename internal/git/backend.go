package git

import gitbackend "github.com/thiagokokada/gitprompt-go/internal/git/backend"

type (
	Backend     = gitbackend.Backend
	Ref         = gitbackend.Ref
	StatusEntry = gitbackend.StatusEntry
	RepoState   = gitbackend.RepoState
)
