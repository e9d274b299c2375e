package git

import (
	"fmt"
	"log/slog"
)

// DefaultUpstreamRemote is the remote whose same-named branch is compared
// against HEAD in addition to the configured tracking branch.
const DefaultUpstreamRemote = "upstream"

// Service answers read-only questions about one repository. It is opened once
// and shared by reference; every query re-reads the on-disk state, so results
// of consecutive queries are not guaranteed to be mutually consistent if the
// working copy changes in between.
type Service struct {
	backend Backend
}

// Open opens the repository containing repoPath. The backend is selected at
// build time: go-git by default, the git executable with the gitcli tag.
func Open(repoPath string) (*Service, error) {
	b, err := openBackend(repoPath)
	if err != nil {
		return nil, err
	}
	slog.Debug("repository opened",
		slog.String("backend", backendName),
		slog.String("path", b.RepoPath()),
		slog.String("git_dir", b.GitDir()),
	)
	return NewWithBackend(b), nil
}

func NewWithBackend(b Backend) *Service {
	return &Service{backend: b}
}

func (s *Service) RepoPath() string {
	if s.backend == nil {
		return ""
	}
	return s.backend.RepoPath()
}

func (s *Service) GitDir() string {
	if s.backend == nil {
		return ""
	}
	return s.backend.GitDir()
}

func (s *Service) ensureBackend() error {
	if s.backend == nil || s.backend.RepoPath() == "" {
		return fmt.Errorf("repository root not set")
	}
	return nil
}
