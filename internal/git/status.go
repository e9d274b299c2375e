package git

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
)

// WorkingStatus lists every path whose index or working tree state differs
// from HEAD, untracked files included and ignored files excluded, sorted by path.
func (s *Service) WorkingStatus() ([]StatusEntry, error) {
	if err := s.ensureBackend(); err != nil {
		return nil, err
	}
	entries, err := s.backend.WorkingStatus()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStatusQuery, err)
	}
	entries = slices.DeleteFunc(entries, StatusEntry.Clean)
	slices.SortFunc(entries, func(a, b StatusEntry) int {
		return cmp.Compare(a.Path, b.Path)
	})
	slog.Debug("working status", slog.Int("entries", len(entries)))
	return entries, nil
}

// RepositoryState reports the multi-step operation in progress, if any.
func (s *Service) RepositoryState() (RepoState, error) {
	if err := s.ensureBackend(); err != nil {
		return 0, err
	}
	state, err := s.backend.State()
	if err != nil {
		return 0, err
	}
	return state, nil
}
