package git

import (
	"fmt"
	"log/slog"
	"strings"
)

// TrackingUpstreamDivergence compares HEAD with the upstream configured for
// the current branch. ok is false when there is nothing to compare: no
// tracking configuration, tracking ref never fetched, detached or unborn HEAD.
func (s *Service) TrackingUpstreamDivergence() (d Divergence, ok bool, err error) {
	if err := s.ensureBackend(); err != nil {
		return Divergence{}, false, err
	}
	hash, branch, resolved, err := s.backend.HeadState()
	if err != nil {
		return Divergence{}, false, fmt.Errorf("%w: %w", ErrUnresolvableHead, err)
	}
	if !resolved || branch == "" {
		return Divergence{}, false, nil
	}
	ref, found, err := s.backend.TrackingRef(branch)
	if err != nil {
		return Divergence{}, false, fmt.Errorf("tracking branch of %s: %w", branch, err)
	}
	if !found {
		slog.Debug("no tracking branch", slog.String("branch", branch))
		return Divergence{}, false, nil
	}
	return s.divergence(hash, ref)
}

// NamedRemoteDivergence compares HEAD with refs/remotes/<remote>/<branch>,
// regardless of the tracking configuration.
func (s *Service) NamedRemoteDivergence(remote string) (d Divergence, ok bool, err error) {
	remote = strings.TrimSpace(remote)
	if remote == "" {
		return Divergence{}, false, fmt.Errorf("remote not specified")
	}
	if err := s.ensureBackend(); err != nil {
		return Divergence{}, false, err
	}
	hash, branch, resolved, err := s.backend.HeadState()
	if err != nil {
		return Divergence{}, false, fmt.Errorf("%w: %w", ErrUnresolvableHead, err)
	}
	if !resolved || branch == "" {
		return Divergence{}, false, nil
	}
	name := remoteBranchRef(remote, branch)
	ref, found, err := s.backend.ResolveRef(name)
	if err != nil {
		return Divergence{}, false, err
	}
	if !found {
		slog.Debug("remote branch not found", slog.String("ref", name))
		return Divergence{}, false, nil
	}
	return s.divergence(hash, ref)
}

func (s *Service) divergence(localHash string, ref Ref) (Divergence, bool, error) {
	ahead, behind, err := s.backend.AheadBehind(localHash, ref.Hash)
	if err != nil {
		return Divergence{}, false, fmt.Errorf("ahead/behind %s: %w", ref.Name, err)
	}
	slog.Debug("divergence",
		slog.String("ref", ref.Name),
		slog.Int("ahead", ahead),
		slog.Int("behind", behind),
	)
	return Divergence{Ahead: ahead, Behind: behind}, true, nil
}

func remoteBranchRef(remote, branch string) string {
	return "refs/remotes/" + remote + "/" + branch
}
