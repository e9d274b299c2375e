package git

import "fmt"

// CurrentBranchName returns the short name of the branch HEAD points at.
func (s *Service) CurrentBranchName() (string, error) {
	if err := s.ensureBackend(); err != nil {
		return "", err
	}
	hash, name, ok, err := s.backend.HeadState()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnresolvableHead, err)
	}
	if name == "" {
		return "", fmt.Errorf("%w: detached at %s", ErrDetachedHead, shortHash(hash))
	}
	if !ok {
		return "", fmt.Errorf("%w: branch %s has no commits", ErrDetachedHead, name)
	}
	return name, nil
}

// CurrentBranchCommit returns the commit HEAD resolves to.
func (s *Service) CurrentBranchCommit() (string, error) {
	if err := s.ensureBackend(); err != nil {
		return "", err
	}
	hash, name, ok, err := s.backend.HeadState()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnresolvableHead, err)
	}
	if !ok {
		return "", fmt.Errorf("%w: branch %s has no commits", ErrUnresolvableHead, name)
	}
	return hash, nil
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
