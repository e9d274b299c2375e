package git

import (
	"errors"

	gitbackend "github.com/thiagokokada/gitprompt-go/internal/git/backend"
)

type fakeBackend struct {
	repoPath string
	gitDir   string

	headStateFunc     func() (hash string, headName string, ok bool, err error)
	trackingRefFunc   func(branch string) (gitbackend.Ref, bool, error)
	resolveRefFunc    func(name string) (gitbackend.Ref, bool, error)
	aheadBehindFunc   func(localHash string, upstreamHash string) (int, int, error)
	workingStatusFunc func() ([]gitbackend.StatusEntry, error)
	stateFunc         func() (gitbackend.RepoState, error)

	lastTrackingBranch string
	lastResolvedRef    string
	lastLocalHash      string
	lastUpstreamHash   string
}

func (f *fakeBackend) RepoPath() string { return f.repoPath }

func (f *fakeBackend) GitDir() string { return f.gitDir }

func (f *fakeBackend) HeadState() (hash string, headName string, ok bool, err error) {
	if f.headStateFunc != nil {
		return f.headStateFunc()
	}
	return "", "", false, errors.New("unexpected HeadState call")
}

func (f *fakeBackend) TrackingRef(branch string) (gitbackend.Ref, bool, error) {
	f.lastTrackingBranch = branch
	if f.trackingRefFunc != nil {
		return f.trackingRefFunc(branch)
	}
	return gitbackend.Ref{}, false, errors.New("unexpected TrackingRef call")
}

func (f *fakeBackend) ResolveRef(name string) (gitbackend.Ref, bool, error) {
	f.lastResolvedRef = name
	if f.resolveRefFunc != nil {
		return f.resolveRefFunc(name)
	}
	return gitbackend.Ref{}, false, errors.New("unexpected ResolveRef call")
}

func (f *fakeBackend) AheadBehind(localHash string, upstreamHash string) (int, int, error) {
	f.lastLocalHash = localHash
	f.lastUpstreamHash = upstreamHash
	if f.aheadBehindFunc != nil {
		return f.aheadBehindFunc(localHash, upstreamHash)
	}
	return 0, 0, errors.New("unexpected AheadBehind call")
}

func (f *fakeBackend) WorkingStatus() ([]gitbackend.StatusEntry, error) {
	if f.workingStatusFunc != nil {
		return f.workingStatusFunc()
	}
	return nil, errors.New("unexpected WorkingStatus call")
}

func (f *fakeBackend) State() (gitbackend.RepoState, error) {
	if f.stateFunc != nil {
		return f.stateFunc()
	}
	return 0, errors.New("unexpected State call")
}

func headOn(hash, branch string) func() (string, string, bool, error) {
	return func() (string, string, bool, error) {
		return hash, branch, hash != "", nil
	}
}
