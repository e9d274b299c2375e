package backend

import "errors"

// ErrNotARepository is returned by the Open functions when the path is not
// inside a git working copy.
var ErrNotARepository = errors.New("not a git repository")

// Backend abstracts read-only access to repository metadata.
//
// The default implementation uses go-git, the gitcli build tag switches to one
// that shells out to the git executable. Callers never mutate the repository
// through a Backend.
type Backend interface {
	RepoPath() string
	GitDir() string

	// HeadState reports the commit HEAD resolves to and the short name of the
	// branch it points at. headName is empty when HEAD is detached; ok is false
	// when HEAD does not resolve to a commit yet (unborn branch).
	HeadState() (hash string, headName string, ok bool, err error)
	// TrackingRef returns the remote-tracking ref configured as the upstream of
	// the local branch, if any.
	TrackingRef(branch string) (Ref, bool, error)
	// ResolveRef looks up a full ref name such as refs/remotes/upstream/main.
	ResolveRef(name string) (Ref, bool, error)
	AheadBehind(localHash string, upstreamHash string) (ahead int, behind int, err error)

	WorkingStatus() ([]StatusEntry, error)
	State() (RepoState, error)
}
