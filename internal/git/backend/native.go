package backend

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

type native struct {
	repo   *gitlib.Repository
	path   string
	gitDir billy.Filesystem
}

// OpenNative opens the repository containing repoPath with go-git.
func OpenNative(repoPath string) (Backend, error) {
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, err
	}
	repo, err := gitlib.PlainOpenWithOptions(abs, &gitlib.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gitlib.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("open repository %s: %w", abs, ErrNotARepository)
		}
		return nil, fmt.Errorf("open repository: %w", err)
	}
	n := &native{repo: repo, path: abs}
	if wt, err := repo.Worktree(); err == nil {
		n.path = wt.Filesystem.Root()
	}
	if st, ok := repo.Storer.(*filesystem.Storage); ok {
		n.gitDir = st.Filesystem()
	}
	return n, nil
}

func (n *native) RepoPath() string {
	if n == nil {
		return ""
	}
	return n.path
}

func (n *native) GitDir() string {
	if n == nil || n.gitDir == nil {
		return ""
	}
	return n.gitDir.Root()
}

func (n *native) HeadState() (hash string, headName string, ok bool, err error) {
	head, err := n.repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return "", "", false, fmt.Errorf("read HEAD: %w", err)
	}
	if head.Type() == plumbing.SymbolicReference && head.Target().IsBranch() {
		headName = head.Target().Short()
	}
	resolved, err := n.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", headName, false, nil
		}
		return "", "", false, fmt.Errorf("resolve HEAD: %w", err)
	}
	return resolved.Hash().String(), headName, true, nil
}

func (n *native) TrackingRef(branch string) (Ref, bool, error) {
	cfg, err := n.repo.Config()
	if err != nil {
		return Ref{}, false, fmt.Errorf("read config: %w", err)
	}
	b, ok := cfg.Branches[branch]
	if !ok || b.Remote == "" || b.Merge == "" {
		return Ref{}, false, nil
	}
	name := trackingRefName(cfg, b)
	slog.Debug("tracking ref",
		slog.String("branch", branch),
		slog.String("remote", b.Remote),
		slog.String("ref", name.String()),
	)
	return n.ResolveRef(name.String())
}

// trackingRefName maps branch.<name>.merge through the fetch refspecs of
// branch.<name>.remote, the same way git resolves @{upstream}.
func trackingRefName(cfg *config.Config, b *config.Branch) plumbing.ReferenceName {
	if b.Remote == "." {
		return b.Merge
	}
	if remote, ok := cfg.Remotes[b.Remote]; ok {
		for _, spec := range remote.Fetch {
			if spec.Match(b.Merge) {
				return spec.Dst(b.Merge)
			}
		}
	}
	return plumbing.NewRemoteReferenceName(b.Remote, b.Merge.Short())
}

func (n *native) ResolveRef(name string) (Ref, bool, error) {
	ref, err := n.repo.Reference(plumbing.ReferenceName(name), true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return Ref{}, false, nil
		}
		return Ref{}, false, fmt.Errorf("resolve %s: %w", name, err)
	}
	return Ref{Name: name, Hash: ref.Hash().String()}, true, nil
}

func (n *native) AheadBehind(localHash string, upstreamHash string) (int, int, error) {
	local := plumbing.NewHash(localHash)
	upstream := plumbing.NewHash(upstreamHash)
	if local == upstream {
		return 0, 0, nil
	}
	fromLocal, err := n.reachable(local)
	if err != nil {
		return 0, 0, err
	}
	fromUpstream, err := n.reachable(upstream)
	if err != nil {
		return 0, 0, err
	}
	return countMissing(fromLocal, fromUpstream), countMissing(fromUpstream, fromLocal), nil
}

// reachable returns every commit reachable from hash, hash included.
func (n *native) reachable(hash plumbing.Hash) (map[plumbing.Hash]struct{}, error) {
	commit, err := n.repo.CommitObject(hash)
	if err != nil {
		return nil, fmt.Errorf("read commit %s: %w", hash, err)
	}
	seen := map[plumbing.Hash]struct{}{}
	iter := object.NewCommitPreorderIter(commit, nil, nil)
	defer iter.Close()
	err = iter.ForEach(func(c *object.Commit) error {
		seen[c.Hash] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk history from %s: %w", hash, err)
	}
	return seen, nil
}

func countMissing(set, other map[plumbing.Hash]struct{}) int {
	count := 0
	for hash := range set {
		if _, ok := other[hash]; !ok {
			count++
		}
	}
	return count
}

func (n *native) WorkingStatus() ([]StatusEntry, error) {
	wt, err := n.repo.Worktree()
	if err != nil {
		return nil, err
	}
	wt.Excludes = append(wt.Excludes, globalExcludes()...)
	status, err := wt.Status()
	if err != nil {
		return nil, err
	}
	entries := make([]StatusEntry, 0, len(status))
	for path, st := range status {
		entry := StatusEntry{
			Path:     path,
			Staging:  fileStateFromCode(st.Staging, false),
			Worktree: fileStateFromCode(st.Worktree, true),
		}
		if entry.Clean() {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// fileStateFromCode converts a go-git status code. go-git marks untracked
// files as Untracked in both scopes; only the working tree side counts.
func fileStateFromCode(code gitlib.StatusCode, worktree bool) FileState {
	switch code {
	case gitlib.Untracked:
		if worktree {
			return New
		}
		return Unmodified
	case gitlib.Modified:
		return Modified
	case gitlib.Added, gitlib.Copied:
		return New
	case gitlib.Deleted:
		return Deleted
	case gitlib.Renamed:
		return Renamed
	case gitlib.UpdatedButUnmerged:
		return Conflicted
	default:
		return Unmodified
	}
}

func (n *native) State() (RepoState, error) {
	if n.gitDir == nil {
		return StateClean, nil
	}
	return stateFromGitDir(n.gitDir)
}
