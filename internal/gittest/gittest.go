// Package gittest builds throwaway repositories for tests with go-git, so
// tests of the native backend do not depend on a git executable.
package gittest

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const DefaultBranch = "main"

var signature = object.Signature{
	Name:  "Test User",
	Email: "test@example.com",
	When:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
}

type Repo struct {
	t    testing.TB
	Dir  string
	Repo *gitlib.Repository
}

// Init creates an empty repository whose HEAD points at an unborn main branch.
func Init(t testing.TB) *Repo {
	t.Helper()
	dir := t.TempDir()
	repo, err := gitlib.PlainInitWithOptions(dir, &gitlib.PlainInitOptions{
		InitOptions: gitlib.InitOptions{DefaultBranch: plumbing.NewBranchReferenceName(DefaultBranch)},
	})
	if err != nil {
		t.Fatalf("init repository: %v", err)
	}
	return &Repo{t: t, Dir: dir, Repo: repo}
}

// InitWithCommit creates a repository with a single committed README.
func InitWithCommit(t testing.TB) (*Repo, plumbing.Hash) {
	t.Helper()
	r := Init(t)
	r.WriteFile("README.md", "hello\n")
	r.Add("README.md")
	return r, r.Commit("initial commit")
}

func (r *Repo) GitDir() string {
	return filepath.Join(r.Dir, ".git")
}

func (r *Repo) WriteFile(name, content string) {
	r.t.Helper()
	path := filepath.Join(r.Dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		r.t.Fatalf("mkdir for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		r.t.Fatalf("write %s: %v", name, err)
	}
}

func (r *Repo) RemoveFile(name string) {
	r.t.Helper()
	if err := os.Remove(filepath.Join(r.Dir, filepath.FromSlash(name))); err != nil {
		r.t.Fatalf("remove %s: %v", name, err)
	}
}

// WriteGitFile writes a file inside .git, e.g. MERGE_HEAD or rebase-merge/interactive.
func (r *Repo) WriteGitFile(name, content string) {
	r.t.Helper()
	path := filepath.Join(r.GitDir(), filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		r.t.Fatalf("mkdir for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		r.t.Fatalf("write %s: %v", name, err)
	}
}

func (r *Repo) Add(paths ...string) {
	r.t.Helper()
	wt := r.worktree()
	for _, p := range paths {
		if _, err := wt.Add(p); err != nil {
			r.t.Fatalf("add %s: %v", p, err)
		}
	}
}

// Rm removes name from both the index and the working tree, like git rm.
func (r *Repo) Rm(name string) {
	r.t.Helper()
	if _, err := r.worktree().Remove(name); err != nil {
		r.t.Fatalf("rm %s: %v", name, err)
	}
}

func (r *Repo) Commit(msg string) plumbing.Hash {
	r.t.Helper()
	sig := signature
	hash, err := r.worktree().Commit(msg, &gitlib.CommitOptions{
		Author:            &sig,
		Committer:         &sig,
		AllowEmptyCommits: true,
	})
	if err != nil {
		r.t.Fatalf("commit %q: %v", msg, err)
	}
	return hash
}

// CommitChain stores n commits on top of parent without touching the index or
// the working tree. Each commit reuses the parent's tree; label keeps chains
// built from the same parent distinct.
func (r *Repo) CommitChain(parent plumbing.Hash, n int, label string) plumbing.Hash {
	r.t.Helper()
	base, err := r.Repo.CommitObject(parent)
	if err != nil {
		r.t.Fatalf("read commit %s: %v", parent, err)
	}
	tip := parent
	for i := range n {
		c := &object.Commit{
			Author:       signature,
			Committer:    signature,
			Message:      fmt.Sprintf("%s %d\n", label, i+1),
			TreeHash:     base.TreeHash,
			ParentHashes: []plumbing.Hash{tip},
		}
		obj := r.Repo.Storer.NewEncodedObject()
		if err := c.Encode(obj); err != nil {
			r.t.Fatalf("encode commit: %v", err)
		}
		tip, err = r.Repo.Storer.SetEncodedObject(obj)
		if err != nil {
			r.t.Fatalf("store commit: %v", err)
		}
	}
	return tip
}

// OrphanCommit stores a root commit sharing no history with the rest of the repository.
func (r *Repo) OrphanCommit(tree plumbing.Hash, msg string) plumbing.Hash {
	r.t.Helper()
	c := &object.Commit{
		Author:    signature,
		Committer: signature,
		Message:   msg,
		TreeHash:  tree,
	}
	obj := r.Repo.Storer.NewEncodedObject()
	if err := c.Encode(obj); err != nil {
		r.t.Fatalf("encode commit: %v", err)
	}
	hash, err := r.Repo.Storer.SetEncodedObject(obj)
	if err != nil {
		r.t.Fatalf("store commit: %v", err)
	}
	return hash
}

func (r *Repo) TreeOf(commit plumbing.Hash) plumbing.Hash {
	r.t.Helper()
	c, err := r.Repo.CommitObject(commit)
	if err != nil {
		r.t.Fatalf("read commit %s: %v", commit, err)
	}
	return c.TreeHash
}

func (r *Repo) SetRef(name plumbing.ReferenceName, hash plumbing.Hash) {
	r.t.Helper()
	if err := r.Repo.Storer.SetReference(plumbing.NewHashReference(name, hash)); err != nil {
		r.t.Fatalf("set %s: %v", name, err)
	}
}

// SetRemoteBranch points refs/remotes/<remote>/<branch> at hash.
func (r *Repo) SetRemoteBranch(remote, branch string, hash plumbing.Hash) {
	r.t.Helper()
	r.SetRef(plumbing.NewRemoteReferenceName(remote, branch), hash)
}

// DetachHead points HEAD directly at hash.
func (r *Repo) DetachHead(hash plumbing.Hash) {
	r.t.Helper()
	r.SetRef(plumbing.HEAD, hash)
}

// Track adds remote with the default fetch refspec and makes it the upstream of branch.
func (r *Repo) Track(branch, remote string) {
	r.t.Helper()
	if _, err := r.Repo.Remote(remote); err != nil {
		_, err := r.Repo.CreateRemote(&config.RemoteConfig{
			Name: remote,
			URLs: []string{"https://example.invalid/" + remote + ".git"},
		})
		if err != nil {
			r.t.Fatalf("create remote %s: %v", remote, err)
		}
	}
	err := r.Repo.CreateBranch(&config.Branch{
		Name:   branch,
		Remote: remote,
		Merge:  plumbing.NewBranchReferenceName(branch),
	})
	if err != nil {
		r.t.Fatalf("configure branch %s: %v", branch, err)
	}
}

func (r *Repo) worktree() *gitlib.Worktree {
	r.t.Helper()
	wt, err := r.Repo.Worktree()
	if err != nil {
		r.t.Fatalf("worktree: %v", err)
	}
	return wt
}
