package git

import (
	"errors"
	"slices"
	"testing"

	gitbackend "github.com/thiagokokada/gitprompt-go/internal/git/backend"
)

func TestWorkingStatus_SortsAndDropsCleanEntries(t *testing.T) {
	t.Parallel()

	svc := NewWithBackend(&fakeBackend{
		repoPath: "repo",
		workingStatusFunc: func() ([]gitbackend.StatusEntry, error) {
			return []gitbackend.StatusEntry{
				{Path: "z.txt", Worktree: gitbackend.New},
				{Path: "clean.txt"},
				{Path: "a.txt", Staging: gitbackend.Modified},
				{Path: "dir/b.txt", Worktree: gitbackend.Deleted},
			}, nil
		},
	})

	got, err := svc.WorkingStatus()
	if err != nil {
		t.Fatalf("WorkingStatus() error = %v", err)
	}
	want := []StatusEntry{
		{Path: "a.txt", Staging: gitbackend.Modified},
		{Path: "dir/b.txt", Worktree: gitbackend.Deleted},
		{Path: "z.txt", Worktree: gitbackend.New},
	}
	if !slices.Equal(got, want) {
		t.Fatalf("WorkingStatus() = %+v, want %+v", got, want)
	}
}

func TestWorkingStatus_WrapsError(t *testing.T) {
	t.Parallel()

	boom := errors.New("index corrupt")
	svc := NewWithBackend(&fakeBackend{
		repoPath: "repo",
		workingStatusFunc: func() ([]gitbackend.StatusEntry, error) {
			return nil, boom
		},
	})

	_, err := svc.WorkingStatus()
	if !errors.Is(err, ErrStatusQuery) || !errors.Is(err, boom) {
		t.Fatalf("WorkingStatus() error = %v, want ErrStatusQuery wrapping boom", err)
	}
}

func TestRepositoryState_DelegatesToBackend(t *testing.T) {
	t.Parallel()

	svc := NewWithBackend(&fakeBackend{
		repoPath: "repo",
		stateFunc: func() (gitbackend.RepoState, error) {
			return gitbackend.StateRebaseInteractive, nil
		},
	})

	got, err := svc.RepositoryState()
	if err != nil {
		t.Fatalf("RepositoryState() error = %v", err)
	}
	if got != gitbackend.StateRebaseInteractive {
		t.Fatalf("RepositoryState() = %v", got)
	}
}
