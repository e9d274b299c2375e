package git

import (
	"errors"
	"testing"
)

const testHash = "1234567890abcdef1234567890abcdef12345678"

func TestCurrentBranchName(t *testing.T) {
	t.Parallel()

	svc := NewWithBackend(&fakeBackend{repoPath: "repo", headStateFunc: headOn(testHash, "main")})

	got, err := svc.CurrentBranchName()
	if err != nil {
		t.Fatalf("CurrentBranchName() error = %v", err)
	}
	if got != "main" {
		t.Fatalf("CurrentBranchName() = %q, want %q", got, "main")
	}
}

func TestCurrentBranchName_Detached(t *testing.T) {
	t.Parallel()

	svc := NewWithBackend(&fakeBackend{repoPath: "repo", headStateFunc: headOn(testHash, "")})

	_, err := svc.CurrentBranchName()
	if !errors.Is(err, ErrDetachedHead) {
		t.Fatalf("CurrentBranchName() error = %v, want ErrDetachedHead", err)
	}
}

func TestCurrentBranchName_Unborn(t *testing.T) {
	t.Parallel()

	svc := NewWithBackend(&fakeBackend{repoPath: "repo", headStateFunc: headOn("", "main")})

	_, err := svc.CurrentBranchName()
	if !errors.Is(err, ErrDetachedHead) {
		t.Fatalf("CurrentBranchName() error = %v, want ErrDetachedHead", err)
	}
}

func TestCurrentBranchName_BackendError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	svc := NewWithBackend(&fakeBackend{
		repoPath: "repo",
		headStateFunc: func() (string, string, bool, error) {
			return "", "", false, boom
		},
	})

	_, err := svc.CurrentBranchName()
	if !errors.Is(err, ErrUnresolvableHead) || !errors.Is(err, boom) {
		t.Fatalf("CurrentBranchName() error = %v, want ErrUnresolvableHead wrapping boom", err)
	}
}

func TestCurrentBranchCommit(t *testing.T) {
	t.Parallel()

	svc := NewWithBackend(&fakeBackend{repoPath: "repo", headStateFunc: headOn(testHash, "")})
	got, err := svc.CurrentBranchCommit()
	if err != nil {
		t.Fatalf("CurrentBranchCommit() error = %v", err)
	}
	if got != testHash {
		t.Fatalf("CurrentBranchCommit() = %q, want %q", got, testHash)
	}

	unborn := NewWithBackend(&fakeBackend{repoPath: "repo", headStateFunc: headOn("", "main")})
	if _, err := unborn.CurrentBranchCommit(); !errors.Is(err, ErrUnresolvableHead) {
		t.Fatalf("CurrentBranchCommit() error = %v, want ErrUnresolvableHead", err)
	}
}

func TestQueries_NoBackend(t *testing.T) {
	t.Parallel()

	for _, svc := range []*Service{NewWithBackend(nil), NewWithBackend(&fakeBackend{})} {
		if _, err := svc.CurrentBranchName(); err == nil {
			t.Fatal("CurrentBranchName: expected error")
		}
		if _, err := svc.CurrentBranchCommit(); err == nil {
			t.Fatal("CurrentBranchCommit: expected error")
		}
		if _, _, err := svc.TrackingUpstreamDivergence(); err == nil {
			t.Fatal("TrackingUpstreamDivergence: expected error")
		}
		if _, _, err := svc.NamedRemoteDivergence(DefaultUpstreamRemote); err == nil {
			t.Fatal("NamedRemoteDivergence: expected error")
		}
		if _, err := svc.WorkingStatus(); err == nil {
			t.Fatal("WorkingStatus: expected error")
		}
		if _, err := svc.RepositoryState(); err == nil {
			t.Fatal("RepositoryState: expected error")
		}
	}
}
