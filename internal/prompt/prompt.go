// Package prompt gathers the repository facts shown in a shell prompt and
// renders them as plain lines.
package prompt

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/thiagokokada/gitprompt-go/internal/git"
)

// DetachedLabel replaces the branch name when HEAD is not on a branch.
const DetachedLabel = "HEAD"

const (
	changesLabel     = "changes"
	newFilesLabel    = "new files"
	indexUpdateLabel = "index update"
	upstreamPrefix   = "U "
)

// Querier is the subset of *git.Service a report is built from.
type Querier interface {
	CurrentBranchName() (string, error)
	TrackingUpstreamDivergence() (git.Divergence, bool, error)
	NamedRemoteDivergence(remote string) (git.Divergence, bool, error)
	WorkingStatus() ([]git.StatusEntry, error)
	RepositoryState() (git.RepoState, error)
}

// Report is one snapshot of the repository. Nil divergences were absent or
// failed; Errs holds every failed query in the order they ran.
type Report struct {
	Branch     string
	Tracking   *git.Divergence
	Upstream   *git.Divergence
	Entries    []git.StatusEntry
	State      git.RepoState
	StateKnown bool
	Errs       []error
}

// Collect runs every query against q. A failing query does not stop the
// others.
func Collect(q Querier, remote string) Report {
	var r Report

	branch, err := q.CurrentBranchName()
	switch {
	case err == nil:
		r.Branch = branch
	case errors.Is(err, git.ErrDetachedHead):
		slog.Debug("using detached label", slog.Any("reason", err))
		r.Branch = DetachedLabel
	default:
		r.fail("branch name", err)
		r.Branch = DetachedLabel
	}

	if d, ok, err := q.TrackingUpstreamDivergence(); err != nil {
		r.fail("tracking divergence", err)
	} else if ok {
		r.Tracking = &d
	}

	if d, ok, err := q.NamedRemoteDivergence(remote); err != nil {
		r.fail("upstream divergence", err, slog.String("remote", remote))
	} else if ok {
		r.Upstream = &d
	}

	if entries, err := q.WorkingStatus(); err != nil {
		r.fail("working status", err)
	} else {
		r.Entries = entries
	}

	if state, err := q.RepositoryState(); err != nil {
		r.fail("repository state", err)
	} else {
		r.State = state
		r.StateKnown = true
	}
	return r
}

func (r *Report) fail(query string, err error, attrs ...any) {
	args := append([]any{slog.String("query", query), slog.Any("error", err)}, attrs...)
	slog.Warn("query failed", args...)
	r.Errs = append(r.Errs, err)
}

// Err joins every recorded failure, or returns nil.
func (r Report) Err() error {
	return errors.Join(r.Errs...)
}

// Lines renders the report in prompt order.
func (r Report) Lines() []string {
	lines := []string{r.Branch}
	if r.Tracking != nil {
		lines = append(lines, r.Tracking.String())
	}
	if r.Upstream != nil {
		lines = append(lines, upstreamPrefix+r.Upstream.String())
	}
	for _, e := range r.Entries {
		lines = append(lines, e.Path)
		if e.Changed() {
			lines = append(lines, changesLabel)
		}
		if e.Untracked() {
			lines = append(lines, newFilesLabel)
		}
		if e.Staged() {
			lines = append(lines, indexUpdateLabel)
		}
	}
	if r.StateKnown {
		lines = append(lines, r.State.String())
	}
	return lines
}

// WriteTo writes Lines, one per line.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	for _, line := range r.Lines() {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}
