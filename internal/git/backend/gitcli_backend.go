package backend

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
)

func (g *gitCLI) HeadState() (hash string, headName string, ok bool, err error) {
	if g == nil || g.path == "" {
		return "", "", false, fmt.Errorf("repository root not set")
	}
	ref, err := g.runGitCommand([]string{"symbolic-ref", "-q", "--short", "HEAD"}, true, "git symbolic-ref")
	if err != nil {
		return "", "", false, err
	}
	headName = strings.TrimSpace(ref)
	out, err := g.runGitCommand([]string{"rev-parse", "-q", "--verify", "HEAD"}, true, "git rev-parse")
	if err != nil {
		return "", "", false, err
	}
	hash = strings.TrimSpace(out)
	if hash == "" {
		return "", headName, false, nil
	}
	return hash, headName, true, nil
}

func (g *gitCLI) TrackingRef(branch string) (Ref, bool, error) {
	branch = strings.TrimSpace(branch)
	if branch == "" {
		return Ref{}, false, fmt.Errorf("branch not specified")
	}
	out, err := g.runGitCommand(
		[]string{"for-each-ref", "--format=%(upstream)", "refs/heads/" + branch},
		false,
		"git for-each-ref",
	)
	if err != nil {
		return Ref{}, false, err
	}
	name := strings.TrimSpace(out)
	if name == "" {
		return Ref{}, false, nil
	}
	return g.ResolveRef(name)
}

func (g *gitCLI) ResolveRef(name string) (Ref, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Ref{}, false, fmt.Errorf("ref not specified")
	}
	out, err := g.runGitCommand([]string{"rev-parse", "-q", "--verify", name + "^{commit}"}, true, "git rev-parse")
	if err != nil {
		return Ref{}, false, err
	}
	hash := strings.TrimSpace(out)
	if hash == "" {
		return Ref{}, false, nil
	}
	return Ref{Name: name, Hash: hash}, true, nil
}

func (g *gitCLI) AheadBehind(localHash string, upstreamHash string) (int, int, error) {
	localHash = strings.TrimSpace(localHash)
	upstreamHash = strings.TrimSpace(upstreamHash)
	if localHash == "" || upstreamHash == "" {
		return 0, 0, fmt.Errorf("commit not specified")
	}
	out, err := g.runGitCommand(
		[]string{"rev-list", "--left-right", "--count", localHash + "..." + upstreamHash},
		false,
		"git rev-list",
	)
	if err != nil {
		return 0, 0, err
	}
	return parseLeftRightCount(out)
}

// parseLeftRightCount parses "<left>\t<right>" as printed by
// git rev-list --left-right --count.
func parseLeftRightCount(out string) (int, int, error) {
	parts := strings.Fields(out)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("unexpected rev-list output: %q", out)
	}
	ahead, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("unexpected rev-list output: %q", out)
	}
	behind, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("unexpected rev-list output: %q", out)
	}
	return ahead, behind, nil
}

func (g *gitCLI) WorkingStatus() ([]StatusEntry, error) {
	if g == nil || g.path == "" {
		return nil, fmt.Errorf("repository root not set")
	}
	out, err := g.runGitCommand(
		[]string{"status", "--porcelain=v2", "-z", "--untracked-files=all", "--no-renames"},
		false,
		"git status",
	)
	if err != nil {
		return nil, err
	}
	entries, err := parseStatusPorcelainV2(strings.NewReader(out))
	if err != nil {
		return nil, fmt.Errorf("parse git status: %w", err)
	}
	return entries, nil
}

// parseStatusPorcelainV2 parses the NUL separated output of
// git status --porcelain=v2 -z.
func parseStatusPorcelainV2(r io.Reader) ([]StatusEntry, error) {
	var entries []StatusEntry
	scanner := bufio.NewScanner(r)
	scanner.Split(scanNUL)
	for scanner.Scan() {
		rec := scanner.Text()
		if len(rec) < 2 {
			continue
		}
		switch rec[0] {
		case '1':
			// 1 XY sub mH mI mW hH hI path
			fields := strings.SplitN(rec, " ", 9)
			if len(fields) != 9 || len(fields[1]) != 2 {
				return nil, fmt.Errorf("malformed record: %q", rec)
			}
			entries = append(entries, entryFromXY(fields[8], fields[1]))
		case '2':
			// 2 XY sub mH mI mW hH hI Xscore path, followed by origPath
			fields := strings.SplitN(rec, " ", 10)
			if len(fields) != 10 || len(fields[1]) != 2 {
				return nil, fmt.Errorf("malformed record: %q", rec)
			}
			entries = append(entries, entryFromXY(fields[9], fields[1]))
			if !scanner.Scan() {
				return nil, fmt.Errorf("missing original path for %q", fields[9])
			}
		case 'u':
			// u XY sub m1 m2 m3 mW h1 h2 h3 path
			fields := strings.SplitN(rec, " ", 11)
			if len(fields) != 11 {
				return nil, fmt.Errorf("malformed record: %q", rec)
			}
			entries = append(entries, StatusEntry{Path: fields[10], Staging: Conflicted, Worktree: Conflicted})
		case '?':
			entries = append(entries, StatusEntry{Path: rec[2:], Worktree: New})
		default:
			// '#' headers, '!' ignored
		}
	}
	return entries, scanner.Err()
}

func entryFromXY(path, xy string) StatusEntry {
	return StatusEntry{
		Path:     path,
		Staging:  fileStateFromPorcelain(xy[0]),
		Worktree: fileStateFromPorcelain(xy[1]),
	}
}

func fileStateFromPorcelain(c byte) FileState {
	switch c {
	case 'M':
		return Modified
	case 'T':
		return TypeChange
	case 'A', 'C':
		return New
	case 'D':
		return Deleted
	case 'R':
		return Renamed
	case 'U':
		return Conflicted
	default:
		return Unmodified
	}
}

func scanNUL(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

func (g *gitCLI) State() (RepoState, error) {
	if g == nil || g.gitDir == "" {
		return StateClean, fmt.Errorf("git directory not set")
	}
	return stateFromGitDir(osfs.New(g.gitDir))
}
