package backend

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

type gitCLI struct {
	path   string
	gitDir string
}

// OpenCLI opens the repository containing repoPath through the git executable.
func OpenCLI(repoPath string) (Backend, error) {
	if err := ensureMinGitVersion(); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, err
	}
	tmp := &gitCLI{path: abs}
	out, err := tmp.runGitCommand([]string{"rev-parse", "--show-toplevel", "--absolute-git-dir"}, false, "git rev-parse")
	if err != nil {
		if strings.Contains(err.Error(), "not a git repository") {
			return nil, fmt.Errorf("open repository %s: %w", abs, ErrNotARepository)
		}
		return nil, fmt.Errorf("open repository: %w", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || strings.TrimSpace(lines[0]) == "" || strings.TrimSpace(lines[1]) == "" {
		return nil, fmt.Errorf("open repository: unexpected git rev-parse output: %q", out)
	}
	return &gitCLI{path: strings.TrimSpace(lines[0]), gitDir: strings.TrimSpace(lines[1])}, nil
}

func (g *gitCLI) RepoPath() string {
	if g == nil {
		return ""
	}
	return g.path
}

func (g *gitCLI) GitDir() string {
	if g == nil {
		return ""
	}
	return g.gitDir
}

// runGitCommand runs git in the repository root. --no-optional-locks keeps
// commands such as git status from refreshing the index on disk.
func (g *gitCLI) runGitCommand(args []string, allowExit1 bool, context string) (string, error) {
	if g == nil || g.path == "" {
		return "", fmt.Errorf("repository root not set")
	}
	cmdArgs := append([]string{"--no-optional-locks", "-C", g.path}, args...)
	slog.Debug("running git", slog.Any("args", cmdArgs))
	cmd := exec.Command("git", cmdArgs...)
	// Error detection matches git's untranslated messages.
	cmd.Env = append(os.Environ(), "LC_ALL=C")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		// rev-parse -q --verify and symbolic-ref -q report "not found" as a silent exit 1.
		var exitErr *exec.ExitError
		notFound := allowExit1 && errors.As(err, &exitErr) && exitErr.ExitCode() == 1 && stderr.Len() == 0
		if !notFound {
			if stderr.Len() > 0 {
				return "", fmt.Errorf("%s: %v: %s", context, err, strings.TrimSpace(stderr.String()))
			}
			return "", fmt.Errorf("%s: %w", context, err)
		}
	}
	return stdout.String(), nil
}
