package backend

import (
	"bufio"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// globalExcludes returns the ignore patterns git applies on top of the
// repository's own: core.excludesfile from /etc/gitconfig and ~/.gitconfig,
// and the default $XDG_CONFIG_HOME/git/ignore when ~/.gitconfig names none.
// Unreadable sources are skipped.
func globalExcludes() []gitignore.Pattern {
	root := osfs.New("/")
	var patterns []gitignore.Pattern
	if ps, err := gitignore.LoadSystemPatterns(root); err != nil {
		slog.Debug("system excludes skipped", slog.Any("error", err))
	} else {
		patterns = append(patterns, ps...)
	}
	global, err := gitignore.LoadGlobalPatterns(root)
	if err != nil {
		slog.Debug("global excludes skipped", slog.Any("error", err))
	}
	if len(global) > 0 {
		return append(patterns, global...)
	}
	if path := defaultExcludesFile(); path != "" {
		ps, err := readExcludesFile(root, path)
		if err != nil {
			slog.Debug("default excludes skipped", slog.String("path", path), slog.Any("error", err))
		}
		patterns = append(patterns, ps...)
	}
	return patterns
}

func defaultExcludesFile() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "git", "ignore")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "git", "ignore")
}

// readExcludesFile parses one gitignore-format file. A missing file has no patterns.
func readExcludesFile(fsys billy.Filesystem, path string) ([]gitignore.Pattern, error) {
	f, err := fsys.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var patterns []gitignore.Pattern
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	return patterns, scanner.Err()
}
