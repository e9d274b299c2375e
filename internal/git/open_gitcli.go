//go:build gitcli

package git

import (
	"strings"

	gitbackend "github.com/thiagokokada/gitprompt-go/internal/git/backend"
)

const backendName = "gitcli"

func openBackend(repoPath string) (Backend, error) {
	return gitbackend.OpenCLI(repoPath)
}

// BackendVersion describes the git executable used for queries.
func BackendVersion() string {
	out, err := gitbackend.GitVersion()
	if err != nil {
		return "git unavailable (requires >= " + gitbackend.MinGitVersion() + ")"
	}
	return strings.TrimSpace(out)
}
