//go:build !gitcli

package git

import (
	"github.com/thiagokokada/gitprompt-go/internal/buildinfo"
	gitbackend "github.com/thiagokokada/gitprompt-go/internal/git/backend"
)

const backendName = "native"

func openBackend(repoPath string) (Backend, error) {
	return gitbackend.OpenNative(repoPath)
}

// BackendVersion describes the git implementation compiled in.
func BackendVersion() string {
	return "go-git " + buildinfo.DependencyVersion("github.com/go-git/go-git/v5")
}
