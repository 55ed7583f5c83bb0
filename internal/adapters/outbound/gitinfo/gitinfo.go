package gitinfo

import (
	"fmt"

	"github.com/go-git/go-git/v5"
)

// Reader implements domain.CommitReader using go-git. Metadata usually
// lives in a subdirectory of an SFDX project, so the repository is
// searched for upwards from the project path.
type Reader struct{}

func New() *Reader {
	return &Reader{}
}

func open(projectPath string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(projectPath, &git.PlainOpenOptions{DetectDotGit: true})
}

func (r *Reader) IsGitRepo(projectPath string) bool {
	_, err := open(projectPath)
	return err == nil
}

func (r *Reader) CommitHash(projectPath string) (string, error) {
	repo, err := open(projectPath)
	if err != nil {
		return "", fmt.Errorf("opening git repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}

	return head.Hash().String(), nil
}
