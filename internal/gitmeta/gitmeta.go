// Package gitmeta reads best-effort metadata from the workspace's git
// checkout: the HEAD commit and its author. Used to default the requester
// identity when the job does not configure one, and to stamp run records.
package gitmeta

import (
	"fmt"

	git "github.com/go-git/go-git/v5"
)

// Meta is the workspace checkout metadata.
type Meta struct {
	CommitSHA   string
	AuthorName  string
	AuthorEmail string
	Branch      string
}

// FromWorkspace reads HEAD metadata from the git repository at root. A
// workspace without a repository is not an error a run should fail on;
// callers treat any error here as "no metadata".
func FromWorkspace(root string) (Meta, error) {
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return Meta{}, fmt.Errorf("open repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return Meta{}, fmt.Errorf("resolve HEAD: %w", err)
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return Meta{}, fmt.Errorf("read HEAD commit: %w", err)
	}

	meta := Meta{
		CommitSHA:   head.Hash().String(),
		AuthorName:  commit.Author.Name,
		AuthorEmail: commit.Author.Email,
	}
	if head.Name().IsBranch() {
		meta.Branch = head.Name().Short()
	}
	return meta, nil
}
