package commands

import (
	"context"
	"net/url"

	"github.com/kurobon/gitrest/internal/git"
)

func init() {
	git.RegisterQuery("branch", func() git.Query { return &BranchQuery{} })
}

type BranchQuery struct{}

var _ git.Query = (*BranchQuery)(nil)

func (q *BranchQuery) Run(ctx context.Context, repo *git.Repo, _ url.Values) (any, error) {
	return repo.Branches(ctx)
}

func (q *BranchQuery) Help() string {
	return `usage: branch

Local branches; the checked-out one is marked current.`
}
