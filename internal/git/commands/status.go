package commands

import (
	"context"
	"net/url"

	"github.com/kurobon/gitrest/internal/git"
)

func init() {
	git.RegisterQuery("status", func() git.Query { return &StatusQuery{} })
}

type StatusQuery struct{}

// Ensure StatusQuery implements git.Query
var _ git.Query = (*StatusQuery)(nil)

func (q *StatusQuery) Run(ctx context.Context, repo *git.Repo, _ url.Values) (any, error) {
	return repo.Status(ctx)
}

func (q *StatusQuery) Help() string {
	return `usage: status

Branch name and per-file flags (staged, removed, isNew, conflict) from
'git status --porcelain -b'.`
}
