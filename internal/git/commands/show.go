package commands

import (
	"context"
	"net/url"

	"github.com/kurobon/gitrest/internal/git"
)

func init() {
	git.RegisterQuery("show", func() git.Query { return &ShowQuery{} })
}

type ShowQuery struct{}

var _ git.Query = (*ShowQuery)(nil)

func (q *ShowQuery) Run(ctx context.Context, repo *git.Repo, params url.Values) (any, error) {
	return repo.Show(ctx, params.Get("commit"))
}

func (q *ShowQuery) Help() string {
	return `usage: show commit=<sha1>

One commit with its parents, message and changed files.`
}
