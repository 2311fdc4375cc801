package commands

import (
	"context"
	"net/url"

	"github.com/kurobon/gitrest/internal/git"
)

func init() {
	git.RegisterQuery("stash", func() git.Query { return &StashQuery{} })
}

type StashQuery struct{}

var _ git.Query = (*StashQuery)(nil)

func (q *StashQuery) Run(ctx context.Context, repo *git.Repo, params url.Values) (any, error) {
	return repo.StashShow(ctx, params.Get("stash"))
}

func (q *StashQuery) Help() string {
	return `usage: stash [stash=<stash@{n}>]

Files recorded in a stash entry.`
}
