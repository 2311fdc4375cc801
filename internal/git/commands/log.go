package commands

import (
	"context"
	"net/url"

	"github.com/kurobon/gitrest/internal/git"
)

func init() {
	git.RegisterQuery("log", func() git.Query { return &LogQuery{} })
}

type LogQuery struct{}

var _ git.Query = (*LogQuery)(nil)

func (q *LogQuery) Run(ctx context.Context, repo *git.Repo, params url.Values) (any, error) {
	limit, err := intParam(params, "limit")
	if err != nil {
		return nil, err
	}
	return repo.Log(ctx, limit)
}

func (q *LogQuery) Help() string {
	return `usage: log [limit=<n>]

Commits of all refs, newest first.`
}
