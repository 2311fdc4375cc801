package commands

import (
	"context"
	"net/url"

	"github.com/kurobon/gitrest/internal/git"
)

func init() {
	git.RegisterQuery("diff", func() git.Query { return &DiffQuery{} })
}

type DiffQuery struct{}

var _ git.Query = (*DiffQuery)(nil)

func (q *DiffQuery) Run(ctx context.Context, repo *git.Repo, params url.Values) (any, error) {
	cached, err := boolParam(params, "cached")
	if err != nil {
		return nil, err
	}
	return repo.Diff(ctx, git.DiffOptions{
		Cached: cached,
		From:   params.Get("from"),
		To:     params.Get("to"),
		Path:   params.Get("path"),
	})
}

func (q *DiffQuery) Help() string {
	return `usage: diff [cached] [from=<rev>] [to=<rev>] [path=<path>]

Per-file diff entries with numbered lines.`
}
