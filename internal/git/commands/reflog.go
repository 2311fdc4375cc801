package commands

import (
	"context"
	"net/url"

	"github.com/kurobon/gitrest/internal/git"
)

func init() {
	git.RegisterQuery("reflog", func() git.Query { return &ReflogQuery{} })
}

type ReflogQuery struct{}

var _ git.Query = (*ReflogQuery)(nil)

func (q *ReflogQuery) Run(ctx context.Context, repo *git.Repo, params url.Values) (any, error) {
	limit, err := intParam(params, "limit")
	if err != nil {
		return nil, err
	}
	return repo.Reflog(ctx, params.Get("ref"), limit)
}

func (q *ReflogQuery) Help() string {
	return "usage: reflog [ref=<ref>] [limit=<n>]\n\nShow reflog entries of ref (HEAD by default)."
}
