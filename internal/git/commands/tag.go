package commands

import (
	"context"
	"net/url"

	"github.com/kurobon/gitrest/internal/git"
)

func init() {
	git.RegisterQuery("tag", func() git.Query { return &TagQuery{} })
}

type TagQuery struct{}

var _ git.Query = (*TagQuery)(nil)

func (q *TagQuery) Run(ctx context.Context, repo *git.Repo, _ url.Values) (any, error) {
	return repo.Tags(ctx)
}

func (q *TagQuery) Help() string {
	return "usage: tag\n\nTag names."
}
