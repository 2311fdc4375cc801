package commands

import (
	"context"
	"net/url"

	"github.com/kurobon/gitrest/internal/git"
)

func init() {
	git.RegisterQuery("ls-tree", func() git.Query { return &LsTreeQuery{} })
}

type LsTreeQuery struct{}

var _ git.Query = (*LsTreeQuery)(nil)

func (q *LsTreeQuery) Run(ctx context.Context, repo *git.Repo, params url.Values) (any, error) {
	return repo.LsTree(ctx, params.Get("rev"), params.Get("path"))
}

func (q *LsTreeQuery) Help() string {
	return `usage: ls-tree [rev=<rev>] [path=<path>]

The tree at path (the root by default) as of rev (HEAD by default).`
}
