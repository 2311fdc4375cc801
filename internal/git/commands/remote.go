package commands

import (
	"context"
	"net/url"

	"github.com/kurobon/gitrest/internal/git"
)

func init() {
	git.RegisterQuery("remote", func() git.Query { return &RemoteQuery{} })
}

type RemoteQuery struct{}

var _ git.Query = (*RemoteQuery)(nil)

func (q *RemoteQuery) Run(ctx context.Context, repo *git.Repo, _ url.Values) (any, error) {
	return repo.Remotes(ctx)
}

func (q *RemoteQuery) Help() string {
	return `usage: remote

Configured remotes with their fetch url.`
}
