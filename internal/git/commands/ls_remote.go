package commands

import (
	"context"
	"net/url"

	"github.com/kurobon/gitrest/internal/git"
)

func init() {
	git.RegisterQuery("ls-remote", func() git.Query { return &LsRemoteQuery{} })
}

type LsRemoteQuery struct{}

var _ git.Query = (*LsRemoteQuery)(nil)

func (q *LsRemoteQuery) Run(ctx context.Context, repo *git.Repo, params url.Values) (any, error) {
	return repo.LsRemote(ctx, params.Get("remote"))
}

func (q *LsRemoteQuery) Help() string {
	return `usage: ls-remote [remote=<name>]

Refs advertised by a remote.`
}
