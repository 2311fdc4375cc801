package commands

import (
	"context"
	"net/url"

	"github.com/kurobon/gitrest/internal/git"
)

func init() {
	git.RegisterQuery("config", func() git.Query { return &ConfigQuery{} })
}

type ConfigQuery struct{}

var _ git.Query = (*ConfigQuery)(nil)

// Run returns the values of one key when "key" is given, else every
// local entry.
func (q *ConfigQuery) Run(ctx context.Context, repo *git.Repo, params url.Values) (any, error) {
	if key := params.Get("key"); key != "" {
		return repo.ConfigValues(ctx, key)
	}
	return repo.ConfigList(ctx)
}

func (q *ConfigQuery) Help() string {
	return `usage: config [key=<name>]

Local repository configuration.`
}
