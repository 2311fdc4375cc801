package git

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoQuery struct{}

func (q *echoQuery) Run(_ context.Context, repo *Repo, params url.Values) (any, error) {
	return repo.Name + ":" + params.Get("v"), nil
}

func (q *echoQuery) Help() string { return "echo the repo name" }

func TestDispatch(t *testing.T) {
	RegisterQuery("test-echo", func() Query { return &echoQuery{} })
	t.Cleanup(func() { delete(registry, "test-echo") })

	out, err := Dispatch(context.Background(), &Repo{Name: "demo"}, "test-echo", url.Values{"v": {"1"}})
	require.NoError(t, err)
	assert.Equal(t, "demo:1", out)

	assert.Contains(t, SupportedQueries(), "test-echo")
	help, err := QueryHelp("test-echo")
	require.NoError(t, err)
	assert.Equal(t, "echo the repo name", help)
}

func TestDispatch_Unknown(t *testing.T) {
	_, err := Dispatch(context.Background(), &Repo{}, "nope", nil)
	assert.ErrorIs(t, err, ErrUnknownQuery)

	_, err = QueryHelp("nope")
	assert.ErrorIs(t, err, ErrUnknownQuery)
}
