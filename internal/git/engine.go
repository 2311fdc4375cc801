package git

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
)

var ErrUnknownQuery = errors.New("unknown query")

// Query is a read-only git view whose output is parsed into records.
type Query interface {
	Run(ctx context.Context, repo *Repo, params url.Values) (any, error)
	Help() string
}

// QueryFactory allows creating new instances of queries
type QueryFactory func() Query

var registry = make(map[string]QueryFactory)

// RegisterQuery registers a query factory. Queries register from init.
func RegisterQuery(name string, factory QueryFactory) {
	registry[name] = factory
}

// Dispatch runs the named query against repo.
func Dispatch(ctx context.Context, repo *Repo, name string, params url.Values) (any, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownQuery, name)
	}
	return factory().Run(ctx, repo, params)
}

// SupportedQueries returns the registered query names, sorted.
func SupportedQueries() []string {
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// QueryHelp returns the help string for a query
func QueryHelp(name string) (string, error) {
	factory, ok := registry[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownQuery, name)
	}
	return factory().Help(), nil
}
