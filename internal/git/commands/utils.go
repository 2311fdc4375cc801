package commands

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/kurobon/gitrest/internal/git"
)

// Shared parameter helpers for queries

// boolParam reads a flag parameter. A present but empty value ("?cached")
// counts as true.
func boolParam(params url.Values, name string) (bool, error) {
	if !params.Has(name) {
		return false, nil
	}
	v := params.Get(name)
	if v == "" {
		return true, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%w: %s=%q is not a boolean", git.ErrInvalidParam, name, v)
	}
	return b, nil
}

func intParam(params url.Values, name string) (int, error) {
	v := params.Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s=%q is not a non-negative integer", git.ErrInvalidParam, name, v)
	}
	return n, nil
}
