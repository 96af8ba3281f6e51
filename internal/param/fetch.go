package param

import (
	"context"

	"github.com/pkg/errors"
)

var ErrMissingKey = errors.New("missing API key: set --api-key, GETIMG_API_KEY or GETIMG_API_KEY_PARAM")

type Fetcher interface {
	Fetch(context.Context, string) (string, error)
}

// ResolveKey returns key when it is set, otherwise the value of the parameter
// at path.
func ResolveKey(ctx context.Context, fetcher Fetcher, key, path string) (string, error) {
	if key != "" {
		return key, nil
	}
	if path == "" {
		return "", ErrMissingKey
	}
	value, err := fetcher.Fetch(ctx, path)
	if err != nil {
		return "", errors.Wrapf(err, "fetch API key from %s", path)
	}
	if value == "" {
		return "", ErrMissingKey
	}
	return value, nil
}
