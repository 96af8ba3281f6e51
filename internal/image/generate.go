package image

import (
	"context"
	"net/http"

	"github.com/dmorgan81/getimg/api"
	"github.com/dmorgan81/getimg/internal/log"
	"github.com/samber/do"
)

type Generator interface {
	Generate(context.Context, api.Request) (*api.Response, error)
}

// NewGetImgGenerator builds the API client from the injected http client and
// the named "api_key", "model" and "base_url" values.
func NewGetImgGenerator(i *do.Injector) (Generator, error) {
	key, err := do.InvokeNamed[string](i, "api_key")
	if err != nil {
		return nil, err
	}
	httpClient, err := do.Invoke[*http.Client](i)
	if err != nil {
		return nil, err
	}
	client := api.NewClient(key, do.MustInvokeNamed[string](i, "model"),
		api.WithHTTPClient(httpClient),
		api.WithBaseURL(do.MustInvokeNamed[string](i, "base_url")),
	)
	return client, nil
}

// Describe logs the format and size of a generated image. Unknown formats are
// only logged, never treated as failures.
func Describe(ctx context.Context, data []byte) api.ImageInfo {
	logger := log.FromContextOrDiscard(ctx).WithGroup("image")
	info, err := api.DescribeImage(data)
	if err != nil {
		logger.Warn("could not read image header", log.Err(err))
		return info
	}
	logger.Debug("decoded image header", "format", info.Format, "width", info.Width, "height", info.Height)
	return info
}
