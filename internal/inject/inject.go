package inject

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	appconfig "github.com/dmorgan81/getimg/internal/config"
	"github.com/dmorgan81/getimg/internal/feed"
	"github.com/dmorgan81/getimg/internal/handler"
	"github.com/dmorgan81/getimg/internal/httpclient"
	"github.com/dmorgan81/getimg/internal/image"
	"github.com/dmorgan81/getimg/internal/log"
	"github.com/dmorgan81/getimg/internal/param"
	"github.com/dmorgan81/getimg/internal/store"
	"github.com/samber/do"
)

// Setup registers every component. Providers are lazy: AWS configuration is
// only loaded when an S3 destination, an SSM key or the feed is used.
func Setup(ctx context.Context, cfg *appconfig.Config) *do.Injector {
	logger := log.FromContextOrDiscard(ctx)

	injector := do.NewWithOpts(&do.InjectorOpts{
		Logf: func(format string, args ...any) {
			logger.Debug(fmt.Sprintf(format, args...))
		},
	})
	do.Provide[aws.Config](injector, func(i *do.Injector) (aws.Config, error) {
		return config.LoadDefaultConfig(ctx)
	})
	do.Provide[*ssm.Client](injector, func(i *do.Injector) (*ssm.Client, error) {
		return ssm.NewFromConfig(do.MustInvoke[aws.Config](i)), nil
	})
	do.Provide[*s3.Client](injector, func(i *do.Injector) (*s3.Client, error) {
		return s3.NewFromConfig(do.MustInvoke[aws.Config](i)), nil
	})
	do.Provide[*cloudfront.Client](injector, func(i *do.Injector) (*cloudfront.Client, error) {
		return cloudfront.NewFromConfig(do.MustInvoke[aws.Config](i)), nil
	})
	do.Provide[*http.Client](injector, func(i *do.Injector) (*http.Client, error) {
		return httpclient.New(cfg.Proxy, cfg.Timeout)
	})

	do.ProvideNamedValue[string](injector, "model", cfg.Model)
	do.ProvideNamedValue[string](injector, "base_url", cfg.BaseURL)
	do.ProvideNamedValue[string](injector, "distribution", cfg.Distribution)
	do.ProvideNamed[string](injector, "api_key", func(i *do.Injector) (string, error) {
		if cfg.APIKey != "" || cfg.APIKeyParam == "" {
			return param.ResolveKey(ctx, nil, cfg.APIKey, cfg.APIKeyParam)
		}
		fetcher, err := do.Invoke[param.Fetcher](i)
		if err != nil {
			return "", err
		}
		return param.ResolveKey(ctx, fetcher, cfg.APIKey, cfg.APIKeyParam)
	})

	do.Provide[param.Fetcher](injector, param.NewParameterStoreFetcher)
	do.Provide[image.Generator](injector, image.NewGetImgGenerator)
	do.Provide[*store.S3Uploader](injector, store.NewS3Uploader)
	do.Provide[store.Uploader](injector, func(i *do.Injector) (store.Uploader, error) {
		return &store.Router{
			Local: &store.FileUploader{},
			Remote: func() (store.Uploader, error) {
				uploader, err := do.Invoke[*store.S3Uploader](i)
				if err != nil {
					return nil, err
				}
				return uploader, nil
			},
		}, nil
	})
	do.Provide[store.Invalidator](injector, func(i *do.Injector) (store.Invalidator, error) {
		if cfg.Distribution == "" {
			return store.NopInvalidator{}, nil
		}
		invalidator, err := store.NewCloudFrontInvalidator(i)
		if err != nil {
			return nil, err
		}
		return invalidator, nil
	})
	do.Provide[*feed.Generator](injector, feed.NewS3Generator)
	do.Provide[*handler.Handler](injector, handler.NewHandler)

	return injector
}
