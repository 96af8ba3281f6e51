package feed

import (
	"context"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/dmorgan81/getimg/internal/log"
	"github.com/dmorgan81/getimg/internal/store"
	"github.com/gorilla/feeds"
	"github.com/samber/do"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

var imageExts = []string{".png", ".jpeg", ".jpg", ".webp"}

type S3Client interface {
	s3.ListObjectsV2APIClient
	HeadObject(context.Context, *s3.HeadObjectInput, ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

type Params struct {
	Bucket string
	Prefix string
	// Link is the public base URL objects are served from. Defaults to the
	// bucket's S3 website-style URL.
	Link string
}

type Generator struct {
	client S3Client
	limit  int
}

func NewS3Generator(i *do.Injector) (*Generator, error) {
	return &Generator{client: do.MustInvoke[*s3.Client](i), limit: 8}, nil
}

// Generate renders an RSS feed with one item per image stored by getimg in
// the bucket, newest first.
func (g *Generator) Generate(ctx context.Context, params Params) ([]byte, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("feed").With("bucket", params.Bucket)
	log.Info("generating rss feed")

	link := strings.TrimRight(lo.Ternary(params.Link != "", params.Link,
		fmt.Sprintf("https://%s.s3.amazonaws.com", params.Bucket)), "/")

	feed := feeds.Feed{
		Title:       "getimg",
		Description: fmt.Sprintf("Images generated into s3://%s", params.Bucket),
		Link:        &feeds.Link{Href: link},
		Updated:     time.Now(),
	}

	input := &s3.ListObjectsV2Input{Bucket: aws.String(params.Bucket)}
	if params.Prefix != "" {
		input.Prefix = aws.String(params.Prefix)
	}
	pager := s3.NewListObjectsV2Paginator(g.client, input)

	var mu sync.Mutex
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(lo.Ternary(g.limit > 0, g.limit, 1))
	for pager.HasMorePages() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			_ = group.Wait()
			return nil, err
		}

		objs := lo.Filter(page.Contents, func(o s3types.Object, _ int) bool {
			ext := strings.ToLower(path.Ext(aws.ToString(o.Key)))
			return lo.Contains(imageExts, ext)
		})

		for _, obj := range objs {
			obj := obj
			group.Go(func() error {
				out, err := g.client.HeadObject(ctx, &s3.HeadObjectInput{
					Bucket: aws.String(params.Bucket),
					Key:    obj.Key,
				})
				if err != nil {
					return err
				}

				meta := lo.MapValues(out.Metadata, func(v string, _ string) string {
					return store.DecodeMetadata(v)
				})
				if meta["prompt"] == "" {
					return nil
				}
				item := &feeds.Item{
					Id:          aws.ToString(obj.Key),
					Title:       fmt.Sprintf("%s:%s:%s", meta["prompt"], meta["model"], meta["seed"]),
					Description: meta["operation"],
					Link:        &feeds.Link{Href: link + "/" + aws.ToString(obj.Key)},
					Created:     aws.ToTime(out.LastModified),
				}

				mu.Lock()
				feed.Add(item)
				mu.Unlock()
				return nil
			})
		}
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	log.Info("collected feed items", "count", len(feed.Items))

	feed.Sort(func(a, b *feeds.Item) bool {
		return a.Created.After(b.Created)
	})
	rss, err := feed.ToRss()
	return []byte(rss), err
}
