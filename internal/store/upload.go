package store

import (
	"context"
	"mime"
	"strings"

	"github.com/dmorgan81/getimg/api"
	"github.com/dmorgan81/getimg/internal/log"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

type UploadParams struct {
	// Bucket is empty for local files.
	Bucket      string
	Name        string
	Data        []byte
	ContentType string
	Metadata    map[string]string
}

type Uploader interface {
	Upload(context.Context, UploadParams) error
}

// EncodeMetadata makes value safe to send as an HTTP header, which is how S3
// carries user metadata. Printable ASCII is returned unchanged; anything else
// becomes an RFC 2047 encoded word.
func EncodeMetadata(value string) string {
	return mime.QEncoding.Encode("utf-8", value)
}

// DecodeMetadata reverses EncodeMetadata. Values that fail to decode are
// returned as stored.
func DecodeMetadata(value string) string {
	decoded, err := new(mime.WordDecoder).DecodeHeader(value)
	if err != nil {
		return value
	}
	return decoded
}

// ParseDestination splits an s3://bucket/key destination. Anything else is a
// local path and is returned unchanged with an empty bucket.
func ParseDestination(dest string) (bucket, name string, err error) {
	rest, ok := strings.CutPrefix(dest, "s3://")
	if !ok {
		return "", dest, nil
	}
	bucket, name, _ = strings.Cut(rest, "/")
	if bucket == "" || name == "" || strings.HasSuffix(name, "/") {
		return "", "", errors.Errorf("invalid s3 destination %q, want s3://bucket/key", dest)
	}
	return bucket, name, nil
}

type FileUploader struct{}

func (*FileUploader) Upload(ctx context.Context, params UploadParams) error {
	log := log.FromContextOrDiscard(ctx).WithGroup("file")
	log.Info("writing", "file", params.Name, "size", humanize.Bytes(uint64(len(params.Data))))
	return api.SaveImage(params.Name, params.Data)
}

// Router sends uploads with a bucket to Remote and everything else to Local.
// Remote is resolved on first use so that local runs never load AWS
// configuration.
type Router struct {
	Local  Uploader
	Remote func() (Uploader, error)
}

func (r *Router) Upload(ctx context.Context, params UploadParams) error {
	if params.Bucket == "" {
		return r.Local.Upload(ctx, params)
	}
	if r.Remote == nil {
		return errors.Errorf("no uploader for s3://%s", params.Bucket)
	}
	remote, err := r.Remote()
	if err != nil {
		return err
	}
	return remote.Upload(ctx, params)
}
