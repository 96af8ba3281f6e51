package store

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var png = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestParseDestination(t *testing.T) {
	tests := []struct {
		dest   string
		bucket string
		name   string
		err    bool
	}{
		{dest: "t2i.png", name: "t2i.png"},
		{dest: "/tmp/out/cnet.jpeg", name: "/tmp/out/cnet.jpeg"},
		{dest: "s3://images/2024/01/kitten.png", bucket: "images", name: "2024/01/kitten.png"},
		{dest: "s3://images", err: true},
		{dest: "s3://images/", err: true},
		{dest: "s3:///kitten.png", err: true},
		{dest: "s3://images/dir/", err: true},
	}

	for _, tt := range tests {
		t.Run(tt.dest, func(t *testing.T) {
			bucket, name, err := ParseDestination(tt.dest)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.bucket, bucket)
			assert.Equal(t, tt.name, name)
		})
	}
}

func TestFileUploader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	err := (&FileUploader{}).Upload(context.Background(), UploadParams{Name: path, Data: png})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, png, data)
}

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = data
	return &s3.PutObjectOutput{}, nil
}

func TestS3Uploader(t *testing.T) {
	fake := &fakePutter{}
	uploader := &S3Uploader{Client: fake}

	err := uploader.Upload(context.Background(), UploadParams{
		Bucket:   "images",
		Name:     "kitten.png",
		Data:     png,
		Metadata: map[string]string{"prompt": "a kitten"},
	})
	require.NoError(t, err)

	assert.Equal(t, "images", aws.ToString(fake.input.Bucket))
	assert.Equal(t, "kitten.png", aws.ToString(fake.input.Key))
	assert.Equal(t, "image/png", aws.ToString(fake.input.ContentType))
	assert.Equal(t, "a kitten", fake.input.Metadata["prompt"])
	assert.Equal(t, png, fake.body)
}

type recordingUploader struct {
	uploads []UploadParams
}

func (r *recordingUploader) Upload(_ context.Context, params UploadParams) error {
	r.uploads = append(r.uploads, params)
	return nil
}

func TestRouter(t *testing.T) {
	local := &recordingUploader{}
	remote := &recordingUploader{}
	resolved := 0
	router := &Router{
		Local: local,
		Remote: func() (Uploader, error) {
			resolved++
			return remote, nil
		},
	}
	ctx := context.Background()

	require.NoError(t, router.Upload(ctx, UploadParams{Name: "local.png"}))
	assert.Zero(t, resolved)
	require.NoError(t, router.Upload(ctx, UploadParams{Bucket: "b", Name: "remote.png"}))

	assert.Len(t, local.uploads, 1)
	assert.Len(t, remote.uploads, 1)
	assert.Equal(t, 1, resolved)
}

func TestRouterRemoteError(t *testing.T) {
	router := &Router{
		Local: &recordingUploader{},
		Remote: func() (Uploader, error) {
			return nil, errors.New("no credentials")
		},
	}
	err := router.Upload(context.Background(), UploadParams{Bucket: "b", Name: "k"})
	assert.ErrorContains(t, err, "no credentials")

	router.Remote = nil
	assert.Error(t, router.Upload(context.Background(), UploadParams{Bucket: "b", Name: "k"}))
}

type fakeCloudFront struct {
	input *cloudfront.CreateInvalidationInput
}

func (f *fakeCloudFront) CreateInvalidation(_ context.Context, in *cloudfront.CreateInvalidationInput, _ ...func(*cloudfront.Options)) (*cloudfront.CreateInvalidationOutput, error) {
	f.input = in
	return &cloudfront.CreateInvalidationOutput{}, nil
}

func TestCloudFrontInvalidator(t *testing.T) {
	fake := &fakeCloudFront{}
	invalidator := &CloudFrontInvalidator{Client: fake, Distribution: "E123"}

	require.NoError(t, invalidator.Invalidate(context.Background(), []string{"/kitten.png"}))
	assert.Equal(t, "E123", aws.ToString(fake.input.DistributionId))
	assert.EqualValues(t, 1, aws.ToInt32(fake.input.InvalidationBatch.Paths.Quantity))
	assert.Equal(t, []string{"/kitten.png"}, fake.input.InvalidationBatch.Paths.Items)
	assert.NotEmpty(t, aws.ToString(fake.input.InvalidationBatch.CallerReference))
}

func TestMetadataEncoding(t *testing.T) {
	tests := []struct {
		value string
		plain bool
	}{
		{value: "a kitten", plain: true},
		{value: "lcm-realistic-vision-v5-1", plain: true},
		{value: "a kitten\non the beach"},
		{value: "café au lait"},
		{value: "猫"},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			encoded := EncodeMetadata(tt.value)
			if tt.plain {
				assert.Equal(t, tt.value, encoded)
			}
			assert.NotContains(t, encoded, "\n")
			assert.Equal(t, tt.value, DecodeMetadata(encoded))
		})
	}
	assert.Equal(t, "=?broken", DecodeMetadata("=?broken"))
}

func TestS3UploaderSendsEncodedMetadata(t *testing.T) {
	var header http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	client := s3.New(s3.Options{
		Region:       "us-east-1",
		BaseEndpoint: aws.String(srv.URL),
		UsePathStyle: true,
		Credentials:  aws.AnonymousCredentials{},
	})
	uploader := &S3Uploader{Client: client}

	prompt := "a kitten\non the beach"
	err := uploader.Upload(context.Background(), UploadParams{
		Bucket:   "images",
		Name:     "beach.png",
		Data:     png,
		Metadata: map[string]string{"prompt": EncodeMetadata(prompt)},
	})
	require.NoError(t, err)
	require.NotNil(t, header)
	assert.Equal(t, prompt, DecodeMetadata(header.Get("X-Amz-Meta-Prompt")))
}
