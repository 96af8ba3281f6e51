package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmorgan81/getimg/internal/log"
	"github.com/pkg/errors"
)

const (
	DefaultBaseURL = "https://api.getimg.ai/v1"
	DefaultModel   = "lcm-realistic-vision-v5-1"
)

// Client calls the GetImg API. It holds no state besides its configuration and
// is safe for concurrent use.
type Client struct {
	client  *http.Client
	key     string
	model   string
	baseURL string
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.client = client
		}
	}
}

func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = strings.TrimRight(url, "/")
		}
	}
}

// NewClient returns a client authenticating with key. An empty model selects
// DefaultModel.
func NewClient(key, model string, opts ...Option) *Client {
	c := &Client{
		client:  http.DefaultClient,
		key:     key,
		model:   model,
		baseURL: DefaultBaseURL,
	}
	if c.model == "" {
		c.model = DefaultModel
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Model() string { return c.model }

// LogValue keeps the API key out of log output.
func (c *Client) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("model", c.model),
		slog.String("base_url", c.baseURL),
		log.Secret("key", c.key),
	)
}

// TextToImage sends req through Generate. An empty req.Model is set to the
// client's model, so the caller's request is modified.
func (c *Client) TextToImage(ctx context.Context, req *TextToImageRequest) (*Response, error) {
	return c.Generate(ctx, req)
}

// ImageToImage sends req through Generate. An empty req.Model is set to
// the client's model, so the caller's request is modified.
func (c *Client) ImageToImage(ctx context.Context, req *ImageToImageRequest) (*Response, error) {
	return c.Generate(ctx, req)
}

// Edit sends req through Generate. An empty req.Model is set to
// EditModel, so the caller's request is modified.
func (c *Client) Edit(ctx context.Context, req *EditRequest) (*Response, error) {
	return c.Generate(ctx, req)
}

// Inpaint sends req through Generate. An empty req.Model is set to
// InpaintModel, so the caller's request is modified.
func (c *Client) Inpaint(ctx context.Context, req *InpaintRequest) (*Response, error) {
	return c.Generate(ctx, req)
}

// ControlNet sends req through Generate. An empty req.Model is set to
// ControlNetModel, so the caller's request is modified.
func (c *Client) ControlNet(ctx context.Context, req *ControlNetRequest) (*Response, error) {
	return c.Generate(ctx, req)
}

// Generate validates req, fills in the model when unset and sends it to the
// matching endpoint. It makes exactly one HTTP request and never retries.
// The model is written back into req; a nil req fails with ErrInvalidRequest.
func (c *Client) Generate(ctx context.Context, req Request) (*Response, error) {
	if req == nil {
		return nil, errNilRequest
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	if req.modelName() == "" {
		req.setModel(req.defaultModel(c.model))
	}

	return c.post(ctx, req.path(), req)
}

func (c *Client) post(ctx context.Context, path string, payload any) (*Response, error) {
	url := c.baseURL + path
	log := log.FromContextOrDiscard(ctx).WithGroup("getimg").With("url", url)
	log.Info("sending request")

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.key)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "post %s", path)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := newStatusError(resp, data)
		log.Warn("request failed", "status", se.StatusCode, "message", se.Message)
		return nil, se
	}

	result, err := decodeResponse(data)
	if err != nil {
		return nil, err
	}
	log.Info("received image", "seed", result.Seed, "cost", result.Cost, "bytes", len(result.Image))
	return result, nil
}
