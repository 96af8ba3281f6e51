package handler

import (
	"context"
	"log/slog"
	"path"
	"strconv"
	"time"

	"github.com/dmorgan81/getimg/api"
	"github.com/dmorgan81/getimg/internal/image"
	"github.com/dmorgan81/getimg/internal/log"
	"github.com/dmorgan81/getimg/internal/store"
	"github.com/pkg/errors"
	"github.com/samber/do"
	"github.com/samber/lo"
)

type Input struct {
	Operation string
	Model     string
	Prompt    string
	Output    string
	Request   api.Request
}

// LogValue leaves out the request, which carries base64 image data.
func (i Input) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("operation", i.Operation),
		slog.String("model", i.Model),
		slog.String("prompt", i.Prompt),
		slog.String("output", i.Output),
	)
}

// toMetadata encodes the free-text values, S3 rejects header values with
// control or non-ASCII characters.
func (i Input) toMetadata(seed int64, date string) map[string]string {
	return map[string]string{
		"date":      date,
		"operation": i.Operation,
		"model":     store.EncodeMetadata(i.Model),
		"prompt":    store.EncodeMetadata(i.Prompt),
		"seed":      strconv.FormatInt(seed, 10),
	}
}

type Output struct {
	Output string
	Seed   int64
	Cost   float64
	Size   int
	Format string
	Width  int
	Height int
}

type Handler struct {
	generator   image.Generator
	uploader    store.Uploader
	invalidator store.Invalidator
	now         func() time.Time
}

func NewHandler(i *do.Injector) (*Handler, error) {
	generator, err := do.Invoke[image.Generator](i)
	if err != nil {
		return nil, err
	}
	return &Handler{
		generator:   generator,
		uploader:    do.MustInvoke[store.Uploader](i),
		invalidator: do.MustInvoke[store.Invalidator](i),
		now:         time.Now,
	}, nil
}

// Handle runs one generation and stores the image at input.Output.
func (h *Handler) Handle(ctx context.Context, input Input) (Output, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("Handler").With("input", input)
	log.Info("handling command")

	if input.Request == nil {
		return Output{}, errors.New("no request to send")
	}
	bucket, name, err := store.ParseDestination(input.Output)
	if err != nil {
		return Output{}, err
	}

	resp, err := h.generator.Generate(ctx, input.Request)
	if err != nil {
		return Output{}, err
	}
	info := image.Describe(ctx, resp.Image)
	input.Model = lo.Ternary(input.Model != "", input.Model, api.ModelOf(input.Request))

	date := h.now().UTC().Format(time.RFC3339)
	err = h.uploader.Upload(ctx, store.UploadParams{
		Bucket:      bucket,
		Name:        name,
		Data:        resp.Image,
		ContentType: lo.Ternary(info.Format != "", "image/"+info.Format, ""),
		Metadata:    input.toMetadata(resp.Seed, date),
	})
	if err != nil {
		return Output{}, err
	}

	if bucket != "" {
		if err := h.invalidator.Invalidate(ctx, []string{path.Join("/", name)}); err != nil {
			return Output{}, err
		}
	}

	log.Info("image stored", "seed", resp.Seed, "cost", resp.Cost)
	return Output{
		Output: input.Output,
		Seed:   resp.Seed,
		Cost:   resp.Cost,
		Size:   len(resp.Image),
		Format: info.Format,
		Width:  info.Width,
		Height: info.Height,
	}, nil
}
