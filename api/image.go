package api

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/pkg/errors"
	_ "golang.org/x/image/webp"
)

// SaveImage writes data to path verbatim.
func SaveImage(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "save image %s", path)
	}
	return nil
}

// LoadImage reads the file at path and returns it base64 encoded, ready to be
// placed in a request body.
func LoadImage(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "load image %s", path)
	}
	return EncodeImage(data), nil
}

func EncodeImage(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeImage accepts plain base64 as well as a data URL.
func DecodeImage(s string) ([]byte, error) {
	if strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, ","); i >= 0 {
			s = s[i+1:]
		}
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidImage, err)
	}
	return data, nil
}

type ImageInfo struct {
	Format string
	Width  int
	Height int
}

// DescribeImage reads the header of an encoded image. Formats other than png,
// jpeg, gif and webp are reported as an error.
func DescribeImage(data []byte) (ImageInfo, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ImageInfo{}, errors.Wrap(err, "describe image")
	}
	return ImageInfo{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}
