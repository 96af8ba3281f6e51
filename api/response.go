package api

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// Response is the decoded result of any generation endpoint.
type Response struct {
	// Image holds the raw image bytes, already base64 decoded.
	Image []byte
	Seed  int64
	Cost  float64
}

type wireResponse struct {
	Image string   `json:"image"`
	Seed  *int64   `json:"seed"`
	Cost  *float64 `json:"cost"`
}

func decodeResponse(data []byte) (*Response, error) {
	var wire wireResponse
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if wire.Image == "" {
		return nil, errors.Wrap(ErrMalformedResponse, "no image in response")
	}

	img, err := DecodeImage(wire.Image)
	if err != nil {
		return nil, err
	}

	resp := &Response{Image: img}
	if wire.Seed != nil {
		resp.Seed = *wire.Seed
	}
	if wire.Cost != nil {
		resp.Cost = *wire.Cost
	}
	return resp, nil
}
