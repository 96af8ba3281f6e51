package api

import "strings"

const (
	EditModel       = "instruct-pix2pix"
	InpaintModel    = "stable-diffusion-v1-5-inpainting"
	ControlNetModel = "stable-diffusion-v1-5"
)

// Request is implemented by every request body the client knows how to send.
type Request interface {
	path() string
	defaultModel(clientModel string) string
	modelName() string
	setModel(model string)
	validate() error
}

// ModelOf returns the model set on req. After a call to Client.Generate this is
// the model that was sent.
func ModelOf(req Request) string {
	return req.modelName()
}

// TextToImageRequest is the body of POST /latent-consistency/text-to-image.
type TextToImageRequest struct {
	Prompt         string `json:"prompt"`
	Model          string `json:"model"`
	NegativePrompt string `json:"negative_prompt,omitempty"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	Steps          int    `json:"steps"`
	OutputFormat   string `json:"output_format"`
	Seed           *int64 `json:"seed,omitempty"`
}

func (*TextToImageRequest) path() string                     { return "/latent-consistency/text-to-image" }
func (*TextToImageRequest) defaultModel(model string) string { return model }
func (r *TextToImageRequest) setModel(model string)          { r.Model = model }
func (r *TextToImageRequest) modelName() string              { return r.Model }

func (r *TextToImageRequest) validate() error {
	if r == nil {
		return errNilRequest
	}
	if err := checkPrompt(r.Prompt); err != nil {
		return err
	}
	if err := checkSize(r.Width, r.Height); err != nil {
		return err
	}
	return checkSteps(r.Steps)
}

// ImageToImageRequest is the body of POST /latent-consistency/image-to-image.
// Image is base64 encoded.
type ImageToImageRequest struct {
	Model          string   `json:"model"`
	Prompt         string   `json:"prompt"`
	NegativePrompt string   `json:"negative_prompt,omitempty"`
	Image          string   `json:"image"`
	Strength       *float64 `json:"strength,omitempty"`
	Steps          int      `json:"steps"`
	OutputFormat   string   `json:"output_format"`
	Seed           *int64   `json:"seed,omitempty"`
}

func (*ImageToImageRequest) path() string                     { return "/latent-consistency/image-to-image" }
func (*ImageToImageRequest) defaultModel(model string) string { return model }
func (r *ImageToImageRequest) setModel(model string)          { r.Model = model }
func (r *ImageToImageRequest) modelName() string              { return r.Model }

func (r *ImageToImageRequest) validate() error {
	if r == nil {
		return errNilRequest
	}
	if err := checkPrompt(r.Prompt); err != nil {
		return err
	}
	if err := checkImage("image", r.Image); err != nil {
		return err
	}
	return checkSteps(r.Steps)
}

// EditRequest is the body of POST /stable-diffusion/instruct.
type EditRequest struct {
	Model          string  `json:"model"`
	Prompt         string  `json:"prompt"`
	NegativePrompt string  `json:"negative_prompt,omitempty"`
	Image          string  `json:"image"`
	ImageGuidance  float64 `json:"image_guidance"`
	Steps          int     `json:"steps"`
	Guidance       float64 `json:"guidance"`
	Seed           *int64  `json:"seed,omitempty"`
	Scheduler      string  `json:"scheduler"`
	OutputFormat   string  `json:"output_format"`
}

func (*EditRequest) path() string               { return "/stable-diffusion/instruct" }
func (*EditRequest) defaultModel(string) string { return EditModel }
func (r *EditRequest) setModel(model string)    { r.Model = model }
func (r *EditRequest) modelName() string        { return r.Model }

func (r *EditRequest) validate() error {
	if r == nil {
		return errNilRequest
	}
	if err := checkPrompt(r.Prompt); err != nil {
		return err
	}
	if err := checkImage("image", r.Image); err != nil {
		return err
	}
	return checkSteps(r.Steps)
}

// InpaintRequest is the body of POST /stable-diffusion/inpaint. White pixels
// of MaskImage mark the area to repaint.
type InpaintRequest struct {
	Model          string   `json:"model"`
	Prompt         string   `json:"prompt"`
	NegativePrompt string   `json:"negative_prompt,omitempty"`
	Image          string   `json:"image"`
	MaskImage      string   `json:"mask_image"`
	Strength       *float64 `json:"strength,omitempty"`
	Width          int      `json:"width"`
	Height         int      `json:"height"`
	Steps          int      `json:"steps"`
	Guidance       float64  `json:"guidance"`
	Seed           *int64   `json:"seed,omitempty"`
	Scheduler      string   `json:"scheduler"`
	OutputFormat   string   `json:"output_format"`
}

func (*InpaintRequest) path() string               { return "/stable-diffusion/inpaint" }
func (*InpaintRequest) defaultModel(string) string { return InpaintModel }
func (r *InpaintRequest) setModel(model string)    { r.Model = model }
func (r *InpaintRequest) modelName() string        { return r.Model }

func (r *InpaintRequest) validate() error {
	if r == nil {
		return errNilRequest
	}
	if err := checkPrompt(r.Prompt); err != nil {
		return err
	}
	if err := checkImage("image", r.Image); err != nil {
		return err
	}
	if err := checkImage("mask_image", r.MaskImage); err != nil {
		return err
	}
	if err := checkSize(r.Width, r.Height); err != nil {
		return err
	}
	return checkSteps(r.Steps)
}

// ControlNetRequest is the body of POST /stable-diffusion/controlnet. ControlNet
// names the conditioning mode, e.g. "canny-1.1" or "softedge-1.1", and Strength
// is the conditioning scale.
type ControlNetRequest struct {
	ControlNet     string  `json:"controlnet"`
	Model          string  `json:"model"`
	Prompt         string  `json:"prompt"`
	NegativePrompt string  `json:"negative_prompt,omitempty"`
	Image          string  `json:"image"`
	Strength       float64 `json:"strength"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	Steps          int     `json:"steps"`
	Guidance       float64 `json:"guidance"`
	Seed           *int64  `json:"seed,omitempty"`
	Scheduler      string  `json:"scheduler"`
	OutputFormat   string  `json:"output_format"`
}

func (*ControlNetRequest) path() string               { return "/stable-diffusion/controlnet" }
func (*ControlNetRequest) defaultModel(string) string { return ControlNetModel }
func (r *ControlNetRequest) setModel(model string)    { r.Model = model }
func (r *ControlNetRequest) modelName() string        { return r.Model }

func (r *ControlNetRequest) validate() error {
	if r == nil {
		return errNilRequest
	}
	if strings.TrimSpace(r.ControlNet) == "" {
		return invalid("controlnet is required")
	}
	if err := checkPrompt(r.Prompt); err != nil {
		return err
	}
	if err := checkImage("image", r.Image); err != nil {
		return err
	}
	if err := checkSize(r.Width, r.Height); err != nil {
		return err
	}
	return checkSteps(r.Steps)
}

var errNilRequest = invalid("request is nil")

func checkPrompt(prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		return invalid("prompt is required")
	}
	return nil
}

func checkSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return invalid("width and height must be positive, got %dx%d", width, height)
	}
	return nil
}

func checkSteps(steps int) error {
	if steps <= 0 {
		return invalid("steps must be positive, got %d", steps)
	}
	return nil
}

func checkImage(field, data string) error {
	if data == "" {
		return invalid("%s is required", field)
	}
	return nil
}
