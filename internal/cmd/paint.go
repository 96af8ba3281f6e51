package cmd

import (
	"github.com/dmorgan81/getimg/api"
	"github.com/dmorgan81/getimg/internal/handler"
	"github.com/spf13/cobra"
)

func newPaintCommand(a *app) *cobra.Command {
	var (
		gen      generation
		dim      dimensions
		smp      sampling
		image    string
		mask     string
		strength float64
	)

	cmd := &cobra.Command{
		Use:   "paint",
		Short: "Repaint the masked area of an image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := loadImage("image", image)
			if err != nil {
				return err
			}
			maskData, err := loadImage("mask-image", mask)
			if err != nil {
				return err
			}
			return a.generate(cmd, handler.Input{
				Operation: cmd.Name(),
				Prompt:    gen.prompt,
				Output:    gen.output(cmd),
				Request: &api.InpaintRequest{
					Prompt:         gen.prompt,
					NegativePrompt: gen.negativePrompt,
					Image:          data,
					MaskImage:      maskData,
					Strength:       optionalFloat(cmd, "strength", strength),
					Width:          dim.width,
					Height:         dim.height,
					Steps:          gen.steps,
					Guidance:       smp.guidance,
					Seed:           gen.seedPtr(cmd),
					Scheduler:      smp.scheduler,
					OutputFormat:   gen.outputFormat,
				},
			})
		},
	}

	flags := cmd.Flags()
	gen.register(flags, 25)
	dim.register(flags)
	smp.register(flags)
	flags.StringVarP(&image, "image", "i", "", "path to the image to repaint")
	flags.StringVarP(&mask, "mask-image", "m", "", "path to the mask, white pixels are repainted")
	flags.Float64VarP(&strength, "strength", "f", 1, "how much to transform the masked area, sent only when set")
	markRequired(cmd, "prompt", "image", "mask-image")
	return cmd
}
