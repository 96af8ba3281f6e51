package cmd

import (
	"github.com/dmorgan81/getimg/api"
	"github.com/dmorgan81/getimg/internal/handler"
	"github.com/spf13/cobra"
)

func newImageToImageCommand(a *app) *cobra.Command {
	var (
		gen      generation
		image    string
		strength float64
	)

	cmd := &cobra.Command{
		Use:   "i2i",
		Short: "Generate an image from a reference image and a prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := loadImage("image", image)
			if err != nil {
				return err
			}
			return a.generate(cmd, handler.Input{
				Operation: cmd.Name(),
				Prompt:    gen.prompt,
				Output:    gen.output(cmd),
				Request: &api.ImageToImageRequest{
					Prompt:         gen.prompt,
					NegativePrompt: gen.negativePrompt,
					Image:          data,
					Strength:       optionalFloat(cmd, "strength", strength),
					Steps:          gen.steps,
					OutputFormat:   gen.outputFormat,
					Seed:           gen.seedPtr(cmd),
				},
			})
		},
	}

	flags := cmd.Flags()
	gen.register(flags, 4)
	flags.StringVarP(&image, "image", "i", "", "path to the reference image")
	flags.Float64VarP(&strength, "strength", "f", 0.5, "how much to transform the reference image, sent only when set")
	markRequired(cmd, "prompt", "image")
	return cmd
}
