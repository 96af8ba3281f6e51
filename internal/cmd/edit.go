package cmd

import (
	"github.com/dmorgan81/getimg/api"
	"github.com/dmorgan81/getimg/internal/handler"
	"github.com/spf13/cobra"
)

func newEditCommand(a *app) *cobra.Command {
	var (
		gen           generation
		smp           sampling
		image         string
		imageGuidance float64
	)

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit an image following an instruction",
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
				Request: &api.EditRequest{
					Prompt:         gen.prompt,
					NegativePrompt: gen.negativePrompt,
					Image:          data,
					ImageGuidance:  imageGuidance,
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
	smp.register(flags)
	flags.StringVarP(&image, "image", "i", "", "path to the image to edit")
	flags.Float64VarP(&imageGuidance, "image-guidance", "y", 1.5, "how closely the result follows the source image")
	markRequired(cmd, "prompt", "image")
	return cmd
}
