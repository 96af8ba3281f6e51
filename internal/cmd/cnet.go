package cmd

import (
	"github.com/dmorgan81/getimg/api"
	"github.com/dmorgan81/getimg/internal/handler"
	"github.com/spf13/cobra"
)

func newControlNetCommand(a *app) *cobra.Command {
	var (
		gen        generation
		dim        dimensions
		smp        sampling
		controlnet string
		image      string
		strength   float64
	)

	cmd := &cobra.Command{
		Use:   "cnet",
		Short: "Generate an image conditioned on a ControlNet input",
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
				Request: &api.ControlNetRequest{
					ControlNet:     controlnet,
					Prompt:         gen.prompt,
					NegativePrompt: gen.negativePrompt,
					Image:          data,
					Strength:       strength,
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
	flags.StringVarP(&controlnet, "controlnet", "r", "", "ControlNet conditioning, e.g. canny-1.1, softedge-1.1, openpose-1.1")
	flags.StringVarP(&image, "image", "i", "", "path to the conditioning image")
	flags.Float64VarP(&strength, "strength", "f", 1, "scale at which the conditioning is applied")
	markRequired(cmd, "controlnet", "prompt", "image")
	return cmd
}
