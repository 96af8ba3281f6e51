package cmd

import (
	"github.com/dmorgan81/getimg/api"
	"github.com/dmorgan81/getimg/internal/handler"
	"github.com/spf13/cobra"
)

func newTextToImageCommand(a *app) *cobra.Command {
	var (
		gen generation
		dim dimensions
	)

	cmd := &cobra.Command{
		Use:   "t2i",
		Short: "Generate an image from a text prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.generate(cmd, handler.Input{
				Operation: cmd.Name(),
				Prompt:    gen.prompt,
				Output:    gen.output(cmd),
				Request: &api.TextToImageRequest{
					Prompt:         gen.prompt,
					NegativePrompt: gen.negativePrompt,
					Width:          dim.width,
					Height:         dim.height,
					Steps:          gen.steps,
					OutputFormat:   gen.outputFormat,
					Seed:           gen.seedPtr(cmd),
				},
			})
		},
	}

	flags := cmd.Flags()
	gen.register(flags, 4)
	dim.register(flags)
	markRequired(cmd, "prompt")
	return cmd
}
