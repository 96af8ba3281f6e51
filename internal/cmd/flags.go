package cmd

import (
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// generation holds the flags every image command shares.
type generation struct {
	prompt         string
	negativePrompt string
	steps          int
	seed           int64
	outputFormat   string
	out            string
}

func (g *generation) register(flags *pflag.FlagSet, steps int) {
	flags.StringVarP(&g.prompt, "prompt", "p", "", "text prompt guiding the generation")
	flags.StringVarP(&g.negativePrompt, "negative-prompt", "n", "", "text describing what to avoid")
	flags.IntVarP(&g.steps, "steps", "s", steps, "number of denoising steps")
	flags.Int64VarP(&g.seed, "seed", "e", 0, "seed for deterministic generation, random when unset")
	flags.StringVarP(&g.outputFormat, "output-format", "o", "png", "output format: jpeg, png or webp")
	flags.StringVarP(&g.out, "out", "O", "", "output path or s3://bucket/key, defaults to <command>.<format>")
}

func (g *generation) seedPtr(cmd *cobra.Command) *int64 {
	return lo.Ternary(cmd.Flags().Changed("seed"), lo.ToPtr(g.seed), nil)
}

func (g *generation) output(cmd *cobra.Command) string {
	return lo.Ternary(g.out != "", g.out, defaultOutput(cmd.Name(), g.outputFormat))
}

func optionalFloat(cmd *cobra.Command, name string, value float64) *float64 {
	return lo.Ternary(cmd.Flags().Changed(name), lo.ToPtr(value), nil)
}

type dimensions struct {
	width  int
	height int
}

func (d *dimensions) register(flags *pflag.FlagSet) {
	flags.IntVarP(&d.width, "width", "w", 512, "width of the generated image in pixels")
	flags.IntVarP(&d.height, "height", "a", 512, "height of the generated image in pixels")
}

type sampling struct {
	guidance  float64
	scheduler string
}

func (s *sampling) register(flags *pflag.FlagSet) {
	flags.Float64VarP(&s.guidance, "guidance", "g", 7.5, "classifier-free guidance scale")
	flags.StringVarP(&s.scheduler, "scheduler", "c", "euler", "scheduler used to denoise, e.g. euler, ddim, lms")
}

func markRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		lo.Must0(cmd.MarkFlagRequired(name))
	}
}
