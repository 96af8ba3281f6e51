package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dmorgan81/getimg/api"
	"github.com/dmorgan81/getimg/internal/config"
	"github.com/dmorgan81/getimg/internal/handler"
	"github.com/dmorgan81/getimg/internal/inject"
	"github.com/dmorgan81/getimg/internal/log"
	"github.com/pkg/errors"
	"github.com/samber/do"
	"github.com/spf13/cobra"
)

const examples = `  getimg edit -p "A man riding a horse on Mars." -i image.jpg -s 25 -g 7.5 -y 1.5 -c ddim
  getimg paint -p "A cityscape with neon lights." -i image.png -m mask.png -f 1 -o jpeg
  getimg t2i -p "A colorful sunset over the ocean." -w 512 -a 512 -s 4 -e 42
  getimg i2i -p "Add a forest in the background." -i t2i.png -f 0.5 -O s3://my-bucket/forest.png
  getimg cnet -r canny-1.1 -p "A painting of a landscape." -i t2i.png -c lms`

type app struct {
	configPath string
	overrides  config.Config
	injector   *do.Injector
	stderr     io.Writer
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "getimg",
		Short: "Generate and edit images with the GetImg API",
		Long: `getimg talks to the GetImg API: text to image, image to image, instruct
editing, inpainting and ControlNet conditioning. Results are written to a local
file or an s3:// destination.

Environment:
` + config.Usage(),
		Example:           examples,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to a YAML config file")
	flags.StringVar(&a.overrides.APIKey, "api-key", "", "API key, overrides GETIMG_API_KEY")
	flags.StringVar(&a.overrides.Model, "model", "", "model for t2i and i2i, overrides GETIMG_MODEL")
	flags.StringVar(&a.overrides.BaseURL, "base-url", "", "API base URL")
	flags.StringVar(&a.overrides.Proxy, "proxy", "", "http, https or socks5 proxy URL")
	flags.DurationVar(&a.overrides.Timeout, "timeout", 0, "HTTP timeout, 0 for none")
	flags.StringVar(&a.overrides.Log.Level, "log-level", "", "debug, info, warn or error")
	flags.StringVar(&a.overrides.Log.Format, "log-format", "", "json or text")

	root.AddCommand(
		newEditCommand(a),
		newPaintCommand(a),
		newTextToImageCommand(a),
		newImageToImageCommand(a),
		newControlNetCommand(a),
		newFeedCommand(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	override := func(name string, dst *string, value string) {
		if flags.Changed(name) {
			*dst = value
		}
	}
	override("api-key", &cfg.APIKey, a.overrides.APIKey)
	override("model", &cfg.Model, a.overrides.Model)
	override("base-url", &cfg.BaseURL, a.overrides.BaseURL)
	override("proxy", &cfg.Proxy, a.overrides.Proxy)
	override("log-level", &cfg.Log.Level, a.overrides.Log.Level)
	override("log-format", &cfg.Log.Format, a.overrides.Log.Format)
	if flags.Changed("timeout") {
		cfg.Timeout = a.overrides.Timeout
	}

	logger := log.NewWithOptions(a.stderr, log.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	ctx := log.NewContext(cmd.Context(), logger)
	cmd.SetContext(ctx)

	logger.Debug("loaded config", "model", cfg.Model, "base_url", cfg.BaseURL, log.Secret("api_key", cfg.APIKey))
	a.injector = inject.Setup(ctx, cfg)
	return nil
}

func (a *app) generate(cmd *cobra.Command, input handler.Input) error {
	h, err := do.Invoke[*handler.Handler](a.injector)
	if err != nil {
		return err
	}

	start := time.Now()
	out, err := h.Handle(cmd.Context(), input)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Image saved as: %s (seed %d, %s)\n",
		out.Output, out.Seed, time.Since(start).Round(time.Millisecond))
	return nil
}

// Execute runs the command line in args and returns the first error.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := &app{stderr: stderr}
	root := newRootCommand(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if a.injector != nil {
		_ = a.injector.Shutdown()
	}
	return err
}

func defaultOutput(name, format string) string {
	if format == "" {
		format = "png"
	}
	return name + "." + format
}

func loadImage(flag, path string) (string, error) {
	data, err := api.LoadImage(path)
	if err != nil {
		return "", errors.Wrapf(err, "--%s", flag)
	}
	return data, nil
}
