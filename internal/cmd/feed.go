package cmd

import (
	"os"

	"github.com/dmorgan81/getimg/internal/feed"
	"github.com/pkg/errors"
	"github.com/samber/do"
	"github.com/spf13/cobra"
)

func newFeedCommand(a *app) *cobra.Command {
	var (
		params feed.Params
		out    string
	)

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Write an RSS feed of the images stored in an S3 bucket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			generator, err := do.Invoke[*feed.Generator](a.injector)
			if err != nil {
				return err
			}
			rss, err := generator.Generate(cmd.Context(), params)
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(rss)
				return err
			}
			return errors.Wrapf(os.WriteFile(out, rss, 0644), "write %s", out)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&params.Bucket, "bucket", "", "bucket holding the generated images")
	flags.StringVar(&params.Prefix, "prefix", "", "only include keys with this prefix")
	flags.StringVar(&params.Link, "link", "", "public base URL of the bucket")
	flags.StringVarP(&out, "out", "O", "-", "output file, - for stdout")
	markRequired(cmd, "bucket")
	return cmd
}
