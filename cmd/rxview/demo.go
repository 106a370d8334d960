package main

import (
	"github.com/spf13/cobra"

	"github.com/vango-dev/rxview/internal/config"
	"github.com/vango-dev/rxview/internal/demo"
	"github.com/vango-dev/rxview/pkg/component"
	"github.com/vango-dev/rxview/pkg/host"
	"github.com/vango-dev/rxview/pkg/render"
	"github.com/vango-dev/rxview/pkg/vdom"
)

func demoCmd(load func() (*config.Config, error)) *cobra.Command {
	var (
		ids    []int
		pretty bool
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the slider list headlessly",
		Long: `Mount the slider list example, drive it through a fixed script of
clicks and print the rendered HTML after every step.

Examples:
  rxview demo
  rxview demo --ids=4,5 --pretty`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			logger := cfg.Logger(cmd.ErrOrStderr())

			root := vdom.Comp(demo.SliderList, vdom.A("ids", ids))
			r := render.New(render.Config{Pretty: pretty})
			return demo.Run(cmd.OutOrStdout(), r, root, demo.SliderSteps,
				host.WithLogger(logger.With("component", "host")),
				host.WithComponentOptions(component.WithLogger(logger.With("component", "engine"))),
			)
		},
	}

	cmd.Flags().IntSliceVar(&ids, "ids", []int{1, 2, 3}, "Initial slider ids")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the HTML")

	return cmd
}
