package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/vango-dev/gmvoice/app/components/welcome"
	"github.com/vango-dev/gmvoice/internal/config"
	"github.com/vango-dev/gmvoice/pkg/render"
)

func renderCmd(flags *globalFlags) *cobra.Command {
	var (
		label       string
		pretty      bool
		styleSheets []string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the welcome page HTML",
		Long: `Render the welcome page to stdout without starting a server.

The output is a static document: it has no session, so the start
button is not wired to anything.

Examples:
  gmvoice render > welcome.html
  gmvoice render --label="BEGIN" --pretty`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("label") {
				cfg.Welcome.StartButtonText = label
			}
			if cmd.Flags().Changed("stylesheet") {
				cfg.Static.StyleSheets = styleSheets
			}
			return renderWelcome(cmd.OutOrStdout(), cfg, pretty)
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "Start button label (default from gmvoice.json)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the output")
	cmd.Flags().StringSliceVar(&styleSheets, "stylesheet", nil, "Stylesheet URLs to link (default from gmvoice.json)")

	return cmd
}

func renderWelcome(w io.Writer, cfg *config.Config, pretty bool) error {
	r := render.NewRenderer(render.RendererConfig{Pretty: pretty})
	return r.RenderPage(w, render.PageData{
		Title:       cfg.Name,
		StyleSheets: cfg.Static.StyleSheets,
		Body:        welcome.View(welcome.Props{StartButtonText: cfg.Welcome.StartButtonText}),
	})
}
