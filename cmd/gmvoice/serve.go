package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/gmvoice/internal/config"
	"github.com/vango-dev/gmvoice/pkg/gamesave"
	"github.com/vango-dev/gmvoice/pkg/server"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		port        int
		host        string
		styleSheets []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server.

Configuration comes from gmvoice.json, then the LIVEKIT_URL,
LIVEKIT_API_KEY, LIVEKIT_API_SECRET, GM_PORT and GM_SAVE_BUCKET
environment variables, then these flags.

Examples:
  gmvoice serve
  gmvoice serve --port=8080 --host=0.0.0.0
  gmvoice serve --config=deploy/gmvoice.json --log-format=json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var sheets []string
			if cmd.Flags().Changed("stylesheet") {
				sheets = styleSheets
			}
			return runServe(cmd.Context(), flags, port, host, sheets)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from gmvoice.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from gmvoice.json)")
	cmd.Flags().StringSliceVar(&styleSheets, "stylesheet", nil, "Stylesheet URLs to link from the page (default from gmvoice.json)")

	return cmd
}

func runServe(ctx context.Context, flags *globalFlags, port int, host string, styleSheets []string) error {
	logger, err := newLogger(os.Stderr, flags.logLevel, flags.logFormat)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flags.configPath)
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.Server.Port = port
	}
	if host != "" {
		cfg.Server.Host = host
	}
	if styleSheets != nil {
		cfg.Static.StyleSheets = styleSheets
	}

	if ctx == nil {
		ctx = context.Background()
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return err
	}
	master := gamesave.NewMaster(store, gamesave.WithLogger(logger))

	srv, err := server.New(server.Options{
		Config: cfg,
		Logger: logger,
		Master: master,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("gmvoice starting",
		"version", version,
		"address", cfg.Address(),
		"saves", cfg.Saves.Backend,
		"call_configured", cfg.Call.APIKey != "" && cfg.Call.APISecret != "" && cfg.Call.ServerURL != "",
	)
	return srv.Run(ctx)
}

// buildStore returns the save store selected by cfg.Saves.Backend. S3
// credentials come from the AWS default chain unless Saves.Anonymous is set.
func buildStore(ctx context.Context, cfg *config.Config) (gamesave.Store, error) {
	if cfg.Saves.Backend != config.BackendS3 {
		return gamesave.NewDiskStore(cfg.SaveDirPath()), nil
	}
	client, err := gamesave.NewS3Client(ctx, gamesave.S3Config{
		Region:       cfg.Saves.Region,
		Endpoint:     cfg.Saves.Endpoint,
		UsePathStyle: cfg.Saves.UsePathStyle,
		Anonymous:    cfg.Saves.Anonymous,
	})
	if err != nil {
		return nil, err
	}
	return gamesave.NewS3Store(client, cfg.Saves.Bucket, cfg.Saves.Prefix), nil
}
