package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/killallgit/dialogue-qc/api"
	"github.com/killallgit/dialogue-qc/api/types"
	"github.com/killallgit/dialogue-qc/internal/services/analyses"
	"github.com/killallgit/dialogue-qc/internal/services/cleanup"
	"github.com/killallgit/dialogue-qc/internal/transport/natsqc"
	"github.com/killallgit/dialogue-qc/pkg/config"
	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the Dialogue QC HTTP API with the configured settings.

The server accepts single-file uploads for analysis and exposes stored
runs and analyses. When nats.enabled is set, an audio check worker also
answers requests on the configured subject, reading audio from the
JetStream object store bucket. A positive retention.max_age prunes old
runs in the background.

Example:
  dialogue-qc serve
  dialogue-qc serve --port 9090
  dialogue-qc serve --host 0.0.0.0 --port 8080 --nats`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Server flags
	serveCmd.Flags().String("host", "", "server host (overrides config)")
	serveCmd.Flags().Int("port", 0, "server port (overrides config)")
	serveCmd.Flags().Bool("nats", false, "also start the NATS audio check worker")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := setupLogger(cmd, cfg)

	if host, _ := cmd.Flags().GetString("host"); host != "" {
		cfg.Server.Host = host
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Server.Port = port
	}
	if withNATS, _ := cmd.Flags().GetBool("nats"); withNATS {
		cfg.NATS.Enabled = true
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	profiles, err := loadProfiles(cfg)
	if err != nil {
		return err
	}

	analysisService := analyses.NewService(analyses.NewRepository(db.DB))
	deps := &types.Dependencies{
		DB:              db,
		AnalysisService: analysisService,
		Profiles:        profiles,
		Logger:          log,
		Version:         Version,
	}

	server := api.NewServer(api.OptionsFromConfig(cfg), deps)
	if err := server.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting API server", "address", api.OptionsFromConfig(cfg).Address)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	if cfg.NATS.Enabled {
		worker, conn, err := newNATSWorker(cfg, profiles, analysisService, log)
		if err != nil {
			_ = server.Shutdown(context.Background())
			return err
		}
		defer conn.Close()

		g.Go(func() error {
			return worker.Run(gctx)
		})
	}

	if cfg.Retention.MaxAge > 0 {
		retention := cleanup.NewService(analysisService, cfg.Retention.MaxAge, cfg.Retention.Interval, log)
		retention.Start(gctx)
		defer retention.Stop()
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		log.Info("server gracefully stopped")
		return nil
	})

	return g.Wait()
}

// newNATSWorker connects to NATS and binds the audio object store
func newNATSWorker(cfg *config.Config, profiles *config.Profiles, recorder natsqc.Recorder, log *slog.Logger) (*natsqc.Worker, *nats.Conn, error) {
	conn, err := nats.Connect(cfg.NATS.URL,
		nats.Name("dialogue-qc"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info("nats reconnected", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to NATS at %s: %w", cfg.NATS.URL, err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	store, err := natsqc.NewObjectStore(js, cfg.NATS.Bucket)
	if err != nil {
		conn.Close()
		return nil, nil, err
	}

	worker := natsqc.NewWorker(conn, natsqc.Config{
		Subject: cfg.NATS.Subject,
		Queue:   cfg.NATS.Queue,
		Timeout: cfg.NATS.Timeout,
	}, store, profiles, recorder, log)

	return worker, conn, nil
}
