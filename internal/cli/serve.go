package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Gobd/apispec"
	"github.com/Gobd/apispec/internal/demo"
	"github.com/Gobd/apispec/internal/logging"
)

// ServeConfig is the merged input of the serve command.
type ServeConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
	Rate            float64
	Burst           int
	Doc             apispec.Config
	Log             logging.Config
}

var serveRunner = runServe

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo users API",
		Long:  "Run the demo users API with its OpenAPI document, Swagger UI and request validation.",
		Example: strings.TrimSpace(`  apispec-demo serve --addr :8080
  apispec-demo --config openapi.yaml serve --log-format json --log-file logs/app.log`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveServeConfig(cmd)
			if err != nil {
				return err
			}
			return serveRunner(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("addr", ":8080", "Listen address")
	flags.Duration("shutdown-timeout", 10*time.Second, "Graceful shutdown timeout")
	flags.Float64("rate", 0, "Requests per second per client IP; 0 disables limiting")
	flags.Int("burst", 10, "Rate limit burst")
	flags.String("log-level", "info", "Log level (debug|info|warn|error)")
	flags.String("log-format", "text", "Log format (text|json)")
	flags.String("log-file", "", "Rolling log file; stdout only when empty")
	return cmd
}

func resolveServeConfig(cmd *cobra.Command) (*ServeConfig, error) {
	doc, err := loadDocConfig(cmd, demo.DefaultConfig())
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	cfg := &ServeConfig{Doc: doc}
	if cfg.Addr, err = flags.GetString("addr"); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = flags.GetDuration("shutdown-timeout"); err != nil {
		return nil, err
	}
	if cfg.Rate, err = flags.GetFloat64("rate"); err != nil {
		return nil, err
	}
	if cfg.Burst, err = flags.GetInt("burst"); err != nil {
		return nil, err
	}
	if cfg.Log.Level, err = flags.GetString("log-level"); err != nil {
		return nil, err
	}
	if cfg.Log.Format, err = flags.GetString("log-format"); err != nil {
		return nil, err
	}
	if cfg.Log.Filename, err = flags.GetString("log-file"); err != nil {
		return nil, err
	}
	switch cfg.Log.Format {
	case "text", "json":
	default:
		return nil, newUsageError(fmt.Sprintf("invalid --log-format %q: expected text or json", cfg.Log.Format))
	}
	verbose, err := flags.GetBool("verbose")
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	cfg.Log.MaxSize, cfg.Log.MaxBackups, cfg.Log.MaxAge = 100, 3, 28
	return cfg, nil
}

func runServe(ctx context.Context, cfg *ServeConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger, err := logging.Init(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	app, err := demo.New(cfg.Doc, logger, demo.WithRateLimit(cfg.Rate, cfg.Burst))
	if err != nil {
		return fmt.Errorf("build app: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", cfg.Addr, "docs", cfg.Doc.SwaggerPath)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
