package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/deppfellow/service-chain/internal/config"
	"github.com/deppfellow/service-chain/internal/handler"
	"github.com/deppfellow/service-chain/internal/logger"
	"github.com/deppfellow/service-chain/internal/router"
	"github.com/deppfellow/service-chain/internal/server"
	"github.com/deppfellow/service-chain/internal/service"
)

func main() {
	// Used until the configured logger exists.
	bootLogger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(bootLogger).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(bootLogger zerolog.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "servicechain",
		Short:         "Runs one service of the data/edge/time chain",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serviceCmd(bootLogger, config.KindData, "Serve GET /route?p= with derived fields"),
		serviceCmd(bootLogger, config.KindEdge, "Serve GET /?name= by merging the data and time services"),
		serviceCmd(bootLogger, config.KindTime, "Serve GET /time with the current UTC time"),
	)

	return rootCmd
}

func serviceCmd(bootLogger zerolog.Logger, kind config.ServiceKind, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(kind),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(kind)
			if err != nil {
				bootLogger.Error().Err(err).Str("service", string(kind)).Msg("failed to load config")
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
}

// run serves cfg until ctx is cancelled, then shuts down gracefully.
func run(ctx context.Context, cfg *config.Config) error {
	loggerService := logger.NewLoggerService(cfg.Observability)

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize server")
		loggerService.Shutdown()
		return err
	}

	services, err := service.NewServices(srv)
	if err != nil {
		log.Error().Err(err).Msg("could not create services")
		loggerService.Shutdown()
		return err
	}

	handlers := handler.NewHandlers(srv, services)
	r := router.NewRouter(srv, handlers)

	srv.SetupHTTPServer(r)

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			log.Error().Err(err).Msg("failed to start server")
			loggerService.Shutdown()
			return err
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	log.Info().Msg("server exited properly")
	return nil
}
