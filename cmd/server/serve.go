package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	"simple-notes-manager/internal/config"
	"simple-notes-manager/internal/logger"
	"simple-notes-manager/internal/server"
)

const serviceName = "simple-notes-manager"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST and gRPC servers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("error initializing config: %w", err)
		}

		level, levelErr := logger.NewAtomicLevel(cfg.Logger.Level)
		log, err := logger.New(serviceName, level)
		if err != nil {
			return fmt.Errorf("error initializing logger: %w", err)
		}
		defer func(log *zap.SugaredLogger) {
			_ = log.Sync()
		}(log)

		if levelErr != nil {
			log.Warnw("startup", "status", "falling back to info level", "error", levelErr)
		}

		if err := run(log, level, cfg); err != nil {
			log.Errorw("startup", "ERROR", err)
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func run(log *zap.SugaredLogger, level zap.AtomicLevel, cfg *config.Config) error {
	// =======================================================================================================
	// Setup max procs
	if _, err := maxprocs.Set(maxprocs.Logger(log.Infof)); err != nil {
		return fmt.Errorf("maxprocs: %w", err)
	}
	log.Infow("startup", "GOMAXPROCS", runtime.GOMAXPROCS(0), "version", version)

	// =======================================================================================================
	// Servers
	srv, err := server.NewServer(cfg, log)
	if err != nil {
		return err
	}
	if err := srv.Initialize(); err != nil {
		return err
	}

	// Уровень логирования меняется без перезапуска
	if err := srv.Watch(configFile, level); err != nil {
		log.Warnw("startup", "status", "config watch disabled", "error", err)
	}

	errChan := srv.Start()

	// =======================================================================================================
	// App start and shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	return wait(log, srv, errChan, shutdown)
}

// shutdowner останавливает запущенный сервер
type shutdowner interface {
	Shutdown() error
}

// wait блокируется до ошибки сервера или сигнала и останавливает сервер.
// Ошибка остановки не теряется ни в одной из веток
func wait(log *zap.SugaredLogger, srv shutdowner, errChan <-chan error, shutdown <-chan os.Signal) error {
	select {
	case err := <-errChan:
		log.Errorw("shutdown", "status", "server error", "error", err)
		if shutdownErr := srv.Shutdown(); shutdownErr != nil {
			log.Errorw("shutdown", "status", "could not stop server gracefully", "error", shutdownErr)
			return errors.Join(fmt.Errorf("server error: %w", err), shutdownErr)
		}
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Infow("shutdown", "status", "shutdown started", "signal", sig)
		defer log.Infow("shutdown", "status", "shutdown complete", "signal", sig)

		if err := srv.Shutdown(); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}
