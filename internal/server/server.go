package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"go.uber.org/zap"
	"gocloud.dev/pubsub"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"

	"simple-notes-manager/internal/api/gateway"
	grpcapi "simple-notes-manager/internal/api/grpc"
	"simple-notes-manager/internal/api/http/handlers"
	"simple-notes-manager/internal/config"
	"simple-notes-manager/internal/events"
	"simple-notes-manager/internal/logger"
	"simple-notes-manager/internal/repository/memory"
	notesService "simple-notes-manager/internal/service/notes"
	"simple-notes-manager/internal/telemetry"
)

// Server представляет сервер приложения с gRPC и REST API
type Server struct {
	// HTTP компоненты
	HTTPServer   *http.Server
	HTTPAddr     string
	HTTPListener net.Listener

	// gRPC компоненты
	GRPCServer   *grpc.Server
	GRPCAddr     string
	GRPCListener net.Listener
	Health       *health.Server

	// Контекст сервера для graceful shutdown стримов
	// Этот контекст отменяется при shutdown для корректного завершения стримов
	Ctx    context.Context
	Cancel context.CancelFunc

	// События изменения заметок и их пересылка во внешний топик
	Events    *notesService.EventService
	Forwarder *events.Forwarder
	topic     *pubsub.Topic

	NewRelic *newrelic.Application

	// Конфигурация
	Config *config.Config
	Log    *zap.SugaredLogger
}

// NewServer создает сервер и открывает listeners. Порт 0 означает случайный свободный порт
func NewServer(cfg *config.Config, log *zap.SugaredLogger) (*Server, error) {
	grpcAddr := "0.0.0.0:" + strconv.Itoa(cfg.Server.PortGRPC)
	httpAddr := "0.0.0.0:" + strconv.Itoa(cfg.Server.PortHTTP)

	grpcListener, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", grpcAddr, err)
	}

	httpListener, err := net.Listen("tcp", httpAddr)
	if err != nil {
		_ = grpcListener.Close()
		return nil, fmt.Errorf("failed to listen on %s: %w", httpAddr, err)
	}

	// Создаем контекст сервера для graceful shutdown стримов
	// В отличие от unary методов, где контекст автоматически отменяется при GracefulStop(),
	// в стримах необходимо явно слушать этот контекст для корректного завершения
	serverCtx, serverCancel := context.WithCancel(context.Background())

	log.Infow("config loaded",
		"grpc_addr", grpcListener.Addr().String(),
		"http_addr", httpListener.Addr().String(),
		"swagger_enabled", cfg.Swagger.Enabled,
		"events_topic", cfg.Events.TopicURL != "",
	)

	return &Server{
		HTTPAddr:     httpListener.Addr().String(),
		HTTPListener: httpListener,
		GRPCAddr:     grpcListener.Addr().String(),
		GRPCListener: grpcListener,
		Ctx:          serverCtx,
		Cancel:       serverCancel,
		Config:       cfg,
		Log:          log,
	}, nil
}

// Initialize инициализирует компоненты сервера (Repository → Service → Handlers).
// При ошибке освобождает уже захваченные ресурсы и listeners
func (s *Server) Initialize() (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(err, s.Close())
		}
	}()

	s.Events = notesService.NewEventService(s.Config.Events.BufferSize)

	noteRepo := memory.NewRepository()
	s.Log.Info("initialized in-memory repository")

	noteSvc := notesService.NewNoteService(noteRepo, s.Events)
	s.Log.Info("initialized note service")

	if s.Config.Events.TopicURL != "" {
		s.topic, err = events.OpenTopic(s.Ctx, s.Config.Events.TopicURL)
		if err != nil {
			return err
		}
		s.Forwarder = events.NewForwarder(s.topic, s.Events, s.Log)
		s.Log.Infow("note events forwarding enabled", "topic", s.Config.Events.TopicURL)
	}

	nrApp, err := telemetry.NewRelic(s.Config.NewRelic, s.Log)
	if err != nil {
		return err
	}
	s.NewRelic = nrApp

	// gRPC
	noteHandler := grpcapi.NewHandler(noteSvc, s.Events, s.Ctx)
	s.GRPCServer, s.Health = grpcapi.NewServer(noteHandler, s.Log, s.Config.Server.UseReflection)

	// REST
	gin.SetMode(gin.ReleaseMode)
	router := handlers.NewRouter(handlers.Dependencies{
		Log:         s.Log,
		NoteService: noteSvc,
		Events:      s.Events,
		ServerCtx:   s.Ctx,
		NewRelic:    s.NewRelic,
		Swagger:     s.Config.Swagger,
	})

	s.HTTPServer = &http.Server{
		Handler:           gateway.New(router, s.Config.Gateway, s.Log),
		ReadTimeout:       seconds(s.Config.Server.HTTPReadTimeout),
		WriteTimeout:      seconds(s.Config.Server.HTTPWriteTimeout),
		IdleTimeout:       seconds(s.Config.Server.HTTPIdleTimeout),
		ReadHeaderTimeout: seconds(s.Config.Server.HTTPReadHeaderTimeout),
	}

	return nil
}

// Start запускает gRPC и HTTP серверы в горутинах
// Возвращает канал ошибок для отслеживания ошибок серверов
func (s *Server) Start() <-chan error {
	errChan := make(chan error, 2)

	// Форвардер останавливается закрытием EventService, а не контекстом сервера,
	// чтобы успеть переслать события запросов, завершающихся во время shutdown
	if s.Forwarder != nil {
		s.Forwarder.Start(context.Background())
	}

	go func() {
		s.Log.Infow("grpc server listening", "addr", s.GRPCAddr)
		if err := s.GRPCServer.Serve(s.GRPCListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		s.Log.Infow("http server listening", "addr", s.HTTPAddr)
		if err := s.HTTPServer.Serve(s.HTTPListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	return errChan
}

// Shutdown выполняет graceful shutdown сервера
func (s *Server) Shutdown() error {
	s.Log.Info("starting graceful shutdown")

	shutdownTimeout := seconds(s.Config.Server.GracefulShutdownTimeout)
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Отменяем контекст сервера ПЕРЕД остановкой серверов:
	// стримы WatchNotes и /events слушают его и должны завершиться первыми
	s.Cancel()
	s.Health.Shutdown()

	var errs []error

	if err := s.HTTPServer.Shutdown(ctx); err != nil {
		_ = s.HTTPServer.Close()
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	} else {
		s.Log.Info("http server stopped gracefully")
	}

	stopped := make(chan struct{})
	go func() {
		s.GRPCServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		s.Log.Info("grpc server stopped gracefully")
	case <-ctx.Done():
		s.Log.Warn("graceful shutdown timeout, forcing grpc stop")
		s.GRPCServer.Stop()
		errs = append(errs, fmt.Errorf("grpc shutdown: %w", ctx.Err()))
	}

	// Закрытие EventService завершает подписку форвардера
	s.Events.Close()
	if s.Forwarder != nil {
		if err := s.Forwarder.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	if s.NewRelic != nil {
		s.NewRelic.Shutdown(shutdownTimeout)
	}

	return errors.Join(errs...)
}

// Close освобождает ресурсы сервера, который не был запущен через Start:
// listeners, топик событий и контекст стримов
func (s *Server) Close() error {
	s.Cancel()

	var errs []error
	for _, l := range []net.Listener{s.GRPCListener, s.HTTPListener} {
		if err := l.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			errs = append(errs, fmt.Errorf("listener close: %w", err))
		}
	}

	if s.topic != nil {
		ctx, cancel := context.WithTimeout(context.Background(), seconds(s.Config.Server.GracefulShutdownTimeout))
		defer cancel()
		if err := s.topic.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("topic.Shutdown: %w", err))
		}
	}

	if s.Events != nil {
		s.Events.Close()
	}

	return errors.Join(errs...)
}

// Watch перечитывает конфигурацию при изменении файла и применяет новый уровень логирования
func (s *Server) Watch(configFile string, level zap.AtomicLevel) error {
	return config.WatchConfig(configFile, func(cfg *config.Config, err error) {
		if err != nil {
			s.Log.Warnw("config reload failed", "error", err)
			return
		}
		cfg.ApplyDefaults()
		if err := logger.SetLevel(level, cfg.Logger.Level); err != nil {
			s.Log.Warnw("invalid log level in reloaded config", "level", cfg.Logger.Level, "error", err)
			return
		}
		s.Log.Infow("log level updated", "level", cfg.Logger.Level)
	})
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
