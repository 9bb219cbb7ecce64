package grpc

import (
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/reflection"

	"simple-notes-manager/internal/api/grpc/interceptors"
)

// NewServer создает и настраивает gRPC сервер с интерцепторами и конфигурацией.
// Возвращает также health сервер, чтобы при shutdown перевести его в NOT_SERVING
func NewServer(handler NotesServer, log *zap.SugaredLogger, useReflection bool) (*grpc.Server, *health.Server) {
	// Порядок интерцепторов важен:
	// 1. Logger - логирует все запросы, включая упавшие с panic
	// 2. Recovery - превращает panic в codes.Internal
	grpcServer := grpc.NewServer(
		// Ограничиваем количество одновременных стримов
		grpc.MaxConcurrentStreams(25),
		// KeepAlive параметры для защиты от зависших соединений
		grpc.KeepaliveParams(keepalive.ServerParameters{
			MaxConnectionIdle:     30 * time.Minute, // Закрытие неактивных соединений через 30 минут
			MaxConnectionAge:      1 * time.Hour,    // Максимальное время жизни соединения (ротация)
			MaxConnectionAgeGrace: 5 * time.Second,  // Ожидание завершения активных запросов перед закрытием
			Time:                  10 * time.Minute, // Время между пингами
			Timeout:               20 * time.Second, // Время ожидания ответа на ping
		}),
		grpc.ChainUnaryInterceptor(
			interceptors.LoggerUnaryInterceptor(log),
			interceptors.RecoveryUnaryInterceptor(log),
		),
		grpc.ChainStreamInterceptor(
			interceptors.StreamInterceptor(log),
			interceptors.RecoveryStreamInterceptor(log),
		),
	)

	RegisterNotesServer(grpcServer, handler)
	log.Infow("registered grpc service", "service", ServiceName)

	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	// Reflection для grpcurl/grpcui
	if useReflection {
		reflection.Register(grpcServer)
		log.Info("enabled grpc reflection")
	}

	return grpcServer, healthServer
}
