package interceptors

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// LoggerUnaryInterceptor перехватывает запросы и логирует информацию о них:
// - начало запроса (Method name)
// - конец запроса (статус ответа + затраченное время)
func LoggerUnaryInterceptor(log *zap.SugaredLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		log.Debugw("grpc request started", "method", info.FullMethod)

		start := time.Now()
		resp, err := handler(ctx, req)
		duration := time.Since(start)

		if err != nil {
			st := status.Convert(err)
			log.Infow("grpc request failed",
				"method", info.FullMethod,
				"code", st.Code().String(),
				"message", st.Message(),
				"duration", duration,
			)
			return resp, err
		}

		log.Infow("grpc request completed",
			"method", info.FullMethod,
			"code", "OK",
			"duration", duration,
		)

		return resp, nil
	}
}
