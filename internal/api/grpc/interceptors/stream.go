package interceptors

import (
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
)

// wrappedServerStream оборачивает grpc.ServerStream для подсчета и логирования сообщений в стриме
type wrappedServerStream struct {
	grpc.ServerStream

	log    *zap.SugaredLogger
	method string
	sent   int
}

// RecvMsg переопределяет метод для логирования ошибок чтения
func (w *wrappedServerStream) RecvMsg(m interface{}) error {
	err := w.ServerStream.RecvMsg(m)
	if err != nil && !errors.Is(err, io.EOF) {
		w.log.Warnw("grpc stream recv failed", "method", w.method, "error", err)
	}
	return err
}

// SendMsg переопределяет метод для логирования исходящих сообщений
func (w *wrappedServerStream) SendMsg(m interface{}) error {
	err := w.ServerStream.SendMsg(m)
	if err != nil {
		w.log.Warnw("grpc stream send failed", "method", w.method, "error", err)
		return err
	}
	w.sent++
	w.log.Debugw("grpc stream message sent", "method", w.method, "type", fmt.Sprintf("%T", m))
	return nil
}

// StreamInterceptor логирует установление и завершение стрима
func StreamInterceptor(log *zap.SugaredLogger) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		log.Infow("grpc stream opened", "method", info.FullMethod)

		wrapped := &wrappedServerStream{
			ServerStream: ss,
			log:          log,
			method:       info.FullMethod,
		}

		start := time.Now()
		err := handler(srv, wrapped)
		if err != nil {
			log.Infow("grpc stream failed", "method", info.FullMethod, "error", err, "sent", wrapped.sent, "duration", time.Since(start))
		} else {
			log.Infow("grpc stream closed", "method", info.FullMethod, "sent", wrapped.sent, "duration", time.Since(start))
		}

		return err
	}
}
