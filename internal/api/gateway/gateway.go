package gateway

import (
	"net/http"
	"strings"

	"github.com/rs/cors"
	"github.com/tmc/grpc-websocket-proxy/wsproxy"
	"go.uber.org/zap"

	"simple-notes-manager/internal/api/http/middleware"
	"simple-notes-manager/internal/config"
)

const defaultCORSMaxAge = 86400 // 24 часа

// New оборачивает REST роутер в middleware HTTP сервера.
// Порядок (снаружи внутрь):
// 1. WebSocket Proxy (для потока событий - самый внешний слой)
// 2. CORS (обработка CORS заголовков)
// 3. Request ID (присваивает идентификатор запроса)
// 4. Logging (логирует все запросы)
// 5. Rate Limiting (ограничивает количество запросов)
func New(router http.Handler, cfg *config.ConfigGateway, log *zap.SugaredLogger) http.Handler {
	var handler http.Handler = router
	handler = middleware.RateLimit(handler, cfg.RateLimitRPS, cfg.RateLimitBurst, log)
	handler = middleware.Logging(handler, log)
	handler = middleware.RequestID(handler)
	handler = setupCORS(cfg).Handler(handler)
	// WebSocket proxy должен быть последним (самым внешним), чтобы корректно обрабатывать upgrade
	handler = setupWebSocketProxy(handler, log)

	log.Infow("http gateway configured",
		"cors_origins", cfg.CORSAllowedOrigins,
		"rate_limit_rps", cfg.RateLimitRPS,
		"rate_limit_burst", cfg.RateLimitBurst,
	)

	return handler
}

// setupCORS настраивает CORS middleware используя конфигурацию
func setupCORS(cfg *config.ConfigGateway) *cors.Cors {
	origins := strings.Split(cfg.CORSAllowedOrigins, ",")
	// Убираем пробелы из origins
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	maxAge := cfg.CORSMaxAge
	if maxAge == 0 {
		maxAge = defaultCORSMaxAge
	}

	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Content-Type",
			"X-Requested-With",
			middleware.RequestIDHeader,
		},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         maxAge,
	})
}

// setupWebSocketProxy обрабатывает WebSocket upgrade для потока событий.
// Клиент открывает ws://host/events, прокси выполняет обычный GET /events
// и отправляет каждую строку NDJSON отдельным WebSocket сообщением.
// Запросы без upgrade проходят насквозь
func setupWebSocketProxy(handler http.Handler, log *zap.SugaredLogger) http.Handler {
	return wsproxy.WebsocketProxy(handler, wsproxy.WithLogger(log))
}
