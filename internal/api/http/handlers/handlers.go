package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"simple-notes-manager/internal/api/http/docs"
	"simple-notes-manager/internal/api/http/handler"
	"simple-notes-manager/internal/api/http/handlers/events"
	"simple-notes-manager/internal/api/http/handlers/healthcheck"
	"simple-notes-manager/internal/api/http/handlers/notes"
	"simple-notes-manager/internal/config"
	svc "simple-notes-manager/internal/service"
)

// Dependencies зависимости REST API
type Dependencies struct {
	Log         *zap.SugaredLogger
	NoteService svc.NoteService
	Events      events.Source
	// ServerCtx отменяется при shutdown, чтобы завершить открытые потоки событий
	ServerCtx context.Context
	// NewRelic nil, если APM выключен
	NewRelic *newrelic.Application
	Swagger  *config.ConfigSwagger
}

// NewRouter создает gin.Engine со всеми маршрутами сервиса
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.RecoveryWithWriter(zap.NewStdLog(deps.Log.Desugar()).Writer()))
	if deps.NewRelic != nil {
		router.Use(nrgin.Middleware(deps.NewRelic))
	}

	router.NoRoute(handler.Wrapper(func(*gin.Context) handler.Result {
		return handler.Fail(http.StatusNotFound, "Not Found")
	}))
	router.NoMethod(handler.Wrapper(func(*gin.Context) handler.Result {
		return handler.Fail(http.StatusMethodNotAllowed, "Method Not Allowed")
	}))

	MapDefaults(router)
	MapApi(router, deps)
	MapSwagger(router, deps.Swagger, deps.Log)

	return router
}

// MapDefaults регистрирует служебные маршруты
func MapDefaults(r *gin.Engine) {
	r.GET("/", handler.Wrapper(healthcheck.Get))
}

// MapApi регистрирует маршруты заметок и поток событий
func MapApi(r *gin.Engine, deps Dependencies) {
	h := notes.New(deps.NoteService)

	r.GET("/notes", handler.Wrapper(h.List))
	r.POST("/notes", handler.Wrapper(h.Create))
	r.GET("/notes/:id", handler.Wrapper(h.Get))
	r.PUT("/notes/:id", handler.Wrapper(h.Update))
	r.DELETE("/notes/:id", handler.Wrapper(h.Delete))

	r.GET("/events", events.New(deps.Events, deps.ServerCtx).Stream)
}

// MapSwagger регистрирует Swagger UI, если он включен
func MapSwagger(r *gin.Engine, cfg *config.ConfigSwagger, log *zap.SugaredLogger) {
	if cfg == nil || !cfg.Enabled {
		log.Info("swagger ui is disabled")
		return
	}

	docs.SwaggerInfo.Host = cfg.Host
	url := ginSwagger.URL(fmt.Sprintf("%s://%s/swagger/doc.json", cfg.Protocol, cfg.Host))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, url))
	log.Infow("swagger ui enabled", "url", fmt.Sprintf("%s://%s/swagger/index.html", cfg.Protocol, cfg.Host))
}
