package telemetry

import (
	"fmt"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"go.uber.org/zap"

	"simple-notes-manager/internal/config"
)

// NewRelic запускает агент New Relic APM.
// При выключенном APM возвращает nil без ошибки: роутер в этом случае не подключает nrgin
func NewRelic(cfg *config.ConfigNewRelic, log *zap.SugaredLogger) (*newrelic.Application, error) {
	if cfg == nil || !cfg.Enabled {
		log.Info("new relic is disabled")
		return nil, nil
	}

	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.AppName),
		newrelic.ConfigLicense(cfg.License),
		newrelic.ConfigEnabled(cfg.Enabled),
	)
	if err != nil {
		return nil, fmt.Errorf("newrelic.NewApplication: %w", err)
	}

	timeout := time.Duration(cfg.ConnectionTimeout) * time.Second
	if err := app.WaitForConnection(timeout); err != nil {
		app.Shutdown(timeout)
		return nil, fmt.Errorf("app.WaitForConnection: %w", err)
	}

	log.Infow("new relic connected", "app_name", cfg.AppName)
	return app, nil
}
