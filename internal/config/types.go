package config

// ConfigLogger настройки логирования
type ConfigLogger struct {
	Level string `mapstructure:"level"`
}

// ConfigServer настройки сервера
type ConfigServer struct {
	UseReflection           bool `mapstructure:"use_reflection"`
	PortGRPC                int  `mapstructure:"port_grpc"`
	PortHTTP                int  `mapstructure:"port_http"`
	HTTPReadTimeout         int  `mapstructure:"http_read_timeout"`
	HTTPWriteTimeout        int  `mapstructure:"http_write_timeout"`
	HTTPIdleTimeout         int  `mapstructure:"http_idle_timeout"`
	HTTPReadHeaderTimeout   int  `mapstructure:"http_read_header_timeout"`
	GracefulShutdownTimeout int  `mapstructure:"graceful_shutdown_timeout"`
}

// ConfigGateway настройки HTTP Gateway
type ConfigGateway struct {
	CORSAllowedOrigins string `mapstructure:"cors_allowed_origins"`
	CORSMaxAge         int    `mapstructure:"cors_max_age"`
	RateLimitRPS       int    `mapstructure:"rate_limit_rps"`
	RateLimitBurst     int    `mapstructure:"rate_limit_burst"`
}

// ConfigSwagger настройки Swagger UI
type ConfigSwagger struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Protocol string `mapstructure:"protocol"`
}

// ConfigEvents настройки событий об изменении заметок
type ConfigEvents struct {
	BufferSize int    `mapstructure:"buffer_size"`
	TopicURL   string `mapstructure:"topic_url"` // gocloud URL, например mem://notes или awssns:///arn:...
}

// ConfigNewRelic настройки New Relic APM
type ConfigNewRelic struct {
	Enabled           bool   `mapstructure:"enabled"`
	AppName           string `mapstructure:"app_name"`
	License           string `mapstructure:"license"`
	ConnectionTimeout int    `mapstructure:"connection_timeout"`
}

// Config основная структура конфигурации
type Config struct {
	Logger   *ConfigLogger   `mapstructure:"logger"`
	Server   *ConfigServer   `mapstructure:"server"`
	Gateway  *ConfigGateway  `mapstructure:"gateway"`
	Swagger  *ConfigSwagger  `mapstructure:"swagger"`
	Events   *ConfigEvents   `mapstructure:"events"`
	NewRelic *ConfigNewRelic `mapstructure:"newrelic"`
}
