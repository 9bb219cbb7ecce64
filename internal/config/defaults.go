package config

// Значения по умолчанию для незаданных параметров
const (
	DefaultLogLevel                = "info"
	DefaultPortGRPC                = 50051
	DefaultPortHTTP                = 8080
	DefaultHTTPReadTimeout         = 5
	DefaultHTTPWriteTimeout        = 10
	DefaultHTTPIdleTimeout         = 120
	DefaultHTTPReadHeaderTimeout   = 2
	DefaultGracefulShutdownTimeout = 30
	DefaultCORSAllowedOrigins      = "*"
	DefaultCORSMaxAge              = 86400
	DefaultRateLimitRPS            = 100
	DefaultRateLimitBurst          = 10
	DefaultSwaggerProtocol         = "http"
	DefaultEventBufferSize         = 16
	DefaultNewRelicAppName         = "simple-notes-manager"
	DefaultNewRelicTimeout         = 10
)

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults создает отсутствующие секции и заполняет нулевые значения
func (c *Config) ApplyDefaults() {
	if c.Logger == nil {
		c.Logger = &ConfigLogger{}
	}
	if c.Server == nil {
		c.Server = &ConfigServer{}
	}
	if c.Gateway == nil {
		c.Gateway = &ConfigGateway{}
	}
	if c.Swagger == nil {
		c.Swagger = &ConfigSwagger{}
	}
	if c.Events == nil {
		c.Events = &ConfigEvents{}
	}
	if c.NewRelic == nil {
		c.NewRelic = &ConfigNewRelic{}
	}

	setDefault(&c.Logger.Level, DefaultLogLevel)

	setDefault(&c.Server.PortGRPC, DefaultPortGRPC)
	setDefault(&c.Server.PortHTTP, DefaultPortHTTP)
	setDefault(&c.Server.HTTPReadTimeout, DefaultHTTPReadTimeout)
	setDefault(&c.Server.HTTPWriteTimeout, DefaultHTTPWriteTimeout)
	setDefault(&c.Server.HTTPIdleTimeout, DefaultHTTPIdleTimeout)
	setDefault(&c.Server.HTTPReadHeaderTimeout, DefaultHTTPReadHeaderTimeout)
	setDefault(&c.Server.GracefulShutdownTimeout, DefaultGracefulShutdownTimeout)

	setDefault(&c.Gateway.CORSAllowedOrigins, DefaultCORSAllowedOrigins)
	setDefault(&c.Gateway.CORSMaxAge, DefaultCORSMaxAge)
	setDefault(&c.Gateway.RateLimitRPS, DefaultRateLimitRPS)
	setDefault(&c.Gateway.RateLimitBurst, DefaultRateLimitBurst)

	setDefault(&c.Swagger.Protocol, DefaultSwaggerProtocol)

	setDefault(&c.Events.BufferSize, DefaultEventBufferSize)

	setDefault(&c.NewRelic.AppName, DefaultNewRelicAppName)
	setDefault(&c.NewRelic.ConnectionTimeout, DefaultNewRelicTimeout)
}

func setDefault[T comparable](field *T, def T) {
	var zero T
	if *field == zero {
		*field = def
	}
}
