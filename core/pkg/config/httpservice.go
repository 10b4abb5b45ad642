package config

type HTTPProtocol string

const (
	HTTPS HTTPProtocol = "https"
	HTTP  HTTPProtocol = "http"
)

// HttpServer is the configuration for the HTTP server
type HttpServer struct {
	LogLevel           LogLevel     `mapstructure:"log_level"`
	HealthCheckLogging bool         `mapstructure:"health_check"`
	ListenAddress      string       `mapstructure:"listen_address"`
	Port               int          `mapstructure:"port" validate:"gte=0,lte=65535"`
	Protocol           HTTPProtocol `mapstructure:"protocol" validate:"omitempty,oneof=http https"`
	CertFile           string       `mapstructure:"cert_file" validate:"required_if=Protocol https"`
	KeyFile            string       `mapstructure:"key_file" validate:"required_if=Protocol https"`
}
