package config

import cconfig "github.com/lamassuiot/authping/core/pkg/config"

type AuthPingConfig struct {
	Logs              cconfig.Logging                `mapstructure:"logs"`
	Server            cconfig.HttpServer             `mapstructure:"server"`
	Storage           cconfig.PluggableStorageEngine `mapstructure:"storage"`
	Authentication    cconfig.Authentication         `mapstructure:"authentication"`
	BlacklistFlushJob cconfig.MonitoringJob          `mapstructure:"blacklist_flush_job"`
}

func AuthPingDefaults() AuthPingConfig {
	return AuthPingConfig{
		Logs: cconfig.Logging{
			Level: cconfig.Info,
		},
		Server: cconfig.HttpServer{
			LogLevel:           cconfig.Info,
			HealthCheckLogging: false,
			ListenAddress:      "0.0.0.0",
			Port:               8085,
			Protocol:           cconfig.HTTP,
		},
		Storage: cconfig.PluggableStorageEngine{
			LogLevel: cconfig.Info,
			Provider: cconfig.SQLite,
			SQLite: cconfig.SQLitePSEConfig{
				DatabasePath: "/var/lib/authping/authping.db",
			},
		},
		Authentication: cconfig.Authentication{
			AccessTokenLifetime:  "5m",
			RefreshTokenLifetime: "1d",
		},
		BlacklistFlushJob: cconfig.MonitoringJob{
			Enabled:   true,
			Frequency: "@hourly",
		},
	}
}
