package config

// Authentication holds the token issuing and verification settings.
type Authentication struct {
	SigningKey             Password `mapstructure:"signing_key" validate:"required,min=32"`
	Issuer                 string   `mapstructure:"issuer"`
	AccessTokenLifetime    string   `mapstructure:"access_token_lifetime"`
	RefreshTokenLifetime   string   `mapstructure:"refresh_token_lifetime"`
	RotateRefreshTokens    bool     `mapstructure:"rotate_refresh_tokens"`
	BlacklistAfterRotation bool     `mapstructure:"blacklist_after_rotation"`
	PasswordHashCost       int      `mapstructure:"password_hash_cost" validate:"omitempty,gte=4,lte=31"`
}

type MonitoringJob struct {
	Enabled   bool   `mapstructure:"enabled"`
	Frequency string `mapstructure:"frequency"`
}
