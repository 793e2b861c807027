package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Service identifies which microservice is being configured.
type Service string

const (
	ProductsService    Service = "products"
	RestaurantsService Service = "restaurants"
)

var defaultPorts = map[Service]string{
	ProductsService:    "3003",
	RestaurantsService: "3004",
}

// ErrMissingSetting is returned when a required key has no value.
var ErrMissingSetting = errors.New("missing required setting")

// Config holds process-wide settings read from the environment.
type Config struct {
	Service Service `mapstructure:"-"`

	Port string `mapstructure:"PORT"`

	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	DBAutoMigrate  bool   `mapstructure:"DB_AUTO_MIGRATE"`
	DBMaxOpenConns int    `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBDebugQueries bool   `mapstructure:"DB_DEBUG"`

	UserDetailsURL     string        `mapstructure:"USER_DETAILS_URL"`
	UserDetailsTimeout time.Duration `mapstructure:"USER_DETAILS_TIMEOUT"`

	JWTSecretKey string `mapstructure:"JWT_SECRET_KEY"`
	JWTIssuer    string `mapstructure:"JWT_ISSUER"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// Load reads configuration for the given service from the environment and,
// when CONFIG_FILE is set, from that env-style file.
func Load(service Service) (Config, error) {
	v := viper.New()
	setDefaults(v, service)
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Service = service
	cfg.UserDetailsURL = strings.TrimRight(cfg.UserDetailsURL, "/")

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first required setting that is empty.
func (c Config) Validate() error {
	switch {
	case c.DatabaseURL == "":
		return fmt.Errorf("%w: DATABASE_URL", ErrMissingSetting)
	case c.JWTSecretKey == "":
		return fmt.Errorf("%w: JWT_SECRET_KEY", ErrMissingSetting)
	case c.UserDetailsURL == "":
		return fmt.Errorf("%w: USER_DETAILS_URL", ErrMissingSetting)
	case c.Port == "":
		return fmt.Errorf("%w: PORT", ErrMissingSetting)
	}
	return nil
}

// Every key needs a default (even an empty one) so AutomaticEnv picks it up during Unmarshal.
func setDefaults(v *viper.Viper, service Service) {
	v.SetDefault("CONFIG_FILE", "")
	v.SetDefault("PORT", defaultPorts[service])
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_AUTO_MIGRATE", false)
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_DEBUG", false)
	v.SetDefault("USER_DETAILS_URL", "http://localhost:3001")
	v.SetDefault("USER_DETAILS_TIMEOUT", 5*time.Second)
	v.SetDefault("JWT_SECRET_KEY", "")
	v.SetDefault("JWT_ISSUER", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
}
