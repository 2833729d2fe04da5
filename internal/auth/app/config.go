package app

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is loaded from the environment. The two token secrets are the only
// required values; everything else has a workable dev default.
type Config struct {
	Issuer           string `env:"AUTHABL_ISSUER" envDefault:"authabl"`
	AccessSecret     string `env:"AUTHABL_ACCESS_TOKEN_SECRET"`
	RefreshSecret    string `env:"AUTHABL_REFRESH_TOKEN_SECRET"`
	SuperadminSecret string `env:"AUTHABL_SUPERADMIN_SECRET"`

	DatabaseFile string `env:"AUTHABL_DATABASE_FILE" envDefault:"authabl.db"`

	// BlobDriver selects where session archives go: "minio" for real
	// deployments, "memory" for dev and tests.
	BlobDriver     string `env:"AUTHABL_BLOB_DRIVER" envDefault:"memory"`
	MinioEndpoint  string `env:"AUTHABL_MINIO_ENDPOINT"`
	MinioAccessKey string `env:"AUTHABL_MINIO_ACCESS_KEY"`
	MinioSecretKey string `env:"AUTHABL_MINIO_SECRET_KEY"`
	MinioBucket    string `env:"AUTHABL_MINIO_BUCKET" envDefault:"authabl-archives"`
	MinioUseSSL    bool   `env:"AUTHABL_MINIO_USE_SSL" envDefault:"false"`

	Env       string `env:"ENV" envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	Port      int    `env:"PORT" envDefault:"8080"`

	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`
}

// LoadConfig parses the environment and validates the required secrets.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}

	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return Config{}, errors.New("AUTHABL_ACCESS_TOKEN_SECRET and AUTHABL_REFRESH_TOKEN_SECRET are required")
	}
	if cfg.BlobDriver == "minio" && cfg.MinioEndpoint == "" {
		return Config{}, errors.New("AUTHABL_MINIO_ENDPOINT is required with the minio blob driver")
	}

	return cfg, nil
}
