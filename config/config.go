package config

import (
	"errors"
	"fleetdesk/shared/constant"
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Config is read once from the environment (and .env when present).
type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"       default:"development"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
		Port     string `envconfig:"PORT"      default:"8080"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS" default:"10"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"   default:"15"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME" default:"fleetdesk"`
		Timezone string `envconfig:"TIMEZONE" default:"UTC"`
		// BCP 47 tag used to format amounts on statements.
		Locale string `envconfig:"LOCALE" default:"en-US"`

		CORS struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"   default:"120"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS" default:"60"`
		} `envconfig:"RATE_LIMITER"`
		APIKey string `envconfig:"API_KEY"`
	} `envconfig:"APP"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL" default:"300"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret     string `envconfig:"ACCESS_SECRET"`
		RefreshSecret    string `envconfig:"REFRESH_SECRET"`
		AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"  default:"15"`
		RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN" default:"10080"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry       int        `envconfig:"MAX_RETRY"       default:"5"`
			RetryWaitTime  int        `envconfig:"RETRY_WAIT_TIME" default:"2"`
			MigrationTable string     `envconfig:"MIGRATION_TABLE"`
			AutoMigrate    bool       `envconfig:"AUTO_MIGRATE"`
			Prefix         string     `envconfig:"PREFIX"`
			Read           DBEndpoint `envconfig:"READ"`
			Write          DBEndpoint `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
		S3 struct {
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
			Region          string `envconfig:"REGION"           default:"auto"`
			BucketName      string `envconfig:"BUCKET_NAME"`
		} `envconfig:"S3"`
	} `envconfig:"EXTERNAL"`

	Kafka struct {
		Brokers []string `envconfig:"BROKERS"`
		SASL    struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
		Topics struct {
			Alerts string `envconfig:"ALERTS" default:"fleet.alerts"`
		} `envconfig:"TOPICS"`
	} `envconfig:"KAFKA"`

	Scheduler struct {
		Enable     bool   `envconfig:"ENABLE"`
		SweepSpec  string `envconfig:"SWEEP_SPEC"  default:"0 30 0 * * *"`
		ReportSpec string `envconfig:"REPORT_SPEC" default:"0 0 1 * * *"`
		ReportDir  string `envconfig:"REPORT_DIR"  default:"reports/outstanding"`

		// ReportRetentionDays of zero keeps every archived report.
		ReportRetentionDays int `envconfig:"REPORT_RETENTION_DAYS" default:"90"`
	} `envconfig:"SCHEDULER"`

	Metrics struct {
		Enable bool `envconfig:"ENABLE"`

		// METRICS_ROUTE. Tagging it PATH would fall back to the shell $PATH.
		Path string `envconfig:"ROUTE" default:"/metrics"`
	} `envconfig:"METRICS"`
}

// DBEndpoint is one side of the read/write postgres pair.
type DBEndpoint struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	Timezone string `envconfig:"TIMEZONE"`
	SSLMode  string `envconfig:"SSL_MODE"`
}

var errMissingSecret = errors.New("jwt secrets must be set outside development")

// Validate rejects settings the API cannot run safely with.
func (c *Config) Validate() error {
	if c.Server.Env != constant.ServerEnvDevelopment && (c.JWT.AccessSecret == "" || c.JWT.RefreshSecret == "") {
		return errMissingSecret
	}

	if c.JWT.AccessSecret != "" && c.JWT.AccessSecret == c.JWT.RefreshSecret {
		return errors.New("access and refresh secrets must differ")
	}

	if c.App.RateLimiter.Enable && (c.App.RateLimiter.MaxRequests <= 0 || c.App.RateLimiter.WindowSeconds <= 0) {
		return fmt.Errorf("rate limiter needs a positive budget, got %d per %ds",
			c.App.RateLimiter.MaxRequests, c.App.RateLimiter.WindowSeconds)
	}

	return nil
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		err = godotenv.Load(".env")
		if err != nil {
			log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		err = envconfig.Process("", &conf)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to process environment variables")
		}

		if vErr := conf.Validate(); vErr != nil {
			log.Fatal().Err(vErr).Msg("Invalid service configuration")
		}

		initialized = true

		log.Info().Msg("Service configuration initialized successfully")
	})

	if err != nil {
		return fmt.Errorf("loading .env file: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize configuration")
		}
	}

	return &conf
}
