package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Config is read once from the environment, after an optional .env file.
// Variable names are the upper-cased path joined by underscores, for example
// DB_POSTGRES_WRITE_HOST or APP_RATE_LIMITER_MAX_REQUESTS.
type Config struct {
	Server   Server   `envconfig:"SERVER"`
	App      App      `envconfig:"APP"`
	Cache    Cache    `envconfig:"CACHE"`
	JWT      JWT      `envconfig:"JWT"`
	DB       DB       `envconfig:"DB"`
	Kafka    Kafka    `envconfig:"KAFKA"`
	Sweeper  Sweeper  `envconfig:"SWEEPER"`
	External External `envconfig:"EXTERNAL"`
}

type Server struct {
	Env       string `envconfig:"ENV"        default:"development"`
	LogLevel  string `envconfig:"LOG_LEVEL"  default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"`
	Port      string `envconfig:"PORT"       default:"8080"`
	Host      string `envconfig:"HOST"`
	Shutdown  struct {
		CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS" default:"10"`
		GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"   default:"5"`
	} `envconfig:"SHUTDOWN"`
}

type App struct {
	Name     string `envconfig:"NAME"     default:"mariachi"`
	Timezone string `envconfig:"TIMEZONE" default:"America/Mexico_City"`
	APIKey   string `envconfig:"API_KEY"`
	CORS     struct {
		Enable           bool     `envconfig:"ENABLE"`
		AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
		AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
		AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
		AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
		MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
	} `envconfig:"CORS"`
	RateLimiter struct {
		Enable        bool `envconfig:"ENABLE"`
		MaxRequests   int  `envconfig:"MAX_REQUESTS"   default:"120"`
		WindowSeconds int  `envconfig:"WINDOW_SECONDS" default:"60"`
	} `envconfig:"RATE_LIMITER"`
	Lock struct {
		TTLMillis  int `envconfig:"TTL_MS"  default:"5000"`
		WaitMillis int `envconfig:"WAIT_MS" default:"3000"`
	} `envconfig:"LOCK"`
	Metrics struct {
		Enable bool   `envconfig:"ENABLE"`
		Path   string `envconfig:"PATH" default:"/metrics"`
	} `envconfig:"METRICS"`
}

type Cache struct {
	TTL   int `envconfig:"TTL" default:"300"`
	Redis struct {
		Primary Redis `envconfig:"PRIMARY"`
	} `envconfig:"REDIS"`
}

type Redis struct {
	Host     string `envconfig:"HOST" default:"localhost"`
	Port     string `envconfig:"PORT" default:"6379"`
	Password string `envconfig:"PASSWORD"`
	DB       int    `envconfig:"DB"`
}

type JWT struct {
	AccessSecret     string `envconfig:"ACCESS_SECRET"`
	RefreshSecret    string `envconfig:"REFRESH_SECRET"`
	AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"  default:"15"`
	RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN" default:"10080"`
}

type DB struct {
	Postgres Postgres `envconfig:"POSTGRES"`
}

// Postgres has a primary for writes and a replica for reads. Both may point at
// the same server.
type Postgres struct {
	MaxRetry       int        `envconfig:"MAX_RETRY"       default:"5"`
	RetryWaitTime  int        `envconfig:"RETRY_WAIT_TIME" default:"2"`
	MigrationTable string     `envconfig:"MIGRATION_TABLE" default:"schema_migrations"`
	AutoMigrate    bool       `envconfig:"AUTO_MIGRATE"`
	Prefix         string     `envconfig:"PREFIX"`
	Read           DBEndpoint `envconfig:"READ"`
	Write          DBEndpoint `envconfig:"WRITE"`
}

type DBEndpoint struct {
	Host     string `envconfig:"HOST"     default:"localhost"`
	Port     string `envconfig:"PORT"     default:"5432"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	Timezone string `envconfig:"TIMEZONE"`
	SSLMode  string `envconfig:"SSL_MODE" default:"disable"`
}

type Kafka struct {
	Enable  bool     `envconfig:"ENABLE"`
	Brokers []string `envconfig:"BROKERS"`
	Topic   string   `envconfig:"TOPIC" default:"mariachi.bookings"`
	SASL    struct {
		Username string `envconfig:"USERNAME"`
		Password string `envconfig:"PASSWORD"`
	} `envconfig:"SASL"`
}

type Sweeper struct {
	TimeoutSeconds int `envconfig:"TIMEOUT_SECONDS" default:"300"`
}

type External struct {
	Otel struct {
		Endpoint string `envconfig:"ENDPOINT"`
	} `envconfig:"OTEL"`
}

var (
	conf    Config
	once    sync.Once
	loadErr error
)

// Init loads the configuration once. A missing .env file is not an error.
func Init() error {
	once.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Debug().Err(err).Msg("No .env file loaded, using the process environment")
		}

		if err := envconfig.Process("", &conf); err != nil {
			loadErr = fmt.Errorf("failed to process environment variables: %w", err)

			return
		}

		log.Info().Str("env", conf.Server.Env).Msg("Service configuration initialized successfully")
	})

	return loadErr
}

func Get() *Config {
	if err := Init(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize configuration")
	}

	return &conf
}
