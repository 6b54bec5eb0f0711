package config

import (
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	// Admin client
	APIBaseURL  string        `envconfig:"API_BASE_URL" default:"http://localhost:8080/api"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
	TokenFile   string        `envconfig:"TOKEN_FILE"   default:""`
	LogLevel    string        `envconfig:"LOG_LEVEL"    default:"info"`

	// Stand-in server
	ListenAddr  string        `envconfig:"LISTEN_ADDR"  default:":8080"`
	JWTSecret   string        `envconfig:"JWT_SECRET"   default:"productadmin-dev-secret"`
	TokenTTL    time.Duration `envconfig:"TOKEN_TTL"    default:"1h"`
	DatabaseURL string        `envconfig:"DATABASE_URL" default:""`
	SeedDemo    bool          `envconfig:"SEED_DEMO"    default:"true"`
}

var (
	config Config
	once   sync.Once
)

func LoadConfig(logger *logrus.Logger) *Config {
	once.Do(func() {
		err := godotenv.Load()
		if err != nil && !os.IsNotExist(err) {
			logger.Warnf("Error loading .env file (but continuing): %v", err)
		} else if err == nil {
			logger.Info("Loaded configuration from .env file")
		}

		if err := envconfig.Process("", &config); err != nil {
			logger.Fatalf("Failed to process configuration from environment variables: %v", err)
		}

		if config.TokenFile == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				logger.Warnf("Could not resolve home directory, storing token in working directory: %v", err)
				home = "."
			}
			config.TokenFile = home + "/.productadmin/token"
		}

		logger.Infof("Configuration loaded: APIBaseURL=%s, LogLevel=%s", config.APIBaseURL, config.LogLevel)
	})
	return &config
}
