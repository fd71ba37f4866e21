// Package config loads runtime settings from the environment, with optional
// .env files, and validates them.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// DefaultEnvFiles are read, in order, when present.
var DefaultEnvFiles = []string{".env", ".env.local"}

type GatewayOptions struct {
	URL     string        `env:"GATEWAY_URL" envDefault:"http://localhost:8000" validate:"required,url"`
	Timeout time.Duration `env:"GATEWAY_TIMEOUT" envDefault:"30s" validate:"gt=0"`
}

type UploadOptions struct {
	MaxSize      int64 `env:"MAX_UPLOAD_SIZE" envDefault:"10485760" validate:"gt=0"`
	MaxDimension int   `env:"IMAGE_MAX_DIMENSION" envDefault:"2400" validate:"gte=64"`
}

type LogOptions struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=silent error warn info debug"`
	Format string `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
}

// DevGatewayOptions configure the local stand-in backend.
type DevGatewayOptions struct {
	Port        int    `env:"DEV_GATEWAY_PORT" envDefault:"8000" validate:"gt=0,lte=65535"`
	DBPath      string `env:"DB_PATH" envDefault:"employees.db" validate:"required"`
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"http://localhost:8080"`
}

// Origins splits CORSOrigins on commas.
func (d DevGatewayOptions) Origins() []string {
	var out []string
	for _, o := range strings.Split(d.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

type Configuration struct {
	Gateway    GatewayOptions
	Upload     UploadOptions
	Log        LogOptions
	DevGateway DevGatewayOptions

	Port           int           `env:"PORT" envDefault:"8080" validate:"gt=0,lte=65535"`
	PageSize       int           `env:"PAGE_SIZE" envDefault:"10" validate:"gte=1,lte=100"`
	NotifyTTL      time.Duration `env:"NOTIFY_TTL" envDefault:"2s" validate:"gt=0"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"12h" validate:"gt=0"`
	DashboardData  string        `env:"DASHBOARD_DATA"`
	MetricsEnabled bool          `env:"METRICS_ENABLED" envDefault:"true"`
}

// LoadEnv loads the env files that exist and reports how many were read.
// Variables already set in the process environment win.
func LoadEnv(files []string) (int, error) {
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}

// Load reads the env files, parses the environment and validates the result.
func Load(files ...string) (*Configuration, error) {
	if _, err := LoadEnv(files); err != nil {
		return nil, errors.Wrap(err, "load env files")
	}
	return Parse()
}

// Parse builds a Configuration from the process environment only.
func Parse() (*Configuration, error) {
	c := &Configuration{}
	if err := env.Parse(c); err != nil {
		return nil, errors.Wrap(err, "parse environment")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (c *Configuration) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	return nil
}

// LogrusLevel maps Log.Level onto logrus.
func (c *Configuration) LogrusLevel() logrus.Level {
	switch c.Log.Level {
	case "silent":
		return logrus.PanicLevel
	case "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.InfoLevel
	}
}

// Logger builds the process logger.
func (c *Configuration) Logger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(c.LogrusLevel())
	if c.Log.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return l
}
