package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
)

type Storage string

const (
	StorageMongo    Storage = "mongo"
	StoragePostgres Storage = "postgres"
)

type EmailTransport string

const (
	EmailTransportSMTP EmailTransport = "smtp"
	EmailTransportSES  EmailTransport = "ses"
)

type Config struct {
	Port            int           `env:"PORT" envDefault:"5000"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"20s"`

	// Signs session tokens.
	Secret           string        `env:"JWT_SECRET,notEmpty"`
	SessionTokenTTL  time.Duration `env:"SESSION_TOKEN_TTL" envDefault:"0s"`
	BcryptHasherCost int           `env:"BCRYPT_HASHER_COST" envDefault:"10"`

	// Public frontend address; reset links point to <ClientURL>/reset-password/<token>.
	ClientURL      url.URL  `env:"CLIENT_URL" envDefault:"http://localhost:5173"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	Storage       Storage `env:"STORAGE" envDefault:"mongo"`
	MongoURI      string  `env:"MONGO_URI"`
	MongoDatabase string  `env:"MONGO_DATABASE" envDefault:"yeonghwa"`
	PostgresqlURL string  `env:"POSTGRESQL_URL"`

	EmailTransport EmailTransport `env:"EMAIL_TRANSPORT" envDefault:"smtp"`
	EmailSender    string         `env:"EMAIL_SENDER"`
	SMTPHost       string         `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort       int            `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser       string         `env:"SMTP_USER"`
	SMTPPassword   string         `env:"SMTP_PASSWORD"`
	AwsRegion      string         `env:"AWS_REGION"`
	AwsAccessKey   string         `env:"AWS_ACCESS_KEY"`
	AwsSecretKey   string         `env:"AWS_SECRET_KEY"`
}

func Load() (*Config, error) {
	return load(env.Options{})
}

func load(opts env.Options) (*Config, error) {
	c := &Config{}
	if err := env.Parse(c, opts); err != nil {
		return nil, fmt.Errorf("could not parse config: %w", err)
	}
	if c.EmailSender == "" {
		c.EmailSender = c.SMTPUser
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT value: %d", c.Port)
	}
	if c.BcryptHasherCost < 4 || c.BcryptHasherCost > 31 {
		return fmt.Errorf("BCRYPT_HASHER_COST must be between 4 and 31, got %d", c.BcryptHasherCost)
	}
	if c.SessionTokenTTL < 0 {
		return fmt.Errorf("SESSION_TOKEN_TTL must not be negative")
	}
	if !c.ClientURL.IsAbs() || c.ClientURL.Host == "" {
		return fmt.Errorf("CLIENT_URL must be an absolute URL, got %q", c.ClientURL.String())
	}

	switch c.Storage {
	case StorageMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI must be set when STORAGE is %q", StorageMongo)
		}
	case StoragePostgres:
		if c.PostgresqlURL == "" {
			return fmt.Errorf("POSTGRESQL_URL must be set when STORAGE is %q", StoragePostgres)
		}
	default:
		return fmt.Errorf("unknown STORAGE value: %q", c.Storage)
	}

	switch c.EmailTransport {
	case EmailTransportSMTP:
		if c.SMTPUser == "" || c.SMTPPassword == "" {
			return fmt.Errorf("SMTP_USER and SMTP_PASSWORD must be set when EMAIL_TRANSPORT is %q", EmailTransportSMTP)
		}
	case EmailTransportSES:
		if c.AwsRegion == "" {
			return fmt.Errorf("AWS_REGION must be set when EMAIL_TRANSPORT is %q", EmailTransportSES)
		}
	default:
		return fmt.Errorf("unknown EMAIL_TRANSPORT value: %q", c.EmailTransport)
	}
	if c.EmailSender == "" {
		return fmt.Errorf("EMAIL_SENDER must be set")
	}
	return nil
}

// PasswordResetBaseURL is the address reset tokens are appended to.
func (c *Config) PasswordResetBaseURL() url.URL {
	return *c.ClientURL.JoinPath("reset-password")
}

// CORSOrigins returns the local frontend, the client and any extra origins.
func (c *Config) CORSOrigins() []string {
	origins := []string{"http://localhost:5173"}
	client := c.ClientURL.Scheme + "://" + c.ClientURL.Host
	for _, origin := range append([]string{client}, c.AllowedOrigins...) {
		if origin == "" || contains(origins, origin) {
			continue
		}
		origins = append(origins, origin)
	}
	return origins
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
