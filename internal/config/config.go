// Package config loads application configuration from environment
// variables, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverMySQL  = "mysql"
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// Config holds all runtime configuration values.  It is loaded once at
// startup and handed to constructors; nothing reads the environment later.
type Config struct {
	App   AppConfig   `envconfig:"APP"`
	Store StoreConfig `envconfig:"STORE"`
	DB    DBConfig    `envconfig:"DB"`
	Mongo MongoConfig `envconfig:"MONGO"`

	// Auth keeps the unprefixed JWT_SECRET / *_TTL / BCRYPT_COST names.
	Auth

	Redis      RedisConfig      `envconfig:"REDIS"`
	RateLimit  RateLimitConfig  `envconfig:"RATE_LIMIT"`
	RabbitMQ   RabbitMQConfig   `envconfig:"RABBITMQ"`
	SMS        SMSConfig        `envconfig:"SMS"`
	SMTP       SMTPConfig       `envconfig:"SMTP"`
	Cloudinary CloudinaryConfig `envconfig:"CLOUDINARY"`
	OTEL       OTELConfig       `envconfig:"OTEL"`
}

type AppConfig struct {
	Env  string `envconfig:"ENV" default:"dev"`  // APP_ENV
	Port string `envconfig:"PORT" default:"8080"` // APP_PORT
}

type StoreConfig struct {
	Driver string `envconfig:"DRIVER" default:"mysql"` // STORE_DRIVER: mysql, mongo or memory
}

// DBConfig is the MySQL connection used by the mysql driver.
type DBConfig struct {
	User string `envconfig:"USER"`
	Pass string `envconfig:"PASS"` // empty allowed
	Host string `envconfig:"HOST" default:"localhost"`
	Port string `envconfig:"PORT" default:"3306"`
	Name string `envconfig:"NAME"`
}

type MongoConfig struct {
	URI      string `envconfig:"URI" default:"mongodb://localhost:27017"`
	Database string `envconfig:"DATABASE" default:"property_backoffice"`
}

type Auth struct {
	JWTSecret      string `envconfig:"JWT_SECRET" required:"true"`
	AccessTTLMin   int    `envconfig:"ACCESS_TOKEN_TTL_MIN" default:"15"`
	RefreshTTLDays int    `envconfig:"REFRESH_TOKEN_TTL_DAYS" default:"7"`
	BcryptCost     int    `envconfig:"BCRYPT_COST" default:"10"`
}

// AccessTTL returns the access token lifetime.
func (a Auth) AccessTTL() time.Duration { return time.Duration(a.AccessTTLMin) * time.Minute }

// RefreshTTL returns the refresh token lifetime.
func (a Auth) RefreshTTL() time.Duration { return time.Duration(a.RefreshTTLDays) * 24 * time.Hour }

// RabbitMQConfig configures the notification queue.  An empty URL disables
// the queue and notifications are sent inline.
type RabbitMQConfig struct {
	URL         string        `envconfig:"URL"`
	Exchange    string        `envconfig:"EXCHANGE" default:"notifications"`
	Queue       string        `envconfig:"QUEUE" default:"notifications.deliver"`
	RetryDelay  time.Duration `envconfig:"RETRY_DELAY" default:"30s"`
	MaxAttempts int           `envconfig:"MAX_ATTEMPTS" default:"5"`
	Prefetch    int           `envconfig:"PREFETCH" default:"10"`
}

// Enabled reports whether a broker URL was configured.
func (r RabbitMQConfig) Enabled() bool { return r.URL != "" }

// SMSConfig points at the HTTP GET SMS gateway.  An empty GatewayURL
// routes SMS to the console notifier.
type SMSConfig struct {
	GatewayURL string        `envconfig:"GATEWAY_URL"`
	User       string        `envconfig:"USER"`
	Pass       string        `envconfig:"PASS"`
	Timeout    time.Duration `envconfig:"TIMEOUT" default:"10s"`
}

// SMTPConfig configures the outgoing mail relay.  An empty Host routes
// email to the console notifier.
type SMTPConfig struct {
	Host     string `envconfig:"HOST"`
	Port     int    `envconfig:"PORT" default:"587"`
	Username string `envconfig:"USERNAME"`
	Password string `envconfig:"PASSWORD"`
	From     string `envconfig:"FROM"`
}

type CloudinaryConfig struct {
	CloudName string `envconfig:"CLOUD_NAME"`
	APIKey    string `envconfig:"API_KEY"`
	APISecret string `envconfig:"API_SECRET"`
	Folder    string `envconfig:"FOLDER" default:"properties"`
}

// Enabled reports whether all Cloudinary credentials are present.
func (c CloudinaryConfig) Enabled() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

// OTELConfig enables tracing when Endpoint is set.
type OTELConfig struct {
	Endpoint    string `envconfig:"EXPORTER_OTLP_ENDPOINT"` // OTEL_EXPORTER_OTLP_ENDPOINT
	ServiceName string `envconfig:"SERVICE_NAME" default:"property-backoffice"`
}

// Load reads envFile (when it exists) into the process environment and
// then decodes the environment into a Config.  Variables already set in
// the environment win over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, err
	}
	c.RateLimit = c.RateLimit.Normalize()
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	switch c.Store.Driver {
	case DriverMySQL:
		if c.DB.User == "" || c.DB.Name == "" {
			return errors.New("config: DB_USER and DB_NAME are required for the mysql store")
		}
	case DriverMongo:
		if c.Mongo.URI == "" {
			return errors.New("config: MONGO_URI is required for the mongo store")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.Store.Driver)
	}
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET must not be empty")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("config: BCRYPT_COST %d out of range 4..31", c.BcryptCost)
	}
	return nil
}
