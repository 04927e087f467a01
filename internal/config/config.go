package config

import (
	"fmt"
	"time"

	"github.com/jonesrussell/credibility/internal/domain"
)

// Default configuration values.
const (
	defaultServiceName     = "credibility"
	defaultServiceVersion  = "1.0.0"
	defaultServicePort     = 8080
	defaultLogLevel        = "info"
	defaultLogFormat       = "json"
	defaultClassifierMode  = "heuristic"
	defaultSidecarURL      = "http://inference:8090"
	defaultModelName       = "distilbert-fake-news"
	defaultMaxTextLength   = 512
	defaultSidecarTimeout  = 5 * time.Second
	defaultFactCheckRate   = 5.0
	defaultFactCheckCache  = 15 * time.Minute
	defaultFetchTimeout    = 10 * time.Second
	defaultReputationPath  = "data/domain_reputation.json"
	defaultDatabaseDriver  = "sqlite3"
	defaultDatabaseDSN     = "credibility.db"
	defaultShutdownTimeout = 10 * time.Second
)

// Config holds all configuration for the credibility service.
type Config struct {
	Service    ServiceConfig    `yaml:"service"`
	Logging    LoggingConfig    `yaml:"logging"`
	Classifier ClassifierConfig `yaml:"classifier"`
	FactCheck  FactCheckConfig  `yaml:"factcheck"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Fetcher    FetcherConfig    `yaml:"fetcher"`
	Database   DatabaseConfig   `yaml:"database"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name            string        `yaml:"name"`
	Version         string        `yaml:"version"`
	Port            int           `env:"CREDIBILITY_PORT" yaml:"port"`
	Debug           bool          `env:"APP_DEBUG"        yaml:"debug"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
}

// ClassifierConfig selects and configures the classifier variant.
type ClassifierConfig struct {
	Mode          string        `env:"CLASSIFIER_MODE" yaml:"mode"` // "remote" or "heuristic"
	SidecarURL    string        `env:"SIDECAR_URL"     yaml:"sidecar_url"`
	ModelName     string        `yaml:"model_name"`
	MaxTextLength int           `yaml:"max_text_length"`
	Timeout       time.Duration `yaml:"timeout"`
}

// FactCheckConfig configures the Google Fact Check Tools client.
type FactCheckConfig struct {
	APIKey    string        `env:"FACTCHECK_API_KEY" yaml:"api_key"`
	BaseURL   string        `yaml:"base_url"`
	RateLimit float64       `yaml:"rate_limit"`
	CacheTTL  time.Duration `yaml:"cache_ttl"`
}

// ScoringConfig holds the fusion weights and the reputation table path.
type ScoringConfig struct {
	Weights        domain.Weights `yaml:"weights"`
	ReputationFile string         `env:"REPUTATION_FILE" yaml:"reputation_file"`
}

// FetcherConfig configures article fetching.
type FetcherConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

// DatabaseConfig configures the analysis history store.
type DatabaseConfig struct {
	Driver string `env:"DB_DRIVER" yaml:"driver"` // "sqlite3" or "postgres"
	DSN    string `env:"DB_DSN"    yaml:"dsn"`
}

// Load reads the config file at path, applies defaults and environment
// overrides, and validates the result.
func Load(path string) (*Config, error) {
	cfg, err := load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults fills in zero-valued fields.
func (c *Config) setDefaults() {
	if c.Service.Name == "" {
		c.Service.Name = defaultServiceName
	}
	if c.Service.Version == "" {
		c.Service.Version = defaultServiceVersion
	}
	if c.Service.Port == 0 {
		c.Service.Port = defaultServicePort
	}
	if c.Service.ShutdownTimeout == 0 {
		c.Service.ShutdownTimeout = defaultShutdownTimeout
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	if c.Classifier.Mode == "" {
		c.Classifier.Mode = defaultClassifierMode
	}
	if c.Classifier.SidecarURL == "" {
		c.Classifier.SidecarURL = defaultSidecarURL
	}
	if c.Classifier.ModelName == "" {
		c.Classifier.ModelName = defaultModelName
	}
	if c.Classifier.MaxTextLength == 0 {
		c.Classifier.MaxTextLength = defaultMaxTextLength
	}
	if c.Classifier.Timeout == 0 {
		c.Classifier.Timeout = defaultSidecarTimeout
	}
	if c.FactCheck.RateLimit == 0 {
		c.FactCheck.RateLimit = defaultFactCheckRate
	}
	if c.FactCheck.CacheTTL == 0 {
		c.FactCheck.CacheTTL = defaultFactCheckCache
	}
	if c.Scoring.Weights == (domain.Weights{}) {
		c.Scoring.Weights = domain.Weights{
			ModelConfidence:   0.5,
			FactCheckEvidence: 0.3,
			SourceReputation:  0.2,
		}
	}
	if c.Scoring.ReputationFile == "" {
		c.Scoring.ReputationFile = defaultReputationPath
	}
	if c.Fetcher.Timeout == 0 {
		c.Fetcher.Timeout = defaultFetchTimeout
	}
	if c.Database.Driver == "" {
		c.Database.Driver = defaultDatabaseDriver
	}
	if c.Database.DSN == "" {
		c.Database.DSN = defaultDatabaseDSN
	}
}

// Validate rejects configurations the service cannot run with.
func (c *Config) Validate() error {
	if c.Service.Port <= 0 || c.Service.Port > 65535 {
		return fmt.Errorf("invalid service port: %d", c.Service.Port)
	}
	switch c.Classifier.Mode {
	case "remote", "heuristic":
	default:
		return fmt.Errorf("invalid classifier mode %q (want remote or heuristic)", c.Classifier.Mode)
	}
	switch c.Database.Driver {
	case "sqlite3", "postgres":
	default:
		return fmt.Errorf("invalid database driver %q (want sqlite3 or postgres)", c.Database.Driver)
	}
	return nil
}
