// Package bootstrap wires configuration into running service components.
package bootstrap

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/credibility/internal/api"
	"github.com/jonesrussell/credibility/internal/classifier"
	"github.com/jonesrussell/credibility/internal/config"
	"github.com/jonesrussell/credibility/internal/factcheck"
	"github.com/jonesrussell/credibility/internal/fetcher"
	"github.com/jonesrussell/credibility/internal/history"
	"github.com/jonesrussell/credibility/internal/httpserver"
	"github.com/jonesrussell/credibility/internal/logger"
	"github.com/jonesrussell/credibility/internal/mlclient"
	"github.com/jonesrussell/credibility/internal/scoring"
	"github.com/jonesrussell/credibility/internal/telemetry"
)

// Components holds the wired service.
type Components struct {
	Logger    logger.Logger
	Server    *httpserver.Server
	History   *history.Repository
	Telemetry *telemetry.Provider
}

// NewComponents builds every component from configuration.
func NewComponents(cfg *config.Config) (*Components, error) {
	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	tel := telemetry.NewProvider()

	table := scoring.LoadReputationTable(cfg.Scoring.ReputationFile, log)
	log.Info("Reputation table loaded",
		logger.String("path", cfg.Scoring.ReputationFile),
		logger.Int("domains", table.Len()))

	engine := scoring.NewEngine(cfg.Scoring.Weights, table, log)

	clf := buildClassifier(cfg, log)
	log.Info("Classifier initialized",
		logger.String("mode", clf.Info().Mode),
		logger.String("model", clf.Info().Name))

	checker := factcheck.NewChecker(factcheck.Config{
		APIKey:    cfg.FactCheck.APIKey,
		BaseURL:   cfg.FactCheck.BaseURL,
		CacheTTL:  cfg.FactCheck.CacheTTL,
		RateLimit: cfg.FactCheck.RateLimit,
	}, tel, log)
	if !checker.Enabled() {
		log.Warn("Fact-check API key not configured, lookups degrade to mock entries")
	}

	analyzer := classifier.NewAnalyzer(clf, checker, engine, tel, log)

	repo, err := history.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}
	log.Info("History store ready",
		logger.String("driver", cfg.Database.Driver))

	handler := api.NewHandler(
		analyzer,
		engine,
		checker,
		fetcher.New(fetcher.Config{
			Timeout:   cfg.Fetcher.Timeout,
			UserAgent: cfg.Fetcher.UserAgent,
		}, log),
		repo,
		tel,
		log,
		cfg.Service.Version,
	)

	server := httpserver.NewServer(&httpserver.Config{
		ServiceName:     cfg.Service.Name,
		ServiceVersion:  cfg.Service.Version,
		Port:            cfg.Service.Port,
		Debug:           cfg.Service.Debug,
		ShutdownTimeout: cfg.Service.ShutdownTimeout,
	}, log, func(router *gin.Engine) {
		api.SetupRoutes(router, handler, tel)
	})

	return &Components{
		Logger:    log,
		Server:    server,
		History:   repo,
		Telemetry: tel,
	}, nil
}

// buildClassifier selects the classifier variant from configuration.
func buildClassifier(cfg *config.Config, log logger.Logger) classifier.Classifier {
	if cfg.Classifier.Mode == "remote" {
		client := mlclient.NewClient(cfg.Classifier.SidecarURL, cfg.Classifier.Timeout)
		return classifier.NewRemote(client, cfg.Classifier.ModelName, cfg.Classifier.MaxTextLength, log)
	}
	return classifier.NewHeuristic(cfg.Classifier.MaxTextLength)
}

// Close releases component resources.
func (c *Components) Close() {
	if c.History != nil {
		if err := c.History.Close(); err != nil {
			c.Logger.Error("Failed to close history store", logger.Error(err))
		}
	}
	_ = c.Logger.Sync()
}
