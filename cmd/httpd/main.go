// Command httpd runs the credibility analysis HTTP service.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonesrussell/credibility/internal/bootstrap"
	"github.com/jonesrussell/credibility/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "credibility: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.GetConfigPath("config.yml"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	components, err := bootstrap.NewComponents(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	defer components.Close()

	return components.Server.RunWithGracefulShutdown(context.Background())
}
