package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jingkaihe/skill-advisor/pkg/logger"
	"github.com/jingkaihe/skill-advisor/pkg/server"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// ServeConfig holds configuration for the serve command
type ServeConfig struct {
	Host string
	Port int
}

// NewServeConfig creates a new ServeConfig with default values
func NewServeConfig() *ServeConfig {
	return &ServeConfig{
		Host: "localhost",
		Port: 8080,
	}
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP recommendation API",
		Long: `Start a local HTTP server exposing the advisor as a JSON API:

  POST /api/recommendations  rank skills for a request
  GET  /api/skills           list the catalog
  POST /api/gate             apply the dual-threshold gate
  GET  /healthz              liveness

The server will be available at http://localhost:8080 by default.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServeCommand(cmd.Context(), getServeConfigFromFlags(cmd))
		},
	}

	defaults := NewServeConfig()
	cmd.Flags().String("host", defaults.Host, "Host to bind the server to")
	cmd.Flags().Int("port", defaults.Port, "Port to bind the server to")

	return cmd
}

// getServeConfigFromFlags extracts serve configuration from command flags
func getServeConfigFromFlags(cmd *cobra.Command) *ServeConfig {
	config := NewServeConfig()

	if host, err := cmd.Flags().GetString("host"); err == nil {
		config.Host = host
	}
	if port, err := cmd.Flags().GetInt("port"); err == nil {
		config.Port = port
	}

	return config
}

// validateServeConfig validates the serve configuration
func validateServeConfig(config *ServeConfig) error {
	if config.Host == "" {
		return errors.New("host cannot be empty")
	}

	// Check if host is a valid hostname or IP address
	if config.Host != "localhost" && config.Host != "0.0.0.0" {
		if ip := net.ParseIP(config.Host); ip == nil {
			if strings.Contains(config.Host, " ") || strings.Contains(config.Host, ":") {
				return errors.Errorf("invalid host: %s", config.Host)
			}
		}
	}

	if config.Port < 1 || config.Port > 65535 {
		return errors.Errorf("port must be between 1 and 65535, got %d", config.Port)
	}

	if config.Port < 1024 {
		logger.G(context.Background()).WithField("port", config.Port).Warn("using privileged port (< 1024) may require elevated permissions")
	}

	return nil
}

// runServeCommand starts the API server and blocks until interrupted
func runServeCommand(ctx context.Context, config *ServeConfig) error {
	if err := validateServeConfig(config); err != nil {
		return errors.Wrap(err, "invalid server configuration")
	}

	adv, err := newAdvisor(ctx)
	if err != nil {
		return err
	}

	srv, err := server.New(adv, &server.Config{Host: config.Host, Port: config.Port})
	if err != nil {
		return errors.Wrap(err, "failed to create server")
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.G(ctx).WithFields(map[string]interface{}{
		"host": config.Host,
		"port": config.Port,
	}).Info("starting skill advisor API")
	fmt.Fprintln(os.Stderr, "Press Ctrl+C to stop the server")

	return srv.Start(ctx)
}
