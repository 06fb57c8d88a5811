package main

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbind/internal/config"
	"github.com/goliatone/go-formbind/internal/logging"
	"github.com/goliatone/go-formbind/internal/metrics"
	"github.com/goliatone/go-formbind/pkg/binder"
	"github.com/goliatone/go-formbind/pkg/client"
)

// app carries the state shared by every subcommand once the persistent
// pre-run has loaded configuration.
type app struct {
	v           *viper.Viper
	cfgFile     string
	metricsFile string

	cfg      *config.Config
	logger   *zap.Logger
	registry *prometheus.Registry
	binder   *binder.Binder
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	cmd := &cobra.Command{
		Use:   "formbind",
		Short: "Restore saved subscription values into forms",
		Long: `formbind binds a saved key/value record into the named controls of a
form (HTML markup or an OpenAPI request body) and reports which keys were
applied and which were skipped. It also drives the message-task and export
endpoints of the subscription API.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.setup()
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return a.teardown()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "YAML config file")
	flags.StringVar(&a.metricsFile, "metrics-file", "", "write Prometheus metrics in text format to this file on exit")
	flags.String("base-url", "http://localhost:8001/api/v1", "subscription API base URL")
	flags.Duration("timeout", 0, "HTTP request timeout")
	flags.String("redis-addr", "", "Redis address for stored subscription records")
	flags.String("redis-prefix", "subscription:", "Redis key prefix for subscription records")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")

	for key, name := range map[string]string{
		"api.base_url": "base-url",
		"api.timeout":  "timeout",
		"redis.addr":   "redis-addr",
		"redis.prefix": "redis-prefix",
		"log.level":    "log-level",
		"log.format":   "log-format",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(name))
	}

	cmd.AddCommand(
		newFillCmd(a),
		newConfirmCmd(a),
		newTasksCmd(a),
		newExportCmd(a),
	)
	return cmd
}

func (a *app) setup() error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("formbind: logger: %w", err)
	}

	registry := prometheus.NewRegistry()
	counters, err := metrics.NewObserver(registry)
	if err != nil {
		return fmt.Errorf("formbind: metrics: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	a.registry = registry
	a.binder = binder.New(binder.WithObserver(logging.Observer(logger), counters))
	return nil
}

func (a *app) teardown() error {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if a.metricsFile == "" || a.registry == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(a.metricsFile, a.registry); err != nil {
		return fmt.Errorf("formbind: write metrics: %w", err)
	}
	return nil
}

func (a *app) apiClient() (*client.Client, error) {
	options := []client.Option{}
	if a.cfg.API.Timeout > 0 {
		options = append(options, client.WithTimeout(a.cfg.API.Timeout))
	}
	return client.New(a.cfg.API.BaseURL, options...)
}

func (a *app) redisClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     a.cfg.Redis.Addr,
		Password: a.cfg.Redis.Password,
		DB:       a.cfg.Redis.DB,
	})
}

func writeBody(w io.Writer, resp *client.Response) error {
	if _, err := w.Write(resp.Body); err != nil {
		return err
	}
	if len(resp.Body) > 0 && resp.Body[len(resp.Body)-1] != '\n' {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}
