// Package logging builds the application's zap logger from configuration.
package logging

import (
	"fmt"

	"go.elastic.co/ecszap"
	"go.uber.org/zap"

	"github.com/km-arc/go-inject/framework/config"
)

// New builds a logger for env. Production gets zap's production preset,
// everything else the development one. cfg.Format selects the encoding:
// "console", "json", or "ecs" for Elastic Common Schema output.
func New(cfg config.LogConfig, env string) (*zap.Logger, error) {
	zc := zap.NewDevelopmentConfig()
	if env == "production" {
		zc = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
	}
	zc.Level = level

	var opts []zap.Option
	switch cfg.Format {
	case "", "console":
		zc.Encoding = "console"
	case "json":
		zc.Encoding = "json"
	case "ecs":
		zc.Encoding = "json"
		zc.EncoderConfig = ecszap.ECSCompatibleEncoderConfig(zc.EncoderConfig)
		opts = append(opts, ecszap.WrapCoreOption())
	default:
		return nil, fmt.Errorf("log format %q: want console, json or ecs", cfg.Format)
	}

	return zc.Build(opts...)
}
