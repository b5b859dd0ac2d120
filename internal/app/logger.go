// Package app provides logger initialization.
package app

import (
	"github.com/guttosm/coating-service/config"
	"github.com/guttosm/coating-service/internal/logger"
)

// InitializeLogger configures the global zerolog logger from cfg.
func InitializeLogger(cfg config.LogConfig) {
	logger.Init(cfg.Level, cfg.Pretty)
}
