// Package logger provides a structured logging interface for the archiver.
//
// It wraps the zerolog library to provide a clean, easy-to-use API with support for:
// - Multiple log levels (Debug, Info, Warn, Error, Fatal)
// - Structured logging with fields
// - Pretty console output with colors
// - Optional file output
// - Global logger instance for easy access
//
// Basic Usage:
//
//	import "fbarchive/pkg/logger"
//
//	// Initialize the global logger
//	cfg := &config.LoggingConfig{
//	    Level: "info",
//	}
//	err := logger.Initialize(cfg)
//
//	// Use the global logger
//	log := logger.GetLogger()
//	log.WithField("page_id", "123").Info("Archive started")
//	log.WithError(err).Error("Failed to download media")
//
// Structured logging:
//
//	log.InfoWithFields("download completed", map[string]interface{}{
//	    "file": "photo.jpg",
//	    "size": 1024000,
//	})
package logger
