// Package logging provides structured logging utilities for weather-mcp.
//
// All logging goes through log/slog. When the server runs on the stdio
// transport, stdout carries protocol frames, so handlers built by New
// always write to the supplied writer (stderr in production).
//
// # Usage Patterns
//
// Components receive a Logger instead of reaching for a global:
//
//	store := taskstore.New(path, logging.NewSlogAdapter(logger))
//
// Attribute helpers keep key names consistent across packages:
//
//	logger.Info("forecast fetched",
//	    logging.Coordinates(lat, lon),
//	    logging.Status(logging.StatusSuccess))
package logging
