/*
Package monitoring provides performance monitoring and metrics collection.

# Overview

This package implements Prometheus-based metrics collection for the
extraction backend, tracking HTTP requests, extraction runs, service calls,
WebSocket traffic and system metrics.

# Features

- HTTP request metrics (latency, throughput, size)
- Extraction metrics (per-source outcome, per-field resolution rate)
- Service call metrics (duration, errors)
- WebSocket connection, message and timeout metrics
- Extraction-cache size
- System metrics (uptime)

# Usage

	// Create metrics collector
	metrics := monitoring.NewMetrics()

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Record custom metrics
	metrics.RecordExtraction("selection", "complete", elapsed)
	metrics.RecordFieldResolved("date")

	// Time operations
	timer := monitoring.NewTimer(metrics, "extractor", "event")
	// ... perform operation ...
	timer.Stop("success")

# Metrics Endpoint

Expose metrics via the standard Prometheus endpoint:

	import "github.com/prometheus/client_golang/prometheus/promhttp"
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
*/
package monitoring
