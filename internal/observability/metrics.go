// Package observability provides metrics and tracing.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthOutcomes counts bearer-token verification outcomes per request:
	// absent, invalid, or valid.
	AuthOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "waypost_auth_outcomes_total",
		Help: "Bearer token verification outcomes by result",
	}, []string{"outcome"})

	// GraphQLOperations counts resolver executions by operation and result.
	GraphQLOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "waypost_graphql_operations_total",
		Help: "GraphQL operations by field name and result",
	}, []string{"operation", "result"})

	// FileCleanups counts background image deletions by result
	// (deleted, missing, failed).
	FileCleanups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "waypost_file_cleanups_total",
		Help: "Background image file deletions by result",
	}, []string{"result"})

	// UploadsStored counts accepted image uploads.
	UploadsStored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "waypost_uploads_stored_total",
		Help: "Accepted image uploads stored to disk",
	})

	// UploadsDiscarded counts uploads dropped by the content type filter.
	UploadsDiscarded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "waypost_uploads_discarded_total",
		Help: "Uploads silently discarded for unsupported content types",
	})

	// RedisErrors counts failed Redis commands by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "waypost_redis_errors_total",
		Help: "Redis command errors by command",
	}, []string{"command"})
)
