package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "todo",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "todo",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Auth
	AuthRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "todo",
			Subsystem: "api",
			Name:      "auth_requests_total",
			Help:      "Total authentication requests",
		},
		[]string{"action", "status"},
	)

	// Chat orchestration
	ChatTurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "todo",
			Subsystem: "api",
			Name:      "chat_turns_total",
			Help:      "Total chat turns by outcome",
		},
		[]string{"outcome"},
	)

	ToolExecutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "todo",
			Subsystem: "api",
			Name:      "tool_executions_total",
			Help:      "Total tool executions requested by the model",
		},
		[]string{"tool", "status"},
	)

	CompletionErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "todo",
			Subsystem: "api",
			Name:      "completion_errors_total",
			Help:      "Total completion backend failures",
		},
		[]string{"provider"},
	)

	ConversationsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "todo",
			Subsystem: "api",
			Name:      "conversations_created_total",
			Help:      "Total conversations created",
		},
	)
)
