package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Support API metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "freightdesk",
			Subsystem: "support_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "freightdesk",
			Subsystem: "support_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint", "status"},
	)

	// Auth requests
	AuthRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "freightdesk",
			Subsystem: "support_api",
			Name:      "auth_requests_total",
			Help:      "Total authentication requests",
		},
		[]string{"auth_type", "status"},
	)

	// Conversations
	ConversationsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "freightdesk",
			Subsystem: "support_api",
			Name:      "conversations_created_total",
			Help:      "Total conversations created",
		},
	)

	MessagesCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "freightdesk",
			Subsystem: "support_api",
			Name:      "messages_created_total",
			Help:      "Total messages appended to conversations",
		},
		[]string{"sender"},
	)

	ConversationTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "freightdesk",
			Subsystem: "support_api",
			Name:      "conversation_transitions_total",
			Help:      "Conversation status transitions",
		},
		[]string{"from", "to"},
	)

	CooldownRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "freightdesk",
			Subsystem: "support_api",
			Name:      "cooldown_rejections_total",
			Help:      "Requests rejected because a cool-down window was active",
		},
		[]string{"status"},
	)

	// Live subscriptions gauge
	ActiveSubscriptions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "freightdesk",
			Subsystem: "support_api",
			Name:      "active_subscriptions",
			Help:      "Currently open event stream connections",
		},
	)

	// Janitor sweeps
	JanitorSweepsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "freightdesk",
			Subsystem: "support_api",
			Name:      "janitor_sweeps_total",
			Help:      "Janitor sweep executions",
		},
		[]string{"sweep", "status"},
	)

	JanitorDeletedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "freightdesk",
			Subsystem: "support_api",
			Name:      "janitor_deleted_total",
			Help:      "Records deleted by janitor sweeps",
		},
		[]string{"sweep"},
	)

	JanitorSweepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "freightdesk",
			Subsystem: "support_api",
			Name:      "janitor_sweep_duration_seconds",
			Help:      "Janitor sweep duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 60, 300},
		},
		[]string{"sweep"},
	)

	// Mail webhook deliveries
	MailerDeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "freightdesk",
			Subsystem: "support_api",
			Name:      "mailer_deliveries_total",
			Help:      "Mail webhook delivery attempts",
		},
		[]string{"event", "status"},
	)

	// User agent metrics (normalized to keep low cardinality)
	UserAgentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "freightdesk",
			Subsystem: "support_api",
			Name:      "user_agents_total",
			Help:      "Requests by normalized user agent",
		},
		[]string{"user_agent"},
	)

	UserAgentFamilyTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "freightdesk",
			Subsystem: "support_api",
			Name:      "user_agent_family_total",
			Help:      "Requests by user agent family (browser/cli/sdk/unknown)",
		},
		[]string{"family"},
	)
)

// RecordRequest records an HTTP request with all relevant labels
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint, status).Observe(durationSec)
}

// RecordTransition records a conversation status transition
func RecordTransition(from, to string) {
	ConversationTransitionsTotal.WithLabelValues(from, to).Inc()
}

// RecordCooldownRejection records a request blocked by an active cool-down
func RecordCooldownRejection(status string) {
	CooldownRejectionsTotal.WithLabelValues(status).Inc()
}

// RecordSweep records a janitor sweep outcome and duration
func RecordSweep(sweep, status string, deleted int, durationSec float64) {
	JanitorSweepsTotal.WithLabelValues(sweep, status).Inc()
	JanitorSweepDuration.WithLabelValues(sweep).Observe(durationSec)
	if deleted > 0 {
		JanitorDeletedTotal.WithLabelValues(sweep).Add(float64(deleted))
	}
}

// RecordMailerDelivery records a mail webhook delivery attempt
func RecordMailerDelivery(event, status string) {
	MailerDeliveriesTotal.WithLabelValues(event, status).Inc()
}

// RecordUserAgent records UA metrics with normalization and family bucketing
func RecordUserAgent(ua string) {
	norm := normalizeUserAgent(ua)
	family := userAgentFamily(norm)
	UserAgentsTotal.WithLabelValues(norm).Inc()
	UserAgentFamilyTotal.WithLabelValues(family).Inc()
}

func normalizeUserAgent(ua string) string {
	ua = strings.TrimSpace(strings.ToLower(ua))
	if ua == "" {
		return "unknown"
	}
	parts := strings.Fields(ua)
	norm := parts[0]
	if len(norm) > 60 {
		norm = norm[:60]
	}
	return norm
}

func userAgentFamily(normUA string) string {
	switch {
	case strings.Contains(normUA, "mozilla") || strings.Contains(normUA, "chrome") || strings.Contains(normUA, "safari") || strings.Contains(normUA, "firefox") || strings.Contains(normUA, "edge"):
		return "browser"
	case strings.Contains(normUA, "curl") || strings.Contains(normUA, "wget") || strings.Contains(normUA, "httpie"):
		return "cli"
	case strings.Contains(normUA, "postman") || strings.Contains(normUA, "insomnia"):
		return "api_client"
	case strings.Contains(normUA, "okhttp") || strings.Contains(normUA, "cfnetwork"):
		return "mobile"
	case strings.Contains(normUA, "axios") || strings.Contains(normUA, "fetch") || strings.Contains(normUA, "python-requests") || strings.Contains(normUA, "go-http-client") || strings.Contains(normUA, "java"):
		return "sdk"
	default:
		return "unknown"
	}
}
