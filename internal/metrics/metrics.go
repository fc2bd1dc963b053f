package metrics

import (
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	eventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relaybot_events_total",
			Help: "Inbound updates by kind (command/message/callback/membership).",
		},
		[]string{"kind"},
	)

	forwardsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relaybot_forwards_total",
			Help: "Forwarding rule outcomes by rule and status.",
		},
		[]string{"rule", "status"},
	)

	keywordAlertsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relaybot_keyword_alerts_total",
			Help: "Keyword alerts sent to the operator by status.",
		},
		[]string{"status"},
	)

	broadcastDeliveriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relaybot_broadcast_deliveries_total",
			Help: "Broadcast deliveries by audience and status (sent/failed).",
		},
		[]string{"audience", "status"},
	)

	operatorCommandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relaybot_operator_commands_total",
			Help: "Attempts to use operator commands by status (allowed/denied).",
		},
		[]string{"command", "status"},
	)

	lookupRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relaybot_lookup_requests_total",
			Help: "Remote API calls by service and status (ok/error).",
		},
		[]string{"service", "status"},
	)

	flowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relaybot_flows_total",
			Help: "Conversation flows by flow and stage (started/completed).",
		},
		[]string{"flow", "stage"},
	)
)

// MustRegister registers collectors with the default registry (idempotent).
func MustRegister() {
	once.Do(func() {
		prometheus.MustRegister(
			eventsTotal, forwardsTotal, keywordAlertsTotal,
			broadcastDeliveriesTotal, operatorCommandsTotal,
			lookupRequestsTotal, flowsTotal,
		)
	})
}

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func IncEvent(kind string) {
	eventsTotal.WithLabelValues(norm(kind)).Inc()
}

func IncForward(rule, status string) {
	forwardsTotal.WithLabelValues(norm(rule), norm(status)).Inc()
}

func IncKeywordAlert(status string) {
	keywordAlertsTotal.WithLabelValues(norm(status)).Inc()
}

// AddBroadcast records the tally of one fan-out run
func AddBroadcast(audience string, sent, failed int) {
	broadcastDeliveriesTotal.WithLabelValues(norm(audience), "sent").Add(float64(sent))
	broadcastDeliveriesTotal.WithLabelValues(norm(audience), "failed").Add(float64(failed))
}

func IncOperatorCommand(command, status string) {
	operatorCommandsTotal.WithLabelValues(norm(command), norm(status)).Inc()
}

func IncLookup(service, status string) {
	lookupRequestsTotal.WithLabelValues(norm(service), norm(status)).Inc()
}

func IncFlow(flow, stage string) {
	flowsTotal.WithLabelValues(norm(flow), norm(stage)).Inc()
}
