// Package metrics holds the Prometheus instrumentation for the listener
// plane. All metrics register on the default registry so the exporter only
// needs promhttp.Handler.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	MessagesReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dhcp6vppd_messages_received_total",
			Help: "Datagrams read from the punt socket.",
		},
		[]string{"socket"},
	)

	MessagesAccepted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dhcp6vppd_messages_accepted_total",
			Help: "Messages that passed decoding and interface policy.",
		},
		[]string{"socket", "interface"},
	)

	MessagesDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dhcp6vppd_messages_dropped_total",
			Help: "Messages dropped before reaching the handler.",
		},
		[]string{"socket", "reason"},
	)

	RepliesSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dhcp6vppd_replies_sent_total",
			Help: "Reply frames injected back into the dataplane.",
		},
		[]string{"socket", "interface"},
	)

	ReplyErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dhcp6vppd_reply_errors_total",
			Help: "Replies that could not be encoded or written.",
		},
		[]string{"socket", "interface"},
	)

	HandlerErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dhcp6vppd_handler_errors_total",
			Help: "Messages the handler failed to process.",
		},
		[]string{"socket", "interface"},
	)
)

func init() {
	prometheus.MustRegister(
		MessagesReceived,
		MessagesAccepted,
		MessagesDropped,
		RepliesSent,
		ReplyErrors,
		HandlerErrors,
	)
}
