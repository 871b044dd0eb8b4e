package realtimews

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts frames and errors across every Conn configured with it.
type Metrics struct {
	FramesReceived *prometheus.CounterVec
	FramesSent     *prometheus.CounterVec
	Errors         *prometheus.CounterVec
	OpenSockets    prometheus.Gauge
}

// Error kinds recorded in realtimews_errors_total.
const (
	errKindServer = "server"
	errKindParse  = "parse"
	errKindSocket = "socket"
	errKindSend   = "send"
	errKindClose  = "close"
)

// NewMetrics registers the collectors with reg. Pass prometheus.DefaultRegisterer
// to expose them on the default /metrics handler.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		FramesReceived: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "realtimews",
			Name:      "frames_received_total",
			Help:      "Parsed inbound frames by server event type.",
		}, []string{"type"}),
		FramesSent: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "realtimews",
			Name:      "frames_sent_total",
			Help:      "Outbound frames written by client event type.",
		}, []string{"type"}),
		Errors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "realtimews",
			Name:      "errors_total",
			Help:      "Reported errors by kind.",
		}, []string{"kind"}),
		OpenSockets: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "realtimews",
			Name:      "open_sockets",
			Help:      "Sockets opened and not yet closed.",
		}),
	}
}

// All methods are nil-safe so Conn can call them unconditionally.

// received labels by event type. Every UnknownEvent shares the "unknown" label.
func (m *Metrics) received(ev ServerEvent) {
	if m == nil {
		return
	}
	label := string(ev.EventType())
	if _, ok := ev.(UnknownEvent); ok {
		label = "unknown"
	}
	m.FramesReceived.WithLabelValues(label).Inc()
}

func (m *Metrics) sent(typ string) {
	if m != nil {
		m.FramesSent.WithLabelValues(typ).Inc()
	}
}

func (m *Metrics) failed(kind string) {
	if m != nil {
		m.Errors.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) socketOpened() {
	if m != nil {
		m.OpenSockets.Inc()
	}
}

func (m *Metrics) socketClosed() {
	if m != nil {
		m.OpenSockets.Dec()
	}
}
