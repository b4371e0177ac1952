// Package metrics counts KDC protocol outcomes with Prometheus.
//
// Only outcomes are counted: requests seen, grant pairs issued and
// rejections by reason. Identities and key material never become labels.
package metrics

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"kdcsim/internal/domain"
)

const (
	namespace = "kdcsim"
	subsystem = "kdc"
)

// Rejection reasons used as label values.
const (
	ReasonUnknownIdentity = "unknown_identity"
	ReasonAuthentication  = "authentication"
	ReasonMalformed       = "malformed"
	ReasonStale           = "stale"
	ReasonInternal        = "internal"
)

// Prometheus implements domain.KDCMetrics on a Prometheus registry.
type Prometheus struct {
	requests prometheus.Counter
	issued   prometheus.Counter
	rejected *prometheus.CounterVec
}

// New creates the KDC counters and registers them with reg.
func New(reg prometheus.Registerer) *Prometheus {
	m := &Prometheus{
		requests: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "requests_total",
				Help:      "Number of key requests received",
			},
		),
		issued: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "grant_pairs_issued_total",
				Help:      "Number of session keys issued, each as a pair of grants",
			},
		),
		rejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "requests_rejected_total",
				Help:      "Number of key requests rejected, by reason",
			},
			[]string{"reason"},
		),
	}
	reg.MustRegister(m.requests, m.issued, m.rejected)
	return m
}

// RequestReceived increments the counter for key requests.
func (m *Prometheus) RequestReceived() { m.requests.Inc() }

// GrantsIssued increments the counter for issued grant pairs.
func (m *Prometheus) GrantsIssued() { m.issued.Inc() }

// RequestRejected increments the rejection counter for reason.
func (m *Prometheus) RequestRejected(reason string) {
	m.rejected.WithLabelValues(reason).Inc()
}

// Requests returns the request counter.
func (m *Prometheus) Requests() prometheus.Counter { return m.requests }

// Issued returns the issued grant pair counter.
func (m *Prometheus) Issued() prometheus.Counter { return m.issued }

// Rejected returns the rejection counter for reason.
func (m *Prometheus) Rejected(reason string) prometheus.Counter {
	return m.rejected.WithLabelValues(reason)
}

// Dummy discards every count.
type Dummy struct{}

// RequestReceived does nothing.
func (Dummy) RequestReceived() {}

// GrantsIssued does nothing.
func (Dummy) GrantsIssued() {}

// RequestRejected does nothing.
func (Dummy) RequestRejected(string) {}

// WriteText writes every metric family gathered from g in the Prometheus
// text exposition format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

var (
	_ domain.KDCMetrics = (*Prometheus)(nil)
	_ domain.KDCMetrics = Dummy{}
)
