package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

const namespace = "relaybot"

// Forward outcomes.
const (
	OutcomeSuccess         = "success"
	OutcomeEmptyPrompt     = "empty_prompt"
	OutcomeAPIError        = "api_error"
	OutcomeInvalidResponse = "invalid_response"
	OutcomeTransportError  = "transport_error"
	OutcomeReplyError      = "reply_error"
)

// Recorder captures relay metrics.
type Recorder interface {
	IncForward(outcome string)
	ObserveUpstream(durationSeconds float64)
}

// Noop implements Recorder without emitting anything.
type Noop struct{}

func (Noop) IncForward(string)        {}
func (Noop) ObserveUpstream(float64) {}

// Prom implements Recorder backed by Prometheus collectors registered on
// its own registry.
type Prom struct {
	registry *prometheus.Registry
	forwards *prometheus.CounterVec
	upstream prometheus.Histogram
}

// NewProm registers the relay collectors plus the Go and process collectors
// on a fresh registry.
func NewProm() *Prom {
	p := &Prom{
		registry: prometheus.NewRegistry(),
		forwards: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "forward_total",
			Help:      "Relayed messages by outcome",
		}, []string{"outcome"}),
		upstream: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_duration_seconds",
			Help:      "Latency of generative-text API calls",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	p.registry.MustRegister(
		p.forwards,
		p.upstream,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return p
}

func (p *Prom) IncForward(outcome string) {
	p.forwards.WithLabelValues(outcome).Inc()
}

func (p *Prom) ObserveUpstream(durationSeconds float64) {
	p.upstream.Observe(durationSeconds)
}

// Forwards exposes the outcome counter, mainly for tests.
func (p *Prom) Forwards() *prometheus.CounterVec {
	return p.forwards
}

// Handler returns an HTTP handler for /metrics.
func (p *Prom) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

type Result struct {
	fx.Out

	Prom     *Prom
	Recorder Recorder
}

func New() Result {
	p := NewProm()
	return Result{Prom: p, Recorder: p}
}

func Module() fx.Option {
	return fx.Module(
		"metrics",
		fx.Provide(
			New,
		),
	)
}
