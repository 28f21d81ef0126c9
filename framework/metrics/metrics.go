// Package metrics exports container and HTTP metrics to Prometheus.
package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/km-arc/go-inject/framework/container"
)

// Resolution outcomes, used as the "outcome" label.
const (
	OutcomeOK           = "ok"
	OutcomeLookup       = "lookup_error"
	OutcomeConstruction = "construction_error"
	OutcomeCycle        = "cycle_error"
	OutcomeOther        = "error"
)

// Collector holds the application's Prometheus metrics on its own registry.
// It implements container.Observer.
type Collector struct {
	registry *prometheus.Registry

	Resolutions        *prometheus.CounterVec
	ResolutionDuration *prometheus.HistogramVec
	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
}

// New creates a Collector whose metrics live under namespace.
func New(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		Resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "container_resolutions_total",
				Help:      "Total number of top-level container resolutions",
			},
			[]string{"contract", "outcome"},
		),
		ResolutionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "container_resolution_duration_seconds",
				Help:      "Time spent building a contract's object graph",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"contract"},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}
	c.registry.MustRegister(c.Resolutions, c.ResolutionDuration, c.HTTPRequests, c.HTTPDuration)
	return c
}

// Registry returns the registry the metrics are registered on.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// ObserveResolve records one resolution of contract.
func (c *Collector) ObserveResolve(contract reflect.Type, elapsed time.Duration, err error) {
	name := fmt.Sprint(contract)
	c.Resolutions.WithLabelValues(name, Outcome(err)).Inc()
	c.ResolutionDuration.WithLabelValues(name).Observe(elapsed.Seconds())
}

// Outcome classifies a Resolve error.
func Outcome(err error) string {
	var (
		lookup       *container.LookupError
		construction *container.ConstructionError
		cycle        *container.CycleError
	)
	switch {
	case err == nil:
		return OutcomeOK
	case errors.As(err, &cycle):
		return OutcomeCycle
	case errors.As(err, &lookup):
		return OutcomeLookup
	case errors.As(err, &construction):
		return OutcomeConstruction
	default:
		return OutcomeOther
	}
}

// Middleware counts and times every request.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, req)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		c.HTTPRequests.WithLabelValues(req.Method, strconv.Itoa(status)).Inc()
		c.HTTPDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
