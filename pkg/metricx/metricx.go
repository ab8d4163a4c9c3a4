// Package metricx exposes Prometheus counters for the login flow and the HTTP
// surface.
package metricx

import (
	"errors"
	"strconv"
	"time"

	"github.com/Abraxas-365/supplierportal/pkg/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "supplierportal"

type Metrics struct {
	registry *prometheus.Registry

	passcodesRequested *prometheus.CounterVec
	passcodesVerified  *prometheus.CounterVec
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

// New creates a private registry with process and Go runtime collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		passcodesRequested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "otp",
			Name:      "requested_total",
			Help:      "Passcode requests by outcome.",
		}, []string{"outcome"}),
		passcodesVerified: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "otp",
			Name:      "verified_total",
			Help:      "Passcode verifications by outcome.",
		}, []string{"outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.passcodesRequested,
		m.passcodesVerified,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) PasscodeRequested(outcome string) {
	m.passcodesRequested.WithLabelValues(outcome).Inc()
}

func (m *Metrics) PasscodeVerified(outcome string) {
	m.passcodesVerified.WithLabelValues(outcome).Inc()
}

// Middleware records every request after the handler chain, including
// errors returned to the error handler.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = statusOf(err)
		}

		route := c.Route().Path
		m.httpRequests.WithLabelValues(route, c.Method(), strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(route, c.Method()).Observe(time.Since(start).Seconds())
		return err
	}
}

// statusOf predicts the status the error handler will write for err
func statusOf(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	var xe *errx.Error
	if errors.As(err, &xe) {
		return xe.HTTPStatus
	}
	return fiber.StatusInternalServerError
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
