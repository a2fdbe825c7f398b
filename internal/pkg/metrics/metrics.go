// Package metrics exposes the coordinator's Prometheus collectors.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Request outcomes recorded by RecordRequest.
const (
	OutcomeDispatched = "dispatched"
	OutcomeNoCapacity = "no_capacity"
	OutcomeFailed     = "failed"
)

// Metrics records peer exchanges, handled delivery requests and fleet state.
type Metrics struct {
	exchangeAttempts *prometheus.CounterVec
	requests         *prometheus.CounterVec
	remoteErrors     prometheus.Counter
	trucks           *prometheus.GaugeVec
}

// New registers the coordinator collectors on reg. If reg is nil the default
// registerer is used. Collectors that are already registered are reused.
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	exchangeAttempts, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ups_exchange_attempts_total",
		Help: "Request/response attempts against a peer, by operation and result",
	}, []string{"operation", "success"}))
	if err != nil {
		return nil, err
	}

	requests, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ups_delivery_requests_total",
		Help: "Delivery requests received from the order source, by outcome",
	}, []string{"outcome"}))
	if err != nil {
		return nil, err
	}

	remoteErrors, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ups_world_command_errors_total",
		Help: "Command errors reported by the world simulator",
	}))
	if err != nil {
		return nil, err
	}

	trucks, err := register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "ups_trucks",
		Help: "Trucks in the fleet by status",
	}, []string{"status"}))
	if err != nil {
		return nil, err
	}

	return &Metrics{
		exchangeAttempts: exchangeAttempts,
		requests:         requests,
		remoteErrors:     remoteErrors,
		trucks:           trucks,
	}, nil
}

// RecordExchangeAttempt counts one attempt of a peer exchange.
func (m *Metrics) RecordExchangeAttempt(operation string, success bool) {
	if m == nil {
		return
	}
	m.exchangeAttempts.WithLabelValues(operation, strconv.FormatBool(success)).Inc()
}

// RecordRequest counts one delivery request with its outcome.
func (m *Metrics) RecordRequest(outcome string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(outcome).Inc()
}

// RecordRemoteErrors counts command errors reported by the world.
func (m *Metrics) RecordRemoteErrors(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.remoteErrors.Add(float64(n))
}

// SetTrucks replaces the fleet gauge with the given per-status counts.
func (m *Metrics) SetTrucks(byStatus map[string]int) {
	if m == nil {
		return
	}
	m.trucks.Reset()
	for status, n := range byStatus {
		m.trucks.WithLabelValues(status).Set(float64(n))
	}
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		var zero C
		return zero, err
	}
	return c, nil
}
