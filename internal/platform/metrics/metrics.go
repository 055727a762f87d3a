package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vetclinic_http_requests_total",
		Help: "Total HTTP requests processed, labeled by status code",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vetclinic_http_request_duration_seconds",
		Help:    "Latency distribution of HTTP requests",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"method", "route"})

	OpenSlots = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "vetclinic_open_slots",
		Help: "Appointment slots still available",
	})

	OpenAppointments = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "vetclinic_open_appointments",
		Help: "Appointments currently in open status",
	})

	OperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vetclinic_operations_total",
		Help: "Registry operations, labeled by operation and result",
	}, []string{"operation", "result"})

	PaymentsAmountTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vetclinic_payments_amount_total",
		Help: "Sum of accepted payment amounts",
	})

	OutstandingAppointments = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "vetclinic_outstanding_appointments",
		Help: "Appointments with a remaining balance at the last reminder run",
	})
)
