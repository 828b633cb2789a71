package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Gateway call metrics (one observation per login or charge workflow)
	gatewayCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ussd_gateway_calls_total",
		Help: "Total USSD push gateway workflows by outcome",
	}, []string{
		"operation", // login, charge
		"outcome",   // success, validation, fault, authentication, session, codec, transport
	})

	gatewayCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "ussd_gateway_call_duration_seconds",
		Help: "Time to complete a gateway workflow including every round trip",
		// Buckets: 100ms to 60s (charge includes a login round trip)
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{
		"operation",
	})

	// Charge results as reported by the gateway
	chargesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ussd_charges_total",
		Help: "Total USSD push charges accepted by the gateway",
	}, []string{
		"mode",   // sandbox, live
		"status", // processed, success, ...
	})

	chargeAmountTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ussd_charge_amount_total",
		Help: "Total amount requested through USSD push in major currency units",
	}, []string{
		"mode",
		"currency",
	})

	// Webhook callback metrics
	webhookCallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ussd_webhook_callbacks_total",
		Help: "Total gateway callbacks received",
	}, []string{
		"outcome", // success, failed, rejected
		"status",  // transaction status reported by the gateway
	})
)

// RecordGatewayCall records one finished login or charge workflow
func RecordGatewayCall(operation, outcome string, duration float64) {
	gatewayCallsTotal.WithLabelValues(operation, outcome).Inc()
	gatewayCallDuration.WithLabelValues(operation).Observe(duration)
}

// RecordCharge records a charge the gateway accepted for processing
// amount is in major units; the gateway has no minor-unit representation
func RecordCharge(mode, status, currency string, amount float64) {
	chargesTotal.WithLabelValues(mode, status).Inc()
	chargeAmountTotal.WithLabelValues(mode, currency).Add(amount)
}

// RecordWebhookCallback records the outcome of parsing a gateway callback
func RecordWebhookCallback(outcome, status string) {
	webhookCallbacksTotal.WithLabelValues(outcome, status).Inc()
}
