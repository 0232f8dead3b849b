package metrics

import "github.com/prometheus/client_golang/prometheus"

// StorefrontMetrics records the order and notification counters the ops
// dashboard watches.
type StorefrontMetrics struct {
	ordersCreated *prometheus.CounterVec
	statusUpdates *prometheus.CounterVec
	emailsSent    *prometheus.CounterVec
	emailsFailed  *prometheus.CounterVec
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	ordersCreated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders accepted at checkout.",
	}, []string{"fulfillment"})
	statusUpdates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_updates_total",
		Help: "Admin status transitions applied.",
	}, []string{"status"})
	emailsSent := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notification_emails_sent_total",
		Help: "Outbound notification emails delivered.",
	}, []string{"kind"})
	emailsFailed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notification_emails_failed_total",
		Help: "Outbound notification emails that failed delivery.",
	}, []string{"kind"})
	reg.MustRegister(ordersCreated, statusUpdates, emailsSent, emailsFailed)
	return &StorefrontMetrics{
		ordersCreated: ordersCreated,
		statusUpdates: statusUpdates,
		emailsSent:    emailsSent,
		emailsFailed:  emailsFailed,
	}
}

// IncOrderCreated counts an accepted order by fulfillment mode.
func (m *StorefrontMetrics) IncOrderCreated(physical bool) {
	if m == nil || m.ordersCreated == nil {
		return
	}
	label := "digital"
	if physical {
		label = "physical"
	}
	m.ordersCreated.WithLabelValues(label).Inc()
}

// IncStatusUpdate counts an applied status transition.
func (m *StorefrontMetrics) IncStatusUpdate(status string) {
	if m == nil || m.statusUpdates == nil {
		return
	}
	if status == "" {
		status = "unknown"
	}
	m.statusUpdates.WithLabelValues(status).Inc()
}

// IncEmailSent counts a delivered notification email.
func (m *StorefrontMetrics) IncEmailSent(kind string) {
	if m == nil || m.emailsSent == nil {
		return
	}
	m.emailsSent.WithLabelValues(kind).Inc()
}

// IncEmailFailed counts an undeliverable notification email.
func (m *StorefrontMetrics) IncEmailFailed(kind string) {
	if m == nil || m.emailsFailed == nil {
		return
	}
	m.emailsFailed.WithLabelValues(kind).Inc()
}
