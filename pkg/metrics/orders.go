package metrics

import "github.com/prometheus/client_golang/prometheus"

// OrderMetrics counts the order lifecycle events the shop cares about.
type OrderMetrics struct {
	created     prometheus.Counter
	approved    prometheus.Counter
	rejected    prometheus.Counter
	priceQuotes prometheus.Counter
}

// NewOrderMetrics registers the order metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	created := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders accepted by the API.",
	})
	approved := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_approved_total",
		Help: "Orders that passed the review gate.",
	})
	rejected := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_rejected_total",
		Help: "Orders rejected at the review gate.",
	})
	priceQuotes := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "price_quotes_total",
		Help: "Price calculations served.",
	})
	reg.MustRegister(created, approved, rejected, priceQuotes)
	return &OrderMetrics{
		created:     created,
		approved:    approved,
		rejected:    rejected,
		priceQuotes: priceQuotes,
	}
}

// IncCreated increments the created-order counter.
func (o *OrderMetrics) IncCreated() {
	if o == nil || o.created == nil {
		return
	}
	o.created.Inc()
}

// IncApproved increments the approved-order counter.
func (o *OrderMetrics) IncApproved() {
	if o == nil || o.approved == nil {
		return
	}
	o.approved.Inc()
}

// IncRejected increments the rejected-order counter.
func (o *OrderMetrics) IncRejected() {
	if o == nil || o.rejected == nil {
		return
	}
	o.rejected.Inc()
}

// IncPriceQuote increments the price-quote counter.
func (o *OrderMetrics) IncPriceQuote() {
	if o == nil || o.priceQuotes == nil {
		return
	}
	o.priceQuotes.Inc()
}
