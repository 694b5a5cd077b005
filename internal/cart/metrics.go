package cart

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	Operations *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cart_operations_total",
				Help: "Cart operations by outcome",
			},
			[]string{"op", "result"},
		),
	}
	reg.MustRegister(m.Operations)
	return m
}

func (m *Metrics) observe(op string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = KindOf(err).String()
	}
	m.Operations.WithLabelValues(op, result).Inc()
}

// ReservedCollector exports the units each product has reserved across carts.
type ReservedCollector struct {
	store *Store
	desc  *prometheus.Desc
}

func NewReservedCollector(store *Store) *ReservedCollector {
	return &ReservedCollector{
		store: store,
		desc: prometheus.NewDesc(
			"cart_reserved_units",
			"Units of a product held in carts",
			[]string{"product_id"},
			nil,
		),
	}
}

func (c *ReservedCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

func (c *ReservedCollector) Collect(ch chan<- prometheus.Metric) {
	for id, qty := range c.store.Reserved() {
		ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(qty), strconv.Itoa(id))
	}
}
