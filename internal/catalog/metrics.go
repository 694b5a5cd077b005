package catalog

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// StockCollector exports the live stock of every product on each scrape.
type StockCollector struct {
	catalog *Catalog
	desc    *prometheus.Desc
}

func NewStockCollector(c *Catalog) *StockCollector {
	return &StockCollector{
		catalog: c,
		desc: prometheus.NewDesc(
			"catalog_product_stock",
			"Units of a product not reserved by any cart",
			[]string{"product_id"},
			nil,
		),
	}
}

func (c *StockCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

func (c *StockCollector) Collect(ch chan<- prometheus.Metric) {
	for _, p := range c.catalog.List() {
		ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(p.Stock), strconv.Itoa(p.ID))
	}
}
