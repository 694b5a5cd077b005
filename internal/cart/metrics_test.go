package cart

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMetrics_CountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	store := NewStore()
	svc := NewService(newTestCatalog(t, 1), store, zap.NewNop(), m)

	_, err := svc.Add(user, 1, Quantity(1))
	require.NoError(t, err)
	_, err = svc.Add(user, 1, Quantity(1))
	require.Error(t, err)
	_, err = svc.Add(user, 1, Quantity(0))
	require.Error(t, err)
	svc.Clear(user)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("add", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("add", "insufficient_stock")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("add", "validation")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("clear", "ok")))
}

func TestReservedCollector(t *testing.T) {
	svc, _, store := newTestService(t, 5)
	_, err := svc.Add(user, 1, Quantity(2))
	require.NoError(t, err)
	_, err = svc.Add("google:9", 1, Quantity(1))
	require.NoError(t, err)

	expected := `
# HELP cart_reserved_units Units of a product held in carts
# TYPE cart_reserved_units gauge
cart_reserved_units{product_id="1"} 3
`
	assert.NoError(t, testutil.CollectAndCompare(NewReservedCollector(store), strings.NewReader(expected)))
}
