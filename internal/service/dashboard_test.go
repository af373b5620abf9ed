package service

import (
	"context"
	"testing"
	"time"

	"github.com/Faroffweb/Gst-Trail/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardSummaryWithoutCache(t *testing.T) {
	e := newTestEnv()
	svc := NewDashboardService(e.products, e.customers, e.invoices, e.purchases, nil, time.Minute)

	pid := e.seedProduct("Mattress", 0, "100", "0.18")
	e.seedProduct("Pillow", 40, "20", "0.05")
	_, err := e.customerSvc.Create(context.Background(), dto.CreateCustomerRequest{Name: "Sharma Traders"})
	require.NoError(t, err)

	mustCreatePurchase(t, e, pid, 8)
	mustCreateInvoice(t, e, dto.InvoiceItemInput{ProductID: pid.String(), Quantity: 4})

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 2, summary.ProductCount)
	assert.EqualValues(t, 1, summary.CustomerCount)
	assert.Len(t, summary.RecentInvoices, 1)

	// Mattress sits at 4 after the sale, under the low-stock threshold.
	require.Len(t, summary.LowStockProducts, 1)
	assert.Equal(t, "Mattress", summary.LowStockProducts[0].Name)
	assert.Equal(t, 4, summary.LowStockProducts[0].StockQuantity)
}

func TestDashboardInvalidateWithoutCacheIsNoop(t *testing.T) {
	e := newTestEnv()
	svc := NewDashboardService(e.products, e.customers, e.invoices, e.purchases, nil, time.Minute)
	svc.Invalidate(context.Background())
}
