package service

import (
	"context"
	"testing"
	"time"

	"github.com/Faroffweb/Gst-Trail/internal/dto"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var invoiceDate = time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

func mustCreateInvoice(t *testing.T, e *testEnv, items ...dto.InvoiceItemInput) *dto.InvoiceResponse {
	t.Helper()
	resp, err := e.invoiceSvc.Create(context.Background(), dto.CreateInvoiceRequest{
		InvoiceDate: invoiceDate,
		Items:       items,
	})
	require.NoError(t, err)
	return resp
}

func itemByProduct(t *testing.T, inv *dto.InvoiceResponse, productID uuid.UUID) dto.InvoiceItemResponse {
	t.Helper()
	for _, it := range inv.Items {
		if it.ProductID == productID.String() {
			return it
		}
	}
	t.Fatalf("no item for product %s", productID)
	return dto.InvoiceItemResponse{}
}

func assertDecimalEqual(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(decimal.RequireFromString(want)), "want %s, got %s", want, got)
}

func TestInvoiceCreateComputesTotalAndConsumesStock(t *testing.T) {
	e := newTestEnv()
	pid := e.seedProduct("Mattress", 10, "100", "0.18")

	resp := mustCreateInvoice(t, e, dto.InvoiceItemInput{ProductID: pid.String(), Quantity: 4})

	// 4 × 100 × 1.18
	assertDecimalEqual(t, "472", resp.TotalAmount)
	assert.Equal(t, 6, e.stockOf(pid))
	assert.Equal(t, "INV-00001", resp.InvoiceNo)

	stored, err := e.invoices.FindByID(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assertDecimalEqual(t, "472", stored.TotalAmount)
}

func TestInvoiceNumberAllocationIsMonotonic(t *testing.T) {
	e := newTestEnv()
	pid := e.seedProduct("Mattress", 100, "100", "0")

	first := mustCreateInvoice(t, e, dto.InvoiceItemInput{ProductID: pid.String(), Quantity: 1})
	second := mustCreateInvoice(t, e, dto.InvoiceItemInput{ProductID: pid.String(), Quantity: 1})

	assert.Equal(t, "INV-00001", first.InvoiceNo)
	assert.Equal(t, "INV-00002", second.InvoiceNo)
}

func TestInvoiceCreateWithExplicitNumberSkipsSequence(t *testing.T) {
	e := newTestEnv()
	pid := e.seedProduct("Mattress", 100, "100", "0")

	no := "CUSTOM-7"
	resp, err := e.invoiceSvc.Create(context.Background(), dto.CreateInvoiceRequest{
		InvoiceNo:   &no,
		InvoiceDate: invoiceDate,
		Items:       []dto.InvoiceItemInput{{ProductID: pid.String(), Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "CUSTOM-7", resp.InvoiceNo)

	next := mustCreateInvoice(t, e, dto.InvoiceItemInput{ProductID: pid.String(), Quantity: 1})
	assert.Equal(t, "INV-00001", next.InvoiceNo, "sequence untouched by explicit numbers")
}

func TestInvoiceCreateAllowsOversell(t *testing.T) {
	e := newTestEnv()
	pid := e.seedProduct("Mattress", 2, "100", "0")

	resp := mustCreateInvoice(t, e, dto.InvoiceItemInput{ProductID: pid.String(), Quantity: 5})

	assertDecimalEqual(t, "500", resp.TotalAmount)
	assert.Equal(t, -3, e.stockOf(pid), "sales may drive stock negative")
}

func TestInvoiceCreateUnknownCustomer(t *testing.T) {
	e := newTestEnv()
	pid := e.seedProduct("Mattress", 10, "100", "0")

	cid := uuid.New().String()
	_, err := e.invoiceSvc.Create(context.Background(), dto.CreateInvoiceRequest{
		CustomerID:  &cid,
		InvoiceDate: invoiceDate,
		Items:       []dto.InvoiceItemInput{{ProductID: pid.String(), Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 10, e.stockOf(pid))
}

func TestInvoiceDeleteRestoresStockForEveryItem(t *testing.T) {
	e := newTestEnv()
	pidA := e.seedProduct("Mattress", 10, "100", "0.18")
	pidB := e.seedProduct("Pillow", 10, "20", "0.05")

	resp := mustCreateInvoice(t, e,
		dto.InvoiceItemInput{ProductID: pidA.String(), Quantity: 3},
		dto.InvoiceItemInput{ProductID: pidB.String(), Quantity: 5},
	)
	require.Equal(t, 7, e.stockOf(pidA))
	require.Equal(t, 5, e.stockOf(pidB))

	err := e.invoiceSvc.Delete(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)

	assert.Equal(t, 10, e.stockOf(pidA))
	assert.Equal(t, 10, e.stockOf(pidB))

	_, err = e.invoiceSvc.GetByID(context.Background(), uuid.MustParse(resp.ID))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, e.invoices.items, "items removed with the invoice")
}

func TestInvoiceDeleteItemRestoresStockAndRecomputesTotal(t *testing.T) {
	e := newTestEnv()
	pidA := e.seedProduct("Mattress", 10, "50", "0")
	pidB := e.seedProduct("Pillow", 10, "100", "0.1")

	resp := mustCreateInvoice(t, e,
		dto.InvoiceItemInput{ProductID: pidA.String(), Quantity: 2},
		dto.InvoiceItemInput{ProductID: pidB.String(), Quantity: 1},
	)
	// 2×50 + 1×100×1.1
	assertDecimalEqual(t, "210", resp.TotalAmount)

	itemB := itemByProduct(t, resp, pidB)
	after, err := e.invoiceSvc.DeleteItem(context.Background(), uuid.MustParse(resp.ID), uuid.MustParse(itemB.ID))
	require.NoError(t, err)

	assertDecimalEqual(t, "100", after.TotalAmount)
	assert.Equal(t, 10, e.stockOf(pidB), "deleted sale line returns its stock")
	assert.Equal(t, 8, e.stockOf(pidA), "other lines untouched")
	assert.Len(t, after.Items, 1)
}

func TestInvoiceUpdateItemQuantityAdjustsStockAndTotal(t *testing.T) {
	e := newTestEnv()
	pid := e.seedProduct("Mattress", 10, "100", "0")

	resp := mustCreateInvoice(t, e, dto.InvoiceItemInput{ProductID: pid.String(), Quantity: 2})
	require.Equal(t, 8, e.stockOf(pid))

	item := resp.Items[0]
	qty := 5
	after, err := e.invoiceSvc.UpdateItem(context.Background(), uuid.MustParse(resp.ID), uuid.MustParse(item.ID), dto.UpdateInvoiceItemRequest{
		Quantity: &qty,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, e.stockOf(pid), "only the delta of 3 left stock")
	assertDecimalEqual(t, "500", after.TotalAmount)
}

func TestInvoiceUpdateItemSameValuesIsIdempotent(t *testing.T) {
	e := newTestEnv()
	pid := e.seedProduct("Mattress", 10, "100", "0.18")

	resp := mustCreateInvoice(t, e, dto.InvoiceItemInput{ProductID: pid.String(), Quantity: 4})
	item := resp.Items[0]

	qty := item.Quantity
	after, err := e.invoiceSvc.UpdateItem(context.Background(), uuid.MustParse(resp.ID), uuid.MustParse(item.ID), dto.UpdateInvoiceItemRequest{
		Quantity: &qty,
	})
	require.NoError(t, err)

	assert.True(t, after.TotalAmount.Equal(resp.TotalAmount), "recompute of unchanged items yields the same total")
	assert.Equal(t, 6, e.stockOf(pid))
}

func TestInvoiceUpdateItemMoveRecomputesBothInvoices(t *testing.T) {
	e := newTestEnv()
	pidA := e.seedProduct("Mattress", 10, "100", "0")
	pidB := e.seedProduct("Pillow", 10, "20", "0")

	source := mustCreateInvoice(t, e, dto.InvoiceItemInput{ProductID: pidA.String(), Quantity: 2})
	target := mustCreateInvoice(t, e, dto.InvoiceItemInput{ProductID: pidB.String(), Quantity: 1})

	item := source.Items[0]
	targetID := target.ID
	moved, err := e.invoiceSvc.UpdateItem(context.Background(), uuid.MustParse(source.ID), uuid.MustParse(item.ID), dto.UpdateInvoiceItemRequest{
		InvoiceID: &targetID,
	})
	require.NoError(t, err)

	// The response follows the item to its new invoice.
	assert.Equal(t, target.ID, moved.ID)
	assertDecimalEqual(t, "220", moved.TotalAmount)

	sourceAfter, err := e.invoiceSvc.GetByID(context.Background(), uuid.MustParse(source.ID))
	require.NoError(t, err)
	assertDecimalEqual(t, "0", sourceAfter.TotalAmount)
	assert.Empty(t, sourceAfter.Items)

	// Same product, same quantity: stock is unaffected by the move.
	assert.Equal(t, 8, e.stockOf(pidA))
}

func TestInvoiceItemSnapshotSurvivesCatalogPriceChange(t *testing.T) {
	e := newTestEnv()
	pid := e.seedProduct("Mattress", 10, "100", "0")

	resp := mustCreateInvoice(t, e, dto.InvoiceItemInput{ProductID: pid.String(), Quantity: 2})
	assertDecimalEqual(t, "200", resp.TotalAmount)

	// Catalog price change after the sale.
	e.products.products[pid].UnitPrice = decimal.RequireFromString("250")

	item := resp.Items[0]
	qty := 2
	after, err := e.invoiceSvc.UpdateItem(context.Background(), uuid.MustParse(resp.ID), uuid.MustParse(item.ID), dto.UpdateInvoiceItemRequest{
		Quantity: &qty,
	})
	require.NoError(t, err)
	assertDecimalEqual(t, "200", after.TotalAmount)
}

func TestInvoiceUpdateItemWrongInvoice(t *testing.T) {
	e := newTestEnv()
	pid := e.seedProduct("Mattress", 10, "100", "0")

	resp := mustCreateInvoice(t, e, dto.InvoiceItemInput{ProductID: pid.String(), Quantity: 1})
	item := resp.Items[0]

	qty := 3
	_, err := e.invoiceSvc.UpdateItem(context.Background(), uuid.New(), uuid.MustParse(item.ID), dto.UpdateInvoiceItemRequest{
		Quantity: &qty,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInvoiceAddItemConsumesStockAndRecomputes(t *testing.T) {
	e := newTestEnv()
	pidA := e.seedProduct("Mattress", 10, "100", "0")
	pidB := e.seedProduct("Pillow", 10, "20", "0")

	resp := mustCreateInvoice(t, e, dto.InvoiceItemInput{ProductID: pidA.String(), Quantity: 1})

	after, err := e.invoiceSvc.AddItem(context.Background(), uuid.MustParse(resp.ID), dto.AddInvoiceItemRequest{
		ProductID: pidB.String(),
		Quantity:  3,
	})
	require.NoError(t, err)

	assertDecimalEqual(t, "160", after.TotalAmount)
	assert.Equal(t, 7, e.stockOf(pidB))
	assert.Len(t, after.Items, 2)
}
