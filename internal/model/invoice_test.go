package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestInvoiceItemLineTotal(t *testing.T) {
	cases := []struct {
		name     string
		quantity int
		price    string
		taxRate  string
		want     string
	}{
		{"with gst", 4, "100", "0.18", "472"},
		{"zero tax", 3, "50.50", "0", "151.50"},
		{"single unit", 1, "999.99", "0.05", "1049.9895"},
		{"zero price", 10, "0", "0.18", "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			it := InvoiceItem{
				Quantity:  tc.quantity,
				UnitPrice: decimal.RequireFromString(tc.price),
				TaxRate:   decimal.RequireFromString(tc.taxRate),
			}
			assert.True(t, it.LineTotal().Equal(decimal.RequireFromString(tc.want)),
				"got %s", it.LineTotal())
		})
	}
}
