package repository

import (
	"context"
	"fmt"

	"github.com/Faroffweb/Gst-Trail/internal/dto"

	"gorm.io/gorm"
)

// ReportRepository serves the read-only combined transaction report: a
// UNION ALL of sales (negative quantity deltas) and purchases (positive
// deltas). It depends on the stock ledger and invoice total rules keeping
// the underlying rows consistent; it never mutates anything.
type ReportRepository interface {
	Page(ctx context.Context, filter dto.ReportFilter) ([]dto.TransactionRow, error)
	Count(ctx context.Context, filter dto.ReportFilter) (int64, error)
	// Export is the unbounded variant for full-range downloads.
	Export(ctx context.Context, filter dto.ReportFilter) ([]dto.TransactionRow, error)
}

type reportRepo struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) ReportRepository { return &reportRepo{db: db} }

const saleRowsSQL = `
SELECT i.invoice_date AS transaction_date,
       'sale' AS transaction_type,
       p.name AS product_name,
       p.hsn_code AS hsn_code,
       -ii.quantity AS quantity_change,
       ii.unit_price AS unit_price,
       ii.quantity * ii.unit_price * (1 + ii.tax_rate) AS amount,
       i.invoice_no AS reference
FROM invoice_items ii
JOIN invoices i ON i.id = ii.invoice_id
JOIN products p ON p.id = ii.product_id
WHERE i.invoice_date BETWEEN ? AND ?`

const purchaseRowsSQL = `
SELECT pu.purchase_date AS transaction_date,
       'purchase' AS transaction_type,
       p.name AS product_name,
       p.hsn_code AS hsn_code,
       pu.quantity AS quantity_change,
       p.unit_price AS unit_price,
       0 AS amount,
       COALESCE(pu.ref_no, '') AS reference
FROM purchases pu
JOIN products p ON p.id = pu.product_id
WHERE pu.purchase_date BETWEEN ? AND ?`

// combinedSQL assembles the UNION body for the requested type filter and
// returns the SQL plus its bind args (start/end repeated per branch).
func combinedSQL(filter dto.ReportFilter) (string, []interface{}) {
	switch filter.Type {
	case dto.TxTypeSale:
		return saleRowsSQL, []interface{}{filter.Start, filter.End}
	case dto.TxTypePurchase:
		return purchaseRowsSQL, []interface{}{filter.Start, filter.End}
	default:
		return saleRowsSQL + "\nUNION ALL" + purchaseRowsSQL,
			[]interface{}{filter.Start, filter.End, filter.Start, filter.End}
	}
}

const combinedOrder = " ORDER BY transaction_date DESC, product_name ASC"

func (r *reportRepo) Page(ctx context.Context, filter dto.ReportFilter) ([]dto.TransactionRow, error) {
	body, args := combinedSQL(filter)
	sql := "SELECT * FROM (" + body + "\n) t" + combinedOrder + " LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	var rows []dto.TransactionRow
	err := r.db.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) Count(ctx context.Context, filter dto.ReportFilter) (int64, error) {
	body, args := combinedSQL(filter)
	sql := fmt.Sprintf("SELECT COUNT(*) FROM (%s\n) t", body)

	var n int64
	err := r.db.WithContext(ctx).Raw(sql, args...).Scan(&n).Error
	return n, err
}

func (r *reportRepo) Export(ctx context.Context, filter dto.ReportFilter) ([]dto.TransactionRow, error) {
	body, args := combinedSQL(filter)
	sql := "SELECT * FROM (" + body + "\n) t" + combinedOrder

	var rows []dto.TransactionRow
	err := r.db.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error
	return rows, err
}
