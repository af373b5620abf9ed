package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Faroffweb/Gst-Trail/internal/dto"
	"github.com/Faroffweb/Gst-Trail/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const dashboardCacheKey = "dashboard:summary"

// lowStockThreshold marks products worth flagging on the dashboard,
// including oversold products already below zero.
const lowStockThreshold = 5

// DashboardService aggregates counters and recent activity for the landing
// page. Cache-aside over redis: the summary is cheap enough to recompute but
// is hit on every page load, so mutating services invalidate the key
// best-effort and reads fall back to the DB on any cache error.
type DashboardService interface {
	Summary(ctx context.Context) (*dto.DashboardSummary, error)
	Invalidate(ctx context.Context)
}

type dashboardService struct {
	products  repository.ProductRepository
	customers repository.CustomerRepository
	invoices  repository.InvoiceRepository
	purchases repository.PurchaseRepository
	rdb       *redis.Client // may be nil (tests, cache disabled)
	ttl       time.Duration
}

func NewDashboardService(
	products repository.ProductRepository,
	customers repository.CustomerRepository,
	invoices repository.InvoiceRepository,
	purchases repository.PurchaseRepository,
	rdb *redis.Client,
	ttl time.Duration,
) DashboardService {
	return &dashboardService{
		products:  products,
		customers: customers,
		invoices:  invoices,
		purchases: purchases,
		rdb:       rdb,
		ttl:       ttl,
	}
}

func (s *dashboardService) Summary(ctx context.Context) (*dto.DashboardSummary, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, dashboardCacheKey).Bytes(); err == nil {
			var summary dto.DashboardSummary
			if json.Unmarshal(cached, &summary) == nil {
				return &summary, nil
			}
		}
	}

	summary, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(summary); err == nil {
			if err := s.rdb.Set(ctx, dashboardCacheKey, payload, s.ttl).Err(); err != nil {
				log.Warn().Err(err).Msg("dashboard cache write failed")
			}
		}
	}
	return summary, nil
}

func (s *dashboardService) Invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, dashboardCacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("dashboard cache invalidation failed")
	}
}

func (s *dashboardService) compute(ctx context.Context) (*dto.DashboardSummary, error) {
	productCount, err := s.products.Count(ctx)
	if err != nil {
		return nil, translateDBError(err)
	}
	customerCount, err := s.customers.Count(ctx)
	if err != nil {
		return nil, translateDBError(err)
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	salesTotal, err := s.invoices.SumTotalsSince(ctx, monthStart)
	if err != nil {
		return nil, translateDBError(err)
	}
	purchaseCount, err := s.purchases.CountSince(ctx, monthStart)
	if err != nil {
		return nil, translateDBError(err)
	}

	lowStock, err := s.products.FindLowStock(ctx, lowStockThreshold)
	if err != nil {
		return nil, translateDBError(err)
	}
	recent, err := s.invoices.Recent(ctx, 5)
	if err != nil {
		return nil, translateDBError(err)
	}

	summary := &dto.DashboardSummary{
		ProductCount:     productCount,
		CustomerCount:    customerCount,
		MonthSalesTotal:  salesTotal,
		MonthPurchaseQty: purchaseCount,
		GeneratedAt:      now,
	}
	for i := range lowStock {
		summary.LowStockProducts = append(summary.LowStockProducts, productToResponse(&lowStock[i]))
	}
	for i := range recent {
		inv := &recent[i]
		ir := dto.InvoiceResponse{
			ID:          inv.ID.String(),
			InvoiceNo:   inv.InvoiceNo,
			InvoiceDate: inv.InvoiceDate,
			TotalAmount: inv.TotalAmount,
		}
		if inv.Customer != nil {
			ir.CustomerName = &inv.Customer.Name
		}
		summary.RecentInvoices = append(summary.RecentInvoices, ir)
	}
	return summary, nil
}
