package repository

import (
	"context"
	"fmt"

	"github.com/Faroffweb/Gst-Trail/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CompanyRepository interface {
	Get(ctx context.Context) (*model.CompanyProfile, error)
	Save(ctx context.Context, p *model.CompanyProfile) error
	// NextInvoiceNoTx atomically claims the next invoice number from the
	// singleton profile row. The row lock taken by the UPDATE serializes
	// concurrent allocations.
	NextInvoiceNoTx(tx *gorm.DB) (string, error)
}

type companyRepo struct{ db *gorm.DB }

func NewCompanyRepository(db *gorm.DB) CompanyRepository { return &companyRepo{db: db} }

func (r *companyRepo) Get(ctx context.Context) (*model.CompanyProfile, error) {
	var p model.CompanyProfile
	err := r.db.WithContext(ctx).First(&p, "id = ?", model.CompanyProfileID).Error
	return &p, err
}

func (r *companyRepo) Save(ctx context.Context, p *model.CompanyProfile) error {
	p.ID = model.CompanyProfileID
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(p).Error
}

func (r *companyRepo) NextInvoiceNoTx(tx *gorm.DB) (string, error) {
	var p model.CompanyProfile
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&p, "id = ?", model.CompanyProfileID).Error; err != nil {
		return "", err
	}
	no := fmt.Sprintf("%s-%05d", p.InvoicePrefix, p.NextInvoiceNo)
	if err := tx.Model(&model.CompanyProfile{}).
		Where("id = ?", model.CompanyProfileID).
		Update("next_invoice_no", gorm.Expr("next_invoice_no + 1")).Error; err != nil {
		return "", err
	}
	return no, nil
}
