package repository

import (
	"context"
	"time"

	"backline/internal/domain"

	"gorm.io/gorm"
)

type RentalRepository struct {
	db *gorm.DB
}

func NewRentalRepository(db *gorm.DB) *RentalRepository {
	return &RentalRepository{db: db}
}

func (r *RentalRepository) GetItems(ctx context.Context, availableOnly bool) ([]domain.RentalItem, error) {
	q := r.db.WithContext(ctx)
	if availableOnly {
		q = q.Where("is_available = ?", true)
	}
	var items []domain.RentalItem
	tx := q.Order("id ASC").Find(&items)
	return items, tx.Error
}

func (r *RentalRepository) GetItemByID(ctx context.Context, id int64) (*domain.RentalItem, error) {
	var item domain.RentalItem
	tx := r.db.WithContext(ctx).First(&item, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &item, nil
}

func (r *RentalRepository) CreateItem(ctx context.Context, item *domain.RentalItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *RentalRepository) UpdateItem(ctx context.Context, item *domain.RentalItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *RentalRepository) SetItemAvailability(ctx context.Context, id int64, available bool) error {
	return r.db.WithContext(ctx).Model(&domain.RentalItem{}).
		Where("id = ?", id).
		Update("is_available", available).Error
}

func (r *RentalRepository) CreateAgreement(ctx context.Context, a *domain.RentalAgreement) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *RentalRepository) GetAgreementByID(ctx context.Context, id int64) (*domain.RentalAgreement, error) {
	var a domain.RentalAgreement
	tx := r.db.WithContext(ctx).Preload("Item").First(&a, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &a, nil
}

func (r *RentalRepository) GetOpenAgreements(ctx context.Context) ([]domain.RentalAgreement, error) {
	var out []domain.RentalAgreement
	tx := r.db.WithContext(ctx).
		Preload("Item").
		Where("status = ?", string(domain.RentalOpen)).
		Order("due_date ASC").
		Find(&out)
	return out, tx.Error
}

func (r *RentalRepository) GetOverdueAgreements(ctx context.Context, today string) ([]domain.RentalAgreement, error) {
	var out []domain.RentalAgreement
	tx := r.db.WithContext(ctx).
		Preload("Item").
		Where("status = ? AND due_date < ?", string(domain.RentalOpen), today).
		Order("due_date ASC").
		Find(&out)
	return out, tx.Error
}

func (r *RentalRepository) CloseAgreement(ctx context.Context, id int64) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&domain.RentalAgreement{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":      string(domain.RentalReturned),
			"returned_at": &now,
		}).Error
}
