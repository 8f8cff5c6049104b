package repository

import (
	"context"

	"backline/internal/domain"

	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) GetAll(ctx context.Context, visibleOnly bool) ([]domain.Product, error) {
	q := r.db.WithContext(ctx)
	if visibleOnly {
		q = q.Where("is_visible = ?", true)
	}
	var products []domain.Product
	tx := q.Order("id ASC").Find(&products)
	return products, tx.Error
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	tx := r.db.WithContext(ctx).First(&p, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Product{}, id).Error
}
