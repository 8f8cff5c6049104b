package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"backline/internal/domain"
	"backline/internal/pkg/validator"
)

type ProductRepository interface {
	GetAll(ctx context.Context, visibleOnly bool) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id int64) error
}

type RentalRepository interface {
	GetItems(ctx context.Context, availableOnly bool) ([]domain.RentalItem, error)
	GetItemByID(ctx context.Context, id int64) (*domain.RentalItem, error)
	CreateItem(ctx context.Context, item *domain.RentalItem) error
	SetItemAvailability(ctx context.Context, id int64, available bool) error
	CreateAgreement(ctx context.Context, a *domain.RentalAgreement) error
	GetAgreementByID(ctx context.Context, id int64) (*domain.RentalAgreement, error)
	GetOpenAgreements(ctx context.Context) ([]domain.RentalAgreement, error)
	GetOverdueAgreements(ctx context.Context, today string) ([]domain.RentalAgreement, error)
	CloseAgreement(ctx context.Context, id int64) error
}

type Service struct {
	products ProductRepository
	rentals  RentalRepository
	now      func() time.Time
}

func NewService(products ProductRepository, rentals RentalRepository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{products: products, rentals: rentals, now: now}
}

// Products

func (s *Service) ListProducts(ctx context.Context, includeHidden bool) ([]domain.Product, error) {
	return s.products.GetAll(ctx, !includeHidden)
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) CreateProduct(ctx context.Context, req ProductRequest) (*domain.Product, error) {
	visible := true
	if req.IsVisible != nil {
		visible = *req.IsVisible
	}
	p := &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Stock:       req.Stock,
		IsVisible:   visible,
	}
	if errs := validator.Validate(p); errs != nil {
		return nil, ErrValidation
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id int64, req ProductRequest) (*domain.Product, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Name = req.Name
	p.Description = req.Description
	p.Category = req.Category
	p.Price = req.Price
	p.Stock = req.Stock
	if req.IsVisible != nil {
		p.IsVisible = *req.IsVisible
	}
	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	return s.products.Delete(ctx, id)
}

// Rentals

func (s *Service) ListRentalItems(ctx context.Context, availableOnly bool) ([]domain.RentalItem, error) {
	return s.rentals.GetItems(ctx, availableOnly)
}

func (s *Service) CreateRentalItem(ctx context.Context, req RentalItemRequest) (*domain.RentalItem, error) {
	item := &domain.RentalItem{
		Name:        req.Name,
		Category:    req.Category,
		DailyPrice:  req.DailyPrice,
		IsAvailable: true,
	}
	if errs := validator.Validate(item); errs != nil {
		return nil, ErrValidation
	}
	if err := s.rentals.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// OpenRental hands an item out: the item must be in stock, and it is
// marked unavailable until the agreement closes.
func (s *Service) OpenRental(ctx context.Context, req OpenRentalRequest) (*domain.RentalAgreement, error) {
	const dateLayout = "2006-01-02"
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, ErrValidation
	}
	due, err := time.Parse(dateLayout, req.DueDate)
	if err != nil || due.Before(start) {
		return nil, ErrValidation
	}

	item, err := s.rentals.GetItemByID(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !item.IsAvailable {
		return nil, ErrItemUnavailable
	}

	a := &domain.RentalAgreement{
		ItemID:        item.ID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		StartDate:     req.StartDate,
		DueDate:       req.DueDate,
		Status:        domain.RentalOpen,
	}
	if err := s.rentals.CreateAgreement(ctx, a); err != nil {
		return nil, err
	}
	if err := s.rentals.SetItemAvailability(ctx, item.ID, false); err != nil {
		return nil, err
	}
	a.Item = item
	return a, nil
}

func (s *Service) CloseRental(ctx context.Context, id int64) (*domain.RentalAgreement, error) {
	a, err := s.rentals.GetAgreementByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if a.Status != domain.RentalOpen {
		return nil, ErrValidation
	}

	if err := s.rentals.CloseAgreement(ctx, id); err != nil {
		return nil, err
	}
	if err := s.rentals.SetItemAvailability(ctx, a.ItemID, true); err != nil {
		return nil, err
	}
	return s.rentals.GetAgreementByID(ctx, id)
}

func (s *Service) ListOpenRentals(ctx context.Context) ([]domain.RentalAgreement, error) {
	return s.rentals.GetOpenAgreements(ctx)
}

func (s *Service) ListOverdueRentals(ctx context.Context) ([]domain.RentalAgreement, error) {
	return s.rentals.GetOverdueAgreements(ctx, s.now().Format("2006-01-02"))
}
