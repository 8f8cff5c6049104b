package repository

import (
	"context"

	"backline/internal/domain"

	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) GetAll(ctx context.Context) ([]domain.Room, error) {
	var rooms []domain.Room
	tx := r.db.WithContext(ctx).Order("id ASC").Find(&rooms)
	return rooms, tx.Error
}

func (r *RoomRepository) GetVisible(ctx context.Context) ([]domain.Room, error) {
	var rooms []domain.Room
	tx := r.db.WithContext(ctx).Where("is_visible = ?", true).Order("id ASC").Find(&rooms)
	return rooms, tx.Error
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var room domain.Room
	tx := r.db.WithContext(ctx).First(&room, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &room, nil
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

func (r *RoomRepository) SetVisibility(ctx context.Context, id int64, visible bool) error {
	return r.db.WithContext(ctx).Model(&domain.Room{}).
		Where("id = ?", id).
		Update("is_visible", visible).Error
}

func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Room{}, id).Error
}
