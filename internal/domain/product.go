package domain

import "time"

type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"` // strings, sticks, accessories...
	Price       float64   `json:"price" validate:"required,gte=0"`
	Stock       int       `json:"stock" validate:"gte=0"`
	IsVisible   bool      `json:"is_visible"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Product) TableName() string { return "products" }
