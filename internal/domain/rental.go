package domain

import "time"

type RentalItem struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name" validate:"required"`
	Category    string    `json:"category,omitempty"` // guitar, amp, pedal...
	DailyPrice  float64   `json:"daily_price" validate:"required,gte=0"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (RentalItem) TableName() string { return "rental_items" }

type RentalStatus string

const (
	RentalOpen     RentalStatus = "open"
	RentalReturned RentalStatus = "returned"
)

type RentalAgreement struct {
	ID            int64        `json:"id"`
	ItemID        int64        `json:"item_id" validate:"required"`
	CustomerName  string       `json:"customer_name" validate:"required"`
	CustomerPhone string       `json:"customer_phone,omitempty"`
	StartDate     string       `json:"start_date"` // 2006-01-02
	DueDate       string       `json:"due_date"`
	Status        RentalStatus `json:"status"`
	ReturnedAt    *time.Time   `json:"returned_at,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`

	Item *RentalItem `json:"item,omitempty" gorm:"foreignKey:ItemID"`
}

func (RentalAgreement) TableName() string { return "rental_agreements" }
