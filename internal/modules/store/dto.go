package store

type ProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price" binding:"required,gte=0"`
	Stock       int     `json:"stock" binding:"gte=0"`
	IsVisible   *bool   `json:"is_visible"`
}

type RentalItemRequest struct {
	Name       string  `json:"name" binding:"required"`
	Category   string  `json:"category"`
	DailyPrice float64 `json:"daily_price" binding:"required,gte=0"`
}

type OpenRentalRequest struct {
	ItemID        int64  `json:"item_id" binding:"required"`
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone"`
	StartDate     string `json:"start_date" binding:"required"` // 2006-01-02
	DueDate       string `json:"due_date" binding:"required"`
}
