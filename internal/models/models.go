package models

import (
	"time"
)

// User - The person operating the terminal (cashier, manager or admin)
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:50" json:"username"`
	PasswordHash string    `json:"-"`    // Never return this in JSON
	Role         string    `json:"role"` // 'admin', 'manager', 'cashier'
	CreatedAt    time.Time `json:"created_at"`
}

// Product - The Inventory
type Product struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	Cost          float64 `json:"cost"`
	StockQuantity int     `json:"stock_quantity"`
	ImageURL      string  `json:"image_url"`
}

// Margin returns the unit margin ratio. Products priced at zero report 0
// rather than dividing by zero.
func (p Product) Margin() float64 {
	if p.Price <= 0 {
		return 0
	}
	return (p.Price - p.Cost) / p.Price
}

// Sale - The Transaction Header
type Sale struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        uint       `json:"user_id"` // Who processed it
	TotalAmount   float64    `json:"total_amount"`
	Profit        float64    `json:"profit"`         // Sum of (price - cost) * qty, frozen at checkout
	PaymentMethod string     `json:"payment_method"` // 'cash', 'card', 'mobile'
	Status        string     `json:"status"`         // 'completed', 'held', 'cancelled'
	SaleTime      time.Time  `json:"sale_time"`
	Items         []SaleItem `gorm:"foreignKey:SaleID" json:"items"`
}

// SaleItem - The specific items in a cart
type SaleItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	SaleID      uint    `json:"sale_id"`
	ProductID   uint    `json:"product_id"`
	Product     Product `json:"product"` // Preload product details
	Quantity    int     `json:"quantity"`
	PriceAtSale float64 `json:"price_at_sale"` // Snapshot of price at time of sale
}
