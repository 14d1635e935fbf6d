package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "PENDING"
	OrderStatusPaid     OrderStatus = "PAID"
	OrderStatusCanceled OrderStatus = "CANCELED"
)

type Order struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	UserID      uint        `json:"userId" gorm:"not null;index"`
	User        User        `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Status      OrderStatus `json:"status" gorm:"size:20;not null;default:PENDING"`
	TotalAmount float64     `json:"totalAmount" gorm:"type:numeric(10,2)"`
	Items       []OrderItem `json:"items"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// OrderItem snapshots the movie price at the moment the order was placed.
type OrderItem struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	OrderID      uint    `json:"orderId" gorm:"not null;index"`
	MovieID      uint    `json:"movieId" gorm:"not null"`
	Movie        Movie   `json:"movie" gorm:"constraint:OnDelete:CASCADE"`
	PriceAtOrder float64 `json:"priceAtOrder" gorm:"type:numeric(10,2);not null"`
}
