package domain

import "time"

// Cart is the single shopping cart owned by a user.
type Cart struct {
	ID     uint       `json:"id" gorm:"primaryKey"`
	UserID uint       `json:"userId" gorm:"uniqueIndex;not null"`
	User   User       `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Items  []CartItem `json:"items"`
}

type CartItem struct {
	ID      uint      `json:"id" gorm:"primaryKey"`
	CartID  uint      `json:"cartId" gorm:"not null;uniqueIndex:unique_movie_in_cart,priority:1"`
	MovieID uint      `json:"movieId" gorm:"not null;uniqueIndex:unique_movie_in_cart,priority:2"`
	Movie   Movie     `json:"movie" gorm:"constraint:OnDelete:CASCADE"`
	AddedAt time.Time `json:"addedAt" gorm:"autoCreateTime"`
}
