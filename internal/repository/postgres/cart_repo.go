package postgres

import (
	"context"
	"errors"

	"github.com/mnazarko/movie-store/internal/domain"
	"gorm.io/gorm"
)

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *cartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) GetOrCreateByUserID(ctx context.Context, userID uint) (*domain.Cart, error) {
	var cart domain.Cart
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Movie").
		Preload("Items.Movie.Genres").
		First(&cart, "user_id = ?", userID).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = domain.Cart{UserID: userID}
	err = r.db.WithContext(ctx).Create(&cart).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// A concurrent request created the cart; user_id is unique.
		err = r.db.WithContext(ctx).First(&cart, "user_id = ?", userID).Error
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) AddItem(ctx context.Context, cartID, movieID uint) error {
	item := domain.CartItem{CartID: cartID, MovieID: movieID}
	err := r.db.WithContext(ctx).Create(&item).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrMovieInCart
	}
	return err
}

func (r *cartRepository) RemoveItem(ctx context.Context, cartID, movieID uint) error {
	result := r.db.WithContext(ctx).
		Delete(&domain.CartItem{}, "cart_id = ? AND movie_id = ?", cartID, movieID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrMovieNotInCart
	}
	return nil
}

func (r *cartRepository) Clear(ctx context.Context, cartID uint) error {
	return r.db.WithContext(ctx).Delete(&domain.CartItem{}, "cart_id = ?", cartID).Error
}
