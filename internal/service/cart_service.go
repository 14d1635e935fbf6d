package service

import (
	"context"

	"github.com/mnazarko/movie-store/internal/domain"
	"github.com/mnazarko/movie-store/internal/repository"
)

type CartService struct {
	cartRepo  repository.CartRepository
	movieRepo repository.MovieRepository
}

func NewCartService(cartRepo repository.CartRepository, movieRepo repository.MovieRepository) *CartService {
	return &CartService{cartRepo: cartRepo, movieRepo: movieRepo}
}

func (s *CartService) GetCart(ctx context.Context, userID uint) (*domain.Cart, error) {
	return s.cartRepo.GetOrCreateByUserID(ctx, userID)
}

func (s *CartService) AddMovie(ctx context.Context, userID, movieID uint) (*domain.Cart, error) {
	if _, err := s.movieRepo.GetByID(ctx, movieID); err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.AddItem(ctx, cart.ID, movieID); err != nil {
		return nil, err
	}
	return s.cartRepo.GetOrCreateByUserID(ctx, userID)
}

func (s *CartService) RemoveMovie(ctx context.Context, userID, movieID uint) (*domain.Cart, error) {
	cart, err := s.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.RemoveItem(ctx, cart.ID, movieID); err != nil {
		return nil, err
	}
	return s.cartRepo.GetOrCreateByUserID(ctx, userID)
}

func (s *CartService) ClearCart(ctx context.Context, userID uint) error {
	cart, err := s.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return err
	}
	return s.cartRepo.Clear(ctx, cart.ID)
}
