package service

import (
	"context"
	"math"

	"github.com/mnazarko/movie-store/internal/domain"
	"github.com/mnazarko/movie-store/internal/repository"
)

type OrderService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
}

func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo, cartRepo: cartRepo}
}

// PlaceOrder turns the user's cart into a pending order, snapshotting each
// movie's current price, and empties the cart in the same transaction.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uint) (*domain.Order, error) {
	cart, err := s.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	items := make([]domain.OrderItem, 0, len(cart.Items))
	var total float64
	for _, item := range cart.Items {
		items = append(items, domain.OrderItem{
			MovieID:      item.MovieID,
			PriceAtOrder: item.Movie.Price,
		})
		total += item.Movie.Price
	}

	order := &domain.Order{
		UserID:      userID,
		Status:      domain.OrderStatusPending,
		TotalAmount: math.Round(total*100) / 100,
		Items:       items,
	}

	if err := s.orderRepo.CreateFromCart(ctx, order, cart.ID); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(ctx, order.ID)
}

func (s *OrderService) ListOrders(ctx context.Context, userID uint) ([]*domain.Order, error) {
	return s.orderRepo.ListByUserID(ctx, userID)
}

// CancelOrder cancels a pending order owned by the user.
func (s *OrderService) CancelOrder(ctx context.Context, userID, orderID uint) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domain.ErrOrderNotFound
	}
	if order.Status != domain.OrderStatusPending {
		return nil, domain.ErrOrderNotPending
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, domain.OrderStatusCanceled); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(ctx, orderID)
}
