package repository

import (
	"context"
	"errors"
	"time"

	"github.com/mnazarko/movie-store/internal/domain"
)

// ErrDuplicateEmail is returned when a create races another insert into the
// email unique index. The constraint, not the pre-check, is the authority.
var ErrDuplicateEmail = errors.New("a user with this email already exists")

// AccountRepository is the persistence boundary for users, groups and the
// three token kinds. Every method either fully applies or fully fails.
type AccountRepository interface {
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id uint) (*domain.User, error)

	// GetOrCreateGroup is idempotent under concurrent callers: a lost race
	// on the unique name constraint falls back to re-reading the winner.
	GetOrCreateGroup(ctx context.Context, name domain.GroupName) (*domain.UserGroup, error)

	// CreateUserWithActivationToken persists the user and their activation
	// token in one transaction, so a registered-but-unactivatable user can
	// never be observed on partial failure.
	CreateUserWithActivationToken(ctx context.Context, user *domain.User, token *domain.ActivationToken) error

	ActivateUser(ctx context.Context, userID uint) error
	UpdatePassword(ctx context.Context, userID uint, newHash string) error

	GetActivationToken(ctx context.Context, email, token string) (*domain.ActivationToken, error)
	DeleteActivationToken(ctx context.Context, id uint) error
	DeleteActivationTokensForUser(ctx context.Context, userID uint) error

	CreateRefreshToken(ctx context.Context, userID uint, token string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, token string) (*domain.RefreshToken, error)
	DeleteRefreshToken(ctx context.Context, token string) error
	DeleteRefreshTokensForUser(ctx context.Context, userID uint) error

	// ReplaceResetToken deletes any prior reset tokens for the user and
	// inserts the new one in the same transaction.
	ReplaceResetToken(ctx context.Context, token *domain.PasswordResetToken) error
	GetResetTokenForUser(ctx context.Context, userID uint) (*domain.PasswordResetToken, error)
	DeleteResetToken(ctx context.Context, id uint) error

	GetProfileByUserID(ctx context.Context, userID uint) (*domain.UserProfile, error)
	SaveProfile(ctx context.Context, profile *domain.UserProfile) error
}

type MovieRepository interface {
	Create(ctx context.Context, movie *domain.Movie) error
	GetByID(ctx context.Context, id uint) (*domain.Movie, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Movie, int64, error)
	GetOrCreateGenre(ctx context.Context, name string) (*domain.Genre, error)
	GetOrCreateDirector(ctx context.Context, name string) (*domain.Director, error)
	GetOrCreateStar(ctx context.Context, name string) (*domain.Star, error)
	GetOrCreateCertification(ctx context.Context, name string) (*domain.Certification, error)
}

type CartRepository interface {
	GetOrCreateByUserID(ctx context.Context, userID uint) (*domain.Cart, error)
	AddItem(ctx context.Context, cartID, movieID uint) error
	RemoveItem(ctx context.Context, cartID, movieID uint) error
	Clear(ctx context.Context, cartID uint) error
}

type OrderRepository interface {
	// CreateFromCart inserts the order with its items and empties the cart
	// in one transaction.
	CreateFromCart(ctx context.Context, order *domain.Order, cartID uint) error
	GetByID(ctx context.Context, id uint) (*domain.Order, error)
	ListByUserID(ctx context.Context, userID uint) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, orderID uint, status domain.OrderStatus) error
}

type Repositories struct {
	Account AccountRepository
	Movie   MovieRepository
	Cart    CartRepository
	Order   OrderRepository
}
