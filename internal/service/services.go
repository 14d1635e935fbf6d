package service

import (
	"github.com/mnazarko/movie-store/internal/auth"
	"github.com/mnazarko/movie-store/internal/config"
	"github.com/mnazarko/movie-store/internal/email"
	"github.com/mnazarko/movie-store/internal/repository"
)

type Services struct {
	Account *AccountService
	Catalog *CatalogService
	Cart    *CartService
	Order   *OrderService
}

// NewServices wires the capability implementations into the services. The
// assembly layer decides the concrete hasher, issuer and email sender; the
// services only see the interfaces.
func NewServices(repos *repository.Repositories, hasher auth.PasswordHasher, issuer auth.TokenIssuer, sender email.Sender, cfg *config.Config) *Services {
	return &Services{
		Account: NewAccountService(repos.Account, hasher, issuer, sender, cfg),
		Catalog: NewCatalogService(repos.Movie),
		Cart:    NewCartService(repos.Cart, repos.Movie),
		Order:   NewOrderService(repos.Order, repos.Cart),
	}
}
