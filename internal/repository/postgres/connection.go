package postgres

import (
	"github.com/mnazarko/movie-store/internal/domain"
	"github.com/mnazarko/movie-store/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
		// Unique violations surface as gorm.ErrDuplicatedKey so repos can
		// translate them instead of matching driver error strings.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&domain.UserGroup{},
		&domain.User{},
		&domain.UserProfile{},
		&domain.ActivationToken{},
		&domain.RefreshToken{},
		&domain.PasswordResetToken{},
		&domain.Certification{},
		&domain.Genre{},
		&domain.Director{},
		&domain.Star{},
		&domain.Movie{},
		&domain.Cart{},
		&domain.CartItem{},
		&domain.Order{},
		&domain.OrderItem{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		Account: NewAccountRepository(db),
		Movie:   NewMovieRepository(db),
		Cart:    NewCartRepository(db),
		Order:   NewOrderRepository(db),
	}
}
