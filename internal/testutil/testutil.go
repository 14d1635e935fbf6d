package testutil

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mnazarko/movie-store/internal/api"
	"github.com/mnazarko/movie-store/internal/auth"
	"github.com/mnazarko/movie-store/internal/config"
	"github.com/mnazarko/movie-store/internal/domain"
	"github.com/mnazarko/movie-store/internal/email"
	"github.com/mnazarko/movie-store/internal/repository"
	repoPostgres "github.com/mnazarko/movie-store/internal/repository/postgres"
	"github.com/mnazarko/movie-store/internal/service"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB manages a testcontainers PostgreSQL instance
type TestDB struct {
	Container testcontainers.Container
	DB        *gorm.DB
	DSN       string
}

// NewTestDB creates a new PostgreSQL testcontainer and returns a connection
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	container, err := tcPostgres.Run(ctx,
		"postgres:15-alpine",
		tcPostgres.WithDatabase("test_movie_store"),
		tcPostgres.WithUsername("test"),
		tcPostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	db, err := gorm.Open(gormPostgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	// Run migrations
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
		t.Fatalf("failed to run migrations: %v", err)
	}

	testDB := &TestDB{
		Container: container,
		DB:        db,
		DSN:       dsn,
	}

	t.Cleanup(func() {
		testDB.Cleanup()
	})

	return testDB
}

// Cleanup terminates the container
func (tdb *TestDB) Cleanup() {
	if tdb.Container != nil {
		ctx := context.Background()
		tdb.Container.Terminate(ctx)
	}
}

// Truncate clears all tables for test isolation
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()

	tables := []string{
		"order_items",
		"orders",
		"cart_items",
		"carts",
		"movie_genres",
		"movie_directors",
		"movie_stars",
		"movies",
		"certifications",
		"genres",
		"directors",
		"stars",
		"password_reset_tokens",
		"refresh_tokens",
		"activation_tokens",
		"user_profiles",
		"users",
		"user_groups",
	}

	for _, table := range tables {
		if err := tdb.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			t.Logf("warning: failed to truncate %s: %v", table, err)
		}
	}
}

// TestConfig returns a configuration suitable for testing
func TestConfig() *config.Config {
	return &config.Config{
		Port:                  "0", // Random port
		Environment:           "test",
		JWTSecret:             "test-jwt-secret-key-for-testing-only",
		AccessTokenDuration:   time.Hour,
		RefreshTokenDays:      30,
		ActivationTokenTTL:    24 * time.Hour,
		PasswordResetTokenTTL: time.Hour,
		BcryptCost:            4, // Fast hashing for tests
	}
}

// NewIssuer returns a token issuer backed by the test config secret.
func NewIssuer(cfg *config.Config) *auth.JWTIssuer {
	return auth.NewJWTIssuer(cfg.JWTSecret, cfg.AccessTokenDuration, time.Duration(cfg.RefreshTokenDays)*24*time.Hour)
}

// TestServer holds all components for integration testing
type TestServer struct {
	Server   *httptest.Server
	DB       *TestDB
	Repos    *repository.Repositories
	Services *service.Services
	Config   *config.Config
}

// NewTestServer creates a complete test server with all dependencies
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	testDB := NewTestDB(t)
	cfg := TestConfig()

	repos := repoPostgres.NewRepositories(testDB.DB)
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	issuer := NewIssuer(cfg)

	services := service.NewServices(repos, hasher, issuer, email.NoopSender{}, cfg)
	router := api.NewRouter(services, issuer)

	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:   server,
		DB:       testDB,
		Repos:    repos,
		Services: services,
		Config:   cfg,
	}

	t.Cleanup(func() {
		server.Close()
	})

	return ts
}

// BaseURL returns the test server's base URL
func (ts *TestServer) BaseURL() string {
	return ts.Server.URL
}

// APIURL returns the full API URL for a given path
func (ts *TestServer) APIURL(path string) string {
	return fmt.Sprintf("%s/api/v1%s", ts.Server.URL, path)
}
