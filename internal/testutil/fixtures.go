package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mnazarko/movie-store/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	email    string
	password string
	active   bool
	group    domain.GroupName
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		email:    fmt.Sprintf("user_%s@example.com", uuid.New().String()[:8]),
		password: "Testpass1!",
		active:   true,
		group:    domain.GroupUser,
	}
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Inactive marks the account as pending activation
func (b *UserBuilder) Inactive() *UserBuilder {
	b.active = false
	return b
}

// WithGroup sets the user group
func (b *UserBuilder) WithGroup(group domain.GroupName) *UserBuilder {
	b.group = group
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	group := domain.UserGroup{Name: b.group}
	if err := db.Where("name = ?", b.group).FirstOrCreate(&group).Error; err != nil {
		t.Fatalf("failed to create user group: %v", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		IsActive:     b.active,
		GroupID:      group.ID,
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// LoginResponse matches the API login response
type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// BuildAndLogin creates an active user directly in the database, then logs
// in through the API and returns the user with their access token.
func (b *UserBuilder) BuildAndLogin(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	user, password := b.Build(t, ts.DB.DB)

	reqBody := map[string]string{
		"email":    b.email,
		"password": password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/accounts/login"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to log in user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var loginResp LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	return user, loginResp.AccessToken
}

// MovieBuilder creates test movies with a builder pattern
type MovieBuilder struct {
	name  string
	year  int
	time  int
	price float64
}

// NewMovieBuilder creates a new MovieBuilder with default values
func NewMovieBuilder() *MovieBuilder {
	return &MovieBuilder{
		name:  fmt.Sprintf("Test Movie %s", uuid.New().String()[:8]),
		year:  2020,
		time:  120,
		price: 9.99,
	}
}

// WithName sets the movie name
func (b *MovieBuilder) WithName(name string) *MovieBuilder {
	b.name = name
	return b
}

// WithYear sets the release year
func (b *MovieBuilder) WithYear(year int) *MovieBuilder {
	b.year = year
	return b
}

// WithPrice sets the price
func (b *MovieBuilder) WithPrice(price float64) *MovieBuilder {
	b.price = price
	return b
}

// Build creates the movie in the database
func (b *MovieBuilder) Build(t *testing.T, db *gorm.DB) *domain.Movie {
	t.Helper()

	cert := domain.Certification{Name: "PG-13"}
	if err := db.Where("name = ?", cert.Name).FirstOrCreate(&cert).Error; err != nil {
		t.Fatalf("failed to create certification: %v", err)
	}

	movie := &domain.Movie{
		UUID:            uuid.New(),
		Name:            b.name,
		Year:            b.year,
		Time:            b.time,
		IMDb:            7.5,
		Votes:           1000,
		Description:     "A test movie",
		Price:           b.price,
		CertificationID: cert.ID,
	}

	if err := db.Create(movie).Error; err != nil {
		t.Fatalf("failed to create movie: %v", err)
	}

	return movie
}

// ActivationTokenFor inserts an activation token row for the user.
func ActivationTokenFor(t *testing.T, db *gorm.DB, userID uint, token string, expiresAt time.Time) *domain.ActivationToken {
	t.Helper()

	record := &domain.ActivationToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	if err := db.Create(record).Error; err != nil {
		t.Fatalf("failed to create activation token: %v", err)
	}
	return record
}

// ResetTokenFor inserts a password reset token row for the user.
func ResetTokenFor(t *testing.T, db *gorm.DB, userID uint, token string, expiresAt time.Time) *domain.PasswordResetToken {
	t.Helper()

	record := &domain.PasswordResetToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	if err := db.Create(record).Error; err != nil {
		t.Fatalf("failed to create reset token: %v", err)
	}
	return record
}

// CreateAuthenticatedRequest creates an HTTP request with auth token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}
