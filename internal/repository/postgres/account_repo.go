package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/mnazarko/movie-store/internal/domain"
	"github.com/mnazarko/movie-store/internal/repository"
	"gorm.io/gorm"
)

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *accountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *accountRepository) GetUserByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Preload("Group").First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *accountRepository) GetOrCreateGroup(ctx context.Context, name domain.GroupName) (*domain.UserGroup, error) {
	var group domain.UserGroup
	err := r.db.WithContext(ctx).First(&group, "name = ?", name).Error
	if err == nil {
		return &group, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	group = domain.UserGroup{Name: name}
	err = r.db.WithContext(ctx).Create(&group).Error
	if err == nil {
		return &group, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, err
	}

	// Lost the race: another request inserted the group first. Re-read the
	// winner; the unique constraint guarantees there is exactly one row.
	err = r.db.WithContext(ctx).First(&group, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *accountRepository) CreateUserWithActivationToken(ctx context.Context, user *domain.User, token *domain.ActivationToken) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		token.UserID = user.ID
		return tx.Create(token).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repository.ErrDuplicateEmail
	}
	return err
}

func (r *accountRepository) ActivateUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", userID).
		Update("is_active", true).Error
}

func (r *accountRepository) UpdatePassword(ctx context.Context, userID uint, newHash string) error {
	return r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", userID).
		Update("password_hash", newHash).Error
}

func (r *accountRepository) GetActivationToken(ctx context.Context, email, token string) (*domain.ActivationToken, error) {
	var record domain.ActivationToken
	err := r.db.WithContext(ctx).
		Preload("User").
		Joins("JOIN users ON users.id = activation_tokens.user_id").
		Where("users.email = ? AND activation_tokens.token = ?", email, token).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *accountRepository) DeleteActivationToken(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.ActivationToken{}, "id = ?", id).Error
}

func (r *accountRepository) DeleteActivationTokensForUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Delete(&domain.ActivationToken{}, "user_id = ?", userID).Error
}

func (r *accountRepository) CreateRefreshToken(ctx context.Context, userID uint, token string, expiresAt time.Time) error {
	record := domain.RefreshToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	return r.db.WithContext(ctx).Create(&record).Error
}

func (r *accountRepository) GetRefreshToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	var record domain.RefreshToken
	err := r.db.WithContext(ctx).First(&record, "token = ?", token).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *accountRepository) DeleteRefreshToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Delete(&domain.RefreshToken{}, "token = ?", token).Error
}

func (r *accountRepository) DeleteRefreshTokensForUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Delete(&domain.RefreshToken{}, "user_id = ?", userID).Error
}

func (r *accountRepository) ReplaceResetToken(ctx context.Context, token *domain.PasswordResetToken) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.PasswordResetToken{}, "user_id = ?", token.UserID).Error; err != nil {
			return err
		}
		return tx.Create(token).Error
	})
}

func (r *accountRepository) GetResetTokenForUser(ctx context.Context, userID uint) (*domain.PasswordResetToken, error) {
	var record domain.PasswordResetToken
	err := r.db.WithContext(ctx).First(&record, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *accountRepository) DeleteResetToken(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.PasswordResetToken{}, "id = ?", id).Error
}

func (r *accountRepository) GetProfileByUserID(ctx context.Context, userID uint) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *accountRepository) SaveProfile(ctx context.Context, profile *domain.UserProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}
