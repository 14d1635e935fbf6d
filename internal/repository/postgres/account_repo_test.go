package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/mnazarko/movie-store/internal/domain"
	"github.com/mnazarko/movie-store/internal/repository"
	"github.com/mnazarko/movie-store/internal/repository/postgres"
	"github.com/mnazarko/movie-store/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAccountRepository_GetOrCreateGroup(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	first, err := repos.Account.GetOrCreateGroup(ctx, domain.GroupUser)
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	second, err := repos.Account.GetOrCreateGroup(ctx, domain.GroupUser)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	t.Run("concurrent callers converge on one row", func(t *testing.T) {
		const workers = 8
		ids := make([]uint, workers)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				group, err := repos.Account.GetOrCreateGroup(ctx, domain.GroupModerator)
				if err != nil {
					t.Errorf("GetOrCreateGroup: %v", err)
					return
				}
				ids[i] = group.ID
			}(i)
		}
		wg.Wait()

		for _, id := range ids {
			assert.Equal(t, ids[0], id)
		}

		var count int64
		testDB.DB.Model(&domain.UserGroup{}).Where("name = ?", domain.GroupModerator).Count(&count)
		assert.Equal(t, int64(1), count)
	})
}

func TestAccountRepository_CreateUserWithActivationToken(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	group, err := repos.Account.GetOrCreateGroup(ctx, domain.GroupUser)
	require.NoError(t, err)

	newUser := func(email string) (*domain.User, *domain.ActivationToken) {
		return &domain.User{
				Email:        email,
				PasswordHash: "$2a$04$irrelevant",
				GroupID:      group.ID,
			}, &domain.ActivationToken{
				Token:     "token-" + email,
				ExpiresAt: time.Now().UTC().Add(time.Hour),
			}
	}

	user, token := newUser("new@example.com")
	require.NoError(t, repos.Account.CreateUserWithActivationToken(ctx, user, token))
	assert.NotZero(t, user.ID)
	assert.Equal(t, user.ID, token.UserID)

	t.Run("duplicate email maps to the sentinel", func(t *testing.T) {
		dup, dupToken := newUser("new@example.com")
		err := repos.Account.CreateUserWithActivationToken(ctx, dup, dupToken)
		assert.ErrorIs(t, err, repository.ErrDuplicateEmail)

		// The token insert rolled back with the user
		var count int64
		testDB.DB.Model(&domain.ActivationToken{}).Where("token = ?", dupToken.Token).Count(&count)
		assert.Equal(t, int64(1), count, "only the first transaction's token survives")
	})
}

func TestAccountRepository_ActivationTokens(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().WithEmail("owner@example.com").Inactive().Build(t, testDB.DB)
	other, _ := testutil.NewUserBuilder().WithEmail("other@example.com").Inactive().Build(t, testDB.DB)
	record := testutil.ActivationTokenFor(t, testDB.DB, user.ID, "the-token", time.Now().UTC().Add(time.Hour))

	t.Run("lookup joins on email and token together", func(t *testing.T) {
		got, err := repos.Account.GetActivationToken(ctx, "owner@example.com", "the-token")
		require.NoError(t, err)
		assert.Equal(t, record.ID, got.ID)

		// Another user's email with this token does not match
		_, err = repos.Account.GetActivationToken(ctx, other.Email, "the-token")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		_, err = repos.Account.GetActivationToken(ctx, "owner@example.com", "wrong")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("activate then delete", func(t *testing.T) {
		require.NoError(t, repos.Account.ActivateUser(ctx, user.ID))
		got, err := repos.Account.GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, got.IsActive)

		require.NoError(t, repos.Account.DeleteActivationToken(ctx, record.ID))
		_, err = repos.Account.GetActivationToken(ctx, user.Email, "the-token")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestAccountRepository_RefreshTokens(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	expiresAt := time.Now().UTC().Add(24 * time.Hour)

	require.NoError(t, repos.Account.CreateRefreshToken(ctx, user.ID, "rt-1", expiresAt))
	require.NoError(t, repos.Account.CreateRefreshToken(ctx, user.ID, "rt-2", expiresAt))

	got, err := repos.Account.GetRefreshToken(ctx, "rt-1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.UserID)

	// Deleting one leaves the other
	require.NoError(t, repos.Account.DeleteRefreshToken(ctx, "rt-1"))
	_, err = repos.Account.GetRefreshToken(ctx, "rt-1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = repos.Account.GetRefreshToken(ctx, "rt-2")
	assert.NoError(t, err)

	// Deleting an absent token is not an error
	assert.NoError(t, repos.Account.DeleteRefreshToken(ctx, "rt-1"))

	require.NoError(t, repos.Account.DeleteRefreshTokensForUser(ctx, user.ID))
	_, err = repos.Account.GetRefreshToken(ctx, "rt-2")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAccountRepository_ReplaceResetToken(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	expiresAt := time.Now().UTC().Add(time.Hour)

	require.NoError(t, repos.Account.ReplaceResetToken(ctx, &domain.PasswordResetToken{
		UserID: user.ID, Token: "first", ExpiresAt: expiresAt,
	}))
	require.NoError(t, repos.Account.ReplaceResetToken(ctx, &domain.PasswordResetToken{
		UserID: user.ID, Token: "second", ExpiresAt: expiresAt,
	}))

	var count int64
	testDB.DB.Model(&domain.PasswordResetToken{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	got, err := repos.Account.GetResetTokenForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "second", got.Token)

	require.NoError(t, repos.Account.DeleteResetToken(ctx, got.ID))
	_, err = repos.Account.GetResetTokenForUser(ctx, user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAccountRepository_UpdatePassword(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	require.NoError(t, repos.Account.UpdatePassword(ctx, user.ID, "$2a$04$newhash"))

	got, err := repos.Account.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "$2a$04$newhash", got.PasswordHash)
}

func TestAccountRepository_GetUserByID_PreloadsGroup(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().WithGroup(domain.GroupAdmin).Build(t, testDB.DB)

	got, err := repos.Account.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.GroupAdmin, got.Group.Name)
}
