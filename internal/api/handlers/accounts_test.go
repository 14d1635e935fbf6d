package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/mnazarko/movie-store/internal/api/handlers"
	"github.com/mnazarko/movie-store/internal/domain"
	"github.com/mnazarko/movie-store/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(payload))
	require.NoError(t, err)
	return resp
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// activationTokenFromDB reads the token the email would have carried.
func activationTokenFromDB(t *testing.T, ts *testutil.TestServer, email string) string {
	t.Helper()

	var record domain.ActivationToken
	err := ts.DB.DB.
		Joins("JOIN users ON users.id = activation_tokens.user_id").
		Where("users.email = ?", email).
		First(&record).Error
	require.NoError(t, err)
	return record.Token
}

func TestAccountLifecycleOverHTTP(t *testing.T) {
	ts := testutil.NewTestServer(t)

	const (
		userEmail    = "lifecycle@example.com"
		userPassword = "Abcdef1!"
	)

	// Register
	resp := postJSON(t, ts.APIURL("/accounts/register"), map[string]string{
		"email":    userEmail,
		"password": userPassword,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	registered := decodeJSON[handlers.RegisterResponse](t, resp)
	assert.Equal(t, userEmail, registered.User.Email)
	assert.False(t, registered.User.IsActive)

	// Login before activation
	resp = postJSON(t, ts.APIURL("/accounts/login"), map[string]string{
		"email":    userEmail,
		"password": userPassword,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Activate
	token := activationTokenFromDB(t, ts, userEmail)
	resp = postJSON(t, ts.APIURL("/accounts/activate"), map[string]string{
		"email": userEmail,
		"token": token,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Activation replay
	resp = postJSON(t, ts.APIURL("/accounts/activate"), map[string]string{
		"email": userEmail,
		"token": token,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Login
	resp = postJSON(t, ts.APIURL("/accounts/login"), map[string]string{
		"email":    userEmail,
		"password": userPassword,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	tokens := decodeJSON[handlers.LoginResponse](t, resp)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)

	// Authenticated whoami
	req := testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/accounts/me"), nil, tokens.AccessToken)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decodeJSON[handlers.UserResponse](t, resp)
	assert.Equal(t, userEmail, me.Email)
	assert.True(t, me.IsActive)

	// Refresh
	resp = postJSON(t, ts.APIURL("/accounts/refresh"), map[string]string{
		"refreshToken": tokens.RefreshToken,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	refreshed := decodeJSON[handlers.RefreshResponse](t, resp)
	assert.NotEmpty(t, refreshed.AccessToken)

	// Logout revokes the refresh token
	req = testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/accounts/logout"),
		map[string]string{"refreshToken": tokens.RefreshToken}, tokens.AccessToken)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, ts.APIURL("/accounts/refresh"), map[string]string{
		"refreshToken": tokens.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestRegisterValidationOverHTTP(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name       string
		body       map[string]string
		wantStatus int
	}{
		{
			name:       "invalid email",
			body:       map[string]string{"email": "not-an-email", "password": "Abcdef1!"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "weak password",
			body:       map[string]string{"email": "weak@example.com", "password": "password"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "valid input",
			body:       map[string]string{"email": "ok@example.com", "password": "Abcdef1!"},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "duplicate email",
			body:       map[string]string{"email": "ok@example.com", "password": "Abcdef1!"},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, ts.APIURL("/accounts/register"), tt.body)
			defer resp.Body.Close()
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestPasswordResetOverHTTP(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, _ := testutil.NewUserBuilder().WithEmail("reset@example.com").Build(t, ts.DB.DB)

	// The request endpoint answers identically for known and unknown emails
	for _, email := range []string{"reset@example.com", "unknown@example.com"} {
		resp := postJSON(t, ts.APIURL("/accounts/password-reset/request"), map[string]string{"email": email})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		msg := decodeJSON[handlers.MessageResponse](t, resp)
		assert.Equal(t, "If you are registered, you will receive an email with instructions", msg.Message)
	}

	var record domain.PasswordResetToken
	require.NoError(t, ts.DB.DB.First(&record, "user_id = ?", user.ID).Error)

	// Wrong token
	resp := postJSON(t, ts.APIURL("/accounts/password-reset/complete"), map[string]string{
		"email":    "reset@example.com",
		"token":    "wrong",
		"password": "Newpass1!",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// The failed attempt consumed the real token
	resp = postJSON(t, ts.APIURL("/accounts/password-reset/complete"), map[string]string{
		"email":    "reset@example.com",
		"token":    record.Token,
		"password": "Newpass1!",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// A fresh token completes the reset
	resp = postJSON(t, ts.APIURL("/accounts/password-reset/request"), map[string]string{"email": "reset@example.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	require.NoError(t, ts.DB.DB.First(&record, "user_id = ?", user.ID).Error)

	resp = postJSON(t, ts.APIURL("/accounts/password-reset/complete"), map[string]string{
		"email":    "reset@example.com",
		"token":    record.Token,
		"password": "Newpass1!",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// The new password logs in
	resp = postJSON(t, ts.APIURL("/accounts/login"), map[string]string{
		"email":    "reset@example.com",
		"password": "Newpass1!",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	ts := testutil.NewTestServer(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/accounts/me"},
		{http.MethodGet, "/cart"},
		{http.MethodGet, "/orders"},
	}

	for _, p := range paths {
		t.Run(p.path, func(t *testing.T) {
			req := testutil.CreateAuthenticatedRequest(t, p.method, ts.APIURL(p.path), nil, "")
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

			garbage := testutil.CreateAuthenticatedRequest(t, p.method, ts.APIURL(p.path), nil, "not-a-token")
			resp, err = http.DefaultClient.Do(garbage)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestMovieCreateRequiresModerator(t *testing.T) {
	ts := testutil.NewTestServer(t)

	movie := map[string]any{
		"name":          "Heat",
		"year":          1995,
		"time":          170,
		"imdb":          8.3,
		"votes":         700000,
		"description":   "A group of high-end thieves.",
		"price":         7.99,
		"certification": "R",
		"genres":        []string{"Crime"},
		"directors":     []string{"Michael Mann"},
		"stars":         []string{"Al Pacino", "Robert De Niro"},
	}

	_, userToken := testutil.NewUserBuilder().BuildAndLogin(t, ts)
	req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/movies"), movie, userToken)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	_, modToken := testutil.NewUserBuilder().WithGroup(domain.GroupModerator).BuildAndLogin(t, ts)
	req = testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/movies"), movie, modToken)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestCartAndOrderFlowOverHTTP(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().BuildAndLogin(t, ts)
	movie := testutil.NewMovieBuilder().WithPrice(9.99).Build(t, ts.DB.DB)

	// Add to cart
	req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/cart/items"),
		map[string]uint{"movieId": movie.ID}, token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Place the order
	req = testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/orders"), nil, token)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	placed := decodeJSON[domain.Order](t, resp)
	assert.Equal(t, domain.OrderStatusPending, placed.Status)
	assert.Equal(t, 9.99, placed.TotalAmount)

	// A second order from the now-empty cart fails
	req = testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/orders"), nil, token)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Cancel
	cancelURL := ts.APIURL("/orders/" + strconv.FormatUint(uint64(placed.ID), 10) + "/cancel")
	req = testutil.CreateAuthenticatedRequest(t, http.MethodPost, cancelURL, nil, token)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	canceled := decodeJSON[domain.Order](t, resp)
	assert.Equal(t, domain.OrderStatusCanceled, canceled.Status)
}
