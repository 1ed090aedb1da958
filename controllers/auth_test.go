package controllers_test

import (
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meinhoongagan/homeconnect-pro/models"
)

func TestSignupValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		body   map[string]string
		status int
		error  string
	}{
		{"missing password", map[string]string{"email": "a@example.com"}, http.StatusBadRequest, "Email and password are required"},
		{"bad email", map[string]string{"email": "not-an-email", "password": "secret123"}, http.StatusBadRequest, "Invalid email address"},
		{"short password", map[string]string{"email": "a@example.com", "password": "123"}, http.StatusBadRequest, "Password should be at least 6 characters"},
		{"display name form", map[string]string{"email": "Jane <jane@example.com>", "password": "secret123"}, http.StatusBadRequest, "Invalid email address"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := env.do(t, http.MethodPost, "/auth/signup", "", tt.body)
			assert.Equal(t, tt.status, res.Status)
			assert.Equal(t, tt.error, res.Body["error"])
		})
	}
}

func TestSignupCreatesUser(t *testing.T) {
	env := newTestEnv(t)

	res := env.do(t, http.MethodPost, "/auth/signup", "", map[string]string{"email": "Jane.Doe@Example.com", "password": "secret123"})
	require.Equal(t, http.StatusCreated, res.Status)
	assert.Equal(t, "Signup successful! Check your email.", res.Body["message"])

	user := dataMap(t, res)
	assert.Equal(t, "jane.doe@example.com", user["email"])
	assert.Equal(t, "jane.doe", user["name"])
	assert.NotContains(t, user, "password")

	var stored models.User
	require.NoError(t, env.db.Where("email = ?", "jane.doe@example.com").First(&stored).Error)
	assert.NotEqual(t, "secret123", stored.Password)

	res = env.do(t, http.MethodPost, "/auth/signup", "", map[string]string{"email": "jane.doe@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusConflict, res.Status)
	assert.Equal(t, "User already registered", res.Body["error"])
}

func TestLoginAndCurrentUser(t *testing.T) {
	env := newTestEnv(t)
	userID, token := env.signup(t, "sam@example.com")

	res := env.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": "sam@example.com", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, res.Status)
	assert.Equal(t, "Invalid login credentials", res.Body["error"])

	res = env.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": "nobody@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusUnauthorized, res.Status)

	res = env.do(t, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, userID, dataMap(t, res)["id"])

	res = env.do(t, http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.Status)

	res = env.do(t, http.MethodGet, "/auth/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, res.Status)
	assert.Equal(t, "Invalid or expired token", res.Body["error"])
}

func TestLogoutRevokesToken(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "sam@example.com")

	login := env.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": "sam@example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, login.Status)
	token := login.Body["token"].(string)
	refresh := login.Body["refreshToken"].(string)

	res := env.do(t, http.MethodPost, "/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "Successfully logged out", res.Body["message"])

	res = env.do(t, http.MethodGet, "/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, res.Status)
	assert.Equal(t, "Session has been signed out", res.Body["error"])

	// the refresh token from the same login is signed out too
	res = env.do(t, http.MethodPost, "/auth/refresh", "", map[string]string{"refreshToken": refresh})
	assert.Equal(t, http.StatusUnauthorized, res.Status)
	assert.Equal(t, "Invalid refresh token", res.Body["error"])
}

func TestLogoutAfterRefreshEndsSession(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "sam@example.com")

	login := env.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": "sam@example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, login.Status)
	refresh := login.Body["refreshToken"].(string)

	res := env.do(t, http.MethodPost, "/auth/refresh", "", map[string]string{"refreshToken": refresh})
	require.Equal(t, http.StatusOK, res.Status)
	refreshed := res.Body["token"].(string)

	res = env.do(t, http.MethodPost, "/auth/logout", refreshed, nil)
	require.Equal(t, http.StatusOK, res.Status)

	res = env.do(t, http.MethodPost, "/auth/refresh", "", map[string]string{"refreshToken": refresh})
	assert.Equal(t, http.StatusUnauthorized, res.Status)
}

func TestConcurrentSignupsConflict(t *testing.T) {
	env := newTestEnv(t)
	creds := map[string]string{"email": "race@example.com", "password": "secret123"}

	const n = 4
	statuses := make(chan int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			statuses <- env.do(t, http.MethodPost, "/auth/signup", "", creds).Status
		}()
	}
	wg.Wait()
	close(statuses)

	counts := map[int]int{}
	for s := range statuses {
		counts[s]++
	}
	assert.Equal(t, map[int]int{http.StatusCreated: 1, http.StatusConflict: n - 1}, counts)

	var users int64
	env.db.Model(&models.User{}).Where("email = ?", "race@example.com").Count(&users)
	assert.EqualValues(t, 1, users)
}

func TestRefreshToken(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "sam@example.com")

	login := env.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": "sam@example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, login.Status)
	refresh := login.Body["refreshToken"].(string)
	access := login.Body["token"].(string)

	// refresh tokens are not accepted as access tokens
	res := env.do(t, http.MethodGet, "/auth/me", refresh, nil)
	assert.Equal(t, http.StatusUnauthorized, res.Status)

	// and access tokens cannot be refreshed
	res = env.do(t, http.MethodPost, "/auth/refresh", "", map[string]string{"refreshToken": access})
	assert.Equal(t, http.StatusUnauthorized, res.Status)

	res = env.do(t, http.MethodPost, "/auth/refresh", "", map[string]string{"refreshToken": refresh})
	require.Equal(t, http.StatusOK, res.Status)
	newToken, _ := res.Body["token"].(string)
	require.NotEmpty(t, newToken)

	res = env.do(t, http.MethodGet, "/auth/me", newToken, nil)
	assert.Equal(t, http.StatusOK, res.Status)
}
