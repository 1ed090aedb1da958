package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/meinhoongagan/homeconnect-pro/config"
	"github.com/meinhoongagan/homeconnect-pro/db/dbtest"
	"github.com/meinhoongagan/homeconnect-pro/models"
	"github.com/meinhoongagan/homeconnect-pro/redis"
	"github.com/meinhoongagan/homeconnect-pro/routes"
	"github.com/meinhoongagan/homeconnect-pro/utils"
)

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
	mr  *miniredis.Miniredis
}

// newTestEnv wires the app to a private sqlite database and a miniredis
// server. The clock is pinned to 2030-06-15.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{JWTSecret: "test-secret", CORSOrigins: "*", ReminderSchedule: "0 8 * * *"}
	config.Set(cfg)
	t.Cleanup(func() { config.Set(nil) })

	conn := dbtest.Use(t)

	mr := miniredis.RunT(t)
	require.NoError(t, redis.Init(mr.Addr()))
	t.Cleanup(redis.Close)

	prevNow := utils.Now
	utils.Now = func() time.Time { return time.Date(2030, 6, 15, 9, 0, 0, 0, time.Local) }
	t.Cleanup(func() { utils.Now = prevNow })

	return &testEnv{app: routes.NewApp(cfg), db: conn, mr: mr}
}

type response struct {
	Status int
	Body   map[string]any
	Raw    []byte
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return e.send(t, req)
}

func (e *testEnv) send(t *testing.T, req *http.Request) response {
	t.Helper()
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := response{Status: resp.StatusCode, Raw: raw}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out.Body)
	}
	return out
}

// signup registers and logs in a user, returning the user id and access token.
func (e *testEnv) signup(t *testing.T, email string) (string, string) {
	t.Helper()
	creds := map[string]string{"email": email, "password": "secret123"}

	res := e.do(t, http.MethodPost, "/auth/signup", "", creds)
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))

	res = e.do(t, http.MethodPost, "/auth/login", "", creds)
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))

	user := res.Body["user"].(map[string]any)
	return user["id"].(string), res.Body["token"].(string)
}

func strPtr(s string) *string { return &s }

func (e *testEnv) addContractor(t *testing.T, c models.Contractor) models.Contractor {
	t.Helper()
	require.NoError(t, e.db.Create(&c).Error)
	return c
}

func (e *testEnv) addBooking(t *testing.T, b models.Booking) models.Booking {
	t.Helper()
	require.NoError(t, e.db.Omit("User", "Contractor").Create(&b).Error)
	return b
}

func dataMap(t *testing.T, res response) map[string]any {
	t.Helper()
	data, ok := res.Body["data"].(map[string]any)
	require.True(t, ok, "expected object data, got %s", string(res.Raw))
	return data
}

func dataList(t *testing.T, res response) []any {
	t.Helper()
	data, ok := res.Body["data"].([]any)
	require.True(t, ok, "expected list data, got %s", string(res.Raw))
	return data
}

func newRawRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}
