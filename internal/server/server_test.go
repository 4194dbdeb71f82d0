package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tokobaju/internal/config"
	"tokobaju/internal/database"
	"tokobaju/internal/models"
	"tokobaju/internal/server"
	"tokobaju/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test_jwt_secret"

func testConfig() config.Config {
	return config.Config{
		AppEnv:            "development",
		JWTSecret:         testJWTSecret,
		JWTTTL:            24 * time.Hour,
		DBDriver:          config.DriverSQLite,
		AuthRatePerMinute: 600,
		AuthRateBurst:     100,
		BcryptCost:        bcrypt.MinCost,
	}
}

// setupApp builds the full application over a private in-memory SQLite database.
func setupApp(t *testing.T, cfg config.Config) *server.Server {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.OpenGORM(config.DriverSQLite, dsn)
	require.NoError(t, err)
	store := database.NewGORMStore(db)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { store.Close(context.Background()) })

	return server.New(server.Options{
		Config:    cfg,
		Users:     store.Users,
		Clothes:   store.Clothes,
		Logger:    zap.NewNop(),
		AccessLog: io.Discard,
	})
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// signupAndLogin registers a user and returns its bearer token.
func signupAndLogin(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	creds := map[string]string{"username": username, "password": "password123"}

	resp := doJSON(t, app, http.MethodPost, "/signup", "", creds)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/login", "", creds)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	loginResp := decode[map[string]string](t, resp)
	require.NotEmpty(t, loginResp["token"])
	return loginResp["token"]
}

func TestSignupAndLogin(t *testing.T) {
	srv := setupApp(t, testConfig())
	app := srv.App

	creds := map[string]string{"username": "testuser", "password": "password123"}
	resp := doJSON(t, app, http.MethodPost, "/signup", "", creds)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	signupResp := decode[map[string]interface{}](t, resp)
	assert.Equal(t, "User created successfully", signupResp["message"])
	user := signupResp["user"].(map[string]interface{})
	assert.Equal(t, "testuser", user["username"])
	assert.NotContains(t, user, "password_hash")
	assert.NotContains(t, user, "PasswordHash")

	// Duplicate username
	resp = doJSON(t, app, http.MethodPost, "/signup", "", creds)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Missing password
	resp = doJSON(t, app, http.MethodPost, "/signup", "", map[string]string{"username": "nopass"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Login returns a token resolving to the username
	resp = doJSON(t, app, http.MethodPost, "/login", "", creds)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	loginResp := decode[map[string]string](t, resp)
	username, err := srv.Auth.ValidateToken(loginResp["token"])
	require.NoError(t, err)
	assert.Equal(t, "testuser", username)

	// Wrong password
	resp = doJSON(t, app, http.MethodPost, "/login", "", map[string]string{"username": "testuser", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Login failed", decode[map[string]string](t, resp)["message"])

	// Unknown user
	resp = doJSON(t, app, http.MethodPost, "/login", "", map[string]string{"username": "ghost", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSignupMultibytePasswords(t *testing.T) {
	app := setupApp(t, testConfig()).App

	// 40 runes, 80 bytes
	resp := doJSON(t, app, http.MethodPost, "/signup", "", map[string]string{
		"username": "toolong",
		"password": strings.Repeat("é", 40),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[map[string]interface{}](t, resp)
	assert.Equal(t, "Validation failed", body["message"])
	assert.Contains(t, body["errors"], "password")

	// 24 runes, 48 bytes
	creds := map[string]string{"username": "accented", "password": strings.Repeat("é", 24)}
	resp = doJSON(t, app, http.MethodPost, "/signup", "", creds)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = doJSON(t, app, http.MethodPost, "/login", "", creds)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLegacyLoginFailure(t *testing.T) {
	cfg := testConfig()
	cfg.LegacyLoginFailure = true
	app := setupApp(t, cfg).App

	resp := doJSON(t, app, http.MethodPost, "/login", "", map[string]string{"username": "ghost", "password": "nope"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Login failed", string(body))
}

func TestClothesEndpoints(t *testing.T) {
	app := setupApp(t, testConfig()).App
	token := signupAndLogin(t, app, "shopkeeper")

	// Create applies the default discount
	resp := doJSON(t, app, http.MethodPost, "/add-clothes", token, map[string]interface{}{
		"name":     "Jeans",
		"material": "Denim",
		"price":    50,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[models.ClothingItem](t, resp)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Jeans", created.Name)
	assert.Equal(t, 0.0, created.Discount)

	// Round trip
	resp = doJSON(t, app, http.MethodGet, "/get-clothes/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	fetched := decode[models.ClothingItem](t, resp)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, models.MaterialDenim, fetched.Material)
	assert.Equal(t, 50.0, fetched.Price)

	// Partial update
	resp = doJSON(t, app, http.MethodPatch, "/edit-clothes/"+created.ID, token, map[string]interface{}{"discount": 10})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[models.ClothingItem](t, resp)
	assert.Equal(t, "Jeans", updated.Name)
	assert.Equal(t, 50.0, updated.Price)
	assert.Equal(t, 10.0, updated.Discount)

	// Final price
	resp = doJSON(t, app, http.MethodGet, "/get-final-price/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 45.0, decode[map[string]float64](t, resp)["finalPrice"])

	// Invalid update is rejected
	resp = doJSON(t, app, http.MethodPatch, "/edit-clothes/"+created.ID, token, map[string]interface{}{"discount": 101})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Delete
	resp = doJSON(t, app, http.MethodDelete, "/delete-clothes/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, decode[map[string]string](t, resp)["message"], "deleted successfully")

	for _, path := range []string{"/get-clothes/", "/get-final-price/"} {
		resp = doJSON(t, app, http.MethodGet, path+created.ID, token, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}
	resp = doJSON(t, app, http.MethodPatch, "/edit-clothes/"+created.ID, token, map[string]interface{}{"discount": 5})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = doJSON(t, app, http.MethodDelete, "/delete-clothes/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestClothesValidation(t *testing.T) {
	app := setupApp(t, testConfig()).App
	token := signupAndLogin(t, app, "validator")

	bodies := []map[string]interface{}{
		{"material": "Cotton", "price": 10},
		{"name": "Tee", "material": "Silk", "price": 10},
		{"name": "Tee", "material": "Cotton"},
		{"name": "Tee", "material": "Cotton", "price": 10, "discount": -5},
		{"name": "Tee", "material": "Cotton", "price": 10, "discount": 250},
	}
	for _, body := range bodies {
		resp := doJSON(t, app, http.MethodPost, "/add-clothes", token, body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "%v", body)
		assert.Equal(t, "Validation failed", decode[map[string]interface{}](t, resp)["message"])
	}

	resp := doJSON(t, app, http.MethodGet, "/get-clothes/not-a-valid-id", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteAllClothes(t *testing.T) {
	app := setupApp(t, testConfig()).App
	token := signupAndLogin(t, app, "cleaner")

	var ids []string
	for _, material := range models.Materials {
		resp := doJSON(t, app, http.MethodPost, "/add-clothes", token, map[string]interface{}{
			"name": string(material) + " item", "material": material, "price": 20, "discount": 50,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		ids = append(ids, decode[models.ClothingItem](t, resp).ID)
	}

	resp := doJSON(t, app, http.MethodDelete, "/delete-all-clothes", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for _, id := range ids {
		resp = doJSON(t, app, http.MethodGet, "/get-clothes/"+id, token, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	}

	// Already empty
	resp = doJSON(t, app, http.MethodDelete, "/delete-all-clothes", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestClothesEndpointsRequireToken(t *testing.T) {
	srv := setupApp(t, testConfig())
	app := srv.App
	id := uuid.NewString()

	routes := []struct{ method, path string }{
		{http.MethodPost, "/add-clothes"},
		{http.MethodGet, "/get-clothes/" + id},
		{http.MethodPatch, "/edit-clothes/" + id},
		{http.MethodDelete, "/delete-clothes/" + id},
		{http.MethodDelete, "/delete-all-clothes"},
		{http.MethodGet, "/get-final-price/" + id},
	}

	forged, err := services.NewTokenService("some_other_secret", time.Hour).Issue("testuser")
	require.NoError(t, err)
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, services.Claims{
		Username: "testuser",
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Add(-48 * time.Hour).Unix(),
			ExpiresAt: time.Now().Add(-24 * time.Hour).Unix(),
		},
	}).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	for _, route := range routes {
		name := route.method + " " + strings.TrimSuffix(route.path, id)

		resp := doJSON(t, app, route.method, route.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, name+" without token")

		resp = doJSON(t, app, route.method, route.path, forged, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, name+" with forged token")

		resp = doJSON(t, app, route.method, route.path, expired, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, name+" with expired token")
	}
}

func TestOperationalEndpoints(t *testing.T) {
	app := setupApp(t, testConfig()).App

	resp := doJSON(t, app, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", decode[map[string]string](t, resp)["status"])

	resp = doJSON(t, app, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `http_requests_total{method="GET",route="/health",status="200"} 1`)

	resp = doJSON(t, app, http.MethodGet, "/no-such-route", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.NotEmpty(t, decode[map[string]string](t, resp)["message"])
}
