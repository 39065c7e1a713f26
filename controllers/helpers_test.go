package controller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"charhub/config"
	"charhub/routes"
)

// setupTestApp builds the full route surface on top of an isolated
// in-memory database, the same wiring main uses.
func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.MigrateDB(db))

	// The Protected middleware and the token service read these.
	config.DB = db
	config.AppConfig.JWTSecret = "test-secret"

	log := logrus.New()
	log.SetOutput(io.Discard)

	app := fiber.New()
	routes.SetupRoutes(app, db, log)
	return app, db
}

func doRequest(t *testing.T, app *fiber.App, method, target, token string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeMap(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func decodeList(t *testing.T, resp *http.Response) []map[string]interface{} {
	t.Helper()

	var body []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// registerUser creates an account through the API and returns its id
// and session token.
func registerUser(t *testing.T, app *fiber.App, name, email, password string) (uint, string) {
	t.Helper()

	resp := doRequest(t, app, fiber.MethodPost, "/auth/register", "", fiber.Map{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decodeMap(t, resp)
	user := body["user"].(map[string]interface{})
	token := body["token"].(string)
	require.NotEmpty(t, token)
	return uint(user["ID"].(float64)), token
}
