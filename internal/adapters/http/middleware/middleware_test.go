package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"petfind/internal/pkg/jwt"
	"petfind/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(tokens *jwt.Issuer) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: CustomErrorHandler})
	app.Get("/public", CacheControl(time.Minute), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/whoami", OptionalAuth(tokens), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"id": UserID(c)})
	})
	app.Get("/admin", AuthMiddleware(tokens), AdminOnly(), func(c *fiber.Ctx) error {
		return c.SendString("admin")
	})
	app.Get("/fail", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})
	return app
}

func get(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestCacheControl(t *testing.T) {
	app := newTestApp(jwt.NewIssuer("secret", 5))

	resp := get(t, app, "/public", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "public, max-age=60", resp.Header.Get(fiber.HeaderCacheControl))
}

func TestRoleMiddleware(t *testing.T) {
	tokens := jwt.NewIssuer("secret", 5)
	app := newTestApp(tokens)

	admin, err := tokens.Issue(1, "admin@petfind.test", "admin")
	require.NoError(t, err)
	user, err := tokens.Issue(2, "user@petfind.test", "user")
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/admin", "").StatusCode)
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/admin", "garbage").StatusCode)
	denied := get(t, app, "/admin", user)
	assert.Equal(t, fiber.StatusForbidden, denied.StatusCode)
	assert.Equal(t, response.CodeForbidden, decode(t, denied).Code)
	assert.Equal(t, fiber.StatusOK, get(t, app, "/admin", admin).StatusCode)

	// an invalid token on an optional route is ignored
	assert.Equal(t, fiber.StatusOK, get(t, app, "/whoami", "garbage").StatusCode)
}

func TestCustomErrorHandler(t *testing.T) {
	app := newTestApp(jwt.NewIssuer("secret", 5))

	resp := get(t, app, "/fail", "")
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)
	assert.Equal(t, response.CodeInvalidInput, decode(t, resp).Code)

	resp = get(t, app, "/missing", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	body := decode(t, resp)
	assert.False(t, body.Success)
	assert.Equal(t, response.CodeNotFound, body.Code)
}

func decode(t *testing.T, resp *http.Response) response.Response {
	t.Helper()
	defer resp.Body.Close()
	var body response.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}
