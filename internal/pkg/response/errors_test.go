package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"petfind/internal/core/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrAnimalNotFound, fiber.StatusNotFound},
		{domain.ErrPermissionDenied, fiber.StatusForbidden},
		{domain.ErrDuplicateAdoptionReq, fiber.StatusConflict},
		{domain.ErrCodeExpired, fiber.StatusGone},
		{domain.ErrInvalidCode, fiber.StatusBadRequest},
		{domain.ErrInvalidCredentials, fiber.StatusUnauthorized},
		{fmt.Errorf("wrap: %w", domain.ErrShelterNotFound), fiber.StatusNotFound},
		{errors.New("db down"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusFor(tc.err), tc.err.Error())
	}
}

func TestCodeFor(t *testing.T) {
	assert.Equal(t, CodeNotFound, CodeFor(domain.ErrAnimalNotFound))
	assert.Equal(t, CodeConflict, CodeFor(fmt.Errorf("approve: %w", domain.ErrAnimalAlreadyAdopted)))
	assert.Equal(t, CodeExpired, CodeFor(domain.ErrCodeExpired))
	assert.Equal(t, CodeInternal, CodeFor(errors.New("db down")))
}

func TestFromErrorWritesBody(t *testing.T) {
	app := fiber.New()
	app.Get("/conflict", func(c *fiber.Ctx) error {
		return FromError(c, domain.ErrCodeAlreadyConsumed)
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return FromError(c, errors.New("password=hunter2"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/conflict", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var body Response
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.False(t, body.Success)
	assert.Equal(t, domain.ErrCodeAlreadyConsumed.Error(), body.Error)
	assert.Equal(t, CodeConflict, body.Code)

	resp, err = app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	raw, _ = io.ReadAll(resp.Body)
	assert.NotContains(t, string(raw), "hunter2")
	assert.Contains(t, string(raw), `"code":"internal"`)
}

func TestHelpersCarryCodes(t *testing.T) {
	app := fiber.New()
	app.Get("/bad", func(c *fiber.Ctx) error { return BadRequest(c, "Invalid shelter ID") })
	app.Get("/denied", func(c *fiber.Ctx) error { return Forbidden(c, "admins only") })

	for path, want := range map[string]struct {
		status int
		code   string
	}{
		"/bad":    {fiber.StatusBadRequest, CodeInvalidInput},
		"/denied": {fiber.StatusForbidden, CodeForbidden},
	} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		assert.Equal(t, want.status, resp.StatusCode, path)

		var body Response
		raw, _ := io.ReadAll(resp.Body)
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, want.code, body.Code, path)
	}
}

func TestCodeForStatus(t *testing.T) {
	assert.Equal(t, CodeNotFound, CodeForStatus(fiber.StatusNotFound))
	assert.Equal(t, CodeRateLimited, CodeForStatus(fiber.StatusTooManyRequests))
	assert.Equal(t, CodeInvalidInput, CodeForStatus(fiber.StatusMethodNotAllowed))
	assert.Equal(t, CodeInternal, CodeForStatus(fiber.StatusBadGateway))
}
