package response

import (
	"errors"

	"petfind/internal/core/domain"

	"github.com/gofiber/fiber/v2"
)

// Error codes sent in Response.Code, one per domain error kind
const (
	CodeNotFound     = "not_found"
	CodeInvalidInput = "invalid_input"
	CodeUnauthorized = "unauthorized"
	CodeForbidden    = "forbidden"
	CodeConflict     = "conflict"
	CodeExpired      = "expired"
	CodeRateLimited  = "rate_limited"
	CodeInternal     = "internal"
)

type kindMapping struct {
	kind   error
	status int
	code   string
}

var kinds = []kindMapping{
	{domain.ErrNotFound, fiber.StatusNotFound, CodeNotFound},
	{domain.ErrForbidden, fiber.StatusForbidden, CodeForbidden},
	{domain.ErrConflict, fiber.StatusConflict, CodeConflict},
	{domain.ErrExpired, fiber.StatusGone, CodeExpired},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, CodeInvalidInput},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, CodeUnauthorized},
}

func classify(err error) (int, string) {
	for _, k := range kinds {
		if errors.Is(err, k.kind) {
			return k.status, k.code
		}
	}
	return fiber.StatusInternalServerError, CodeInternal
}

// StatusFor maps a domain error kind to an HTTP status code
func StatusFor(err error) int {
	status, _ := classify(err)
	return status
}

// CodeFor maps a domain error kind to its response code
func CodeFor(err error) string {
	_, code := classify(err)
	return code
}

// CodeForStatus picks the code for a reply that has no domain error
// behind it, such as a router 404 or a limiter rejection.
func CodeForStatus(status int) string {
	if status == fiber.StatusTooManyRequests {
		return CodeRateLimited
	}
	for _, k := range kinds {
		if k.status == status {
			return k.code
		}
	}
	if status < fiber.StatusInternalServerError {
		return CodeInvalidInput
	}
	return CodeInternal
}

// FromError sends the reply matching a service error.
// Errors outside the domain kinds are reported without their message.
func FromError(c *fiber.Ctx, err error) error {
	status, code := classify(err)
	if code == CodeInternal {
		return Fail(c, status, code, "internal server error")
	}
	return Fail(c, status, code, err.Error())
}
