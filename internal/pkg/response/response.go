package response

import "github.com/gofiber/fiber/v2"

// Response is the envelope of every API reply. Failed replies carry a
// stable Code next to the human readable Error.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Code    string      `json:"code,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success sends a 200 reply with data
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created sends a 201 reply for a new resource
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Fail sends a failed reply with an explicit status and code
func Fail(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(Response{
		Success: false,
		Code:    code,
		Error:   message,
	})
}

// BadRequest rejects malformed input caught before any service call
func BadRequest(c *fiber.Ctx, message string) error {
	return Fail(c, fiber.StatusBadRequest, CodeInvalidInput, message)
}

// Unauthorized rejects a missing or invalid session
func Unauthorized(c *fiber.Ctx, message string) error {
	return Fail(c, fiber.StatusUnauthorized, CodeUnauthorized, message)
}

// Forbidden rejects a session lacking the required role
func Forbidden(c *fiber.Ctx, message string) error {
	return Fail(c, fiber.StatusForbidden, CodeForbidden, message)
}
