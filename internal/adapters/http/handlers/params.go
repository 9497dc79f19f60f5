package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// paramID parses a positive numeric route parameter
func paramID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// queryUint parses an optional numeric query value; ok is false on bad input
func queryUint(c *fiber.Ctx, key string) (*uint, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, false
	}
	v := uint(n)
	return &v, true
}

// queryBool parses an optional boolean query value
func queryBool(c *fiber.Ctx, key string) (*bool, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, false
	}
	return &b, true
}

// queryString returns nil for an absent query value
func queryString(c *fiber.Ctx, key string) *string {
	if raw := c.Query(key); raw != "" {
		return &raw
	}
	return nil
}
