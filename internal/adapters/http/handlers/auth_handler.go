package handlers

import (
	"strings"

	"petfind/internal/adapters/http/middleware"
	"petfind/internal/config"
	"petfind/internal/core/domain"
	"petfind/internal/core/services"
	"petfind/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// EmailRequest carries an address for code resends
type EmailRequest struct {
	Email string `json:"email"`
}

// ValidateCodeRequest represents the code confirmation body
type ValidateCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// SignUp registers an unverified account and mails a one-time code
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req services.SignUpInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.authService.SignUp(c.Context(), req)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, "Account created, check your email for the verification code", fiber.Map{
		"user": user,
	})
}

// ResendCode issues a fresh verification code
func (h *AuthHandler) ResendCode(c *fiber.Ctx) error {
	var req EmailRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Email) == "" {
		return response.BadRequest(c, "Email is required")
	}

	if err := h.authService.ResendCode(c.Context(), req.Email); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Verification code sent", nil)
}

// ValidateCode confirms an email and starts a session
func (h *AuthHandler) ValidateCode(c *fiber.Ctx) error {
	var req ValidateCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Code) == "" {
		return response.BadRequest(c, "Email and code are required")
	}

	session, err := h.authService.ValidateCode(c.Context(), req.Email, strings.TrimSpace(req.Code))
	if err != nil {
		return response.FromError(c, err)
	}

	h.setAuthCookie(c, session)
	return response.Success(c, "Email verified", session)
}

// SignIn authenticates a verified account
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req services.SignInInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return response.BadRequest(c, "Email and password are required")
	}

	session, err := h.authService.SignIn(c.Context(), req)
	if err != nil {
		return response.FromError(c, err)
	}

	h.setAuthCookie(c, session)
	return response.Success(c, "Signed in", session)
}

// Me returns the current user's profile
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.authService.Profile(c.Context(), middleware.UserID(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Profile retrieved", fiber.Map{
		"user": user,
	})
}

// setAuthCookie mirrors the session token into an HTTP-only cookie
func (h *AuthHandler) setAuthCookie(c *fiber.Ctx, session *domain.Session) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    session.AccessToken,
		Path:     "/",
		MaxAge:   h.cfg.JWT.AccessTokenMins * 60,
		Secure:   h.cfg.IsProd(),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
