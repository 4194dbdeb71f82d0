package handlers

import (
	"errors"

	"tokobaju/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler handles HTTP requests for signup and login.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
	logger      *zap.Logger

	// legacyLoginFailure answers failed logins with 200 and a plain text body.
	legacyLoginFailure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, legacyLoginFailure bool, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService:        authService,
		validate:           services.NewValidator(),
		logger:             logger,
		legacyLoginFailure: legacyLoginFailure,
	}
}

// RegisterRoutes registers /signup and /login. Handlers in mw run before each of them.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, mw ...fiber.Handler) {
	router.Post("/signup", chain(mw, h.HandleSignup)...)
	router.Post("/login", chain(mw, h.HandleLogin)...)
}

// chain returns a fresh slice holding mw followed by handler.
func chain(mw []fiber.Handler, handler fiber.Handler) []fiber.Handler {
	handlers := make([]fiber.Handler, 0, len(mw)+1)
	handlers = append(handlers, mw...)
	return append(handlers, handler)
}

// CredentialsRequest is the body of signup and login requests.
type CredentialsRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=72"`
}

// bindCredentials parses and validates the body into req. When ok is false the
// error response has already been written and err is the result of writing it.
func (h *AuthHandler) bindCredentials(c *fiber.Ctx, req *CredentialsRequest) (ok bool, err error) {
	if err := c.BodyParser(req); err != nil {
		h.logger.Debug("error parsing credentials body", zap.Error(err))
		return false, badBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return false, validationFailed(c, fieldErrors(err))
	}
	return true, nil
}

// HandleSignup handles new user registration.
func (h *AuthHandler) HandleSignup(c *fiber.Ctx) error {
	var req CredentialsRequest
	if ok, err := h.bindCredentials(c, &req); !ok {
		return err
	}

	user, err := h.authService.Signup(c.UserContext(), req.Username, req.Password)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			return validationFailed(c, verr.Fields)
		}
		if errors.Is(err, services.ErrUsernameTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Error creating user",
				"error":   err.Error(),
			})
		}
		h.logger.Error("error creating user", zap.String("username", req.Username), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error creating user",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"user":    user,
	})
}

// HandleLogin checks credentials and issues a bearer token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req CredentialsRequest
	if ok, err := h.bindCredentials(c, &req); !ok {
		return err
	}

	token, err := h.authService.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			h.logger.Error("error during login", zap.String("username", req.Username), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error during login",
				"error":   err.Error(),
			})
		}
		h.logger.Info("login failed", zap.String("username", req.Username))
		if h.legacyLoginFailure {
			return c.Status(fiber.StatusOK).SendString("Login failed")
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Login failed",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
	})
}
