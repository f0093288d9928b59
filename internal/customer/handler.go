package customer

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/wichananm65/zoo-backend/internal/account"
	"github.com/wichananm65/zoo-backend/internal/auth"
)

const (
	msgInvalidJSON     = "Invalid JSON format"
	msgProcessingError = "Error processing the request"
	msgUserAdded       = "User added successfully"
	msgEmailExists     = "Email already registered"
	msgBadCredentials  = "Invalid email or password"
)

// Signup results reported to a SignupRecorder.
const (
	SignupCreated  = "created"
	SignupInvalid  = "invalid"
	SignupConflict = "conflict"
	SignupError    = "error"
)

// TokenIssuer signs session tokens for authenticated customers.
type TokenIssuer interface {
	Issue(email string, role account.Role) (string, error)
}

// SignupRecorder counts signup outcomes.
type SignupRecorder interface {
	RecordSignup(result string)
}

type Handler struct {
	service  *Service
	tokens   TokenIssuer
	log      *zap.Logger
	validate *validator.Validate
	signups  SignupRecorder
}

type HandlerOption func(*Handler)

func WithSignupRecorder(r SignupRecorder) HandlerOption {
	return func(h *Handler) { h.signups = r }
}

func NewHandler(service *Service, tokens TokenIssuer, log *zap.Logger, opts ...HandlerOption) *Handler {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	h := &Handler{service: service, tokens: tokens, log: log, validate: v}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/customers", h.listCustomers)
	app.Post("/api/signup", h.signup)
	app.Post("/api/login", h.login)
}

// RegisterProtectedRoutes mounts routes that require guard to pass first.
func (h *Handler) RegisterProtectedRoutes(app *fiber.App, guard fiber.Handler) {
	app.Get("/api/me", guard, h.me)
}

func (h *Handler) listCustomers(c *fiber.Ctx) error {
	customers, err := h.service.List(c.UserContext())
	if err != nil {
		h.log.Error("list customers failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": msgProcessingError})
	}
	return c.JSON(customers)
}

func (h *Handler) signup(c *fiber.Ctx) error {
	var payload signupRequest
	if err := json.Unmarshal(c.Body(), &payload); err != nil {
		h.record(SignupInvalid)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msgInvalidJSON})
	}
	payload.Email = strings.TrimSpace(payload.Email)
	if err := h.validate.Struct(payload); err != nil {
		h.record(SignupInvalid)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationMessage(err)})
	}

	created, err := h.service.Signup(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, ErrPasswordTooLong) {
			h.record(SignupInvalid)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrPasswordTooLong.Error()})
		}
		if errors.Is(err, ErrEmailExists) {
			h.record(SignupConflict)
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": msgEmailExists})
		}
		h.record(SignupError)
		h.log.Error("signup failed", zap.String("email", payload.Email), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": msgProcessingError})
	}

	h.record(SignupCreated)
	h.log.Info("customer signed up", zap.String("email", created.Email))
	return c.JSON(fiber.Map{"message": msgUserAdded})
}

func (h *Handler) login(c *fiber.Ctx) error {
	var payload loginRequest
	if err := json.Unmarshal(c.Body(), &payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msgInvalidJSON})
	}
	payload.Email = strings.TrimSpace(payload.Email)
	if err := h.validate.Struct(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationMessage(err)})
	}

	customer, err := h.service.Authenticate(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": msgBadCredentials})
		}
		h.log.Error("login failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": msgProcessingError})
	}

	token, err := h.tokens.Issue(customer.Email, account.RoleCustomer)
	if err != nil {
		h.log.Error("token signing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": msgProcessingError})
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"email":   customer.Email,
		"role":    account.RoleCustomer.String(),
	})
}

// me echoes the identity carried by the bearer token.
func (h *Handler) me(c *fiber.Ctx) error {
	id, err := auth.IdentityFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}
	return c.JSON(fiber.Map{"email": id.Email, "role": id.Role.String()})
}

func (h *Handler) record(result string) {
	if h.signups != nil {
		h.signups.RecordSignup(result)
	}
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fe.Field() + " is invalid"
	}
}
