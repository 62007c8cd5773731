package userapi

import (
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/hirehub/hirehub/pkg/iam/auth"
	"github.com/hirehub/hirehub/pkg/iam/user"
	"github.com/hirehub/hirehub/pkg/iam/user/usersrv"
	"github.com/hirehub/hirehub/pkg/kernel"
)

var validate = validator.New()

// Handlers provides HTTP handlers for account operations
type Handlers struct {
	service       *usersrv.UserService
	revocations   auth.RevocationList
	cookieName    string
	secureCookies bool
}

// NewHandlers creates a new user handlers instance
func NewHandlers(service *usersrv.UserService, revocations auth.RevocationList, cookieName string, secureCookies bool) *Handlers {
	return &Handlers{
		service:       service,
		revocations:   revocations,
		cookieName:    cookieName,
		secureCookies: secureCookies,
	}
}

// Register creates a new account
// POST /api/users/register
func (h *Handlers) Register(c *fiber.Ctx) error {
	req := user.RegisterRequest{
		FullName:    c.FormValue("fullname"),
		Email:       kernel.Email(c.FormValue("email")),
		PhoneNumber: c.FormValue("phone_number"),
		Password:    c.FormValue("password"),
		Role:        kernel.Role(c.FormValue("role")),
	}

	if err := validate.Struct(req); err != nil {
		return user.ErrValidationFailed().WithDetail("validation", err.Error())
	}

	photo, photoName, err := readUpload(c, "file")
	if err != nil {
		return user.ErrInvalidRequest().WithDetail("file", err.Error())
	}

	account, err := h.service.Register(c.Context(), req, photo, photoName)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Account created successfully",
		"user":    user.ToResponse(account),
	})
}

// Login authenticates an account and sets the session cookie
// POST /api/users/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req user.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return user.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	if err := validate.Struct(req); err != nil {
		return user.ErrValidationFailed().WithDetail("validation", err.Error())
	}

	token, claims, account, err := h.service.Login(c.Context(), req)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Expires:  claims.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.secureCookies,
		SameSite: "None",
		Path:     "/",
	})

	return c.JSON(user.LoginResponse{
		Message: fmt.Sprintf("Welcome back %s", account.FullName),
		Token:   token,
		User:    user.ToResponse(account),
	})
}

// Logout revokes the current token and clears the session cookie
// GET /api/users/logout
func (h *Handlers) Logout(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	if err := h.revocations.Revoke(c.Context(), authCtx.TokenID, authCtx.TokenExpiresAt); err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Path:     "/",
	})

	return c.JSON(fiber.Map{
		"message": "Logged out successfully",
	})
}

// Me returns the authenticated account
// GET /api/users/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	account, err := h.service.GetByID(c.Context(), authCtx.UserID)
	if err != nil {
		return err
	}

	return c.JSON(account)
}

// UpdateProfile updates contact details and optionally uploads a resume
// POST /api/users/profile
func (h *Handlers) UpdateProfile(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	req := user.UpdateProfileRequest{
		FullName:    c.FormValue("fullname"),
		Email:       kernel.Email(c.FormValue("email")),
		PhoneNumber: c.FormValue("phone_number"),
		Bio:         c.FormValue("bio"),
		Skills:      c.FormValue("skills"),
	}

	if err := validate.Struct(req); err != nil {
		return user.ErrValidationFailed().WithDetail("validation", err.Error())
	}

	resume, resumeName, err := readUpload(c, "file")
	if err != nil {
		return user.ErrInvalidRequest().WithDetail("file", err.Error())
	}

	account, err := h.service.UpdateProfile(c.Context(), authCtx.UserID, req, resume, resumeName)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user":    user.ToResponse(account),
	})
}

// ServeResume returns a signed URL for a user's resume
// GET /api/users/:id/resume
func (h *Handlers) ServeResume(c *fiber.Ctx) error {
	userID := kernel.UserID(c.Params("id"))
	if userID.IsEmpty() {
		return user.ErrUserNotFound().WithDetail("id", "missing or empty")
	}

	url, name, err := h.service.ResumeSignedURL(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"resume_url":  url,
		"resume_name": name,
	})
}

// readUpload reads an optional multipart file field into memory
func readUpload(c *fiber.Ctx, field string) ([]byte, string, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, "", nil // field absent: no upload
	}
	data, err := readFileHeader(header)
	if err != nil {
		return nil, "", err
	}
	return data, header.Filename, nil
}

func readFileHeader(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// RegisterRoutes registers all user routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/users")

	api.Post("/register", handlers.Register)
	api.Post("/login", handlers.Login)

	api.Get("/logout",
		authMiddleware.Authenticate(),
		handlers.Logout,
	)

	api.Get("/me",
		authMiddleware.Authenticate(),
		handlers.Me,
	)

	api.Post("/profile",
		authMiddleware.Authenticate(),
		handlers.UpdateProfile,
	)

	api.Get("/:id/resume",
		authMiddleware.Authenticate(),
		handlers.ServeResume,
	)
}
