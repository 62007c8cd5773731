package companyapi

import (
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/hirehub/hirehub/board/company"
	"github.com/hirehub/hirehub/board/company/companysrv"
	"github.com/hirehub/hirehub/pkg/iam/auth"
	"github.com/hirehub/hirehub/pkg/kernel"
)

var validate = validator.New()

// Handlers provides HTTP handlers for company operations
type Handlers struct {
	service *companysrv.CompanyService
}

// NewHandlers creates a new company handlers instance
func NewHandlers(service *companysrv.CompanyService) *Handlers {
	return &Handlers{service: service}
}

// Register creates a new company for the authenticated recruiter
// POST /api/companies
func (h *Handlers) Register(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req company.RegisterCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return company.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	if err := validate.Struct(req); err != nil {
		return company.ErrValidationFailed().WithDetail("validation", err.Error())
	}

	created, err := h.service.Register(c.Context(), authCtx.UserID, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Company registered successfully",
		"company": created,
	})
}

// ListOwned lists the authenticated recruiter's companies
// GET /api/companies
func (h *Handlers) ListOwned(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	companies, err := h.service.ListOwned(c.Context(), authCtx.UserID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"companies": companies,
	})
}

// GetByID retrieves a single company
// GET /api/companies/:id
func (h *Handlers) GetByID(c *fiber.Ctx) error {
	companyID := kernel.CompanyID(c.Params("id"))
	if companyID.IsEmpty() {
		return company.ErrCompanyNotFound().WithDetail("id", "missing or empty")
	}

	found, err := h.service.GetByID(c.Context(), companyID)
	if err != nil {
		return err
	}

	return c.JSON(found)
}

// Update modifies company details and optionally uploads a logo
// PUT /api/companies/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	companyID := kernel.CompanyID(c.Params("id"))
	if companyID.IsEmpty() {
		return company.ErrCompanyNotFound().WithDetail("id", "missing or empty")
	}

	req := company.UpdateCompanyRequest{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Website:     c.FormValue("website"),
		Location:    c.FormValue("location"),
	}

	if err := validate.Struct(req); err != nil {
		return company.ErrValidationFailed().WithDetail("validation", err.Error())
	}

	var logo []byte
	var logoName string
	if header, err := c.FormFile("file"); err == nil {
		f, err := header.Open()
		if err != nil {
			return company.ErrInvalidRequest().WithDetail("file", err.Error())
		}
		logo, err = io.ReadAll(f)
		f.Close()
		if err != nil {
			return company.ErrInvalidRequest().WithDetail("file", err.Error())
		}
		logoName = header.Filename
	}

	updated, err := h.service.Update(c.Context(), authCtx.UserID, companyID, req, logo, logoName)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Company information updated",
		"company": updated,
	})
}

// RegisterRoutes registers all company routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/companies")

	api.Post("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(kernel.RoleRecruiter),
		handlers.Register,
	)

	api.Get("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(kernel.RoleRecruiter),
		handlers.ListOwned,
	)

	api.Get("/:id",
		authMiddleware.Authenticate(),
		handlers.GetByID,
	)

	api.Put("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(kernel.RoleRecruiter),
		handlers.Update,
	)
}
