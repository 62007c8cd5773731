package applicationapi

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/hirehub/hirehub/board/application"
	"github.com/hirehub/hirehub/board/application/applicationsrv"
	"github.com/hirehub/hirehub/pkg/iam/auth"
	"github.com/hirehub/hirehub/pkg/kernel"
)

var validate = validator.New()

// Handlers provides HTTP handlers for application operations
type Handlers struct {
	service *applicationsrv.ApplicationService
}

// NewHandlers creates a new application handlers instance
func NewHandlers(service *applicationsrv.ApplicationService) *Handlers {
	return &Handlers{service: service}
}

// Apply submits the authenticated student's application for a job
// POST /api/applications/jobs/:jobId/apply
func (h *Handlers) Apply(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	jobID := kernel.JobID(c.Params("jobId"))
	if jobID.IsEmpty() {
		return application.ErrInvalidRequest().WithDetail("job_id", "missing or empty")
	}

	created, err := h.service.Apply(c.Context(), authCtx.UserID, jobID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Job applied successfully",
		"application": created,
	})
}

// ListMine retrieves the authenticated student's applications
// GET /api/applications/mine
func (h *Handlers) ListMine(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	applications, err := h.service.ListByApplicant(c.Context(), authCtx.UserID, paginationFromQuery(c))
	if err != nil {
		return err
	}

	return c.JSON(applications)
}

// ListApplicants retrieves a job's applicants for the posting recruiter
// GET /api/applications/jobs/:jobId/applicants
func (h *Handlers) ListApplicants(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	jobID := kernel.JobID(c.Params("jobId"))
	if jobID.IsEmpty() {
		return application.ErrInvalidRequest().WithDetail("job_id", "missing or empty")
	}

	applicants, err := h.service.ListApplicants(c.Context(), authCtx.UserID, jobID, paginationFromQuery(c))
	if err != nil {
		return err
	}

	return c.JSON(applicants)
}

// UpdateStatus records the recruiter's decision on an application
// PATCH /api/applications/:id/status
func (h *Handlers) UpdateStatus(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	applicationID := kernel.ApplicationID(c.Params("id"))
	if applicationID.IsEmpty() {
		return application.ErrApplicationNotFound().WithDetail("id", "missing or empty")
	}

	var req application.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return application.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	if err := validate.Struct(req); err != nil {
		return application.ErrInvalidRequest().WithDetail("validation", err.Error())
	}

	result, err := h.service.UpdateStatus(c.Context(), authCtx.UserID, applicationID, req.Status)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":         "Status updated successfully",
		"application":     result.Application,
		"previous_status": result.PreviousStatus,
	})
}

// ServeResume returns a signed URL for an applicant's resume
// GET /api/applications/:id/resume
func (h *Handlers) ServeResume(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	applicationID := kernel.ApplicationID(c.Params("id"))
	if applicationID.IsEmpty() {
		return application.ErrApplicationNotFound().WithDetail("id", "missing or empty")
	}

	url, name, err := h.service.ResumeURL(c.Context(), authCtx.UserID, applicationID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"resume_url":  url,
		"resume_name": name,
	})
}

// paginationFromQuery parses page/page_size with sensible defaults
func paginationFromQuery(c *fiber.Ctx) kernel.PaginationOptions {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	pageSize := c.QueryInt("page_size", 10)
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	return kernel.PaginationOptions{
		Page:     page,
		PageSize: pageSize,
	}
}

// RegisterRoutes registers all application routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/applications")

	api.Get("/mine",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(kernel.RoleStudent),
		handlers.ListMine,
	)

	api.Post("/jobs/:jobId/apply",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(kernel.RoleStudent),
		handlers.Apply,
	)

	api.Get("/jobs/:jobId/applicants",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(kernel.RoleRecruiter),
		handlers.ListApplicants,
	)

	api.Patch("/:id/status",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(kernel.RoleRecruiter),
		handlers.UpdateStatus,
	)

	api.Get("/:id/resume",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(kernel.RoleRecruiter),
		handlers.ServeResume,
	)
}
