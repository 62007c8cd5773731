package jobapi

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/hirehub/hirehub/board/job"
	"github.com/hirehub/hirehub/board/job/jobsrv"
	"github.com/hirehub/hirehub/pkg/iam/auth"
	"github.com/hirehub/hirehub/pkg/kernel"
)

var validate = validator.New()

// Handlers provides HTTP handlers for job operations
type Handlers struct {
	service *jobsrv.JobService
}

// NewHandlers creates a new job handlers instance
func NewHandlers(service *jobsrv.JobService) *Handlers {
	return &Handlers{service: service}
}

// Create posts a new job
// POST /api/jobs
func (h *Handlers) Create(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req job.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	if err := validate.Struct(req); err != nil {
		return job.ErrValidationFailed().WithDetail("validation", err.Error())
	}

	created, err := h.service.Create(c.Context(), authCtx.UserID, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "New job created successfully",
		"job":     job.ToResponse(created, time.Now()),
	})
}

// List retrieves jobs matching an optional keyword
// GET /api/jobs?keyword=&show_expired=&page=&page_size=
func (h *Handlers) List(c *fiber.Ctx) error {
	filter := job.SearchFilter{
		Keyword:     c.Query("keyword"),
		ShowExpired: c.QueryBool("show_expired"),
	}

	jobs, err := h.service.List(c.Context(), filter, paginationFromQuery(c))
	if err != nil {
		return err
	}

	return c.JSON(jobs)
}

// ListMine retrieves the jobs posted by the authenticated recruiter
// GET /api/jobs/mine
func (h *Handlers) ListMine(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	jobs, err := h.service.ListByCreator(c.Context(), authCtx.UserID, paginationFromQuery(c))
	if err != nil {
		return err
	}

	return c.JSON(jobs)
}

// GetByID retrieves a single job, annotated with whether the
// requesting student has already applied
// GET /api/jobs/:id
func (h *Handlers) GetByID(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("id"))
	if jobID.IsEmpty() {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	var requesterID kernel.UserID
	if authCtx, ok := auth.GetAuthContext(c); ok && authCtx.Role == kernel.RoleStudent {
		requesterID = authCtx.UserID
	}

	found, err := h.service.GetByID(c.Context(), jobID, requesterID)
	if err != nil {
		return err
	}

	return c.JSON(found)
}

// Update replaces the mutable fields of a job
// PUT /api/jobs/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	jobID := kernel.JobID(c.Params("id"))
	if jobID.IsEmpty() {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	var req job.UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	if err := validate.Struct(req); err != nil {
		return job.ErrValidationFailed().WithDetail("validation", err.Error())
	}

	updated, err := h.service.Update(c.Context(), authCtx.UserID, jobID, req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Job updated successfully",
		"job":     job.ToResponse(updated, time.Now()),
	})
}

// Extend pushes a job's expiration forward
// POST /api/jobs/:id/extend
func (h *Handlers) Extend(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	jobID := kernel.JobID(c.Params("id"))
	if jobID.IsEmpty() {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	var req job.ExtendJobRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	if err := validate.Struct(req); err != nil {
		return job.ErrValidationFailed().WithDetail("validation", err.Error())
	}

	result, err := h.service.Extend(c.Context(), authCtx.UserID, jobID, req.Days)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Job expiration extended",
		"result":  result,
	})
}

// Sweep triggers the expiration sweep on demand
// POST /api/jobs/sweep
func (h *Handlers) Sweep(c *fiber.Ctx) error {
	count, err := h.service.SweepExpired(c.Context(), time.Now())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":     "Expiration sweep completed",
		"deactivated": count,
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

// RegisterRoutes registers all job routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/jobs")

	api.Post("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(kernel.RoleRecruiter),
		handlers.Create,
	)

	api.Get("/",
		authMiddleware.Authenticate(),
		handlers.List,
	)

	api.Get("/mine",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(kernel.RoleRecruiter),
		handlers.ListMine,
	)

	// Internal trigger for the expiration sweep, idempotent
	api.Post("/sweep", handlers.Sweep)

	api.Get("/:id",
		authMiddleware.Authenticate(),
		handlers.GetByID,
	)

	api.Put("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(kernel.RoleRecruiter),
		handlers.Update,
	)

	api.Post("/:id/extend",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(kernel.RoleRecruiter),
		handlers.Extend,
	)
}
