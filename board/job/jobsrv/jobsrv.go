package jobsrv

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hirehub/hirehub/board/company"
	"github.com/hirehub/hirehub/board/job"
	"github.com/hirehub/hirehub/pkg/errx"
	"github.com/hirehub/hirehub/pkg/kernel"
	"github.com/hirehub/hirehub/pkg/logx"
)

// JobService provides lifecycle operations for job postings
type JobService struct {
	jobRepo      job.Repository
	companyRepo  company.Repository
	applications job.ApplicationChecker
}

// NewJobService creates a new instance of the job service
func NewJobService(
	jobRepo job.Repository,
	companyRepo company.Repository,
	applications job.ApplicationChecker,
) *JobService {
	return &JobService{
		jobRepo:      jobRepo,
		companyRepo:  companyRepo,
		applications: applications,
	}
}

// Create posts a new job. The expiration defaults to the standard
// validity window when the request does not carry one.
func (s *JobService) Create(ctx context.Context, creatorID kernel.UserID, req job.CreateJobRequest) (*job.Job, error) {
	requirements := job.NormalizeRequirements(req.Requirements)
	if len(requirements) == 0 {
		return nil, job.ErrNoRequirements().WithDetail("requirements", req.Requirements)
	}

	// The company must exist and belong to the posting recruiter
	owningCompany, err := s.companyRepo.GetByID(ctx, req.CompanyID)
	if err != nil {
		return nil, company.ErrCompanyNotFound().WithDetail("company_id", req.CompanyID.String())
	}
	if !owningCompany.IsOwnedBy(creatorID) {
		return nil, company.ErrNotOwner().WithDetail("company_id", req.CompanyID.String())
	}

	now := time.Now()
	expiration := now.Add(job.DefaultValidityDays * 24 * time.Hour)
	if req.ExpirationDate != nil {
		expiration = *req.ExpirationDate
	}

	newJob := &job.Job{
		ID:              kernel.NewJobID(uuid.NewString()),
		Title:           req.Title,
		Description:     req.Description,
		Requirements:    requirements,
		Salary:          req.Salary,
		Location:        req.Location,
		JobType:         req.JobType,
		ExperienceLevel: req.ExperienceLevel,
		Positions:       req.Positions,
		CompanyID:       req.CompanyID,
		CreatedBy:       creatorID,
		ExpirationDate:  expiration,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.jobRepo.Create(ctx, newJob); err != nil {
		return nil, errx.Wrap(err, "failed to create job", errx.TypeInternal)
	}

	return newJob, nil
}

// Update replaces the mutable fields of a job posting. Only the posting
// recruiter may update, and a supplied expiration must not be in the past.
func (s *JobService) Update(ctx context.Context, requesterID kernel.UserID, jobID kernel.JobID, req job.UpdateJobRequest) (*job.Job, error) {
	jobEntity, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, job.ErrJobNotFound().WithDetail("job_id", jobID.String())
	}

	if !jobEntity.IsCreatedBy(requesterID) {
		return nil, job.ErrNotOwner().
			WithDetail("job_id", jobID.String()).
			WithDetail("user_id", requesterID.String())
	}

	requirements := job.NormalizeRequirements(req.Requirements)
	if len(requirements) == 0 {
		return nil, job.ErrNoRequirements().WithDetail("requirements", req.Requirements)
	}

	expiration := jobEntity.ExpirationDate
	if req.ExpirationDate != nil {
		if req.ExpirationDate.Before(time.Now()) {
			return nil, job.ErrPastExpiration().WithDetail("expiration_date", req.ExpirationDate.String())
		}
		expiration = *req.ExpirationDate
	}

	jobEntity.ReplaceDetails(
		req.Title, req.Description, requirements,
		req.Salary, req.Location, req.JobType,
		req.ExperienceLevel, req.Positions, expiration,
	)

	if err := s.jobRepo.Update(ctx, jobID, jobEntity); err != nil {
		return nil, errx.Wrap(err, "failed to update job", errx.TypeInternal)
	}

	return jobEntity, nil
}

// Extend pushes a job's expiration forward by whole days from its
// current value and reactivates the posting
func (s *JobService) Extend(ctx context.Context, requesterID kernel.UserID, jobID kernel.JobID, days int) (*job.ExtendJobResponse, error) {
	if days <= 0 {
		return nil, job.ErrInvalidExtension().WithDetail("days", days)
	}

	jobEntity, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, job.ErrJobNotFound().WithDetail("job_id", jobID.String())
	}

	if !jobEntity.IsCreatedBy(requesterID) {
		return nil, job.ErrNotOwner().
			WithDetail("job_id", jobID.String()).
			WithDetail("user_id", requesterID.String())
	}

	newExpiration := jobEntity.ExtendBy(days)

	if err := s.jobRepo.Update(ctx, jobID, jobEntity); err != nil {
		return nil, errx.Wrap(err, "failed to extend job", errx.TypeInternal)
	}

	return &job.ExtendJobResponse{
		JobID:             jobID,
		NewExpirationDate: newExpiration,
	}, nil
}

// SweepExpired deactivates every active job whose expiration has
// passed, returning how many changed. Idempotent: a second run right
// after the first deactivates nothing.
func (s *JobService) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	count, err := s.jobRepo.DeactivateExpired(ctx, now)
	if err != nil {
		return 0, errx.Wrap(err, "failed to sweep expired jobs", errx.TypeInternal)
	}

	if count > 0 {
		logx.Infof("expiration sweep deactivated %d job(s)", count)
	}

	return count, nil
}

// GetByID retrieves a job with its derived status. When requesterID is
// set, the response is annotated with whether that user has applied.
func (s *JobService) GetByID(ctx context.Context, jobID kernel.JobID, requesterID kernel.UserID) (*job.JobResponse, error) {
	jobEntity, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, job.ErrJobNotFound().WithDetail("job_id", jobID.String())
	}

	resp := job.ToResponse(jobEntity, time.Now())

	if !requesterID.IsEmpty() {
		applied, err := s.applications.HasApplied(ctx, jobID, requesterID)
		if err != nil {
			return nil, errx.Wrap(err, "failed to check application", errx.TypeInternal)
		}
		resp.HasApplied = &applied
	}

	return &resp, nil
}

// List retrieves jobs matching the filter with derived statuses and
// the board-wide expiration summary
func (s *JobService) List(ctx context.Context, filter job.SearchFilter, pagination kernel.PaginationOptions) (*job.ListJobsResponse, error) {
	jobs, err := s.jobRepo.List(ctx, filter, pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list jobs", errx.TypeInternal)
	}

	stats, err := s.jobRepo.CountStats(ctx, time.Now())
	if err != nil {
		return nil, errx.Wrap(err, "failed to count job stats", errx.TypeInternal)
	}

	return &job.ListJobsResponse{
		PaginatedJobsResponse: *s.toPaginatedResponse(jobs),
		Stats:                 stats,
	}, nil
}

// ListByCreator retrieves the jobs a recruiter has posted, each
// annotated with how many applications it has drawn
func (s *JobService) ListByCreator(ctx context.Context, creatorID kernel.UserID, pagination kernel.PaginationOptions) (*job.PaginatedJobsResponse, error) {
	jobs, err := s.jobRepo.ListByCreator(ctx, creatorID, pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list jobs by creator", errx.TypeInternal)
	}

	response := s.toPaginatedResponse(jobs)
	for i := range response.Items {
		count, err := s.jobRepo.CountApplications(ctx, response.Items[i].ID)
		if err != nil {
			return nil, errx.Wrap(err, "failed to count applications", errx.TypeInternal)
		}
		response.Items[i].ApplicationCount = &count
	}

	return response, nil
}

// ============================================================================
// Helper Methods
// ============================================================================

func (s *JobService) toPaginatedResponse(jobs *kernel.Paginated[job.Job]) *job.PaginatedJobsResponse {
	now := time.Now()
	responses := make([]job.JobResponse, 0, len(jobs.Items))
	for i := range jobs.Items {
		responses = append(responses, job.ToResponse(&jobs.Items[i], now))
	}

	return &kernel.Paginated[job.JobResponse]{
		Items: responses,
		Page:  jobs.Page,
		Empty: jobs.Empty,
	}
}
