package applicationsrv

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hirehub/hirehub/board/application"
	"github.com/hirehub/hirehub/board/job"
	"github.com/hirehub/hirehub/pkg/errx"
	"github.com/hirehub/hirehub/pkg/fsx"
	"github.com/hirehub/hirehub/pkg/iam/user"
	"github.com/hirehub/hirehub/pkg/kernel"
)

const signedURLTTL = time.Hour

// ApplicationService provides workflow operations for applications
type ApplicationService struct {
	applicationRepo application.Repository
	jobRepo         job.Repository
	userRepo        user.Repository
	fileSystem      fsx.FileSystem
}

// NewApplicationService creates a new instance of the application service
func NewApplicationService(
	applicationRepo application.Repository,
	jobRepo job.Repository,
	userRepo user.Repository,
	fileSystem fsx.FileSystem,
) *ApplicationService {
	return &ApplicationService{
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		userRepo:        userRepo,
		fileSystem:      fileSystem,
	}
}

// Apply submits a candidate's application for a job. The advisory
// duplicate check keeps the common case cheap; the store's unique
// constraint on (job_id, applicant_id) closes the race between two
// concurrent submissions.
func (s *ApplicationService) Apply(ctx context.Context, applicantID kernel.UserID, jobID kernel.JobID) (*application.Application, error) {
	if _, err := s.jobRepo.GetByID(ctx, jobID); err != nil {
		return nil, job.ErrJobNotFound().WithDetail("job_id", jobID.String())
	}

	applied, err := s.applicationRepo.HasApplied(ctx, jobID, applicantID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to check existing application", errx.TypeInternal)
	}
	if applied {
		return nil, application.ErrAlreadyApplied().WithDetail("job_id", jobID.String())
	}

	newApplication := &application.Application{
		ID:          kernel.NewApplicationID(uuid.NewString()),
		JobID:       jobID,
		ApplicantID: applicantID,
		Status:      application.StatusPending,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.applicationRepo.Create(ctx, newApplication); err != nil {
		// The conditional insert surfaces a concurrent duplicate here
		if errx.IsType(err, errx.TypeConflict) {
			return nil, err
		}
		return nil, errx.Wrap(err, "failed to create application", errx.TypeInternal)
	}

	return newApplication, nil
}

// UpdateStatus records a recruiter's decision on an application. Only
// the recruiter who posted the parent job may decide; the decision
// overwrites any prior status, and the previous value is returned so
// a reversal is visible.
func (s *ApplicationService) UpdateStatus(ctx context.Context, requesterID kernel.UserID, applicationID kernel.ApplicationID, rawStatus string) (*application.StatusChangeResponse, error) {
	newStatus, err := application.ParseDecision(rawStatus)
	if err != nil {
		return nil, err
	}

	applicationEntity, err := s.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, application.ErrApplicationNotFound().WithDetail("application_id", applicationID.String())
	}

	parentJob, err := s.jobRepo.GetByID(ctx, applicationEntity.JobID)
	if err != nil {
		return nil, job.ErrJobNotFound().WithDetail("job_id", applicationEntity.JobID.String())
	}

	if !parentJob.IsCreatedBy(requesterID) {
		return nil, application.ErrNotJobOwner().
			WithDetail("application_id", applicationID.String()).
			WithDetail("user_id", requesterID.String())
	}

	previous := applicationEntity.SetStatus(newStatus)

	if err := s.applicationRepo.Update(ctx, applicationID, applicationEntity); err != nil {
		return nil, errx.Wrap(err, "failed to update application status", errx.TypeInternal)
	}

	return &application.StatusChangeResponse{
		Application:    *applicationEntity,
		PreviousStatus: previous,
	}, nil
}

// ResumeURL returns a time-limited URL for an applicant's stored
// resume. Only the recruiter who posted the parent job may fetch it.
func (s *ApplicationService) ResumeURL(ctx context.Context, requesterID kernel.UserID, applicationID kernel.ApplicationID) (string, string, error) {
	applicationEntity, err := s.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return "", "", application.ErrApplicationNotFound().WithDetail("application_id", applicationID.String())
	}

	parentJob, err := s.jobRepo.GetByID(ctx, applicationEntity.JobID)
	if err != nil {
		return "", "", job.ErrJobNotFound().WithDetail("job_id", applicationEntity.JobID.String())
	}

	if !parentJob.IsCreatedBy(requesterID) {
		return "", "", application.ErrNotJobOwner().
			WithDetail("application_id", applicationID.String()).
			WithDetail("user_id", requesterID.String())
	}

	applicant, err := s.userRepo.GetByID(ctx, applicationEntity.ApplicantID)
	if err != nil {
		return "", "", user.ErrUserNotFound().WithDetail("user_id", applicationEntity.ApplicantID.String())
	}

	if !applicant.HasResume() {
		return "", "", user.ErrResumeNotFound().WithDetail("user_id", applicant.ID.String())
	}

	url, err := s.fileSystem.SignedURL(ctx, applicant.Profile.ResumeURL.String(), signedURLTTL)
	if err != nil {
		return "", "", errx.Wrap(err, "failed to sign resume url", errx.TypeExternal)
	}

	return url, applicant.Profile.ResumeName, nil
}

// HasApplied checks whether a candidate already applied to a job
func (s *ApplicationService) HasApplied(ctx context.Context, jobID kernel.JobID, applicantID kernel.UserID) (bool, error) {
	return s.applicationRepo.HasApplied(ctx, jobID, applicantID)
}

// ListByApplicant retrieves a candidate's applications joined with
// their jobs, newest first
func (s *ApplicationService) ListByApplicant(ctx context.Context, applicantID kernel.UserID, pagination kernel.PaginationOptions) (*application.PaginatedAppliedJobs, error) {
	applications, err := s.applicationRepo.ListByApplicant(ctx, applicantID, pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list applications", errx.TypeInternal)
	}

	now := time.Now()
	responses := make([]application.AppliedJobResponse, 0, len(applications.Items))
	for _, a := range applications.Items {
		resp := application.AppliedJobResponse{Application: a}
		if jobEntity, err := s.jobRepo.GetByID(ctx, a.JobID); err == nil {
			jobResp := job.ToResponse(jobEntity, now)
			resp.Job = &jobResp
		}
		responses = append(responses, resp)
	}

	return &kernel.Paginated[application.AppliedJobResponse]{
		Items: responses,
		Page:  applications.Page,
		Empty: applications.Empty,
	}, nil
}

// ListApplicants retrieves a job's applications joined with their
// candidates, in application order. Only the posting recruiter may
// see a job's applicants.
func (s *ApplicationService) ListApplicants(ctx context.Context, requesterID kernel.UserID, jobID kernel.JobID, pagination kernel.PaginationOptions) (*application.PaginatedApplicants, error) {
	parentJob, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, job.ErrJobNotFound().WithDetail("job_id", jobID.String())
	}

	if !parentJob.IsCreatedBy(requesterID) {
		return nil, application.ErrNotJobOwner().
			WithDetail("job_id", jobID.String()).
			WithDetail("user_id", requesterID.String())
	}

	applications, err := s.applicationRepo.ListByJob(ctx, jobID, pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list applicants", errx.TypeInternal)
	}

	responses := make([]application.ApplicantResponse, 0, len(applications.Items))
	for _, a := range applications.Items {
		resp := application.ApplicantResponse{Application: a}
		if applicant, err := s.userRepo.GetByID(ctx, a.ApplicantID); err == nil {
			applicantResp := user.ToResponse(applicant)
			resp.Applicant = &applicantResp
		}
		responses = append(responses, resp)
	}

	return &kernel.Paginated[application.ApplicantResponse]{
		Items: responses,
		Page:  applications.Page,
		Empty: applications.Empty,
	}, nil
}
