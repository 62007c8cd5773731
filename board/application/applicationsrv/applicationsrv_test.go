package applicationsrv_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/hirehub/hirehub/board/application"
	"github.com/hirehub/hirehub/board/application/applicationsrv"
	"github.com/hirehub/hirehub/board/job"
	"github.com/hirehub/hirehub/pkg/errx"
	"github.com/hirehub/hirehub/pkg/iam/user"
	"github.com/hirehub/hirehub/pkg/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Fakes
// ============================================================================

type pair struct {
	jobID       kernel.JobID
	applicantID kernel.UserID
}

type fakeApplicationRepo struct {
	applications map[kernel.ApplicationID]*application.Application
	pairs        map[pair]bool
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{
		applications: make(map[kernel.ApplicationID]*application.Application),
		pairs:        make(map[pair]bool),
	}
}

func (r *fakeApplicationRepo) Create(ctx context.Context, a *application.Application) error {
	p := pair{a.JobID, a.ApplicantID}
	if r.pairs[p] {
		// Mirrors the store's unique constraint on (job_id, applicant_id)
		return application.ErrAlreadyApplied()
	}
	r.pairs[p] = true
	copied := *a
	r.applications[a.ID] = &copied
	return nil
}

func (r *fakeApplicationRepo) Update(ctx context.Context, id kernel.ApplicationID, a *application.Application) error {
	if _, ok := r.applications[id]; !ok {
		return application.ErrApplicationNotFound()
	}
	copied := *a
	r.applications[id] = &copied
	return nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	a, ok := r.applications[id]
	if !ok {
		return nil, application.ErrApplicationNotFound()
	}
	copied := *a
	return &copied, nil
}

func (r *fakeApplicationRepo) HasApplied(ctx context.Context, jobID kernel.JobID, applicantID kernel.UserID) (bool, error) {
	return r.pairs[pair{jobID, applicantID}], nil
}

func (r *fakeApplicationRepo) ListByApplicant(ctx context.Context, applicantID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[application.Application], error) {
	items := []application.Application{}
	for _, a := range r.applications {
		if a.ApplicantID == applicantID {
			items = append(items, *a)
		}
	}
	return &kernel.Paginated[application.Application]{
		Items: items,
		Page:  kernel.NewPage(pagination, len(items)),
		Empty: len(items) == 0,
	}, nil
}

func (r *fakeApplicationRepo) ListByJob(ctx context.Context, jobID kernel.JobID, pagination kernel.PaginationOptions) (*kernel.Paginated[application.Application], error) {
	items := []application.Application{}
	for _, a := range r.applications {
		if a.JobID == jobID {
			items = append(items, *a)
		}
	}
	return &kernel.Paginated[application.Application]{
		Items: items,
		Page:  kernel.NewPage(pagination, len(items)),
		Empty: len(items) == 0,
	}, nil
}

type fakeJobRepo struct {
	jobs map[kernel.JobID]*job.Job
}

func (r *fakeJobRepo) Create(ctx context.Context, j *job.Job) error { return nil }

func (r *fakeJobRepo) Update(ctx context.Context, id kernel.JobID, j *job.Job) error { return nil }

func (r *fakeJobRepo) GetByID(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	j, ok := r.jobs[id]
	if !ok {
		return nil, job.ErrJobNotFound()
	}
	return j, nil
}

func (r *fakeJobRepo) List(ctx context.Context, filter job.SearchFilter, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	return nil, nil
}

func (r *fakeJobRepo) ListByCreator(ctx context.Context, creatorID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	return nil, nil
}

func (r *fakeJobRepo) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

func (r *fakeJobRepo) CountStats(ctx context.Context, now time.Time) (job.Stats, error) {
	return job.Stats{}, nil
}

func (r *fakeJobRepo) CountApplications(ctx context.Context, jobID kernel.JobID) (int64, error) {
	return 0, nil
}

type fakeFileSystem struct{}

func (f *fakeFileSystem) Join(segments ...string) string { return strings.Join(segments, "/") }

func (f *fakeFileSystem) WriteFile(ctx context.Context, path string, data []byte) error { return nil }

func (f *fakeFileSystem) WriteFileStream(ctx context.Context, path string, r io.Reader) error {
	return nil
}

func (f *fakeFileSystem) ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error) {
	return nil, nil
}

func (f *fakeFileSystem) DeleteFile(ctx context.Context, path string) error { return nil }

func (f *fakeFileSystem) SignedURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return "https://files.test/" + path + "?signed=1", nil
}

type fakeUserRepo struct {
	users map[kernel.UserID]*user.User
}

func (r *fakeUserRepo) Create(ctx context.Context, u *user.User) error { return nil }

func (r *fakeUserRepo) Update(ctx context.Context, id kernel.UserID, u *user.User) error { return nil }

func (r *fakeUserRepo) GetByID(ctx context.Context, id kernel.UserID) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound()
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email kernel.Email) (*user.User, error) {
	return nil, user.ErrUserNotFound()
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email kernel.Email) (bool, error) {
	return false, nil
}

// ============================================================================
// Fixtures
// ============================================================================

const (
	jobID       = kernel.JobID("job-1")
	recruiterID = kernel.UserID("recruiter-1")
	strangerID  = kernel.UserID("recruiter-2")
	studentID   = kernel.UserID("student-1")
	student2ID  = kernel.UserID("student-2")
)

func newService(t *testing.T) (*applicationsrv.ApplicationService, *fakeApplicationRepo) {
	t.Helper()

	applicationRepo := newFakeApplicationRepo()
	jobRepo := &fakeJobRepo{jobs: map[kernel.JobID]*job.Job{
		jobID: {
			ID:             jobID,
			Title:          "Backend Engineer",
			CreatedBy:      recruiterID,
			ExpirationDate: time.Now().Add(10 * 24 * time.Hour),
			IsActive:       true,
		},
	}}
	userRepo := &fakeUserRepo{users: map[kernel.UserID]*user.User{
		studentID: {
			ID:       studentID,
			FullName: "Student One",
			Role:     kernel.RoleStudent,
			Profile: user.Profile{
				ResumeURL:  "resumes/student-1/cv.pdf",
				ResumeName: "cv.pdf",
			},
		},
		student2ID: {ID: student2ID, FullName: "Student Two", Role: kernel.RoleStudent},
	}}

	return applicationsrv.NewApplicationService(applicationRepo, jobRepo, userRepo, &fakeFileSystem{}), applicationRepo
}

// ============================================================================
// Apply
// ============================================================================

func TestApplyCreatesPendingApplication(t *testing.T) {
	service, _ := newService(t)

	created, err := service.Apply(context.Background(), studentID, jobID)
	require.NoError(t, err)

	assert.Equal(t, application.StatusPending, created.Status)
	assert.Equal(t, jobID, created.JobID)
	assert.Equal(t, studentID, created.ApplicantID)
}

func TestApplyTwiceFailsWithConflict(t *testing.T) {
	service, repo := newService(t)

	_, err := service.Apply(context.Background(), studentID, jobID)
	require.NoError(t, err)

	_, err = service.Apply(context.Background(), studentID, jobID)
	require.Error(t, err)
	assert.True(t, errx.IsType(err, errx.TypeConflict))
	assert.Len(t, repo.applications, 1, "repeated calls keep failing, they do not create duplicates")
}

func TestApplyToMissingJobFailsNotFound(t *testing.T) {
	service, _ := newService(t)

	_, err := service.Apply(context.Background(), studentID, "missing-job")
	require.Error(t, err)
	assert.True(t, errx.IsType(err, errx.TypeNotFound))
}

func TestApplyConstraintBackstopSurfacesConflict(t *testing.T) {
	// Two concurrent submissions can both pass the advisory check; the
	// store constraint catches the second insert
	service, repo := newService(t)

	_, err := service.Apply(context.Background(), studentID, jobID)
	require.NoError(t, err)

	// Simulate the racing request: the advisory check saw no prior
	// application, the insert hits the constraint
	racing := &application.Application{
		ID:          "racing",
		JobID:       jobID,
		ApplicantID: studentID,
		Status:      application.StatusPending,
	}
	err = repo.Create(context.Background(), racing)
	require.Error(t, err)
	assert.True(t, errx.IsType(err, errx.TypeConflict))
}

// ============================================================================
// UpdateStatus
// ============================================================================

func mustApply(t *testing.T, service *applicationsrv.ApplicationService) kernel.ApplicationID {
	t.Helper()
	created, err := service.Apply(context.Background(), studentID, jobID)
	require.NoError(t, err)
	return created.ID
}

func TestUpdateStatusAccepts(t *testing.T) {
	service, _ := newService(t)
	id := mustApply(t, service)

	result, err := service.UpdateStatus(context.Background(), recruiterID, id, "ACCEPTED")
	require.NoError(t, err)

	assert.Equal(t, application.StatusAccepted, result.Application.Status)
	assert.Equal(t, application.StatusPending, result.PreviousStatus)
}

func TestUpdateStatusExposesReversal(t *testing.T) {
	service, _ := newService(t)
	id := mustApply(t, service)

	_, err := service.UpdateStatus(context.Background(), recruiterID, id, "accepted")
	require.NoError(t, err)

	result, err := service.UpdateStatus(context.Background(), recruiterID, id, "rejected")
	require.NoError(t, err)

	assert.Equal(t, application.StatusRejected, result.Application.Status)
	assert.Equal(t, application.StatusAccepted, result.PreviousStatus, "previous status makes the reversal visible")
}

func TestUpdateStatusRejectsInvalidValueAndKeepsPrior(t *testing.T) {
	service, repo := newService(t)
	id := mustApply(t, service)

	_, err := service.UpdateStatus(context.Background(), recruiterID, id, "approved")
	require.Error(t, err)
	assert.True(t, errx.IsType(err, errx.TypeValidation))
	assert.Equal(t, application.StatusPending, repo.applications[id].Status, "prior status unchanged")
}

func TestUpdateStatusRejectsNonOwnerAndKeepsPrior(t *testing.T) {
	service, repo := newService(t)
	id := mustApply(t, service)

	_, err := service.UpdateStatus(context.Background(), strangerID, id, "accepted")
	require.Error(t, err)
	assert.True(t, errx.IsType(err, errx.TypeAuthorization))
	assert.Equal(t, application.StatusPending, repo.applications[id].Status, "prior status unchanged")
}

func TestUpdateStatusMissingApplication(t *testing.T) {
	service, _ := newService(t)

	_, err := service.UpdateStatus(context.Background(), recruiterID, "missing", "accepted")
	require.Error(t, err)
	assert.True(t, errx.IsType(err, errx.TypeNotFound))
}

// ============================================================================
// Queries
// ============================================================================

func TestHasApplied(t *testing.T) {
	service, _ := newService(t)

	applied, err := service.HasApplied(context.Background(), jobID, studentID)
	require.NoError(t, err)
	assert.False(t, applied)

	mustApply(t, service)

	applied, err = service.HasApplied(context.Background(), jobID, studentID)
	require.NoError(t, err)
	assert.True(t, applied)
}

func TestListApplicantsRequiresOwnership(t *testing.T) {
	service, _ := newService(t)
	mustApply(t, service)

	_, err := service.ListApplicants(context.Background(), strangerID, jobID, kernel.PaginationOptions{Page: 1, PageSize: 10})
	require.Error(t, err)
	assert.True(t, errx.IsType(err, errx.TypeAuthorization))
}

func TestListApplicantsJoinsCandidates(t *testing.T) {
	service, _ := newService(t)
	mustApply(t, service)

	result, err := service.ListApplicants(context.Background(), recruiterID, jobID, kernel.PaginationOptions{Page: 1, PageSize: 10})
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	require.NotNil(t, result.Items[0].Applicant)
	assert.Equal(t, "Student One", result.Items[0].Applicant.FullName)
}

func TestListByApplicantJoinsJobs(t *testing.T) {
	service, _ := newService(t)
	mustApply(t, service)

	result, err := service.ListByApplicant(context.Background(), studentID, kernel.PaginationOptions{Page: 1, PageSize: 10})
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	require.NotNil(t, result.Items[0].Job)
	assert.Equal(t, "Backend Engineer", result.Items[0].Job.Title)
}

// ============================================================================
// ResumeURL
// ============================================================================

func TestResumeURLSignsApplicantResume(t *testing.T) {
	service, _ := newService(t)
	id := mustApply(t, service)

	url, name, err := service.ResumeURL(context.Background(), recruiterID, id)
	require.NoError(t, err)

	assert.Contains(t, url, "resumes/student-1/cv.pdf")
	assert.Equal(t, "cv.pdf", name)
}

func TestResumeURLRequiresJobOwnership(t *testing.T) {
	service, _ := newService(t)
	id := mustApply(t, service)

	_, _, err := service.ResumeURL(context.Background(), strangerID, id)
	require.Error(t, err)
	assert.True(t, errx.IsType(err, errx.TypeAuthorization))
}

func TestResumeURLMissingResume(t *testing.T) {
	service, _ := newService(t)

	created, err := service.Apply(context.Background(), student2ID, jobID)
	require.NoError(t, err)

	_, _, err = service.ResumeURL(context.Background(), recruiterID, created.ID)
	require.Error(t, err)
	assert.True(t, errx.IsType(err, errx.TypeNotFound))
}
