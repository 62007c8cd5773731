package jobsrv_test

import (
	"context"
	"testing"
	"time"

	"github.com/hirehub/hirehub/board/company"
	"github.com/hirehub/hirehub/board/job"
	"github.com/hirehub/hirehub/board/job/jobsrv"
	"github.com/hirehub/hirehub/pkg/errx"
	"github.com/hirehub/hirehub/pkg/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Fakes
// ============================================================================

type fakeJobRepo struct {
	jobs              map[kernel.JobID]*job.Job
	applicationCounts map[kernel.JobID]int64
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{
		jobs:              make(map[kernel.JobID]*job.Job),
		applicationCounts: make(map[kernel.JobID]int64),
	}
}

func (r *fakeJobRepo) Create(ctx context.Context, j *job.Job) error {
	copied := *j
	r.jobs[j.ID] = &copied
	return nil
}

func (r *fakeJobRepo) Update(ctx context.Context, id kernel.JobID, j *job.Job) error {
	if _, ok := r.jobs[id]; !ok {
		return job.ErrJobNotFound()
	}
	copied := *j
	r.jobs[id] = &copied
	return nil
}

func (r *fakeJobRepo) GetByID(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	j, ok := r.jobs[id]
	if !ok {
		return nil, job.ErrJobNotFound()
	}
	copied := *j
	return &copied, nil
}

func (r *fakeJobRepo) List(ctx context.Context, filter job.SearchFilter, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	items := []job.Job{}
	for _, j := range r.jobs {
		if !filter.ShowExpired && !j.IsActive {
			continue
		}
		items = append(items, *j)
	}
	return &kernel.Paginated[job.Job]{
		Items: items,
		Page:  kernel.NewPage(pagination, len(items)),
		Empty: len(items) == 0,
	}, nil
}

func (r *fakeJobRepo) ListByCreator(ctx context.Context, creatorID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	items := []job.Job{}
	for _, j := range r.jobs {
		if j.CreatedBy == creatorID {
			items = append(items, *j)
		}
	}
	return &kernel.Paginated[job.Job]{
		Items: items,
		Page:  kernel.NewPage(pagination, len(items)),
		Empty: len(items) == 0,
	}, nil
}

func (r *fakeJobRepo) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	for _, j := range r.jobs {
		if j.IsActive && j.ExpirationDate.Before(now) {
			j.IsActive = false
			count++
		}
	}
	return count, nil
}

func (r *fakeJobRepo) CountStats(ctx context.Context, now time.Time) (job.Stats, error) {
	stats := job.Stats{}
	for _, j := range r.jobs {
		stats.Total++
		if j.ExpirationDate.Before(now) {
			stats.Expired++
		} else {
			stats.Active++
		}
	}
	return stats, nil
}

func (r *fakeJobRepo) CountApplications(ctx context.Context, jobID kernel.JobID) (int64, error) {
	return r.applicationCounts[jobID], nil
}

type fakeCompanyRepo struct {
	companies map[kernel.CompanyID]*company.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: make(map[kernel.CompanyID]*company.Company)}
}

func (r *fakeCompanyRepo) Create(ctx context.Context, c *company.Company) error {
	r.companies[c.ID] = c
	return nil
}

func (r *fakeCompanyRepo) Update(ctx context.Context, id kernel.CompanyID, c *company.Company) error {
	r.companies[id] = c
	return nil
}

func (r *fakeCompanyRepo) GetByID(ctx context.Context, id kernel.CompanyID) (*company.Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, company.ErrCompanyNotFound()
	}
	return c, nil
}

func (r *fakeCompanyRepo) GetByName(ctx context.Context, name string) (*company.Company, error) {
	for _, c := range r.companies {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, company.ErrCompanyNotFound()
}

func (r *fakeCompanyRepo) ListByOwner(ctx context.Context, ownerID kernel.UserID) ([]company.Company, error) {
	return nil, nil
}

type fakeApplicationChecker struct {
	applied map[kernel.JobID]map[kernel.UserID]bool
}

func (f *fakeApplicationChecker) HasApplied(ctx context.Context, jobID kernel.JobID, applicantID kernel.UserID) (bool, error) {
	return f.applied[jobID][applicantID], nil
}

// ============================================================================
// Fixtures
// ============================================================================

const (
	recruiterID = kernel.UserID("recruiter-1")
	strangerID  = kernel.UserID("recruiter-2")
	companyID   = kernel.CompanyID("company-1")
)

func newService(t *testing.T) (*jobsrv.JobService, *fakeJobRepo) {
	t.Helper()

	jobRepo := newFakeJobRepo()
	companyRepo := newFakeCompanyRepo()
	companyRepo.companies[companyID] = &company.Company{
		ID:      companyID,
		Name:    "Acme",
		OwnerID: recruiterID,
	}

	checker := &fakeApplicationChecker{applied: map[kernel.JobID]map[kernel.UserID]bool{}}
	return jobsrv.NewJobService(jobRepo, companyRepo, checker), jobRepo
}

func validCreateRequest() job.CreateJobRequest {
	return job.CreateJobRequest{
		Title:           "Backend Engineer",
		Description:     "Build and run APIs",
		Requirements:    "Go, Postgres, Redis",
		Salary:          90000,
		Location:        "Remote",
		JobType:         "full-time",
		ExperienceLevel: "senior",
		Positions:       2,
		CompanyID:       companyID,
	}
}

// ============================================================================
// Create
// ============================================================================

func TestCreateDefaultsExpirationToTwentyDays(t *testing.T) {
	service, _ := newService(t)

	before := time.Now()
	created, err := service.Create(context.Background(), recruiterID, validCreateRequest())
	after := time.Now()
	require.NoError(t, err)

	assert.WithinRange(t, created.ExpirationDate,
		before.Add(job.DefaultValidityDays*24*time.Hour),
		after.Add(job.DefaultValidityDays*24*time.Hour))
	assert.True(t, created.IsActive)
	assert.Equal(t, recruiterID, created.CreatedBy)
}

func TestCreateNormalizesRequirements(t *testing.T) {
	service, _ := newService(t)

	created, err := service.Create(context.Background(), recruiterID, validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, []string{"Go", "Postgres", "Redis"}, created.Requirements)
}

func TestCreateRejectsEmptyRequirements(t *testing.T) {
	service, _ := newService(t)

	req := validCreateRequest()
	req.Requirements = " , , "

	_, err := service.Create(context.Background(), recruiterID, req)
	require.Error(t, err)
	assert.True(t, errx.IsType(err, errx.TypeValidation))
}

func TestCreateHonorsExplicitExpiration(t *testing.T) {
	service, _ := newService(t)

	expiration := time.Now().Add(3 * 24 * time.Hour)
	req := validCreateRequest()
	req.ExpirationDate = &expiration

	created, err := service.Create(context.Background(), recruiterID, req)
	require.NoError(t, err)
	assert.Equal(t, expiration, created.ExpirationDate)
}

func TestCreateRejectsForeignCompany(t *testing.T) {
	service, _ := newService(t)

	_, err := service.Create(context.Background(), strangerID, validCreateRequest())
	require.Error(t, err)
	assert.True(t, errx.IsType(err, errx.TypeAuthorization))
}

// ============================================================================
// Extend
// ============================================================================

func TestExtendAddsDaysToPriorExpiration(t *testing.T) {
	service, _ := newService(t)

	created, err := service.Create(context.Background(), recruiterID, validCreateRequest())
	require.NoError(t, err)

	result, err := service.Extend(context.Background(), recruiterID, created.ID, 10)
	require.NoError(t, err)

	assert.Equal(t, created.ExpirationDate.Add(10*24*time.Hour), result.NewExpirationDate)
}

func TestExtendRejectsNonPositiveDays(t *testing.T) {
	service, _ := newService(t)

	created, err := service.Create(context.Background(), recruiterID, validCreateRequest())
	require.NoError(t, err)

	for _, days := range []int{0, -3} {
		_, err := service.Extend(context.Background(), recruiterID, created.ID, days)
		require.Error(t, err)
		assert.True(t, errx.IsType(err, errx.TypeValidation))
	}
}

func TestExtendRejectsNonOwner(t *testing.T) {
	service, _ := newService(t)

	created, err := service.Create(context.Background(), recruiterID, validCreateRequest())
	require.NoError(t, err)

	_, err = service.Extend(context.Background(), strangerID, created.ID, 5)
	require.Error(t, err)
	assert.True(t, errx.IsType(err, errx.TypeAuthorization))
}

func TestExtendReactivatesExpiredJob(t *testing.T) {
	service, repo := newService(t)

	created, err := service.Create(context.Background(), recruiterID, validCreateRequest())
	require.NoError(t, err)

	// Force the stored posting into the swept state
	stored := repo.jobs[created.ID]
	stored.ExpirationDate = time.Now().Add(-30 * 24 * time.Hour)
	stored.IsActive = false

	_, err = service.Extend(context.Background(), recruiterID, created.ID, 5)
	require.NoError(t, err)

	assert.True(t, repo.jobs[created.ID].IsActive, "extension reactivates even when the new expiration is still past")
}

// ============================================================================
// Sweep
// ============================================================================

func TestSweepExpiredIsIdempotent(t *testing.T) {
	service, repo := newService(t)

	for i := 0; i < 3; i++ {
		created, err := service.Create(context.Background(), recruiterID, validCreateRequest())
		require.NoError(t, err)
		if i < 2 {
			repo.jobs[created.ID].ExpirationDate = time.Now().Add(-24 * time.Hour)
		}
	}

	count, err := service.SweepExpired(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = service.SweepExpired(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count, "second sweep right after the first deactivates nothing")
}

// ============================================================================
// Update
// ============================================================================

func TestUpdateRejectsPastExpiration(t *testing.T) {
	service, _ := newService(t)

	created, err := service.Create(context.Background(), recruiterID, validCreateRequest())
	require.NoError(t, err)

	past := time.Now().Add(-time.Hour)
	req := job.UpdateJobRequest{
		Title:           "Backend Engineer",
		Description:     "Build and run APIs",
		Requirements:    "Go",
		Salary:          90000,
		Location:        "Remote",
		JobType:         "full-time",
		ExperienceLevel: "senior",
		Positions:       2,
		ExpirationDate:  &past,
	}

	_, err = service.Update(context.Background(), recruiterID, created.ID, req)
	require.Error(t, err)
	assert.True(t, errx.IsType(err, errx.TypeValidation))
}

func TestUpdateRejectsNonOwner(t *testing.T) {
	service, _ := newService(t)

	created, err := service.Create(context.Background(), recruiterID, validCreateRequest())
	require.NoError(t, err)

	req := job.UpdateJobRequest{
		Title:           "New Title",
		Description:     "New description",
		Requirements:    "Go",
		Salary:          1,
		Location:        "Lima",
		JobType:         "part-time",
		ExperienceLevel: "junior",
		Positions:       1,
	}

	_, err = service.Update(context.Background(), strangerID, created.ID, req)
	require.Error(t, err)
	assert.True(t, errx.IsType(err, errx.TypeAuthorization))
}

// ============================================================================
// Reads
// ============================================================================

func TestGetByIDDerivesStatusFromTime(t *testing.T) {
	service, repo := newService(t)

	created, err := service.Create(context.Background(), recruiterID, validCreateRequest())
	require.NoError(t, err)

	// Expired but not yet swept: the stored flag lags, the derived
	// status must not
	repo.jobs[created.ID].ExpirationDate = time.Now().Add(-24 * time.Hour)

	resp, err := service.GetByID(context.Background(), created.ID, "")
	require.NoError(t, err)

	assert.True(t, resp.Status.IsExpired)
	assert.Equal(t, 0, resp.Status.RemainingDays)
	assert.True(t, resp.Status.IsActive, "stored flag reported as-is until the sweep runs")
	assert.Nil(t, resp.HasApplied, "no annotation without a requester")
}

func TestGetByIDAnnotatesHasApplied(t *testing.T) {
	jobRepo := newFakeJobRepo()
	companyRepo := newFakeCompanyRepo()
	companyRepo.companies[companyID] = &company.Company{ID: companyID, OwnerID: recruiterID}

	studentID := kernel.UserID("student-1")
	checker := &fakeApplicationChecker{applied: map[kernel.JobID]map[kernel.UserID]bool{}}
	service := jobsrv.NewJobService(jobRepo, companyRepo, checker)

	created, err := service.Create(context.Background(), recruiterID, validCreateRequest())
	require.NoError(t, err)

	checker.applied[created.ID] = map[kernel.UserID]bool{studentID: true}

	resp, err := service.GetByID(context.Background(), created.ID, studentID)
	require.NoError(t, err)
	require.NotNil(t, resp.HasApplied)
	assert.True(t, *resp.HasApplied)
}

func TestGetByIDNotFound(t *testing.T) {
	service, _ := newService(t)

	_, err := service.GetByID(context.Background(), "missing", "")
	require.Error(t, err)
	assert.True(t, errx.IsType(err, errx.TypeNotFound))
}

func TestListSummarizesBoardByExpiration(t *testing.T) {
	service, repo := newService(t)

	for i := 0; i < 3; i++ {
		created, err := service.Create(context.Background(), recruiterID, validCreateRequest())
		require.NoError(t, err)
		if i == 0 {
			repo.jobs[created.ID].ExpirationDate = time.Now().Add(-24 * time.Hour)
		}
	}

	result, err := service.List(context.Background(), job.SearchFilter{}, kernel.PaginationOptions{Page: 1, PageSize: 10})
	require.NoError(t, err)

	assert.Equal(t, int64(3), result.Stats.Total)
	assert.Equal(t, int64(2), result.Stats.Active)
	assert.Equal(t, int64(1), result.Stats.Expired)
}

func TestListByCreatorAnnotatesApplicationCounts(t *testing.T) {
	service, repo := newService(t)

	created, err := service.Create(context.Background(), recruiterID, validCreateRequest())
	require.NoError(t, err)
	repo.applicationCounts[created.ID] = 4

	result, err := service.ListByCreator(context.Background(), recruiterID, kernel.PaginationOptions{Page: 1, PageSize: 10})
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	require.NotNil(t, result.Items[0].ApplicationCount)
	assert.Equal(t, int64(4), *result.Items[0].ApplicationCount)
}
