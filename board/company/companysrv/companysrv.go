package companysrv

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hirehub/hirehub/board/company"
	"github.com/hirehub/hirehub/pkg/errx"
	"github.com/hirehub/hirehub/pkg/fsx"
	"github.com/hirehub/hirehub/pkg/kernel"
)

// CompanyService provides company registry operations
type CompanyService struct {
	companyRepo company.Repository
	fileSystem  fsx.FileSystem
}

// NewCompanyService creates a new instance of the company service
func NewCompanyService(companyRepo company.Repository, fileSystem fsx.FileSystem) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		fileSystem:  fileSystem,
	}
}

// Register creates a new company owned by the requesting recruiter
func (s *CompanyService) Register(ctx context.Context, ownerID kernel.UserID, req company.RegisterCompanyRequest) (*company.Company, error) {
	existing, err := s.companyRepo.GetByName(ctx, req.Name)
	if err != nil && !errx.IsType(err, errx.TypeNotFound) {
		return nil, errx.Wrap(err, "failed to check company name", errx.TypeInternal)
	}
	if existing != nil {
		return nil, company.ErrNameTaken().WithDetail("name", req.Name)
	}

	newCompany := &company.Company{
		ID:        kernel.NewCompanyID(uuid.NewString()),
		Name:      req.Name,
		OwnerID:   ownerID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.companyRepo.Create(ctx, newCompany); err != nil {
		return nil, errx.Wrap(err, "failed to create company", errx.TypeInternal)
	}

	return newCompany, nil
}

// GetByID retrieves a company
func (s *CompanyService) GetByID(ctx context.Context, companyID kernel.CompanyID) (*company.Company, error) {
	found, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, company.ErrCompanyNotFound().WithDetail("company_id", companyID.String())
	}
	return found, nil
}

// ListOwned lists the companies registered by a recruiter
func (s *CompanyService) ListOwned(ctx context.Context, ownerID kernel.UserID) ([]company.Company, error) {
	companies, err := s.companyRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list companies", errx.TypeInternal)
	}
	return companies, nil
}

// Update modifies company details, optionally replacing the logo.
// Only the owning recruiter may update a company.
func (s *CompanyService) Update(ctx context.Context, requesterID kernel.UserID, companyID kernel.CompanyID, req company.UpdateCompanyRequest, logo []byte, logoName string) (*company.Company, error) {
	found, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, company.ErrCompanyNotFound().WithDetail("company_id", companyID.String())
	}

	if !found.IsOwnedBy(requesterID) {
		return nil, company.ErrNotOwner().WithDetail("company_id", companyID.String())
	}

	found.UpdateDetails(req.Name, req.Description, req.Website, req.Location)

	if len(logo) > 0 {
		path := s.fileSystem.Join("company-logos", found.ID.String(), logoName)
		if err := s.fileSystem.WriteFile(ctx, path, logo); err != nil {
			return nil, errx.Wrap(err, "failed to upload company logo", errx.TypeExternal)
		}
		found.LogoURL = kernel.BucketURL(path)
	}

	if err := s.companyRepo.Update(ctx, companyID, found); err != nil {
		return nil, errx.Wrap(err, "failed to update company", errx.TypeInternal)
	}

	return found, nil
}
