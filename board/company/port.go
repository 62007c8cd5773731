package company

import (
	"context"

	"github.com/hirehub/hirehub/pkg/kernel"
)

// Repository defines the persistence port for companies
type Repository interface {
	Create(ctx context.Context, companyEntity *Company) error
	Update(ctx context.Context, id kernel.CompanyID, companyEntity *Company) error
	GetByID(ctx context.Context, id kernel.CompanyID) (*Company, error)
	GetByName(ctx context.Context, name string) (*Company, error)
	ListByOwner(ctx context.Context, ownerID kernel.UserID) ([]Company, error)
}
