package company

import (
	"time"

	"github.com/hirehub/hirehub/pkg/kernel"
)

// Company is a recruiter-owned organization that jobs are posted under
type Company struct {
	ID          kernel.CompanyID `json:"id" db:"id"`
	Name        string           `json:"name" db:"name"`
	Description string           `json:"description" db:"description"`
	Website     string           `json:"website" db:"website"`
	Location    string           `json:"location" db:"location"`
	LogoURL     kernel.BucketURL `json:"logo_url" db:"logo_url"`
	OwnerID     kernel.UserID    `json:"owner_id" db:"owner_id"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at" db:"updated_at"`
}

// IsOwnedBy reports whether the given user registered this company
func (c *Company) IsOwnedBy(userID kernel.UserID) bool {
	return c.OwnerID == userID
}

// UpdateDetails replaces the mutable fields, keeping blanks untouched
func (c *Company) UpdateDetails(name, description, website, location string) {
	if name != "" {
		c.Name = name
	}
	if description != "" {
		c.Description = description
	}
	if website != "" {
		c.Website = website
	}
	if location != "" {
		c.Location = location
	}
	c.UpdatedAt = time.Now()
}
