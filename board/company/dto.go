package company

// RegisterCompanyRequest - DTO for registering a company
type RegisterCompanyRequest struct {
	Name string `json:"company_name" validate:"required"`
}

// UpdateCompanyRequest - DTO for updating company details.
// Blank fields leave the existing value untouched.
type UpdateCompanyRequest struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Website     string `json:"website,omitempty" validate:"omitempty,url"`
	Location    string `json:"location,omitempty"`
}
