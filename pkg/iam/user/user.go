package user

import (
	"time"

	"github.com/hirehub/hirehub/pkg/kernel"
)

type User struct {
	ID           kernel.UserID `db:"id" json:"id"`
	FullName     string        `db:"full_name" json:"full_name"`
	Email        kernel.Email  `db:"email" json:"email"`
	PhoneNumber  string        `db:"phone_number" json:"phone_number"`
	PasswordHash string        `db:"password_hash" json:"-"`
	Role         kernel.Role   `db:"role" json:"role"`
	Profile      Profile       `db:"profile" json:"profile"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updated_at"`
}

// Profile holds the optional public details of an account
type Profile struct {
	Bio        string           `json:"bio"`
	Skills     []string         `json:"skills"`
	PhotoURL   kernel.BucketURL `json:"photo_url,omitempty"`
	ResumeURL  kernel.BucketURL `json:"resume_url,omitempty"`
	ResumeName string           `json:"resume_name,omitempty"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsRecruiter checks if the account can manage jobs and companies
func (u *User) IsRecruiter() bool {
	return u.Role == kernel.RoleRecruiter
}

// IsStudent checks if the account can apply to jobs
func (u *User) IsStudent() bool {
	return u.Role == kernel.RoleStudent
}

// HasResume checks if a resume has been uploaded
func (u *User) HasResume() bool {
	return !u.Profile.ResumeURL.IsEmpty()
}

// UpdateContact updates the user's contact details
func (u *User) UpdateContact(fullName string, email kernel.Email, phoneNumber string) {
	u.FullName = fullName
	u.Email = email
	u.PhoneNumber = phoneNumber
	u.UpdatedAt = time.Now()
}

// AttachResume records an uploaded resume location
func (u *User) AttachResume(url kernel.BucketURL, name string) {
	u.Profile.ResumeURL = url
	u.Profile.ResumeName = name
	u.UpdatedAt = time.Now()
}
