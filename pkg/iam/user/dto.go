package user

import (
	"time"

	"github.com/hirehub/hirehub/pkg/kernel"
)

// RegisterRequest - DTO for creating an account
type RegisterRequest struct {
	FullName    string       `json:"fullname" validate:"required"`
	Email       kernel.Email `json:"email" validate:"required,email"`
	PhoneNumber string       `json:"phone_number" validate:"required"`
	Password    string       `json:"password" validate:"required,min=6"`
	Role        kernel.Role  `json:"role" validate:"required,oneof=student recruiter"`
}

// LoginRequest - DTO for authenticating an account
type LoginRequest struct {
	Email    kernel.Email `json:"email" validate:"required,email"`
	Password string       `json:"password" validate:"required"`
	Role     kernel.Role  `json:"role" validate:"required,oneof=student recruiter"`
}

// UpdateProfileRequest - DTO for updating profile details.
// Skills arrive as a comma-separated string, same as job requirements.
type UpdateProfileRequest struct {
	FullName    string       `json:"fullname" validate:"required"`
	Email       kernel.Email `json:"email" validate:"required,email"`
	PhoneNumber string       `json:"phone_number" validate:"required"`
	Bio         string       `json:"bio,omitempty"`
	Skills      string       `json:"skills,omitempty"`
}

// UserResponse - DTO for returning account data
type UserResponse struct {
	ID          kernel.UserID `json:"id"`
	FullName    string        `json:"full_name"`
	Email       kernel.Email  `json:"email"`
	PhoneNumber string        `json:"phone_number"`
	Role        kernel.Role   `json:"role"`
	Profile     Profile       `json:"profile"`
	CreatedAt   time.Time     `json:"created_at"`
}

// LoginResponse - DTO returned on successful login
type LoginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// ToResponse converts a User entity to its response DTO
func ToResponse(u *User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		FullName:    u.FullName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		Profile:     u.Profile,
		CreatedAt:   u.CreatedAt,
	}
}
