package usersrv

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hirehub/hirehub/pkg/errx"
	"github.com/hirehub/hirehub/pkg/fsx"
	"github.com/hirehub/hirehub/pkg/iam/auth"
	"github.com/hirehub/hirehub/pkg/iam/user"
	"github.com/hirehub/hirehub/pkg/kernel"
)

const signedURLTTL = time.Hour

// UserService provides account operations
type UserService struct {
	userRepo     user.Repository
	passwordSvc  user.PasswordService
	tokenService auth.TokenService
	fileSystem   fsx.FileSystem
}

// NewUserService creates a new instance of the user service
func NewUserService(
	userRepo user.Repository,
	passwordSvc user.PasswordService,
	tokenService auth.TokenService,
	fileSystem fsx.FileSystem,
) *UserService {
	return &UserService{
		userRepo:     userRepo,
		passwordSvc:  passwordSvc,
		tokenService: tokenService,
		fileSystem:   fileSystem,
	}
}

// Register creates a new account, optionally storing a profile photo
func (s *UserService) Register(ctx context.Context, req user.RegisterRequest, photo []byte, photoName string) (*user.User, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, errx.Wrap(err, "failed to check existing email", errx.TypeInternal)
	}
	if exists {
		return nil, user.ErrEmailTaken().WithDetail("email", req.Email.String())
	}

	hash, err := s.passwordSvc.Hash(req.Password)
	if err != nil {
		return nil, errx.Wrap(err, "failed to hash password", errx.TypeInternal)
	}

	newUser := &user.User{
		ID:           kernel.NewUserID(uuid.NewString()),
		FullName:     req.FullName,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: hash,
		Role:         req.Role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if len(photo) > 0 {
		path := s.fileSystem.Join("profile-photos", newUser.ID.String(), photoName)
		if err := s.fileSystem.WriteFile(ctx, path, photo); err != nil {
			return nil, errx.Wrap(err, "failed to upload profile photo", errx.TypeExternal)
		}
		newUser.Profile.PhotoURL = kernel.BucketURL(path)
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return nil, errx.Wrap(err, "failed to create user", errx.TypeInternal)
	}

	return newUser, nil
}

// Login verifies credentials and issues an access token
func (s *UserService) Login(ctx context.Context, req user.LoginRequest) (string, *auth.TokenClaims, *user.User, error) {
	account, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", nil, nil, user.ErrInvalidCredentials()
	}

	if err := s.passwordSvc.Compare(account.PasswordHash, req.Password); err != nil {
		return "", nil, nil, user.ErrInvalidCredentials()
	}

	// The login form carries a role; an account can only log in as the
	// role it was registered with.
	if account.Role != req.Role {
		return "", nil, nil, user.ErrRoleMismatch().
			WithDetail("registered_role", account.Role.String()).
			WithDetail("requested_role", req.Role.String())
	}

	token, claims, err := s.tokenService.GenerateAccessToken(account.ID, account.Role)
	if err != nil {
		return "", nil, nil, errx.Wrap(err, "failed to generate token", errx.TypeInternal)
	}

	return token, claims, account, nil
}

// GetByID retrieves an account by ID
func (s *UserService) GetByID(ctx context.Context, userID kernel.UserID) (*user.UserResponse, error) {
	account, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, user.ErrUserNotFound().WithDetail("user_id", userID.String())
	}

	resp := user.ToResponse(account)
	return &resp, nil
}

// UpdateProfile replaces contact details and optionally stores a resume
func (s *UserService) UpdateProfile(ctx context.Context, userID kernel.UserID, req user.UpdateProfileRequest, resume []byte, resumeName string) (*user.User, error) {
	account, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, user.ErrUserNotFound().WithDetail("user_id", userID.String())
	}

	account.UpdateContact(req.FullName, req.Email, req.PhoneNumber)
	account.Profile.Bio = req.Bio
	if req.Skills != "" {
		account.Profile.Skills = splitSkills(req.Skills)
	}

	if len(resume) > 0 {
		path := s.fileSystem.Join("resumes", account.ID.String(), resumeName)
		if err := s.fileSystem.WriteFile(ctx, path, resume); err != nil {
			return nil, errx.Wrap(err, "failed to upload resume", errx.TypeExternal)
		}
		account.AttachResume(kernel.BucketURL(path), resumeName)
	}

	if err := s.userRepo.Update(ctx, userID, account); err != nil {
		return nil, errx.Wrap(err, "failed to update user", errx.TypeInternal)
	}

	return account, nil
}

// ResumeSignedURL returns a time-limited URL for a user's stored resume
func (s *UserService) ResumeSignedURL(ctx context.Context, userID kernel.UserID) (string, string, error) {
	account, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", "", user.ErrUserNotFound().WithDetail("user_id", userID.String())
	}

	if !account.HasResume() {
		return "", "", user.ErrResumeNotFound().WithDetail("user_id", userID.String())
	}

	url, err := s.fileSystem.SignedURL(ctx, account.Profile.ResumeURL.String(), signedURLTTL)
	if err != nil {
		return "", "", errx.Wrap(err, "failed to sign resume url", errx.TypeExternal)
	}

	return url, account.Profile.ResumeName, nil
}

// splitSkills parses a comma-separated skills string, dropping empties
func splitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}
