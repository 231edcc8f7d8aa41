package users

import (
	"context"
	"errors"
	"strings"

	"github.com/classmart/classmart-backend/pkg/config"
	"github.com/classmart/classmart-backend/pkg/db"
	"github.com/classmart/classmart-backend/pkg/db/models"
	pkgerrors "github.com/classmart/classmart-backend/pkg/errors"
	"github.com/classmart/classmart-backend/pkg/security"
	"gorm.io/gorm"
)

// ServiceParams groups dependencies for the user service.
type ServiceParams struct {
	Repo        *Repository
	PasswordCfg config.PasswordConfig
}

// Service exposes business rules for user administration.
type Service interface {
	Create(ctx context.Context, input CreateUserInput) (UserDTO, error)
	Get(ctx context.Context, id int64) (UserDTO, error)
	List(ctx context.Context) ([]UserDTO, error)
	Search(ctx context.Context, criteria, value string) ([]UserDTO, error)
	Update(ctx context.Context, input UpdateUserInput) (UserDTO, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo        *Repository
	passwordCfg config.PasswordConfig
}

// NewService builds a user service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user repo is required")
	}
	return &service{repo: params.Repo, passwordCfg: params.PasswordCfg}, nil
}

func (s *service) Create(ctx context.Context, input CreateUserInput) (UserDTO, error) {
	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := models.User{
		Username:     strings.TrimSpace(input.Username),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hash,
		IsStaff:      input.IsStaff,
		IsSuperuser:  input.IsSuperuser,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, &user); err != nil {
		if db.IsUniqueViolation(err, "usuarios_username_key", "usuarios_email_key") {
			return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "username or email already in use")
		}
		return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}
	return ToDTO(user), nil
}

func (s *service) Get(ctx context.Context, id int64) (UserDTO, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return ToDTO(*user), nil
}

func (s *service) List(ctx context.Context) ([]UserDTO, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	return toDTOs(records), nil
}

func (s *service) Search(ctx context.Context, criteria, value string) ([]UserDTO, error) {
	if criteria == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "criteria is required")
	}
	records, err := s.repo.Search(ctx, criteria, value)
	if err != nil {
		if _, ok := searchableColumns[criteria]; !ok {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unsupported search criteria")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search users")
	}
	return toDTOs(records), nil
}

func (s *service) Update(ctx context.Context, input UpdateUserInput) (UserDTO, error) {
	user, err := s.repo.FindByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	user.Username = strings.TrimSpace(input.Username)
	user.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Password != nil && *input.Password != "" {
		hash, err := security.HashPassword(*input.Password, s.passwordCfg)
		if err != nil {
			return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		user.PasswordHash = hash
	}
	if input.IsStaff != nil {
		user.IsStaff = *input.IsStaff
	}
	if input.IsSuperuser != nil {
		user.IsSuperuser = *input.IsSuperuser
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if db.IsUniqueViolation(err, "usuarios_username_key", "usuarios_email_key") {
			return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "username or email already in use")
		}
		return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}
	return ToDTO(*user), nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete user")
	}
	return nil
}

// ToDTO converts a persisted user into its public shape.
func ToDTO(user models.User) UserDTO {
	return UserDTO{
		ID:            user.ID,
		Username:      user.Username,
		Email:         user.Email,
		IsStaff:       user.IsStaff,
		IsSuperuser:   user.IsSuperuser,
		EmailVerified: user.EmailVerified,
		IsActive:      user.IsActive,
		LastLoginAt:   user.LastLoginAt,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}

func toDTOs(records []models.User) []UserDTO {
	dtos := make([]UserDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, ToDTO(record))
	}
	return dtos
}
