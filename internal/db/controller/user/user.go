// Package user assigns roles to user accounts and seeds their capability vector
// from the role's default permissions.
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ContractFlow/ContractFlow-Admin/internal/db/controller/role"
	"github.com/ContractFlow/ContractFlow-Admin/internal/db/models"
)

// Input holds the fields accepted when creating a user.
type Input struct {
	Username string
	Email    string
	RoleName string
}

// Service manages users and their role assignment.
type Service struct {
	db    *gorm.DB
	roles *role.Registry
}

// NewService creates a user service that resolves roles through roles.
func NewService(db *gorm.DB, roles *role.Registry) *Service {
	return &Service{db: db, roles: roles}
}

// Create creates an active user holding the named role.
// The user's permissions are a copy of the role's default permissions.
func (s *Service) Create(ctx context.Context, in Input) (*models.User, error) {
	if s.db == nil {
		return nil, ErrDBNil
	}

	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, ErrUsernameEmpty
	}

	r, err := s.assignable(ctx, in.RoleName)
	if err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)

	var existing models.User

	err = db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil, ErrUserExists
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	u := models.User{
		Active:      true,
		Username:    username,
		Email:       strings.TrimSpace(in.Email),
		RoleID:      r.ID,
		Permissions: r.DefaultPermissions,
	}

	if err = db.Omit(clause.Associations).Create(&u).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info().Uint64("user_id", u.ID).Str("role", r.Name).Msg("user created")

	return &u, nil
}

// Get retrieves a user by ID.
func (s *Service) Get(ctx context.Context, id uint64) (*models.User, error) {
	if s.db == nil {
		return nil, ErrDBNil
	}

	var u models.User

	err := s.db.WithContext(ctx).First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &u, nil
}

// AssignRole moves a user to the named role and re-seeds the user's permissions from it.
func (s *Service) AssignRole(ctx context.Context, userID uint64, roleName string) (*models.User, error) {
	u, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	r, err := s.assignable(ctx, roleName)
	if err != nil {
		return nil, err
	}

	u.RoleID = r.ID
	u.Permissions = r.DefaultPermissions

	if err = s.db.WithContext(ctx).Omit(clause.Associations).Save(u).Error; err != nil {
		return nil, fmt.Errorf("failed to assign role: %w", err)
	}

	log.Info().Uint64("user_id", u.ID).Str("role", r.Name).Msg("role assigned")

	return u, nil
}

func (s *Service) assignable(ctx context.Context, roleName string) (*models.Role, error) {
	r, err := s.roles.GetByName(ctx, roleName)
	if err != nil {
		return nil, err
	}

	if !r.IsActive {
		return nil, ErrRoleInactive
	}

	return r, nil
}
