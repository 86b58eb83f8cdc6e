// Package role implements the role registry: creation, update, activation,
// listing and deletion of roles together with their consistency rules.
package role

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/ContractFlow/ContractFlow-Admin/internal/db/models"
)

const (
	nameQueryPattern   = "name = ?"
	activeQueryPattern = "is_active = ?"
	roleIDQueryPattern = "role_id = ?"
	orderByName        = "name ASC"
)

// Update holds a partial role change. Nil fields are left as they are.
type Update struct {
	Name        *string
	DisplayName *string
	Description *string
	Color       *models.Color
	IsSystem    *bool
	IsActive    *bool
	// Permissions overrides single capabilities on top of the current defaults.
	Permissions map[models.Capability]bool
}

// Filter narrows List results.
type Filter struct {
	IncludeInactive bool
	Keyword         string
}

// Registry persists roles through gorm.
type Registry struct {
	db *gorm.DB
}

// New creates a role registry on top of db.
func New(db *gorm.DB) *Registry {
	return &Registry{db: db}
}

// Create validates in and persists a new active role.
// Capabilities missing from in.Permissions take their documented defaults.
func (r *Registry) Create(ctx context.Context, in Input) (*models.Role, error) {
	if r.db == nil {
		return nil, ErrDBNil
	}

	in = in.normalized()
	if in.Color == "" {
		in.Color = models.DefaultColor
	}

	perms := models.DefaultPermissions()
	if err := in.check(&perms); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)

	if err := nameFree(db, in.Name, 0); err != nil {
		return nil, err
	}

	role := &models.Role{
		Name:               in.Name,
		DisplayName:        in.DisplayName,
		Description:        in.Description,
		IsSystem:           in.IsSystem,
		IsActive:           true,
		Color:              in.Color,
		DefaultPermissions: perms,
		CreatedBy:          in.CreatedBy,
	}

	if err := db.Create(role).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrRoleNameTaken
		}

		return nil, errors.Wrap(err, "failed to create role")
	}

	log.Info().Uint("role_id", role.ID).Str("role", role.Name).Bool("system", role.IsSystem).Msg("role created")

	return role, nil
}

// Get retrieves a role by its ID.
func (r *Registry) Get(ctx context.Context, id uint) (*models.Role, error) {
	if r.db == nil {
		return nil, ErrDBNil
	}

	return byID(r.db.WithContext(ctx), id)
}

// GetByName retrieves a role by name. The name is normalized before lookup.
func (r *Registry) GetByName(ctx context.Context, name string) (*models.Role, error) {
	if r.db == nil {
		return nil, ErrDBNil
	}

	name = NormalizeName(name)
	if name == "" {
		return nil, ErrRoleNotFound
	}

	var role models.Role

	err := r.db.WithContext(ctx).Where(nameQueryPattern, name).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoleNotFound
	}

	if err != nil {
		return nil, errors.Wrap(err, "failed to query role")
	}

	return &role, nil
}

// Update applies a partial change to the role with the given ID.
// System roles keep their name, and no role may change its system flag.
func (r *Registry) Update(ctx context.Context, id uint, upd Update) (*models.Role, error) { //nolint:cyclop
	if r.db == nil {
		return nil, ErrDBNil
	}

	db := r.db.WithContext(ctx)

	role, err := byID(db, id)
	if err != nil {
		return nil, err
	}

	if upd.IsSystem != nil && *upd.IsSystem != role.IsSystem {
		if role.IsSystem {
			return nil, ErrRoleProtected
		}

		return nil, &ValidationError{Fields: []FieldError{{Field: "isSystem", Tag: tagImmutable, Value: *upd.IsSystem}}}
	}

	in := Input{
		Name:        role.Name,
		DisplayName: role.DisplayName,
		Description: role.Description,
		Color:       role.Color,
		Permissions: upd.Permissions,
	}

	if upd.Name != nil {
		in.Name = *upd.Name
	}

	if upd.DisplayName != nil {
		in.DisplayName = *upd.DisplayName
	}

	if upd.Description != nil {
		in.Description = *upd.Description
	}

	if upd.Color != nil {
		in.Color = *upd.Color
	}

	in = in.normalized()

	if in.Name != role.Name && role.IsSystem {
		return nil, ErrRoleProtected
	}

	perms := role.DefaultPermissions
	if err = in.check(&perms); err != nil {
		return nil, err
	}

	if in.Name != role.Name {
		if err = nameFree(db, in.Name, role.ID); err != nil {
			return nil, err
		}
	}

	role.Name = in.Name
	role.DisplayName = in.DisplayName
	role.Description = in.Description
	role.Color = in.Color
	role.DefaultPermissions = perms

	if upd.IsActive != nil {
		role.IsActive = *upd.IsActive
	}

	if err = db.Save(role).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrRoleNameTaken
		}

		return nil, errors.Wrap(err, "failed to update role")
	}

	log.Info().Uint("role_id", role.ID).Str("role", role.Name).Msg("role updated")

	return role, nil
}

// Deactivate marks a role as no longer assignable. Users already holding it keep it.
func (r *Registry) Deactivate(ctx context.Context, id uint) (*models.Role, error) {
	return r.setActive(ctx, id, false)
}

// Activate makes a role assignable again.
func (r *Registry) Activate(ctx context.Context, id uint) (*models.Role, error) {
	return r.setActive(ctx, id, true)
}

func (r *Registry) setActive(ctx context.Context, id uint, active bool) (*models.Role, error) {
	if r.db == nil {
		return nil, ErrDBNil
	}

	db := r.db.WithContext(ctx)

	role, err := byID(db, id)
	if err != nil {
		return nil, err
	}

	if role.IsActive == active {
		return role, nil
	}

	if err = db.Model(role).Update("is_active", active).Error; err != nil {
		return nil, errors.Wrap(err, "failed to change role state")
	}

	role.IsActive = active

	log.Info().Uint("role_id", role.ID).Str("role", role.Name).Bool("active", active).Msg("role state changed")

	return role, nil
}

// ListActive returns all assignable roles ordered by name.
func (r *Registry) ListActive(ctx context.Context) ([]models.Role, error) {
	return r.List(ctx, Filter{})
}

// List returns roles ordered by name. Inactive roles are skipped unless requested.
func (r *Registry) List(ctx context.Context, filter Filter) ([]models.Role, error) {
	if r.db == nil {
		return nil, ErrDBNil
	}

	tx := r.db.WithContext(ctx).Model(&models.Role{})

	if !filter.IncludeInactive {
		tx = tx.Where(activeQueryPattern, true)
	}

	if keyword := strings.ToLower(strings.TrimSpace(filter.Keyword)); keyword != "" {
		like := "%" + keyword + "%"
		tx = tx.Where("(LOWER(name) LIKE ? OR LOWER(display_name) LIKE ?)", like, like)
	}

	roles := make([]models.Role, 0)
	if err := tx.Order(orderByName).Find(&roles).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list roles")
	}

	return roles, nil
}

// Delete removes a role permanently. System roles and roles still held by users are refused.
func (r *Registry) Delete(ctx context.Context, id uint) error {
	if r.db == nil {
		return ErrDBNil
	}

	var name string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		role, err := byID(tx, id)
		if err != nil {
			return err
		}

		if role.IsSystem {
			return ErrRoleProtected
		}

		var holders int64
		if err = tx.Model(&models.User{}).Where(roleIDQueryPattern, role.ID).Count(&holders).Error; err != nil {
			return errors.Wrap(err, "failed to count role holders")
		}

		if holders > 0 {
			return ErrRoleInUse
		}

		result := tx.Delete(&models.Role{}, role.ID)
		if result.Error != nil {
			return errors.Wrap(result.Error, "failed to delete role")
		}

		if result.RowsAffected == 0 {
			return ErrRoleNotFound
		}

		name = role.Name

		return nil
	})
	if err != nil {
		return err
	}

	log.Info().Uint("role_id", id).Str("role", name).Msg("role deleted")

	return nil
}

func byID(db *gorm.DB, id uint) (*models.Role, error) {
	var role models.Role

	err := db.First(&role, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoleNotFound
	}

	if err != nil {
		return nil, errors.Wrap(err, "failed to query role")
	}

	return &role, nil
}

// nameFree fails with ErrRoleNameTaken if a role other than exceptID uses name.
// The unique index on roles.name still decides concurrent inserts.
func nameFree(db *gorm.DB, name string, exceptID uint) error {
	var count int64

	tx := db.Model(&models.Role{}).Where(nameQueryPattern, name)
	if exceptID != 0 {
		tx = tx.Where("id <> ?", exceptID)
	}

	if err := tx.Count(&count).Error; err != nil {
		return errors.Wrap(err, "failed to check role name")
	}

	if count > 0 {
		return ErrRoleNameTaken
	}

	return nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := err.Error()

	return strings.Contains(msg, "UNIQUE constraint failed") || // sqlite
		strings.Contains(msg, "Duplicate entry") || // mysql
		strings.Contains(msg, "duplicate key value") // postgres
}
