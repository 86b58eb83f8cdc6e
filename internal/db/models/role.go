package models

import "time"

// Color is the display color of a role badge. It has no behavioral effect.
type Color string

// Role colors. Any other value is rejected.
const (
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorPurple Color = "purple"
	ColorAmber  Color = "amber"
	ColorRed    Color = "red"
	ColorGray   Color = "gray"
	ColorTeal   Color = "teal"
	ColorIndigo Color = "indigo"
	ColorPink   Color = "pink"
	ColorOrange Color = "orange"
)

// DefaultColor is used when a role is created without a color.
const DefaultColor = ColorGray

// Colors lists the allowed role colors.
var Colors = []Color{ //nolint:gochecknoglobals
	ColorBlue, ColorGreen, ColorPurple, ColorAmber, ColorRed,
	ColorGray, ColorTeal, ColorIndigo, ColorPink, ColorOrange,
}

// Valid reports whether c is one of the allowed colors.
func (c Color) Valid() bool {
	for _, known := range Colors {
		if c == known {
			return true
		}
	}

	return false
}

// Role represents a named bundle of default permissions in the role-based access control (RBAC) system.
// Its DefaultPermissions are copied onto a user when the role is assigned.
type Role struct {
	// ID is the unique identifier for the role.
	ID uint `gorm:"primaryKey" json:"id"`
	// Name is the unique, lowercased identifier used by authorization checks (e.g., "admin").
	Name string `gorm:"uniqueIndex;size:100;not null" json:"name"`
	// DisplayName is the human-readable label shown in the admin UI.
	DisplayName string `gorm:"size:100;not null" json:"displayName"`
	// Description provides a human-readable description of the role's purpose.
	Description string `gorm:"size:255;not null" json:"description"`
	// IsSystem indicates if this is a system role that cannot be deleted.
	IsSystem bool `gorm:"not null;default:false" json:"isSystem"`
	// IsActive indicates whether the role can be assigned to users.
	IsActive bool `gorm:"not null;index:idx_roles_is_active" json:"isActive"`
	// Color is the badge color of the role.
	Color Color `gorm:"type:varchar(20);not null" json:"color"`
	// DefaultPermissions is the capability vector seeded onto users assigned this role.
	DefaultPermissions Permissions `gorm:"embedded;embeddedPrefix:perm_" json:"defaultPermissions"`
	// CreatedBy is the ID of the user who created the role, nil for seeded roles.
	CreatedBy *uint64 `gorm:"index" json:"createdBy,omitempty"`
	// CreatedAt is the timestamp when the role was created (managed by GORM).
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the timestamp when the role was last updated (managed by GORM).
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the database table name for the Role model.
// This overrides GORM's default pluralized table naming.
func (Role) TableName() string {
	return "roles"
}
