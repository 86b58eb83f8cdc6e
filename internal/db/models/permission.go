package models

import (
	"errors"
	"fmt"
)

// Capability names a single boolean authorization flag.
// The set is closed: only the constants below are valid.
type Capability string

const (
	// CapCreateContract allows drafting new contracts.
	CapCreateContract Capability = "canCreateContract"
	// CapEditDraft allows editing contracts that are still drafts.
	CapEditDraft Capability = "canEditDraft"
	// CapEditSubmitted allows editing contracts already submitted for review.
	CapEditSubmitted Capability = "canEditSubmitted"
	// CapDeleteContract allows deleting contracts.
	CapDeleteContract Capability = "canDeleteContract"
	// CapSubmitForReview allows moving a draft into review.
	CapSubmitForReview Capability = "canSubmitForReview"
	// CapApproveContract allows approving a contract under review.
	CapApproveContract Capability = "canApproveContract"
	// CapRejectContract allows rejecting a contract under review.
	CapRejectContract Capability = "canRejectContract"
	// CapSignContract allows signing approved contracts.
	CapSignContract Capability = "canSignContract"
	// CapViewOwnContracts allows viewing contracts owned by the user.
	CapViewOwnContracts Capability = "canViewOwnContracts"
	// CapViewAllContracts allows viewing every contract.
	CapViewAllContracts Capability = "canViewAllContracts"
	// CapExportContracts allows exporting contracts.
	CapExportContracts Capability = "canExportContracts"
	// CapManageTemplates allows managing contract templates.
	CapManageTemplates Capability = "canManageTemplates"
	// CapManageUsers allows managing user accounts.
	CapManageUsers Capability = "canManageUsers"
	// CapManageRoles allows managing roles and their default permissions.
	CapManageRoles Capability = "canManageRoles"
	// CapViewAuditLogs allows reading the audit trail.
	CapViewAuditLogs Capability = "canViewAuditLogs"
	// CapConfigureWorkflow allows changing the approval workflow.
	CapConfigureWorkflow Capability = "canConfigureWorkflow"
	// CapViewReports allows viewing reports.
	CapViewReports Capability = "canViewReports"
	// CapViewDashboard allows viewing the dashboard.
	CapViewDashboard Capability = "canViewDashboard"
)

// ErrUnknownCapability is returned when a capability name is not part of the closed set.
var ErrUnknownCapability = errors.New("unknown capability")

// Capabilities lists every capability in display order.
var Capabilities = []Capability{ //nolint:gochecknoglobals
	CapCreateContract,
	CapEditDraft,
	CapEditSubmitted,
	CapDeleteContract,
	CapSubmitForReview,
	CapApproveContract,
	CapRejectContract,
	CapSignContract,
	CapViewOwnContracts,
	CapViewAllContracts,
	CapExportContracts,
	CapManageTemplates,
	CapManageUsers,
	CapManageRoles,
	CapViewAuditLogs,
	CapConfigureWorkflow,
	CapViewReports,
	CapViewDashboard,
}

// Valid reports whether c is one of the known capabilities.
func (c Capability) Valid() bool {
	var p Permissions

	return p.field(c) != nil
}

// Permissions is the capability vector carried by a role (as defaults) and
// copied onto a user at assignment time. It is stored as one boolean column
// per capability.
type Permissions struct {
	CanCreateContract    bool `gorm:"not null" json:"canCreateContract"`
	CanEditDraft         bool `gorm:"not null" json:"canEditDraft"`
	CanEditSubmitted     bool `gorm:"not null" json:"canEditSubmitted"`
	CanDeleteContract    bool `gorm:"not null" json:"canDeleteContract"`
	CanSubmitForReview   bool `gorm:"not null" json:"canSubmitForReview"`
	CanApproveContract   bool `gorm:"not null" json:"canApproveContract"`
	CanRejectContract    bool `gorm:"not null" json:"canRejectContract"`
	CanSignContract      bool `gorm:"not null" json:"canSignContract"`
	CanViewOwnContracts  bool `gorm:"not null" json:"canViewOwnContracts"`
	CanViewAllContracts  bool `gorm:"not null" json:"canViewAllContracts"`
	CanExportContracts   bool `gorm:"not null" json:"canExportContracts"`
	CanManageTemplates   bool `gorm:"not null" json:"canManageTemplates"`
	CanManageUsers       bool `gorm:"not null" json:"canManageUsers"`
	CanManageRoles       bool `gorm:"not null" json:"canManageRoles"`
	CanViewAuditLogs     bool `gorm:"not null" json:"canViewAuditLogs"`
	CanConfigureWorkflow bool `gorm:"not null" json:"canConfigureWorkflow"`
	CanViewReports       bool `gorm:"not null" json:"canViewReports"`
	CanViewDashboard     bool `gorm:"not null" json:"canViewDashboard"`
}

// DefaultPermissions returns the vector a role gets when no capability is specified.
// Everything is denied except viewing own contracts and the dashboard.
func DefaultPermissions() Permissions {
	return Permissions{
		CanViewOwnContracts: true,
		CanViewDashboard:    true,
	}
}

// FullPermissions returns a vector with every capability granted.
func FullPermissions() Permissions {
	var p Permissions

	for _, c := range Capabilities {
		*p.field(c) = true
	}

	return p
}

// Has reports whether capability c is granted. Unknown capabilities are never granted.
func (p Permissions) Has(c Capability) bool {
	f := p.field(c)

	return f != nil && *f
}

// Set grants or revokes capability c.
func (p *Permissions) Set(c Capability, granted bool) error {
	f := p.field(c)
	if f == nil {
		return fmt.Errorf("%w: %q", ErrUnknownCapability, string(c))
	}

	*f = granted

	return nil
}

// Apply sets every capability in overrides. Nothing is changed if any key is unknown.
func (p *Permissions) Apply(overrides map[Capability]bool) error {
	next := *p

	for c, granted := range overrides {
		if err := next.Set(c, granted); err != nil {
			return err
		}
	}

	*p = next

	return nil
}

// Granted returns the granted capabilities in display order.
func (p Permissions) Granted() []Capability {
	out := make([]Capability, 0, len(Capabilities))

	for _, c := range Capabilities {
		if p.Has(c) {
			out = append(out, c)
		}
	}

	return out
}

func (p *Permissions) field(c Capability) *bool { //nolint:cyclop,gocyclo
	switch c {
	case CapCreateContract:
		return &p.CanCreateContract
	case CapEditDraft:
		return &p.CanEditDraft
	case CapEditSubmitted:
		return &p.CanEditSubmitted
	case CapDeleteContract:
		return &p.CanDeleteContract
	case CapSubmitForReview:
		return &p.CanSubmitForReview
	case CapApproveContract:
		return &p.CanApproveContract
	case CapRejectContract:
		return &p.CanRejectContract
	case CapSignContract:
		return &p.CanSignContract
	case CapViewOwnContracts:
		return &p.CanViewOwnContracts
	case CapViewAllContracts:
		return &p.CanViewAllContracts
	case CapExportContracts:
		return &p.CanExportContracts
	case CapManageTemplates:
		return &p.CanManageTemplates
	case CapManageUsers:
		return &p.CanManageUsers
	case CapManageRoles:
		return &p.CanManageRoles
	case CapViewAuditLogs:
		return &p.CanViewAuditLogs
	case CapConfigureWorkflow:
		return &p.CanConfigureWorkflow
	case CapViewReports:
		return &p.CanViewReports
	case CapViewDashboard:
		return &p.CanViewDashboard
	}

	return nil
}
