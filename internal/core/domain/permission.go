package domain

import (
	"fmt"

	"github.com/lcodev/ecom_backend/internal/apperrors"
)

// Capability is a permission derived from a user's role flags.
type Capability string

const (
	CapAuthenticated Capability = "authenticated"
	CapStaff         Capability = "staff"
	CapSuperuser     Capability = "superuser"
)

// Action names an operation guarded by the policy.
type Action string

const (
	ActionUserCreate    Action = "user.create"
	ActionUserList      Action = "user.list"
	ActionUserRead      Action = "user.read"
	ActionUserUpdate    Action = "user.update"
	ActionUserDelete    Action = "user.delete"
	ActionCatalogRead   Action = "catalog.read"
	ActionCatalogWrite  Action = "catalog.write"
	ActionOrderPlace    Action = "order.place"
	ActionOrderListMine Action = "order.list_mine"
	ActionOrderListAll  Action = "order.list_all"
	ActionPaymentToken  Action = "payment.token"
	ActionPaymentCharge Action = "payment.charge"
)

// DefaultRequirements is the static action table. An empty list means public.
func DefaultRequirements() map[Action][]Capability {
	return map[Action][]Capability{
		ActionUserCreate:    {},
		ActionUserList:      {CapAuthenticated, CapStaff},
		ActionUserRead:      {CapAuthenticated},
		ActionUserUpdate:    {CapAuthenticated},
		ActionUserDelete:    {CapAuthenticated, CapSuperuser},
		ActionCatalogRead:   {},
		ActionCatalogWrite:  {CapAuthenticated, CapStaff},
		ActionOrderPlace:    {CapAuthenticated},
		ActionOrderListMine: {CapAuthenticated},
		ActionOrderListAll:  {CapAuthenticated, CapStaff},
		ActionPaymentToken:  {CapAuthenticated},
		ActionPaymentCharge: {CapAuthenticated},
	}
}

// Policy resolves actions to required capabilities. It is built once at
// startup and is read-only afterwards.
type Policy struct {
	requirements map[Action][]Capability
}

// NewPolicy copies the given table into a Policy.
func NewPolicy(requirements map[Action][]Capability) *Policy {
	table := make(map[Action][]Capability, len(requirements))
	for action, caps := range requirements {
		table[action] = append([]Capability(nil), caps...)
	}
	return &Policy{requirements: table}
}

// Requires returns the capabilities needed for action and whether the action is known.
func (p *Policy) Requires(action Action) ([]Capability, bool) {
	caps, ok := p.requirements[action]
	return caps, ok
}

// Authorize checks user against the capabilities required by action.
// A nil user is anonymous. Unknown actions are denied.
func (p *Policy) Authorize(action Action, user *User) error {
	required, ok := p.requirements[action]
	if !ok {
		return fmt.Errorf("unknown action %q: %w", action, apperrors.ErrForbidden)
	}
	granted := user.Capabilities()
	for _, c := range required {
		if granted[c] {
			continue
		}
		if c == CapAuthenticated {
			return fmt.Errorf("action %q requires a session: %w", action, apperrors.ErrUnauthorized)
		}
		return fmt.Errorf("action %q requires %s: %w", action, c, apperrors.ErrForbidden)
	}
	return nil
}
