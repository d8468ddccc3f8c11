package company

import (
	"context"

	"carvio/internal/models"
)

// Action is an administrator-requested status change. Approve is overloaded:
// its effect depends on the company's current state (start review, final
// approval, or reactivation).
type Action string

const (
	ActionApprove    Action = "approve"
	ActionReject     Action = "reject"
	ActionSuspend    Action = "suspend"
	ActionReactivate Action = "reactivate"
)

// Valid reports whether a is a known action.
func (a Action) Valid() bool {
	switch a {
	case ActionApprove, ActionReject, ActionSuspend, ActionReactivate:
		return true
	}
	return false
}

// Notifier is told about verification decisions so the company owner can be
// informed. Delivery is fire-and-forget from this service's point of view.
type Notifier interface {
	VerificationDecision(ctx context.Context, company *models.RentalCompany, reason string)
}
