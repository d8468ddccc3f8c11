// Package access is the authorization guard in front of every mutating
// verification operation. HTTP middleware performs the same role check, but
// the guard here is the authoritative one: services never trust a caller to
// have gone through the router.
package access

import (
	"errors"
	"fmt"

	"carvio/internal/models"
)

var ErrUnauthorized = errors.New("unauthorized")

// Actor is the identity performing an operation. System actors are internal
// callers (the gating rule); they bypass the role check but are still
// recorded as the acting identity in audit entries.
type Actor struct {
	ID     uint
	Role   string
	System bool
}

// SystemActor returns the internal actor used for gating-rule promotions,
// attributed to the administrator whose document approval triggered them.
func SystemActor(adminID uint) Actor {
	return Actor{ID: adminID, Role: models.RoleAdmin, System: true}
}

// Authorize passes when the actor holds the required role, or is an internal
// system actor.
func Authorize(actor Actor, requiredRole string) error {
	if actor.System {
		return nil
	}
	if actor.Role != requiredRole {
		return fmt.Errorf("%w: role %q required", ErrUnauthorized, requiredRole)
	}
	return nil
}
