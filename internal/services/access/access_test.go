package access

import (
	"testing"

	"carvio/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name    string
		actor   Actor
		role    string
		wantErr bool
	}{
		{name: "admin passes admin check", actor: Actor{ID: 1, Role: models.RoleAdmin}, role: models.RoleAdmin},
		{name: "company fails admin check", actor: Actor{ID: 2, Role: models.RoleCompany}, role: models.RoleAdmin, wantErr: true},
		{name: "user fails admin check", actor: Actor{ID: 3, Role: models.RoleUser}, role: models.RoleAdmin, wantErr: true},
		{name: "empty role fails", actor: Actor{ID: 4}, role: models.RoleAdmin, wantErr: true},
		{name: "system actor bypasses the check", actor: SystemActor(1), role: models.RoleAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.actor, tt.role)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnauthorized)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestSystemActor(t *testing.T) {
	actor := SystemActor(42)
	assert.Equal(t, uint(42), actor.ID, "promotions stay attributed to the triggering administrator")
	assert.True(t, actor.System)
}
