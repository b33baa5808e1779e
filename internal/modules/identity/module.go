// Package identity is the portal module for account models.
package identity

import (
	"github.com/stratahub/strata-portal/internal/registry"
	"github.com/stratahub/strata-portal/internal/types"
)

// Register declares the module's model configurations. Called once at startup.
func Register(reg *registry.Registry) error {
	return reg.Register(&registry.ModelConfig{
		Model:       &types.User{},
		DisplayName: "User",
		Description: "Portal account",
		Fields:      []string{"email", "first_name", "last_name"},
		TableFields: []string{"email", "first_name", "last_name", "created_at"},
	})
}
