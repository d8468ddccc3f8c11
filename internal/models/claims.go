package models

import "github.com/golang-jwt/jwt/v5"

// Application permissions
const (
	// Admin permissions
	PermissionReadAdmin  = "admin:read"
	PermissionWriteAdmin = "admin:write"

	// Verification permissions
	PermissionVerificationReview = "verification:review"
	PermissionCompanyTransition  = "company:transition"

	// Company permissions
	PermissionCompanyRead   = "company:read"
	PermissionCompanyWrite  = "company:write"
	PermissionListingRead   = "listing:read"
	PermissionListingWrite  = "listing:write"
	PermissionDocumentWrite = "document:write"

	// User permissions
	PermissionChangePassword = "user:change-password"
)

type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uint     `json:"user_id"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	Permissions  []string `json:"permissions"`
	TokenVersion int      `json:"token_version"`
}

// HasPermission checks if the claims include a specific permission
func (c *UserClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case RoleAdmin:
		return []string{
			PermissionReadAdmin,
			PermissionWriteAdmin,
			PermissionVerificationReview,
			PermissionCompanyTransition,
			PermissionCompanyRead,
			PermissionCompanyWrite,
			PermissionListingRead,
			PermissionListingWrite,
			PermissionChangePassword,
		}
	case RoleCompany:
		return []string{
			PermissionCompanyRead,
			PermissionCompanyWrite,
			PermissionListingRead,
			PermissionListingWrite,
			PermissionDocumentWrite,
			PermissionChangePassword,
		}
	case RoleUser:
		return []string{
			PermissionListingRead,
			PermissionChangePassword,
		}
	default:
		return []string{}
	}
}
