package models

import "github.com/golang-jwt/jwt/v5"

// Application permissions
const (
	// Admin permissions
	PermissionReadAdmin  = "admin:read"
	PermissionWriteAdmin = "admin:write"

	// Review permissions
	PermissionReviewRead   = "review:read"
	PermissionReviewDecide = "review:decide"

	// Item permissions
	PermissionItemRead   = "item:read"
	PermissionItemWrite  = "item:write"
	PermissionItemSubmit = "item:submit"

	// Assignment permissions
	PermissionAssignmentRead  = "assignment:read"
	PermissionAssignmentWrite = "assignment:write"

	// Account permissions
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
			PermissionReviewRead,
			PermissionReviewDecide,
			PermissionItemRead,
			PermissionAssignmentRead,
			PermissionAssignmentWrite,
			PermissionChangePassword,
			PermissionReadAdmin,
			PermissionWriteAdmin,
		}
	case RoleMentor:
		return []string{
			PermissionReviewRead,
			PermissionReviewDecide,
			PermissionItemRead,
			PermissionAssignmentRead,
			PermissionChangePassword,
		}
	case RoleStudent:
		return []string{
			PermissionReviewRead,
			PermissionItemRead,
			PermissionItemWrite,
			PermissionItemSubmit,
			PermissionChangePassword,
		}
	default:
		return []string{}
	}
}
