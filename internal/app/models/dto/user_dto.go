package dto

// UpdateProfileRequest represents profile update data
type UpdateProfileRequest struct {
	DisplayName string  `json:"displayName" binding:"required"`
	Department  *string `json:"department"`
	AvatarURL   *string `json:"avatarUrl"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// UpdateRoleRequest represents an admin role promotion request
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	Users      []UserResponse `json:"users"`
	Pagination PaginationInfo `json:"pagination"`
}
