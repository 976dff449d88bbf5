package user

import "time"

// RegisterRequest represents the request to create a profile during onboarding
type RegisterRequest struct {
	DisplayName string `json:"display_name" validate:"required,min=1,max=50"`
	DeviceID    string `json:"device_id,omitempty"` // generated when absent
}

// UpdateUserRequest represents the request to update a profile
type UpdateUserRequest struct {
	DisplayName *string `json:"display_name,omitempty" validate:"omitempty,min=1,max=50"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}

// UserResponse represents the response for a user
type UserResponse struct {
	ID          string  `json:"id"`
	DeviceID    string  `json:"device_id"`
	DisplayName string  `json:"display_name"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// RegisterResponse carries the new profile and its device token
type RegisterResponse struct {
	User  *UserResponse `json:"user"`
	Token string        `json:"token"`
}

// ToResponse converts a User model to a UserResponse DTO
func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		DeviceID:    u.DeviceID,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		CreatedAt:   u.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   u.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
