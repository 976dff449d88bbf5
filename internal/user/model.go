package user

import "time"

// User represents a device-bound profile. There are no credentials: a profile
// belongs to the device that created it.
type User struct {
	ID          string    `json:"id"`
	DeviceID    string    `json:"device_id"`
	DisplayName string    `json:"display_name"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
