package trip

import "time"

// CreateTripRequest represents the request to create a new trip
type CreateTripRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description *string `json:"description,omitempty"`
	StartDate   *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate     *string `json:"end_date,omitempty"`   // YYYY-MM-DD
}

// UpdateTripRequest represents the request to update a trip
type UpdateTripRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty"`
	CoverImage  *string `json:"cover_image,omitempty"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
}

// JoinTripRequest represents the request to join a trip via its code
type JoinTripRequest struct {
	Code string `json:"code" validate:"required,len=6"`
}

// TripResponse represents the response for a trip
type TripResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description *string           `json:"description,omitempty"`
	CoverImage  *string           `json:"cover_image,omitempty"`
	StartDate   *string           `json:"start_date,omitempty"`
	EndDate     *string           `json:"end_date,omitempty"`
	JoinCode    string            `json:"join_code"`
	CreatedBy   string            `json:"created_by"`
	CreatedAt   string            `json:"created_at"`
	MemberCount int               `json:"member_count,omitempty"`
	Members     []*MemberResponse `json:"members,omitempty"`
}

// MemberResponse represents a member in a trip response
type MemberResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	DisplayName string     `json:"display_name"`
	AvatarURL   *string    `json:"avatar_url,omitempty"`
	Role        MemberRole `json:"role"`
	JoinedAt    string     `json:"joined_at"`
}

// ToResponse converts a Trip model to a TripResponse DTO
func (t *Trip) ToResponse() *TripResponse {
	resp := &TripResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		CoverImage:  t.CoverImage,
		JoinCode:    t.JoinCode,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
		MemberCount: t.MemberCount,
	}
	if t.StartDate != nil {
		s := t.StartDate.Format("2006-01-02")
		resp.StartDate = &s
	}
	if t.EndDate != nil {
		s := t.EndDate.Format("2006-01-02")
		resp.EndDate = &s
	}
	return resp
}

// ToResponse converts a TripMember model to a MemberResponse DTO
func (m *TripMember) ToResponse() *MemberResponse {
	return &MemberResponse{
		ID:          m.ID,
		UserID:      m.UserID,
		DisplayName: m.DisplayName,
		AvatarURL:   m.AvatarURL,
		Role:        m.Role,
		JoinedAt:    m.JoinedAt.UTC().Format(time.RFC3339),
	}
}
