package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/tripmate/api/pkg/token"
)

// Common errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDeviceAlreadyBound = errors.New("device already has a profile")
)

// Service handles user business logic
type Service struct {
	repo      *Repository
	jwtSecret string
}

// NewService creates a new user service
func NewService(repo *Repository, jwtSecret string) *Service {
	return &Service{repo: repo, jwtSecret: jwtSecret}
}

// generateDeviceID makes an opaque identifier for a device that did not
// supply one
func generateDeviceID() string {
	return "device_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Register creates a device-bound profile and issues its device token
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*User, string, error) {
	deviceID := req.DeviceID
	if deviceID == "" {
		deviceID = generateDeviceID()
	}

	existing, err := s.repo.GetByDeviceID(ctx, deviceID)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrDeviceAlreadyBound
	}

	u, err := s.repo.Create(ctx, deviceID, req.DisplayName)
	if err != nil {
		return nil, "", err
	}

	tok, err := token.Generate(s.jwtSecret, u.ID, u.DeviceID, 0)
	if err != nil {
		return nil, "", err
	}

	return u, tok, nil
}

// GetByID retrieves a user by their ID
func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// Update modifies the caller's own profile
func (s *Service) Update(ctx context.Context, id string, req *UpdateUserRequest) (*User, error) {
	u, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}
