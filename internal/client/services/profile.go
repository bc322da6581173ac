package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/casedesk/internal/client/backend"
	"github.com/dmitrijs2005/casedesk/internal/client/models"
	"github.com/dmitrijs2005/casedesk/internal/common"
)

type ProfileService interface {
	Get(ctx context.Context) (models.Profile, error)
	Update(ctx context.Context, patch models.ProfilePatch) (models.Profile, error)
}

type profileService struct {
	backend backend.Backend
}

func NewProfileService(b backend.Backend) ProfileService {
	return &profileService{backend: b}
}

func (s *profileService) Get(ctx context.Context) (models.Profile, error) {
	p, err := s.backend.GetProfile(ctx)
	if err != nil {
		return models.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// Update rejects a blank name or an email without "@" before any I/O.
func (s *profileService) Update(ctx context.Context, patch models.ProfilePatch) (models.Profile, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return models.Profile{}, common.Validation("name must not be empty")
	}
	if patch.Email != nil && !strings.Contains(*patch.Email, "@") {
		return models.Profile{}, common.Validation("email must contain @")
	}

	p, err := s.backend.UpdateProfile(ctx, patch)
	if err != nil {
		return models.Profile{}, fmt.Errorf("update profile: %w", err)
	}
	return p, nil
}
