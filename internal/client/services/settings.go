package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/casedesk/internal/client/backend"
	"github.com/dmitrijs2005/casedesk/internal/client/models"
	"github.com/dmitrijs2005/casedesk/internal/common"
)

// Themes the client can render.
var Themes = []string{"light", "dark", "system"}

type SettingsService interface {
	Get(ctx context.Context) (models.Settings, error)
	Update(ctx context.Context, patch models.SettingsPatch) (models.Settings, error)
}

type settingsService struct {
	backend backend.Backend
}

func NewSettingsService(b backend.Backend) SettingsService {
	return &settingsService{backend: b}
}

func (s *settingsService) Get(ctx context.Context) (models.Settings, error) {
	v, err := s.backend.GetSettings(ctx)
	if err != nil {
		return models.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	return v, nil
}

func (s *settingsService) Update(ctx context.Context, patch models.SettingsPatch) (models.Settings, error) {
	if patch.Theme != nil && !slices.Contains(Themes, *patch.Theme) {
		return models.Settings{}, common.Validation(fmt.Sprintf("unknown theme %q", *patch.Theme))
	}
	if patch.Language != nil && *patch.Language == "" {
		return models.Settings{}, common.Validation("language must not be empty")
	}

	v, err := s.backend.UpdateSettings(ctx, patch)
	if err != nil {
		return models.Settings{}, fmt.Errorf("update settings: %w", err)
	}
	return v, nil
}
