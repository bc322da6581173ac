package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/casedesk/internal/client/backend"
	"github.com/dmitrijs2005/casedesk/internal/client/models"
	"github.com/dmitrijs2005/casedesk/internal/client/securestore"
	"github.com/dmitrijs2005/casedesk/internal/common"
	"github.com/dmitrijs2005/casedesk/internal/logging"
)

const MinPasswordLength = 6

// SecurityService changes the password and reports when it last changed.
// The timestamp is recorded locally in both modes.
type SecurityService interface {
	ChangePassword(ctx context.Context, change models.PasswordChange) error
	State(ctx context.Context) (models.SecurityState, error)
}

type securityService struct {
	backend backend.Backend
	store   securestore.Store
	log     logging.Logger
	now     func() time.Time
}

func NewSecurityService(b backend.Backend, store securestore.Store, log logging.Logger) SecurityService {
	if log == nil {
		log = logging.Nop()
	}
	return &securityService{backend: b, store: store, log: log.With("service", "security"), now: time.Now}
}

func (s *securityService) ChangePassword(ctx context.Context, change models.PasswordChange) error {
	if len(change.NewPassword) < MinPasswordLength {
		return common.Validation(fmt.Sprintf("new password must be at least %d characters", MinPasswordLength))
	}
	if change.NewPassword == change.CurrentPassword {
		return common.Validation("new password must differ from the current one")
	}

	if err := s.backend.ChangePassword(ctx, change); err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	// the change already happened remotely; a lost timestamp only affects display
	if err := s.store.Save(ctx, securestore.KeyPasswordChangedAt, s.now().UTC()); err != nil {
		s.log.Warn(ctx, "could not record password change time", "error", err)
	}
	return nil
}

func (s *securityService) State(ctx context.Context) (models.SecurityState, error) {
	at, err := securestore.ReadValue[time.Time](ctx, s.store, securestore.KeyPasswordChangedAt)
	if err != nil {
		return models.SecurityState{}, fmt.Errorf("read security state: %w", err)
	}
	return models.SecurityState{PasswordChangedAt: at}, nil
}
