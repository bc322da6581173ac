// Package services contains application services for the CaseDesk client.
// This file defines the session service: sign-in, sign-up, sign-out,
// password reset and retrieval of the persisted session.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/casedesk/internal/client/backend"
	"github.com/dmitrijs2005/casedesk/internal/client/gateway"
	"github.com/dmitrijs2005/casedesk/internal/client/models"
	"github.com/dmitrijs2005/casedesk/internal/client/securestore"
	"github.com/dmitrijs2005/casedesk/internal/common"
	"github.com/dmitrijs2005/casedesk/internal/logging"
)

// AuthService defines session operations for the client.
//
// Contract:
//   - SignIn / SignUp: authenticate through the backend, derive the role and
//     persist the session before returning it. Nothing is persisted on failure.
//   - SignOut: delete the persisted session; signing out twice is fine.
//   - GetSession: the persisted session, or nil when there is none or it
//     cannot be read back as a valid session.
//   - RequestPasswordReset: ask the backend to start a reset.
//   - Token: the bearer token of the persisted session, "" when signed out.
type AuthService interface {
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	SignUp(ctx context.Context, name, email, password string) (*models.Session, error)
	SignOut(ctx context.Context) error
	GetSession(ctx context.Context) (*models.Session, error)
	RequestPasswordReset(ctx context.Context, email string) error
	Token(ctx context.Context) (string, error)
}

type authService struct {
	backend backend.Backend
	store   securestore.Store
	roles   *models.RoleResolver
	log     logging.Logger
}

// NewAuthService constructs an AuthService over the given backend and store.
func NewAuthService(b backend.Backend, store securestore.Store, roles *models.RoleResolver, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &authService{backend: b, store: store, roles: roles, log: log.With("service", "auth")}
}

func (a *authService) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	s, err := a.backend.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	return a.persist(ctx, s)
}

func (a *authService) SignUp(ctx context.Context, name, email, password string) (*models.Session, error) {
	s, err := a.backend.Register(ctx, name, email, password)
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}
	return a.persist(ctx, s)
}

// persist derives the role and saves s. An invalid session is rejected so
// it never reaches the store.
func (a *authService) persist(ctx context.Context, s *models.Session) (*models.Session, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: session without token or user", common.ErrAuth)
	}
	a.roles.Apply(s.User)

	if err := a.store.Save(ctx, securestore.KeySession, s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	a.log.Info(ctx, "signed in", "user", s.User.Email, "role", s.User.Role, "mode", a.backend.Mode())
	return s, nil
}

func (a *authService) SignOut(ctx context.Context) error {
	if err := a.store.Delete(ctx, securestore.KeySession); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	a.log.Info(ctx, "signed out")
	return nil
}

func (a *authService) GetSession(ctx context.Context) (*models.Session, error) {
	s, err := securestore.ReadValue[models.Session](ctx, a.store, securestore.KeySession)
	if errors.Is(err, securestore.ErrCorrupt) {
		a.log.Warn(ctx, "stored session is unreadable, treating as signed out", "error", err)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if !s.Valid() {
		return nil, nil
	}
	a.roles.Apply(s.User)
	return s, nil
}

func (a *authService) RequestPasswordReset(ctx context.Context, email string) error {
	if err := a.backend.ForgotPassword(ctx, email); err != nil {
		return fmt.Errorf("password reset: %w", err)
	}
	return nil
}

func (a *authService) Token(ctx context.Context) (string, error) {
	return StoredToken(a.store)(ctx)
}

// StoredToken returns a gateway.TokenSource reading the persisted session.
// It only needs the store, so the gateway can be built before the backend
// and the auth service that depend on it.
func StoredToken(store securestore.Store) gateway.TokenSource {
	return func(ctx context.Context) (string, error) {
		s, err := securestore.ReadValue[models.Session](ctx, store, securestore.KeySession)
		if errors.Is(err, securestore.ErrCorrupt) {
			return "", nil
		}
		if err != nil || s == nil {
			return "", err
		}
		return s.Token, nil
	}
}
