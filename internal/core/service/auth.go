package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/yndnr/examprep-go/internal/cli/connection"
	"github.com/yndnr/examprep-go/internal/cli/notify"
	"github.com/yndnr/examprep-go/internal/cli/session"
	"github.com/yndnr/examprep-go/internal/core/domain"
)

// Notification text for the auth flows.
const (
	ValidationErrorTitle = "Validation Error"

	LoginSuccessTitle      = "Welcome back!"
	LoginSuccessMessage    = "You've successfully logged in."
	RegisterSuccessTitle   = "Account created"
	RegisterSuccessMessage = "Your account has been created successfully."
	LogoutTitle            = "Logged out"
)

// AuthAPI is the part of the API client the auth flows need.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*connection.AuthResponse, error)
	Register(ctx context.Context, name, email, password string) (*connection.AuthResponse, error)
	Logout(ctx context.Context) error
}

// AuthService runs login, registration and logout, and persists the
// session the server hands back.
type AuthService struct {
	api      AuthAPI
	store    session.Store
	notifier notify.Notifier
}

// NewAuthService creates an AuthService. A nil notifier discards.
func NewAuthService(api AuthAPI, store session.Store, notifier notify.Notifier) *AuthService {
	if notifier == nil {
		notifier = notify.Discard
	}
	return &AuthService{api: api, store: store, notifier: notifier}
}

// Login validates creds, authenticates and stores the session.
func (s *AuthService) Login(ctx context.Context, creds domain.Credentials) (session.Session, error) {
	if err := s.validate(creds.ValidateLogin()); err != nil {
		return session.Session{}, err
	}

	resp, err := s.api.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		return session.Session{}, err
	}

	sess, err := s.persist(resp)
	if err != nil {
		return session.Session{}, err
	}
	s.notifier.Notify(notify.Info(LoginSuccessTitle, LoginSuccessMessage))
	return sess, nil
}

// Register validates creds, creates the account and stores the session.
func (s *AuthService) Register(ctx context.Context, creds domain.Credentials) (session.Session, error) {
	if err := s.validate(creds.ValidateRegister()); err != nil {
		return session.Session{}, err
	}

	resp, err := s.api.Register(ctx, creds.Name, creds.Email, creds.Password)
	if err != nil {
		return session.Session{}, err
	}

	sess, err := s.persist(resp)
	if err != nil {
		return session.Session{}, err
	}
	s.notifier.Notify(notify.Info(RegisterSuccessTitle, RegisterSuccessMessage))
	return sess, nil
}

// Logout ends the local session; the server is told on a best-effort basis.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.api.Logout(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.notifier.Notify(notify.Info(LogoutTitle, ""))
	return nil
}

// Current returns the stored session, or session.ErrNoSession.
func (s *AuthService) Current() (session.Session, error) {
	return s.store.Get()
}

func (s *AuthService) validate(err error) error {
	if err == nil {
		return nil
	}
	var de *domain.DomainError
	if errors.As(err, &de) {
		s.notifier.Notify(notify.Error(ValidationErrorTitle, de.Message))
	}
	return err
}

func (s *AuthService) persist(resp *connection.AuthResponse) (session.Session, error) {
	sess := session.Session{Token: resp.Token, DisplayName: resp.User.Name}
	if err := s.store.Set(sess); err != nil {
		return session.Session{}, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}
