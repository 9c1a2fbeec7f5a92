package effects

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/noah-isme/coursesync/internal/api"
	"github.com/noah-isme/coursesync/internal/dto"
	"github.com/noah-isme/coursesync/internal/models"
	"github.com/noah-isme/coursesync/internal/state"
	"github.com/noah-isme/coursesync/pkg/apperrors"
)

// Credential validation messages.
const (
	MsgCredentialsRequired = "Please enter a username and password."
	MsgRoleRequired        = "Please choose a role (student or teacher)."
)

// AuthCoordinator signs users in and out.
type AuthCoordinator interface {
	Login(ctx context.Context, username, password string) error
	Register(ctx context.Context, username, password string, role models.Role) error
	Logout(ctx context.Context) error
	Restore(ctx context.Context) (bool, error)
}

type authCoordinator struct {
	store    Dispatcher
	client   api.Client
	sessions SessionStore
	logger   zerolog.Logger
}

// NewAuthCoordinator constructs the auth coordinator.
func NewAuthCoordinator(store Dispatcher, client api.Client, sessions SessionStore, logger zerolog.Logger) AuthCoordinator {
	return &authCoordinator{
		store:    store,
		client:   client,
		sessions: sessions,
		logger:   logger.With().Str("component", "auth_coordinator").Logger(),
	}
}

func (c *authCoordinator) Login(ctx context.Context, username, password string) error {
	c.store.Dispatch(state.AuthStarted{})

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return c.fail("login", apperrors.Clone(apperrors.ErrValidation, MsgCredentialsRequired))
	}

	resp, err := c.client.Login(ctx, dto.LoginRequest{Username: username, Password: password})
	if err != nil {
		return c.fail("login", err)
	}
	c.succeed(ctx, resp.Session())
	return nil
}

func (c *authCoordinator) Register(ctx context.Context, username, password string, role models.Role) error {
	c.store.Dispatch(state.AuthStarted{})

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return c.fail("register", apperrors.Clone(apperrors.ErrValidation, MsgCredentialsRequired))
	}
	if role != models.RoleStudent && role != models.RoleTeacher {
		return c.fail("register", apperrors.Clone(apperrors.ErrValidation, MsgRoleRequired))
	}

	resp, err := c.client.Register(ctx, dto.RegisterRequest{Username: username, Password: password, Role: role})
	if err != nil {
		return c.fail("register", err)
	}
	c.succeed(ctx, resp.Session())
	return nil
}

func (c *authCoordinator) Logout(ctx context.Context) error {
	c.store.Dispatch(state.LoggedOut{})
	if c.sessions == nil {
		return nil
	}
	if err := c.sessions.Erase(ctx); err != nil {
		c.logger.Error().Err(err).Msg("failed to erase persisted session")
		return err
	}
	return nil
}

func (c *authCoordinator) Restore(ctx context.Context) (bool, error) {
	if c.sessions == nil {
		return false, nil
	}
	sess, err := c.sessions.Restore(ctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to restore session")
		return false, err
	}
	if sess == nil {
		return false, nil
	}
	c.store.Dispatch(state.AuthSucceeded{Session: *sess})
	c.logger.Info().Str("user", sess.User.Username).Msg("session restored")
	return true, nil
}

func (c *authCoordinator) succeed(ctx context.Context, sess models.Session) {
	if c.sessions != nil {
		if err := c.sessions.Save(ctx, sess); err != nil {
			c.logger.Error().Err(err).Msg("failed to persist session")
		}
	}
	c.store.Dispatch(state.AuthSucceeded{Session: sess})
	c.logger.Info().Str("user", sess.User.Username).Str("role", string(sess.User.Role)).Msg("signed in")
}

func (c *authCoordinator) fail(op string, err error) error {
	appErr := apperrors.FromError(err)
	logFailure(c.logger, op, err)
	c.store.Dispatch(state.AuthFailed{Message: appErr.Message})
	return appErr
}
