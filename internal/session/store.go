package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/noah-isme/coursesync/internal/models"
)

// Keys under which the session is persisted.
const (
	TokenKey = "token"
	UserKey  = "user"
)

// Store persists and restores the authenticated session through a KV.
type Store struct {
	kv     KV
	logger zerolog.Logger
	now    func() time.Time
	parser *jwt.Parser
}

// NewStore builds a session store over the supplied KV.
func NewStore(kv KV, logger zerolog.Logger) *Store {
	return &Store{
		kv:     kv,
		logger: logger.With().Str("component", "session_store").Logger(),
		now:    time.Now,
		parser: jwt.NewParser(),
	}
}

// Save writes the token and the serialized user.
func (s *Store) Save(ctx context.Context, sess models.Session) error {
	payload, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}
	if err := s.kv.Set(ctx, TokenKey, sess.Token); err != nil {
		return err
	}
	if err := s.kv.Set(ctx, UserKey, string(payload)); err != nil {
		return err
	}
	return nil
}

// Erase removes both persisted keys.
func (s *Store) Erase(ctx context.Context) error {
	return s.kv.Clear(ctx, TokenKey, UserKey)
}

// Restore reads the persisted session. It returns nil without error when
// nothing usable is stored; unusable leftovers are erased.
func (s *Store) Restore(ctx context.Context) (*models.Session, error) {
	token, hasToken, err := s.kv.Get(ctx, TokenKey)
	if err != nil {
		return nil, err
	}
	rawUser, hasUser, err := s.kv.Get(ctx, UserKey)
	if err != nil {
		return nil, err
	}

	if !hasToken && !hasUser {
		return nil, nil
	}

	token = strings.TrimSpace(token)
	if !hasToken || !hasUser || token == "" {
		s.logger.Warn().Msg("discarding incomplete persisted session")
		return nil, s.Erase(ctx)
	}

	var user models.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		s.logger.Warn().Err(err).Msg("discarding unreadable persisted user")
		return nil, s.Erase(ctx)
	}

	if s.expired(token) {
		s.logger.Info().Str("username", user.Username).Msg("persisted session token expired")
		return nil, s.Erase(ctx)
	}

	return &models.Session{User: user, Token: token}, nil
}

// expired inspects JWT tokens without verifying them; the client cannot hold
// the signing key. Tokens that are not JWTs are treated as opaque and valid.
func (s *Store) expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := s.parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(s.now())
}
