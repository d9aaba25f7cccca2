// Package session persists the authenticated identity on the local device:
// the bearer token, the user record and the per-user upgrade prompt flag.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dmatrios/ahorrape-front/internal/model"
)

// Storage keys.
const (
	keyToken        = "token"
	keyUser         = "user"
	keyUpgradeShown = "upgrade-shown-"
)

// ErrNoValue is returned by a Backend when a key is absent.
var ErrNoValue = errors.New("no value")

// Backend is a string key/value store.
type Backend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// TokenSource supplies the bearer token attached to outgoing requests.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Provider is the session surface used by pages and commands.
type Provider interface {
	TokenSource
	User(ctx context.Context) (*model.User, error)
	Save(ctx context.Context, token string, user model.User) error
	SaveUser(ctx context.Context, user model.User) error
	Clear(ctx context.Context) error
	UpgradePromptShown(ctx context.Context, userID int64) (bool, error)
	MarkUpgradePromptShown(ctx context.Context, userID int64) error
}

// Store implements Provider on top of a Backend.
type Store struct {
	backend Backend
}

// New wraps backend in a Store.
func New(backend Backend) *Store {
	return &Store{backend: backend}
}

// Token returns the stored token, or "" when there is none.
func (s *Store) Token(ctx context.Context) (string, error) {
	tok, err := s.backend.Get(ctx, keyToken)
	if errors.Is(err, ErrNoValue) {
		return "", nil
	}
	return tok, err
}

// User returns the stored user record, or nil when there is none.
func (s *Store) User(ctx context.Context) (*model.User, error) {
	raw, err := s.backend.Get(ctx, keyUser)
	if errors.Is(err, ErrNoValue) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var u model.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, fmt.Errorf("failed to decode stored user: %w", err)
	}
	return &u, nil
}

// Save stores a fresh login.
func (s *Store) Save(ctx context.Context, token string, user model.User) error {
	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}
	if err := s.backend.Set(ctx, keyToken, token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return s.SaveUser(ctx, user)
}

// SaveUser replaces the stored user record, keeping the token.
func (s *Store) SaveUser(ctx context.Context, user model.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	if err := s.backend.Set(ctx, keyUser, string(raw)); err != nil {
		return fmt.Errorf("failed to store user: %w", err)
	}
	return nil
}

// Clear removes the token and the user record. Upgrade prompt flags stay so
// that each user sees the prompt once.
func (s *Store) Clear(ctx context.Context) error {
	return s.backend.Delete(ctx, keyToken, keyUser)
}

// UpgradePromptShown reports whether the upgrade prompt was already shown to
// the user.
func (s *Store) UpgradePromptShown(ctx context.Context, userID int64) (bool, error) {
	_, err := s.backend.Get(ctx, upgradeKey(userID))
	if errors.Is(err, ErrNoValue) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// MarkUpgradePromptShown records that the upgrade prompt was shown.
func (s *Store) MarkUpgradePromptShown(ctx context.Context, userID int64) error {
	return s.backend.Set(ctx, upgradeKey(userID), "true")
}

func upgradeKey(userID int64) string {
	return keyUpgradeShown + strconv.FormatInt(userID, 10)
}

// State is a point-in-time view of the session.
type State struct {
	User    *model.User
	Token   string
	Expired bool
	// Discarded holds the decode error when an unreadable user record was
	// cleared.
	Discarded error
}

// Authenticated reports whether the state carries a usable session.
func (st State) Authenticated() bool {
	return st.Token != "" && st.User != nil && !st.Expired
}

// Load reads the current session. A user record that cannot be decoded
// clears the whole session instead of failing and is reported in
// State.Discarded.
func Load(ctx context.Context, p Provider) (State, error) {
	tok, err := p.Token(ctx)
	if err != nil {
		return State{}, fmt.Errorf("failed to read token: %w", err)
	}

	user, err := p.User(ctx)
	if err != nil {
		if clearErr := p.Clear(ctx); clearErr != nil {
			return State{}, fmt.Errorf("failed to clear session: %w", clearErr)
		}
		return State{Discarded: err}, nil
	}

	st := State{Token: tok, User: user}
	if exp, ok := TokenExpiry(tok); ok && !exp.After(time.Now()) {
		st.Expired = true
	}
	return st, nil
}
