package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"github.com/TarielTopuria/EcommerceAngular/internal/domain"
	"github.com/TarielTopuria/EcommerceAngular/internal/pubsub"
	"github.com/TarielTopuria/EcommerceAngular/internal/storage"
	apperrors "github.com/TarielTopuria/EcommerceAngular/pkg/errors"
	"github.com/TarielTopuria/EcommerceAngular/pkg/validator"
)

// API is the slice of the remote API the session store depends on.
type API interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, req domain.RegisterRequest) (json.RawMessage, error)
}

// Decision is the route-guard outcome for a navigation target.
type Decision struct {
	Allowed  bool
	Redirect string
}

// Store holds the auth session: an opaque token plus the username it was
// issued for, persisted across restarts. Token and username are always set
// and cleared together.
type Store struct {
	api     API
	storage storage.Store
	logger  *slog.Logger
	admins  map[string]bool

	mu       sync.Mutex
	token    *pubsub.Subject[string]
	username *pubsub.Subject[string]
	authed   *pubsub.Subject[bool]
}

// NewStore creates a session store, restoring any persisted session.
func NewStore(api API, st storage.Store, adminUsernames []string, logger *slog.Logger) *Store {
	admins := make(map[string]bool, len(adminUsernames))
	for _, name := range adminUsernames {
		if name != "" {
			admins[name] = true
		}
	}

	ctx := context.Background()
	token, _ := st.Read(ctx, storage.KeyAuthToken)
	username, _ := st.Read(ctx, storage.KeyAuthUsername)

	return &Store{
		api:      api,
		storage:  st,
		logger:   logger,
		admins:   admins,
		token:    pubsub.NewSubject(token),
		username: pubsub.NewSubject(username),
		authed:   pubsub.NewSubject(token != ""),
	}
}

// Login exchanges credentials for a token and persists the session.
// A 2xx response without a token fails with ErrNoToken and leaves the
// session untouched. Remote failures propagate unchanged; no retry.
func (s *Store) Login(ctx context.Context, username, password string) error {
	token, err := s.api.Login(ctx, username, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if token == "" {
		return apperrors.NoToken("login response did not include a token")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.storage.Write(ctx, storage.KeyAuthToken, token)
	s.storage.Write(ctx, storage.KeyAuthUsername, username)

	s.token.Set(token)
	s.username.Set(username)
	s.authed.Set(true)

	s.logger.InfoContext(ctx, "logged in",
		slog.String("username", username),
	)

	return nil
}

// Register forwards a registration payload to the remote API. It has no
// effect on the local session.
func (s *Store) Register(ctx context.Context, req domain.RegisterRequest) (json.RawMessage, error) {
	if err := validator.Validate(&req); err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	out, err := s.api.Register(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return out, nil
}

// Logout clears the session and its persisted keys. No network call.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := context.Background()
	s.storage.Remove(ctx, storage.KeyAuthToken)
	s.storage.Remove(ctx, storage.KeyAuthUsername)

	s.token.Set("")
	s.username.Set("")
	s.authed.Set(false)

	s.logger.Info("logged out")
}

// Session returns the current session snapshot.
func (s *Store) Session() domain.Session {
	return domain.Session{
		Token:    s.token.Value(),
		Username: s.username.Value(),
	}
}

// IsAuthenticated reports whether a non-empty token is held.
func (s *Store) IsAuthenticated() bool {
	return s.token.Value() != ""
}

// Token returns the opaque token, if any.
func (s *Store) Token() (string, bool) {
	t := s.token.Value()
	return t, t != ""
}

// Username returns the logged-in username, if any.
func (s *Store) Username() (string, bool) {
	u := s.username.Value()
	return u, u != ""
}

// IsAdmin reports whether the session user is on the admin allowlist.
func (s *Store) IsAdmin() bool {
	u := s.username.Value()
	return s.IsAuthenticated() && s.admins[u]
}

// Authorize decides whether a navigation to target may proceed. The caller
// (a route guard) redirects when Allowed is false.
func (s *Store) Authorize(target string) Decision {
	if !s.IsAuthenticated() {
		return Decision{Redirect: "/login?returnUrl=" + url.QueryEscape(target)}
	}
	if !s.IsAdmin() {
		return Decision{Redirect: "/"}
	}
	return Decision{Allowed: true}
}

// SubscribeToken streams the token value, current value first.
func (s *Store) SubscribeToken(fn func(string)) (cancel func()) {
	return s.token.Subscribe(fn)
}

// SubscribeUsername streams the username value, current value first.
func (s *Store) SubscribeUsername(fn func(string)) (cancel func()) {
	return s.username.Subscribe(fn)
}

// SubscribeAuthenticated streams the authenticated flag, current value first.
func (s *Store) SubscribeAuthenticated(fn func(bool)) (cancel func()) {
	return s.authed.Subscribe(fn)
}
