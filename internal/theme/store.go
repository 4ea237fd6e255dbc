package theme

import (
	"context"
	"log/slog"
	"sync"

	"github.com/TarielTopuria/EcommerceAngular/internal/domain"
	"github.com/TarielTopuria/EcommerceAngular/internal/pubsub"
	"github.com/TarielTopuria/EcommerceAngular/internal/storage"
)

// Applier exposes the active theme to the presentation layer, for example by
// toggling a document-level class. The store calls it after every change.
type Applier func(domain.Theme)

// Store holds the theme preference. The persisted value survives restarts;
// an unrecognized stored value falls back to the default.
type Store struct {
	storage storage.Store
	logger  *slog.Logger
	apply   Applier

	mu    sync.Mutex
	theme *pubsub.Subject[domain.Theme]
}

// NewStore creates a theme store, restoring the persisted preference and
// applying it. A nil applier is replaced with a no-op.
func NewStore(st storage.Store, apply Applier, logger *slog.Logger) *Store {
	if apply == nil {
		apply = func(domain.Theme) {}
	}

	current := domain.DefaultTheme
	if raw, ok := st.Read(context.Background(), storage.KeyTheme); ok {
		if parsed, valid := domain.ParseTheme(raw); valid {
			current = parsed
		} else {
			logger.Warn("stored theme is invalid, using default",
				slog.String("value", raw),
			)
		}
	}

	s := &Store{
		storage: st,
		logger:  logger,
		apply:   apply,
		theme:   pubsub.NewSubject(current),
	}
	s.apply(current)
	return s
}

// Theme returns the current preference.
func (s *Store) Theme() domain.Theme {
	return s.theme.Value()
}

// SetTheme switches the preference. Setting the current theme again is a
// no-op: nothing is persisted, applied, or broadcast.
func (s *Store) SetTheme(t domain.Theme) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t == s.theme.Value() {
		return
	}

	s.storage.Write(context.Background(), storage.KeyTheme, string(t))
	s.apply(t)
	s.theme.Set(t)
}

// Toggle flips between light and dark.
func (s *Store) Toggle() {
	s.SetTheme(s.Theme().Opposite())
}

// Subscribe streams the preference, current value first.
func (s *Store) Subscribe(fn func(domain.Theme)) (cancel func()) {
	return s.theme.Subscribe(fn)
}
