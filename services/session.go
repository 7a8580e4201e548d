package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"news-reader/apiclient"
	"news-reader/models"
	"news-reader/storage"

	"go.uber.org/zap"
)

// ContentAPI is the part of the content API the services use.
// *apiclient.Client implements it.
type ContentAPI interface {
	BookmarkAPI
	Login(ctx context.Context, creds models.Credentials) (models.AuthSession, error)
	Refresh(ctx context.Context, refreshToken string) (models.AuthSession, error)
	Profile(ctx context.Context) (models.User, error)
	UpdateInterests(ctx context.Context, topicIDs []string) (models.User, error)
	ListNews(ctx context.Context, limit int) ([]models.News, error)
	GetNews(ctx context.Context, id string) (models.News, error)
	NewsByTopic(ctx context.Context, topicID string) ([]models.News, error)
	ForYou(ctx context.Context) ([]models.News, error)
	ListTopics(ctx context.Context) ([]models.Topic, error)
	ListSources(ctx context.Context) ([]models.Source, error)
	ListBookmarks(ctx context.Context) ([]models.News, error)
	CreateSource(ctx context.Context, in models.SourceInput) (models.Source, error)
	CreateTopic(ctx context.Context, in models.TopicInput) (models.Topic, error)
	CreateNews(ctx context.Context, in models.NewsInput) (models.News, error)
	Chat(ctx context.Context, message string, history []models.ChatMessage) (string, error)
}

// APIFactory binds the content API to a session's token.
type APIFactory func(apiclient.TokenSource) ContentAPI

func ClientFactory(c *apiclient.Client) APIFactory {
	return func(ts apiclient.TokenSource) ContentAPI { return c.WithTokenSource(ts) }
}

// storedToken reads the access token from storage on every request, so a
// logout in another request takes effect immediately.
type storedToken struct {
	store   storage.Store
	session string
}

func (t storedToken) AccessToken(ctx context.Context) (string, error) {
	v, err := t.store.Get(ctx, t.session, storage.KeyAccessToken)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	return v, err
}

// SessionState is the in-memory UI state of one client: the values a
// browser app keeps in its context providers.
type SessionState struct {
	ID        string
	Bookmarks *BookmarkSet
	Playback  *Playback

	store storage.Store
	api   ContentAPI

	mu    sync.RWMutex
	prefs models.Preferences
	auth  models.AuthSession
	chat  []models.ChatMessage
}

func (s *SessionState) API() ContentAPI { return s.api }

func (s *SessionState) Preferences() models.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

func (s *SessionState) Language() Language {
	return ParseLanguage(s.Preferences().Language)
}

func (s *SessionState) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.auth.User == nil {
		return nil
	}
	u := *s.auth.User
	return &u
}

func (s *SessionState) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.auth.AccessToken != ""
}

func (s *SessionState) RequireAdmin() error {
	if !s.LoggedIn() {
		return ErrNotLoggedIn
	}
	if !s.User().IsAdmin() {
		return ErrForbidden
	}
	return nil
}

func (s *SessionState) SetTheme(ctx context.Context, theme string) error {
	if theme != models.ThemeLight && theme != models.ThemeDark {
		return fmt.Errorf("%w: theme must be %q or %q", ErrInvalidInput, models.ThemeLight, models.ThemeDark)
	}
	return s.setPref(ctx, storage.KeyTheme, theme, func(p *models.Preferences) { p.Theme = theme })
}

// SetCategory selects the active topic slug; "" clears it.
func (s *SessionState) SetCategory(ctx context.Context, slug string) error {
	return s.setPref(ctx, storage.KeyCategory, slug, func(p *models.Preferences) { p.Category = slug })
}

func (s *SessionState) SetLanguage(ctx context.Context, lang string) error {
	if !Language(lang).Valid() {
		return fmt.Errorf("%w: language must be %q or %q", ErrInvalidInput, English, Amharic)
	}
	return s.setPref(ctx, storage.KeyLanguage, lang, func(p *models.Preferences) { p.Language = lang })
}

func (s *SessionState) setPref(ctx context.Context, key, value string, apply func(*models.Preferences)) error {
	s.mu.Lock()
	apply(&s.prefs)
	s.mu.Unlock()
	return s.store.Set(ctx, s.ID, key, value)
}

// DefaultIdleTimeout is how long an unused session stays in memory.
const DefaultIdleTimeout = 30 * time.Minute

// Sessions owns the state of every active session. State is created on
// first use from persistent storage and dropped again after it has been
// idle for longer than the idle timeout; the next request rebuilds it.
type Sessions struct {
	store  storage.Store
	newAPI APIFactory
	logger *zap.Logger
	idle   time.Duration
	now    func() time.Time

	mu     sync.Mutex
	states map[string]*sessionEntry
}

type sessionEntry struct {
	state    *SessionState
	lastSeen time.Time
}

func NewSessions(store storage.Store, newAPI APIFactory, logger *zap.Logger, idle time.Duration) *Sessions {
	if idle <= 0 {
		idle = DefaultIdleTimeout
	}
	return &Sessions{
		store:  store,
		newAPI: newAPI,
		logger: logger,
		idle:   idle,
		now:    time.Now,
		states: map[string]*sessionEntry{},
	}
}

func (m *Sessions) Get(ctx context.Context, id string) (*SessionState, error) {
	if st := m.cached(id); st != nil {
		return st, nil
	}

	st, err := m.load(ctx, id)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// a concurrent request may have loaded the same session first
	if e, ok := m.states[id]; ok {
		e.lastSeen = m.now()
		return e.state, nil
	}
	m.states[id] = &sessionEntry{state: st, lastSeen: m.now()}
	return st, nil
}

func (m *Sessions) cached(id string) *SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.states[id]
	if !ok {
		return nil
	}
	e.lastSeen = m.now()
	return e.state
}

// Sweep drops sessions idle for longer than the idle timeout and reports
// how many were dropped.
func (m *Sessions) Sweep() int {
	cutoff := m.now().Add(-m.idle)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.states {
		if e.lastSeen.Before(cutoff) {
			delete(m.states, id)
			n++
		}
	}
	return n
}

// Run sweeps idle sessions until ctx is done.
func (m *Sessions) Run(ctx context.Context) {
	ticker := time.NewTicker(m.idle / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				m.logger.Debug("evicted idle sessions", zap.Int("count", n))
			}
		}
	}
}

func (m *Sessions) load(ctx context.Context, id string) (*SessionState, error) {
	prefs := models.DefaultPreferences()
	for key, dst := range map[string]*string{
		storage.KeyTheme:    &prefs.Theme,
		storage.KeyCategory: &prefs.Category,
		storage.KeyLanguage: &prefs.Language,
	} {
		v, err := m.store.Get(ctx, id, key)
		switch {
		case errors.Is(err, storage.ErrNotFound):
		case err != nil:
			return nil, fmt.Errorf("load %s: %w", key, err)
		default:
			*dst = v
		}
	}

	auth, err := storage.LoadAuth(ctx, m.store, id)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		// a corrupt blob should not lock the user out; they can log in again
		m.logger.Warn("discarding stored auth", zap.String("session", id), zap.Error(err))
		auth = models.AuthSession{}
	}

	return &SessionState{
		ID:        id,
		Bookmarks: NewBookmarkSet(),
		Playback:  &Playback{},
		store:     m.store,
		api:       m.newAPI(storedToken{store: m.store, session: id}),
		prefs:     prefs,
		auth:      auth,
	}, nil
}

func (m *Sessions) Login(ctx context.Context, st *SessionState, creds models.Credentials) (*models.User, error) {
	auth, err := st.api.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	if auth.AccessToken == "" {
		return nil, fmt.Errorf("login: content api returned no access token")
	}
	if err := storage.SaveAuth(ctx, m.store, st.ID, auth); err != nil {
		return nil, fmt.Errorf("save auth: %w", err)
	}
	st.mu.Lock()
	st.auth = auth
	st.mu.Unlock()
	m.logger.Info("login", zap.String("session", st.ID))
	return st.User(), nil
}

// Refresh trades the stored refresh token for a new token pair.
func (m *Sessions) Refresh(ctx context.Context, st *SessionState) error {
	st.mu.RLock()
	refresh := st.auth.RefreshToken
	st.mu.RUnlock()
	if refresh == "" {
		return ErrNotLoggedIn
	}
	auth, err := st.api.Refresh(ctx, refresh)
	if err != nil {
		return err
	}
	st.mu.Lock()
	if auth.User == nil {
		auth.User = st.auth.User
	}
	if auth.RefreshToken == "" {
		auth.RefreshToken = refresh
	}
	st.auth = auth
	st.mu.Unlock()
	return storage.SaveAuth(ctx, m.store, st.ID, auth)
}

// Logout clears everything stored for the session and forgets its state.
func (m *Sessions) Logout(ctx context.Context, id string) error {
	m.mu.Lock()
	delete(m.states, id)
	m.mu.Unlock()
	return m.store.Clear(ctx, id)
}

// Profile fetches the user from the content API and refreshes the cached blob.
func (m *Sessions) Profile(ctx context.Context, st *SessionState) (*models.User, error) {
	if !st.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	u, err := st.api.Profile(ctx)
	if err != nil {
		return nil, err
	}
	return m.saveUser(ctx, st, u)
}

func (m *Sessions) UpdateInterests(ctx context.Context, st *SessionState, topicIDs []string) (*models.User, error) {
	if !st.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	u, err := st.api.UpdateInterests(ctx, topicIDs)
	if err != nil {
		return nil, err
	}
	return m.saveUser(ctx, st, u)
}

func (m *Sessions) saveUser(ctx context.Context, st *SessionState, u models.User) (*models.User, error) {
	if err := storage.SaveUser(ctx, m.store, st.ID, u); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	st.mu.Lock()
	st.auth.User = &u
	st.mu.Unlock()
	return st.User(), nil
}
