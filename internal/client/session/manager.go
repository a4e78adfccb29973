// Package session owns the authentication session lifecycle: startup
// validation, login, periodic and reactive token refresh, and the logout
// cascade. It is the only writer of the token store.
package session

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"

	"github.com/rentafleet/fleetapi-go/internal/client/api"
	"github.com/rentafleet/fleetapi-go/internal/client/models"
	"github.com/rentafleet/fleetapi-go/internal/client/tokenstore"
	"github.com/rentafleet/fleetapi-go/internal/logging"
)

// Options configures a Manager.
//
// API must be a bare client (no Refresher) so the manager's own auth
// calls can never recurse into a refresh.
type Options struct {
	API             *api.Client
	Store           tokenstore.Store
	Monitor         api.Connectivity
	RefreshInterval time.Duration // default 14m
	RefreshTimeout  time.Duration // overall cap on one refresh call, default 30s
	Logger          logging.Logger
	Now             func() time.Time
}

const (
	defaultRefreshInterval = 14 * time.Minute
	defaultRefreshTimeout  = 30 * time.Second
	// refresh this much before the access token's exp claim
	expiryMargin = time.Minute
	// floor for the proactive timer when a token is already near expiry
	minRefreshDelay = 10 * time.Second
	logoutTimeout   = 3 * time.Second
)

// Manager is the session state machine. It implements api.Refresher for
// the request path's refresh-on-401 flow.
type Manager struct {
	api             *api.Client
	store           tokenstore.Store
	monitor         api.Connectivity
	refreshInterval time.Duration
	refreshTimeout  time.Duration
	log             logging.Logger
	now             func() time.Time

	sf singleflight.Group

	mu          sync.Mutex
	state       State
	session     *models.Session
	timerCancel context.CancelFunc
	listeners   map[int]func(State)
	nextID      int
}

func NewManager(opts Options) *Manager {
	m := &Manager{
		api:             opts.API,
		store:           opts.Store,
		monitor:         opts.Monitor,
		refreshInterval: opts.RefreshInterval,
		refreshTimeout:  opts.RefreshTimeout,
		log:             opts.Logger,
		now:             opts.Now,
		state:           StateUnauthenticated,
		listeners:       make(map[int]func(State)),
	}
	if m.refreshInterval <= 0 {
		m.refreshInterval = defaultRefreshInterval
	}
	if m.refreshTimeout <= 0 {
		m.refreshTimeout = defaultRefreshTimeout
	}
	if m.log == nil {
		m.log = logging.Discard()
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

// wire types for the auth endpoints
type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type authPayload struct {
	Token        string             `json:"token"`
	RefreshToken string             `json:"refreshToken,omitempty"`
	User         models.UserProfile `json:"user"`
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// CurrentUser returns the authenticated user's profile, if any.
func (m *Manager) CurrentUser() (models.UserProfile, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return models.UserProfile{}, false
	}
	return m.session.User, true
}

// OnChange registers a listener called on every state transition. The UI
// observes forced logout this way. The returned function unsubscribes.
func (m *Manager) OnChange(fn func(State)) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

// Restore rehydrates a persisted session on startup: if one exists, it is
// validated against the backend. Validation failure of any kind (401 or
// network) clears the store and leaves the manager unauthenticated.
func (m *Manager) Restore(ctx context.Context) error {
	sess, err := m.store.Get(ctx)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if sess == nil {
		return nil
	}

	m.setState(StateValidating)

	var payload struct {
		User models.UserProfile `json:"user"`
	}
	desc := api.RequestDescriptor{Method: http.MethodGet, Path: "/auth/validate", RequiresAuth: true}
	if err := m.api.Do(ctx, desc, &payload); err != nil {
		m.log.Info(ctx, "stored session failed validation", "error", err)
		_ = m.store.Clear(context.WithoutCancel(ctx))
		m.setSession(nil)
		m.setState(StateUnauthenticated)
		return err
	}

	sess.User = payload.User
	m.setSession(sess)
	m.setState(StateAuthenticated)
	m.armRefresh()
	return nil
}

// Login authenticates with email and password. While offline it fails
// fast with api.ErrNoConnectivity and never reaches the network.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	if m.monitor != nil && !m.monitor.IsOnline() {
		return fmt.Errorf("login: %w", api.ErrNoConnectivity)
	}

	var payload authPayload
	desc := api.RequestDescriptor{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   credentials{Email: email, Password: password},
	}
	if err := m.api.Do(ctx, desc, &payload); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	sess := &models.Session{
		AccessToken:  payload.Token,
		RefreshToken: payload.RefreshToken,
		User:         payload.User,
		ObtainedAt:   m.now(),
	}
	if err := m.store.Set(ctx, sess); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	m.setSession(sess)
	m.setState(StateAuthenticated)
	m.armRefresh()
	m.log.Info(ctx, "logged in", "user", payload.User.Email)
	return nil
}

// Refresh renews the session. It is single-flight: concurrent triggers
// (two requests hitting 401 at once, or the timer racing a request)
// share one in-progress refresh and all observe its outcome. The token
// store is updated before Refresh returns, so a retried request always
// re-reads the new token.
func (m *Manager) Refresh(ctx context.Context) error {
	_, err, _ := m.sf.Do("refresh", func() (any, error) {
		return nil, m.refresh(ctx)
	})
	return err
}

func (m *Manager) refresh(ctx context.Context) error {
	m.mu.Lock()
	sess := m.session
	state := m.state
	m.mu.Unlock()

	if sess == nil || (state != StateAuthenticated && state != StateRefreshing) {
		return fmt.Errorf("refresh without active session: %w", api.ErrUnauthorized)
	}

	m.setState(StateRefreshing)

	// The outcome is shared by every caller blocked on this refresh, so it
	// must not die with the first caller's context.
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.refreshTimeout)
	defer cancel()

	var payload authPayload
	desc := api.RequestDescriptor{
		Method: http.MethodPost,
		Path:   "/auth/refresh",
		Body:   refreshRequest{RefreshToken: sess.RefreshCredential()},
	}
	if err := m.api.Do(rctx, desc, &payload); err != nil {
		m.log.Warn(ctx, "session refresh failed, logging out", "error", err)
		if m.sessionIs(sess) {
			_ = m.logout(rctx, false)
		}
		return fmt.Errorf("session refresh: %w", api.ErrUnauthorized)
	}

	next := &models.Session{
		AccessToken:  payload.Token,
		RefreshToken: payload.RefreshToken,
		User:         payload.User,
		ObtainedAt:   m.now(),
	}
	if next.RefreshToken == "" {
		// backend did not rotate the refresh token, keep the current one
		next.RefreshToken = sess.RefreshToken
	}
	if next.User == (models.UserProfile{}) {
		next.User = sess.User
	}

	// Logout may have won while the call was in flight. Committing the new
	// tokens now would resurrect a session the user explicitly ended, so
	// they are discarded unless this refresh still owns the session.
	if !m.sessionIs(sess) {
		return fmt.Errorf("session ended during refresh: %w", api.ErrUnauthorized)
	}

	if err := m.store.Set(rctx, next); err != nil {
		m.log.Error(ctx, "failed to persist refreshed session", "error", err)
		if m.sessionIs(sess) {
			_ = m.logout(rctx, false)
		}
		return fmt.Errorf("session refresh: %w", api.ErrUnauthorized)
	}

	// Session and state move together here: committing them under one
	// lock hold leaves a racing logout nothing half-updated to act on.
	m.mu.Lock()
	if m.session != sess {
		m.mu.Unlock()
		// logout slipped in between the check and the write, undo it
		_ = m.store.Clear(rctx)
		return fmt.Errorf("session ended during refresh: %w", api.ErrUnauthorized)
	}
	m.session = next
	m.state = StateAuthenticated
	fns := make([]func(State), 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(StateAuthenticated)
	}
	m.armRefresh()
	return nil
}

// sessionIs reports whether the in-memory session is still the one a
// refresh started from.
func (m *Manager) sessionIs(sess *models.Session) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session == sess
}

// Logout ends the session: best-effort server-side invalidation, then
// local clearing that never blocks on the server's answer.
func (m *Manager) Logout(ctx context.Context) error {
	return m.logout(ctx, true)
}

func (m *Manager) logout(ctx context.Context, notifyServer bool) error {
	m.setState(StateLoggingOut)
	m.disarmRefresh()

	if notifyServer {
		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), logoutTimeout)
		desc := api.RequestDescriptor{Method: http.MethodPost, Path: "/auth/logout", RequiresAuth: true}
		if err := m.api.Do(nctx, desc, nil); err != nil {
			m.log.Debug(ctx, "server-side logout failed", "error", err)
		}
		cancel()
	}

	err := m.store.Clear(context.WithoutCancel(ctx))
	m.setSession(nil)
	m.setState(StateUnauthenticated)
	return err
}

// armRefresh schedules the next proactive refresh, replacing any pending
// one. The timer lives only while the session is authenticated: every
// exit path cancels it, so it can never fire against a cleared session.
func (m *Manager) armRefresh() {
	m.mu.Lock()
	if m.timerCancel != nil {
		m.timerCancel()
	}
	sess := m.session
	ctx, cancel := context.WithCancel(context.Background())
	m.timerCancel = cancel
	m.mu.Unlock()

	delay := m.refreshDelay(sess)

	go func() {
		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
		if err := m.Refresh(ctx); err != nil {
			m.log.Warn(ctx, "scheduled refresh failed", "error", err)
		}
	}()
}

func (m *Manager) disarmRefresh() {
	m.mu.Lock()
	if m.timerCancel != nil {
		m.timerCancel()
		m.timerCancel = nil
	}
	m.mu.Unlock()
}

// refreshDelay returns how long to wait before the next proactive
// refresh. When the access token is a JWT with an exp claim, refresh
// shortly before it; otherwise fall back to the fixed interval. The
// claim is read unverified, the client never validates signatures.
func (m *Manager) refreshDelay(sess *models.Session) time.Duration {
	delay := m.refreshInterval
	if sess == nil {
		return delay
	}

	token, _, err := jwt.NewParser().ParseUnverified(sess.AccessToken, jwt.MapClaims{})
	if err != nil {
		return delay
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return delay
	}

	until := exp.Time.Sub(m.now()) - expiryMargin
	if until < minRefreshDelay {
		return minRefreshDelay
	}
	if until < delay {
		return until
	}
	return delay
}

func (m *Manager) setSession(sess *models.Session) {
	m.mu.Lock()
	m.session = sess
	m.mu.Unlock()
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	if m.state == s {
		m.mu.Unlock()
		return
	}
	m.state = s
	fns := make([]func(State), 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}
