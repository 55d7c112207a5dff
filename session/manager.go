// Package session owns the authentication lifecycle against the
// SkillsMatch backend: login, logout, current-user resolution,
// authenticated request dispatch, transparent token refresh, and forced
// re-authentication when the refresh token is exhausted.
package session

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/skillsmatch/go-skillsmatch/credentials"
	errs "github.com/skillsmatch/go-skillsmatch/internal/errors"
	"github.com/skillsmatch/go-skillsmatch/users"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const defaultTimeout = 10 * time.Second

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type tokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// Manager mediates all authenticated calls to the backend and maintains
// credential validity. It is safe for concurrent use; credential
// replacement is serialised so a request never resumes with a token that
// is mid-replacement.
type Manager struct {
	baseURL    string
	repo       credentials.Repo
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     zerolog.Logger
	nowTime    func() time.Time
	listener   func(State)

	mu           sync.Mutex
	state        State
	refreshGroup singleflight.Group
}

// Option defines a function type to modify the Manager instance.
type Option func(*Manager)

// WithHTTPClient replaces the default HTTP client (10 second timeout).
func WithHTTPClient(client *http.Client) Option {
	return func(m *Manager) {
		m.httpClient = client
	}
}

// WithTimeout sets the network-call timeout on the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(m *Manager) {
		m.httpClient.Timeout = timeout
	}
}

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) Option {
	return func(m *Manager) {
		m.nowTime = nowFunc
	}
}

// WithLogger sets the logger used for refresh/retry/logout events.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithLimiter applies a client-side rate limit to dispatched requests.
func WithLimiter(limiter *rate.Limiter) Option {
	return func(m *Manager) {
		m.limiter = limiter
	}
}

// WithStateListener registers a callback invoked after every state
// change. The callback must not call back into the Manager's mutating
// operations.
func WithStateListener(listener func(State)) Option {
	return func(m *Manager) {
		m.listener = listener
	}
}

// New initializes a Manager for the backend at baseURL, persisting the
// credential pair through repo.
func New(baseURL string, repo credentials.Repo, options ...Option) (*Manager, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("[session.New] baseURL is required")
	}
	if repo == nil {
		return nil, errors.New("[session.New] credential repo is required")
	}

	m := &Manager{
		baseURL:    strings.TrimRight(baseURL, "/"),
		repo:       repo,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     zerolog.Nop(),
		nowTime:    time.Now,
	}

	for _, opt := range options {
		opt(m)
	}

	return m, nil
}

// Snapshot returns a copy of the current session state.
func (m *Manager) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Manager) setState(mutate func(*State)) {
	m.mu.Lock()
	mutate(&m.state)
	st := m.state
	m.mu.Unlock()
	m.notify(st)
}

func (m *Manager) notify(st State) {
	if m.listener != nil {
		m.listener(st)
	}
}

// Bootstrap reconstructs the session from the persisted credential at
// process start. A held, unexpired credential yields an authenticated
// session without any token issuance call; an expired or undecodable one
// gets exactly one silent refresh. Every failure degrades to an
// unauthenticated session rather than an error.
func (m *Manager) Bootstrap(ctx context.Context) (st State) {
	m.setState(func(s *State) { s.Loading = true })
	defer func() {
		m.setState(func(s *State) { s.Loading = false })
		st = m.Snapshot()
	}()

	cred, err := m.repo.Get()
	if err != nil {
		m.setState(func(s *State) {
			s.Authenticated = false
			s.User = nil
		})
		return
	}

	if cred.Expired(m.nowTime()) {
		if _, err := m.Refresh(ctx); err != nil {
			// Refresh already reset the session.
			return
		}
	}

	cachedUser, cacheErr := m.repo.GetUser()
	m.setState(func(s *State) {
		s.Authenticated = true
		if cacheErr == nil {
			s.User = cachedUser
		}
	})

	if _, err := m.CurrentUser(ctx); err != nil {
		if errs.IsAuth(err) {
			// The backend rejected the credential outright and
			// CurrentUser forced a logout.
			return
		}
		m.logger.Warn().Err(err).Msg("profile fetch failed during bootstrap; keeping optimistic session")
	}

	return
}

// Login exchanges credentials for a token pair, persists it, and
// resolves the user profile. A profile fetch that fails for non-auth
// reasons leaves the session authenticated with a minimal user record;
// the issued token is what the session stands on.
func (m *Manager) Login(ctx context.Context, username, password string) (*users.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, &errs.ValidationError{Message: errs.ErrEmptyUsername.Error()}
	}
	if strings.TrimSpace(password) == "" {
		return nil, &errs.ValidationError{Message: errs.ErrEmptyPassword.Error()}
	}

	m.setState(func(s *State) { s.Loading = true })
	defer m.setState(func(s *State) { s.Loading = false })

	resp, err := m.send(ctx, http.MethodPost, "/token/", nil, tokenRequest{Username: username, Password: password}, "")
	if err != nil {
		return nil, err
	}
	if resp.status != http.StatusOK {
		return nil, &errs.AuthError{Detail: errorDetail(resp.body, "login failed")}
	}

	var pair tokenPair
	if err := json.Unmarshal(resp.body, &pair); err != nil || pair.Access == "" {
		return nil, &errs.AuthError{Detail: "login failed: no token received", Err: err}
	}

	cred := &credentials.Credential{
		AccessToken:  pair.Access,
		RefreshToken: pair.Refresh,
		ObtainedAt:   m.nowTime(),
	}

	m.mu.Lock()
	if err := m.repo.Put(cred); err != nil {
		m.mu.Unlock()
		return nil, errors.Wrap(err, "[Login] persist credential")
	}
	m.state.Authenticated = true
	st := m.state
	m.mu.Unlock()
	m.notify(st)

	user, err := m.CurrentUser(ctx)
	if err != nil {
		if errs.IsAuth(err) {
			// The freshly issued token was itself rejected; the forced
			// logout from CurrentUser stands.
			return nil, err
		}
		user = users.Minimal(username)
		m.setState(func(s *State) { s.User = user })
		m.logger.Warn().Err(err).Str("username", username).Msg("profile fetch failed after login; using minimal user record")
	}

	return user, nil
}

// Logout deletes the persisted credential and cached profile and resets
// the session. It is unconditional and idempotent; it never fails.
func (m *Manager) Logout() {
	m.mu.Lock()
	_ = m.repo.Delete()
	_ = m.repo.DeleteUser()
	m.state.Authenticated = false
	m.state.User = nil
	st := m.state
	m.mu.Unlock()

	m.logger.Debug().Msg("session cleared")
	m.notify(st)
}

// CurrentUser resolves the authenticated user's profile. The call goes
// through the same dispatch path as every other resource call, so a 401
// gets the one refresh-and-retry before a terminal AuthError forces a
// logout.
func (m *Manager) CurrentUser(ctx context.Context) (*users.User, error) {
	var user users.User
	if err := m.Do(ctx, Request{Method: http.MethodGet, Path: "/users/me/"}, &user); err != nil {
		return nil, err
	}

	m.mu.Lock()
	_ = m.repo.PutUser(&user)
	m.state.Authenticated = true
	m.state.User = &user
	st := m.state
	m.mu.Unlock()
	m.notify(st)

	return &user, nil
}

// Refresh exchanges the persisted refresh token for a new access token
// and persists the replacement pair. Concurrent callers share a single
// in-flight refresh. Any failure forces a logout and reports an
// AuthError: the caller must re-authenticate via Login.
func (m *Manager) Refresh(ctx context.Context) (string, error) {
	access, err, _ := m.refreshGroup.Do("refresh", func() (any, error) {
		return m.refresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return access.(string), nil
}

func (m *Manager) refresh(ctx context.Context) (string, error) {
	cred, err := m.repo.Get()
	if err != nil || cred.RefreshToken == "" {
		m.Logout()
		return "", &errs.AuthError{Detail: "re-authentication required", Err: errs.ErrNoRefreshToken}
	}

	resp, err := m.send(ctx, http.MethodPost, "/token/refresh/", nil, refreshRequest{Refresh: cred.RefreshToken}, "")
	if err != nil {
		m.Logout()
		return "", &errs.AuthError{Detail: "token refresh failed", Err: err}
	}
	if resp.status != http.StatusOK {
		m.Logout()
		return "", &errs.AuthError{Detail: errorDetail(resp.body, "token refresh rejected")}
	}

	var pair tokenPair
	if err := json.Unmarshal(resp.body, &pair); err != nil || pair.Access == "" {
		m.Logout()
		return "", &errs.AuthError{Detail: "token refresh failed: no token received", Err: err}
	}

	next := &credentials.Credential{
		AccessToken:  pair.Access,
		RefreshToken: cred.RefreshToken,
		ObtainedAt:   m.nowTime(),
	}
	if pair.Refresh != "" {
		// The backend rotated the refresh token; persist the new one.
		next.RefreshToken = pair.Refresh
	}

	m.mu.Lock()
	// A logout that landed while the refresh was in flight wins; do not
	// resurrect the session with the new token.
	if _, err := m.repo.Get(); err != nil {
		m.mu.Unlock()
		return "", &errs.AuthError{Detail: "session expired", Err: errs.ErrSessionExpired}
	}
	putErr := m.repo.Put(next)
	m.mu.Unlock()
	if putErr != nil {
		m.Logout()
		return "", &errs.AuthError{Detail: "failed to persist refreshed credential", Err: putErr}
	}

	m.logger.Debug().Msg("access token refreshed")
	return pair.Access, nil
}
