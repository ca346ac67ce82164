// Package session owns the signed-in user of the CLI: sign-in, sign-up and
// sign-out, periodic session validation with an inactivity timeout, local
// throttling of credential attempts and the post-login route.
//
// A Manager is created by the composition root and bracketed by Init and
// Teardown; it holds no package-level state.
package session

import (
	"context"
	"errors"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/guialocal/internal/client/client"
	"github.com/dmitrijs2005/guialocal/internal/client/models"
	"github.com/dmitrijs2005/guialocal/internal/client/profile"
	"github.com/dmitrijs2005/guialocal/internal/common"
	"github.com/dmitrijs2005/guialocal/internal/logging"
	"github.com/dmitrijs2005/guialocal/internal/roles"
	"github.com/dmitrijs2005/guialocal/internal/secevents"
	"github.com/dmitrijs2005/guialocal/internal/timex"
)

// ProfileResolver supplies the application profile of an identity.
type ProfileResolver interface {
	FetchProfile(ctx context.Context, identity models.User) (*models.Profile, error)
}

// Emitter records security events on a best-effort basis.
type Emitter interface {
	Emit(ctx context.Context, t secevents.Type, actorID string, metadata map[string]any)
}

type Manager struct {
	backend  client.Backend
	profiles ProfileResolver
	events   Emitter
	logger   logging.Logger

	clock         timex.Clock
	navigator     Navigator
	notices       NoticeSink
	currentPath   func() string
	checkInterval time.Duration
	newTicker     func(time.Duration) (<-chan time.Time, func())

	inactivityTimeout time.Duration
	maxAttempts       int
	attemptWindow     time.Duration

	mu           sync.Mutex
	session      *models.Session
	user         *models.User
	profile      *models.Profile
	lastActivity time.Time
	valid        bool
	// gen changes whenever a session is established or cleared, so a
	// validation that started under another session can be discarded.
	gen          uint64
	attempts     map[string]*attempts
	loopCancel   context.CancelFunc

	initMu      sync.Mutex
	initialized bool
	unsubscribe func()
	loops       sync.WaitGroup
}

type Option func(*Manager)

func WithClock(c timex.Clock) Option { return func(m *Manager) { m.clock = c } }

func WithNavigator(n Navigator) Option { return func(m *Manager) { m.navigator = n } }

func WithNotices(n NoticeSink) Option { return func(m *Manager) { m.notices = n } }

// WithCurrentPath tells the manager where the UI currently is.
func WithCurrentPath(f func() string) Option { return func(m *Manager) { m.currentPath = f } }

func WithCheckInterval(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.checkInterval = d
		}
	}
}

// WithTicker replaces the validation ticker, mainly for tests.
func WithTicker(f func(time.Duration) (<-chan time.Time, func())) Option {
	return func(m *Manager) { m.newTicker = f }
}

func systemTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

func NewManager(b client.Backend, p ProfileResolver, e Emitter, l logging.Logger, opts ...Option) *Manager {
	m := &Manager{
		backend:           b,
		profiles:          p,
		events:            e,
		logger:            l.With("module", "session"),
		clock:             timex.SystemClock{},
		navigator:         nopNavigator{},
		notices:           nopNotices{},
		currentPath:       func() string { return RootPath },
		checkInterval:     common.SessionCheckInterval,
		newTicker:         systemTicker,
		inactivityTimeout: common.InactivityTimeout,
		maxAttempts:       common.MaxAuthAttempts,
		attemptWindow:     common.AuthAttemptWindow,
		attempts:          make(map[string]*attempts),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Init restores a stored session, subscribes to auth state changes and
// starts validation. Repeated or concurrent calls do the work once.
func (m *Manager) Init(ctx context.Context) error {
	m.initMu.Lock()
	defer m.initMu.Unlock()

	if m.initialized {
		return nil
	}

	sess, err := m.backend.GetSession(ctx)
	if err != nil {
		m.logger.Warn(ctx, "no session restored", "error", err)
	}
	if err == nil && sess != nil && !sess.Expired(m.clock.Now()) {
		m.establish(ctx, sess)
	}

	m.unsubscribe = m.backend.OnAuthStateChange(m.onAuthStateChange)
	m.initialized = true
	return nil
}

// Teardown stops validation and the auth state subscription. The manager
// can be initialised again afterwards.
func (m *Manager) Teardown() {
	m.initMu.Lock()
	defer m.initMu.Unlock()

	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.stopLoop()
	m.loops.Wait()
	m.initialized = false
}

func (m *Manager) onAuthStateChange(ev client.AuthEvent, sess *models.Session) {
	switch ev {
	case client.SignedIn, client.TokenRefreshed:
		if sess == nil {
			return
		}
		m.mu.Lock()
		m.session = sess
		u := sess.User
		m.user = &u
		m.mu.Unlock()
	case client.SignedOut:
		m.clearLocal()
	}
}

// establish records an authenticated session, resolves the profile and
// starts validation. It returns the resolved profile, possibly nil.
func (m *Manager) establish(ctx context.Context, sess *models.Session) *models.Profile {
	now := m.clock.Now()
	u := sess.User

	m.mu.Lock()
	m.session = sess
	m.user = &u
	m.lastActivity = now
	m.valid = true
	m.gen++
	m.mu.Unlock()

	p, err := m.profiles.FetchProfile(ctx, u)
	if err != nil {
		m.logger.Warn(ctx, "profile unavailable", "user_id", u.ID, "error", err)
		p = nil
	}

	m.mu.Lock()
	m.profile = p
	m.mu.Unlock()

	m.startLoop(ctx)
	return p
}

func (m *Manager) clearLocal() {
	m.mu.Lock()
	m.session = nil
	m.user = nil
	m.profile = nil
	m.valid = false
	m.gen++
	m.mu.Unlock()
	m.stopLoop()
}

// SignIn authenticates identifier. Throttled identifiers are rejected with
// common.ErrRateLimited before the backend is contacted.
func (m *Manager) SignIn(ctx context.Context, identifier, secret string) error {
	if !m.CheckRateLimit(identifier) {
		return common.ErrRateLimited
	}

	res, err := m.backend.SignInWithCredentials(ctx, identifier, secret)
	if err != nil {
		m.RecordAuthAttempt(identifier)
		m.events.Emit(ctx, secevents.LoginFailed, "", map[string]any{
			"email": identifier,
			"error": err.Error(),
		})
		return err
	}

	m.events.Emit(ctx, secevents.LoginSuccess, res.User.ID, map[string]any{"email": identifier})

	sess := res.Session
	sess.User = res.User
	p := m.establish(ctx, &sess)

	if p != nil {
		if route, ok := DecidePostLoginRoute(p.AccountType, m.currentPath()); ok {
			m.navigator.Navigate(route)
		}
	}
	return nil
}

// SignUp registers a new identity. displayName, role and extra end up in the
// identity metadata and seed the profile on first sign-in.
func (m *Manager) SignUp(ctx context.Context, identifier, secret, displayName string, role roles.Role, extra *profile.Extra) error {
	if utf8.RuneCountInString(secret) < common.MinPasswordLength {
		return common.ErrPasswordTooShort
	}
	if role == "" {
		role = roles.Usuario
	}
	if err := roles.AuthorizeSelfAssign(role); err != nil {
		return err
	}

	md := map[string]any{"account_type": role.String()}
	if displayName != "" {
		md["nome"] = displayName
	}
	if extra != nil {
		if extra.Phone != nil {
			md["phone"] = *extra.Phone
		}
		if extra.CityID != nil {
			md["city_id"] = *extra.CityID
		}
	}

	if err := m.backend.SignUpWithCredentials(ctx, identifier, secret, md); err != nil {
		return err
	}

	m.events.Emit(ctx, secevents.SignupSuccess, "", map[string]any{
		"email":        identifier,
		"account_type": role.String(),
	})
	return nil
}

// SignOut ends the session. Local state is kept when the backend refuses.
func (m *Manager) SignOut(ctx context.Context) error {
	m.mu.Lock()
	var userID string
	if m.user != nil {
		userID = m.user.ID
	}
	m.mu.Unlock()

	if userID != "" {
		m.events.Emit(ctx, secevents.Logout, userID, nil)
	}

	if err := m.backend.SignOut(ctx); err != nil {
		return err
	}

	m.clearLocal()
	return nil
}

// ValidateSession checks the session against the backend, its expiry and the
// inactivity timeout. Any doubt counts as invalid. An inactive or expired
// session is signed out and the user is told why. An answer that arrives after
// the session was cleared or replaced is dropped without touching state.
func (m *Manager) ValidateSession(ctx context.Context) bool {
	m.mu.Lock()
	gen := m.gen
	m.mu.Unlock()

	sess, err := m.backend.GetSession(ctx)
	if err != nil || sess == nil {
		if err != nil {
			m.logger.Warn(ctx, "session check failed", "error", err)
		}
		if m.invalidate(gen) && isAuthError(err) {
			m.forceSignOut(ctx, common.MsgSessionExpired)
		}
		return false
	}

	now := m.clock.Now()
	if sess.Expired(now) {
		if m.invalidate(gen) {
			m.forceSignOut(ctx, common.MsgSessionExpired)
		}
		return false
	}

	m.mu.Lock()
	if m.gen != gen {
		m.mu.Unlock()
		m.logger.Debug(ctx, "stale session check dropped")
		return false
	}
	if now.Sub(m.lastActivity) <= m.inactivityTimeout {
		m.session = sess
		m.valid = true
		m.mu.Unlock()
		return true
	}
	m.mu.Unlock()

	if m.invalidate(gen) {
		m.forceSignOut(ctx, common.MsgSessionInactive)
	}
	return false
}

func isAuthError(err error) bool {
	return errors.Is(err, common.ErrSessionRevoked) ||
		errors.Is(err, common.ErrRefreshTokenExpired) ||
		errors.Is(err, common.ErrInvalidToken) ||
		errors.Is(err, common.ErrorUnauthorized)
}

// invalidate marks the session invalid if it is still the one of generation
// gen, and reports whether it was.
func (m *Manager) invalidate(gen uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != gen {
		return false
	}
	m.valid = false
	return true
}

func (m *Manager) forceSignOut(ctx context.Context, notice string) {
	if err := m.SignOut(ctx); err != nil {
		m.logger.Warn(ctx, "forced sign-out failed", "error", err)
		m.clearLocal()
	}
	m.notices.Notice(notice)
}

// UpdateActivity records user activity now.
func (m *Manager) UpdateActivity() {
	now := m.clock.Now()
	m.mu.Lock()
	m.lastActivity = now
	m.mu.Unlock()
}

// startLoop runs ValidateSession every checkInterval until stopped. A
// running loop is left alone.
func (m *Manager) startLoop(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loopCancel != nil {
		return
	}

	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	m.loopCancel = cancel
	ticks, stop := m.newTicker(m.checkInterval)

	m.loops.Add(1)
	go func() {
		defer m.loops.Done()
		defer stop()
		for {
			select {
			case <-loopCtx.Done():
				return
			case <-ticks:
				m.ValidateSession(loopCtx)
			}
		}
	}()
}

func (m *Manager) stopLoop() {
	m.mu.Lock()
	cancel := m.loopCancel
	m.loopCancel = nil
	m.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// CurrentUser returns a copy of the signed-in identity, or nil.
func (m *Manager) CurrentUser() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// CurrentProfile returns a copy of the actor profile, or nil when there is
// no application identity.
func (m *Manager) CurrentProfile() *models.Profile {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.profile == nil {
		return nil
	}
	p := *m.profile
	return &p
}

// CurrentRole is the actor's role, nil without a profile.
func (m *Manager) CurrentRole() *roles.Role {
	p := m.CurrentProfile()
	if p == nil {
		return nil
	}
	r := p.AccountType
	return &r
}

// SetProfile replaces the cached profile after the user edited it.
func (m *Manager) SetProfile(p *models.Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p == nil || m.user == nil || p.UserID != m.user.ID {
		return
	}
	c := *p
	m.profile = &c
}

func (m *Manager) IsValid() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.valid
}

func (m *Manager) LastActivity() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastActivity
}
