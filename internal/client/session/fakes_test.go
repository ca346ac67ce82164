package session

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/guialocal/internal/client/client"
	"github.com/dmitrijs2005/guialocal/internal/client/models"
	"github.com/dmitrijs2005/guialocal/internal/common"
	"github.com/dmitrijs2005/guialocal/internal/logging"
	"github.com/dmitrijs2005/guialocal/internal/roles"
	"github.com/dmitrijs2005/guialocal/internal/secevents"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeBackend struct {
	clock *fakeClock

	mu             sync.Mutex
	stored         *models.Session
	password       string
	getErr         error
	signUpErr      error
	signOutErr     error
	signInCalls    int
	signUpCalls    int
	signOutCalls   int
	getCalls       int
	subscribeCalls int
	lastSignUpMD   map[string]any
	listeners      []client.AuthStateListener
	getEntered     chan struct{}
	getRelease     chan struct{}
	// calls records the order of backend calls.
	calls []string
}

func newFakeBackend(clock *fakeClock) *fakeBackend {
	return &fakeBackend{clock: clock, password: "correct-horse"}
}

func (b *fakeBackend) record(call string) {
	b.calls = append(b.calls, call)
}

func (b *fakeBackend) GetSession(context.Context) (*models.Session, error) {
	b.mu.Lock()
	b.getCalls++
	b.record("get_session")
	err := b.getErr
	var s *models.Session
	if b.stored != nil {
		c := *b.stored
		s = &c
	}
	entered, release := b.getEntered, b.getRelease
	b.mu.Unlock()

	// the answer is taken before blocking, as a slow server would have
	if release != nil {
		entered <- struct{}{}
		<-release
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// holdGetSession makes the next GetSession calls signal entered and wait
// for release before answering.
func (b *fakeBackend) holdGetSession() (entered, release chan struct{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.getEntered = make(chan struct{}, 1)
	b.getRelease = make(chan struct{})
	return b.getEntered, b.getRelease
}

func (b *fakeBackend) SignInWithCredentials(_ context.Context, email, password string) (*models.AuthResult, error) {
	b.mu.Lock()
	b.signInCalls++
	b.record("sign_in")
	if password != b.password {
		b.mu.Unlock()
		return nil, common.ErrorUnauthorized
	}
	user := models.User{ID: "u-" + email, Email: email}
	sess := models.Session{ID: "s1", AccessToken: "A1", RefreshToken: "R1", ExpiresAt: b.clock.Now().Add(24 * time.Hour), User: user}
	b.stored = &sess
	b.mu.Unlock()
	return &models.AuthResult{User: user, Session: sess}, nil
}

func (b *fakeBackend) SignUpWithCredentials(_ context.Context, _, _ string, md map[string]any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.signUpCalls++
	b.record("sign_up")
	b.lastSignUpMD = md
	return b.signUpErr
}

func (b *fakeBackend) SignOut(context.Context) error {
	b.mu.Lock()
	b.signOutCalls++
	b.record("sign_out")
	if b.signOutErr != nil {
		b.mu.Unlock()
		return b.signOutErr
	}
	b.stored = nil
	ls := append([]client.AuthStateListener(nil), b.listeners...)
	b.mu.Unlock()

	for _, fn := range ls {
		fn(client.SignedOut, nil)
	}
	return nil
}

func (b *fakeBackend) OnAuthStateChange(fn client.AuthStateListener) func() {
	b.mu.Lock()
	b.subscribeCalls++
	b.listeners = append(b.listeners, fn)
	var cur *models.Session
	if b.stored != nil {
		s := *b.stored
		cur = &s
	}
	b.mu.Unlock()

	fn(client.InitialSession, cur)
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.listeners = nil
	}
}

func (b *fakeBackend) ReadProfile(context.Context, string) (*models.Profile, error) {
	return nil, common.ErrorNotFound
}

func (b *fakeBackend) WriteProfile(_ context.Context, p *models.Profile) (*models.Profile, error) {
	return p, nil
}

func (b *fakeBackend) InvokeFunction(context.Context, string, any) error { return nil }

func (b *fakeBackend) emit(ev client.AuthEvent, s *models.Session) {
	b.mu.Lock()
	ls := append([]client.AuthStateListener(nil), b.listeners...)
	b.mu.Unlock()
	for _, fn := range ls {
		fn(ev, s)
	}
}

func (b *fakeBackend) counts() (signIn, signUp, signOut int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.signInCalls, b.signUpCalls, b.signOutCalls
}

type fakeResolver struct {
	mu    sync.Mutex
	roles map[string]roles.Role
	err   error
	calls int
	// gate, when set, blocks FetchProfile until closed.
	gate chan struct{}
}

func (r *fakeResolver) FetchProfile(_ context.Context, u models.User) (*models.Profile, error) {
	if r.gate != nil {
		<-r.gate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	role, ok := r.roles[u.Email]
	if !ok {
		role = roles.Usuario
	}
	return &models.Profile{UserID: u.ID, Email: u.Email, DisplayName: "Teste", AccountType: role}, nil
}

func (r *fakeResolver) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

type emitted struct {
	t       secevents.Type
	actorID string
	md      map[string]any
}

type recordingEmitter struct {
	mu     sync.Mutex
	events []emitted
	// backend, when set, lets tests see emit order relative to backend calls.
	backend *fakeBackend
}

func (e *recordingEmitter) Emit(_ context.Context, t secevents.Type, actorID string, md map[string]any) {
	if e.backend != nil {
		e.backend.mu.Lock()
		e.backend.record("emit:" + string(t))
		e.backend.mu.Unlock()
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, emitted{t, actorID, md})
}

func (e *recordingEmitter) types() []secevents.Type {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]secevents.Type, 0, len(e.events))
	for _, ev := range e.events {
		out = append(out, ev.t)
	}
	return out
}

type noticeLog struct {
	mu   sync.Mutex
	msgs []string
}

func (n *noticeLog) Notice(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
}

func (n *noticeLog) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.msgs...)
}

type harness struct {
	clock    *fakeClock
	backend  *fakeBackend
	resolver *fakeResolver
	events   *recordingEmitter
	notices  *noticeLog
	ticks    chan time.Time
	routes   []Route
	path     string
	m        *Manager
}

func newHarness(opts ...Option) *harness {
	h := &harness{
		clock:    newFakeClock(),
		resolver: &fakeResolver{roles: map[string]roles.Role{}},
		notices:  &noticeLog{},
		ticks:    make(chan time.Time),
		path:     RootPath,
	}
	h.backend = newFakeBackend(h.clock)
	h.events = &recordingEmitter{backend: h.backend}

	base := []Option{
		WithClock(h.clock),
		WithNotices(h.notices),
		WithNavigator(NavigatorFunc(func(r Route) { h.routes = append(h.routes, r) })),
		WithCurrentPath(func() string { return h.path }),
		WithTicker(func(time.Duration) (<-chan time.Time, func()) { return h.ticks, func() {} }),
	}
	h.m = NewManager(h.backend, h.resolver, h.events, logging.Discard(), append(base, opts...)...)
	return h
}
