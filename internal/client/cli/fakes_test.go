package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/guialocal/internal/client/client"
	"github.com/dmitrijs2005/guialocal/internal/client/config"
	"github.com/dmitrijs2005/guialocal/internal/client/models"
	"github.com/dmitrijs2005/guialocal/internal/client/profile"
	"github.com/dmitrijs2005/guialocal/internal/client/session"
	"github.com/dmitrijs2005/guialocal/internal/common"
	"github.com/dmitrijs2005/guialocal/internal/logging"
	"github.com/dmitrijs2005/guialocal/internal/roles"
	"github.com/dmitrijs2005/guialocal/internal/secevents"
)

const testPassword = "segredo123"

type account struct {
	id       string
	password string
}

// fakeBackend is an in-memory client.AdminBackend.
type fakeBackend struct {
	mu sync.Mutex

	accounts map[string]account
	profiles map[string]*models.Profile
	session  *models.Session

	signIns    int
	signUpMD   map[string]any
	signUps    int
	signOutErr error
	pingErr    error
	listFilter models.ProfileFilter
	roleSets   map[string]roles.Role
	created    []models.NewUser
	deleted    []string
	presignCT  string
	uploaded   []byte
}

var _ client.AdminBackend = (*fakeBackend)(nil)

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		accounts: map[string]account{},
		profiles: map[string]*models.Profile{},
		roleSets: map[string]roles.Role{},
	}
}

func (f *fakeBackend) addUser(id, email string, role roles.Role) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[email] = account{id: id, password: testPassword}
	f.profiles[id] = &models.Profile{UserID: id, Email: email, DisplayName: "Nome " + id, AccountType: role}
}

func (f *fakeBackend) GetSession(context.Context) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.session == nil {
		return nil, nil
	}
	s := *f.session
	return &s, nil
}

func (f *fakeBackend) SignInWithCredentials(_ context.Context, email, password string) (*models.AuthResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signIns++
	acc, ok := f.accounts[email]
	if !ok || acc.password != password {
		return nil, common.ErrorUnauthorized
	}
	u := models.User{ID: acc.id, Email: email}
	s := models.Session{ID: "s-" + acc.id, AccessToken: "tok", ExpiresAt: time.Now().Add(time.Hour), User: u}
	f.session = &s
	return &models.AuthResult{User: u, Session: s}, nil
}

func (f *fakeBackend) SignUpWithCredentials(_ context.Context, _, _ string, md map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signUps++
	f.signUpMD = md
	return nil
}

func (f *fakeBackend) SignOut(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.signOutErr != nil {
		return f.signOutErr
	}
	f.session = nil
	return nil
}

func (f *fakeBackend) OnAuthStateChange(client.AuthStateListener) func() { return func() {} }

func (f *fakeBackend) ReadProfile(_ context.Context, userID string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *p
	return &c, nil
}

func (f *fakeBackend) WriteProfile(_ context.Context, p *models.Profile) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := *p
	f.profiles[p.UserID] = &c
	return p, nil
}

func (f *fakeBackend) InvokeFunction(context.Context, string, any) error { return nil }

func (f *fakeBackend) Ping(context.Context) error { return f.pingErr }

func (f *fakeBackend) UpdateOwnProfile(_ context.Context, displayName string, phone, cityID *string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.profiles[f.session.User.ID]
	p.DisplayName, p.Phone, p.CityID = displayName, phone, cityID
	c := *p
	return &c, nil
}

func (f *fakeBackend) SetAccountType(_ context.Context, userID string, role roles.Role) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	f.roleSets[userID] = role
	p.AccountType = role
	c := *p
	return &c, nil
}

func (f *fakeBackend) CreateUser(_ context.Context, u models.NewUser) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, u)
	return &models.Profile{UserID: "new-id", Email: u.Email, AccountType: u.AccountType}, nil
}

func (f *fakeBackend) DeleteUser(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, userID)
	return nil
}

func (f *fakeBackend) ListProfiles(_ context.Context, flt models.ProfileFilter) ([]*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listFilter = flt
	var out []*models.Profile
	for _, p := range f.profiles {
		if flt.AccountType != "" && p.AccountType != flt.AccountType {
			continue
		}
		c := *p
		out = append(out, &c)
	}
	return out, nil
}

func (f *fakeBackend) PresignAvatarUpload(_ context.Context, contentType string) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.presignCT = contentType
	return "http://upload.invalid/put", "avatars/u1.png", nil
}

func (f *fakeBackend) UploadAvatar(_ context.Context, _, _ string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploaded = append([]byte(nil), data...)
	return nil
}

type recordingEmitter struct {
	mu    sync.Mutex
	types []secevents.Type
}

func (r *recordingEmitter) Emit(_ context.Context, t secevents.Type, _ string, _ map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = append(r.types, t)
}

func noTicker(time.Duration) (<-chan time.Time, func()) { return nil, func() {} }

// newTestApp builds an App over fb reading input and writing to the
// returned buffer. Validation never ticks.
func newTestApp(t *testing.T, fb *fakeBackend, input string) (*App, *bytes.Buffer) {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()

	out := &bytes.Buffer{}
	ev := &recordingEmitter{}
	res := profile.NewResolver(fb, ev, logging.Discard())
	a := newApp(cfg, fb, res, ev, strings.NewReader(input), out, logging.Discard(), session.WithTicker(noTicker))
	t.Cleanup(a.manager.Teardown)
	return a, out
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

// login signs a in as email via the Login command.
func login(t *testing.T, a *App, email string) {
	t.Helper()
	stubPassword(t, testPassword)
	a.reader.Reset(strings.NewReader(email + "\n"))
	if err := a.Login(context.Background()); err != nil {
		t.Fatalf("login %s: %v", email, err)
	}
}
