package client

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/guialocal/internal/client/models"
	"github.com/dmitrijs2005/guialocal/internal/roles"
)

// AuthEvent names an auth state transition.
type AuthEvent string

const (
	InitialSession AuthEvent = "INITIAL_SESSION"
	SignedIn       AuthEvent = "SIGNED_IN"
	TokenRefreshed AuthEvent = "TOKEN_REFRESHED"
	SignedOut      AuthEvent = "SIGNED_OUT"
)

// AuthStateListener receives transitions. session is nil after SIGNED_OUT
// and for an INITIAL_SESSION without a stored session.
type AuthStateListener func(event AuthEvent, session *models.Session)

// Backend is the collaborator behind the session context.
type Backend interface {
	GetSession(ctx context.Context) (*models.Session, error)
	SignInWithCredentials(ctx context.Context, email, password string) (*models.AuthResult, error)
	SignUpWithCredentials(ctx context.Context, email, password string, metadata map[string]any) error
	SignOut(ctx context.Context) error
	OnAuthStateChange(fn AuthStateListener) (unsubscribe func())

	ReadProfile(ctx context.Context, userID string) (*models.Profile, error)
	WriteProfile(ctx context.Context, p *models.Profile) (*models.Profile, error)
	InvokeFunction(ctx context.Context, name string, payload any) error
}

// AdminBackend is the surface used by the CLI beyond the session context.
type AdminBackend interface {
	Backend
	Ping(ctx context.Context) error
	UpdateOwnProfile(ctx context.Context, displayName string, phone, cityID *string) (*models.Profile, error)
	SetAccountType(ctx context.Context, userID string, role roles.Role) (*models.Profile, error)
	CreateUser(ctx context.Context, u models.NewUser) (*models.Profile, error)
	DeleteUser(ctx context.Context, userID string) error
	ListProfiles(ctx context.Context, f models.ProfileFilter) ([]*models.Profile, error)
	PresignAvatarUpload(ctx context.Context, contentType string) (url, key string, err error)
	UploadAvatar(ctx context.Context, url, contentType string, data []byte) error
}

type listener struct {
	id int
	fn AuthStateListener
}

// listeners is an ordered, concurrency-safe subscriber list.
type listeners struct {
	mu     sync.Mutex
	nextID int
	items  []listener
}

func (l *listeners) add(fn AuthStateListener) func() {
	l.mu.Lock()
	l.nextID++
	id := l.nextID
	l.items = append(l.items, listener{id: id, fn: fn})
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			for i, it := range l.items {
				if it.id == id {
					l.items = append(l.items[:i], l.items[i+1:]...)
					return
				}
			}
		})
	}
}

// notify calls every listener outside the lock, each with its own copy of
// the session.
func (l *listeners) notify(ev AuthEvent, s *models.Session) {
	l.mu.Lock()
	fns := make([]AuthStateListener, len(l.items))
	for i, it := range l.items {
		fns[i] = it.fn
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(ev, cloneSession(s))
	}
}

func cloneSession(s *models.Session) *models.Session {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
