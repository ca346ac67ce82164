package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/guialocal/internal/common"
	"github.com/dmitrijs2005/guialocal/internal/dbx"
	"github.com/dmitrijs2005/guialocal/internal/roles"
	"github.com/dmitrijs2005/guialocal/internal/secevents"
	"github.com/dmitrijs2005/guialocal/internal/server/config"
	"github.com/dmitrijs2005/guialocal/internal/server/models"
	"github.com/dmitrijs2005/guialocal/internal/server/repositories/identities"
	"github.com/dmitrijs2005/guialocal/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/guialocal/internal/server/repositories/securityevents"
	"github.com/dmitrijs2005/guialocal/internal/server/repositories/sessions"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
		S3Region:                     "us-east-1",
		S3RootUser:                   "minioadmin",
		S3RootPassword:               "minioadmin",
		S3BaseEndpoint:               "http://127.0.0.1:9000",
		S3Bucket:                     "media",
	}
}

// fakeStore backs every fake repository with maps.
type fakeStore struct {
	mu         sync.Mutex
	identities map[string]*models.Identity
	profiles   map[string]*models.Profile
	sessions   map[string]*models.Session
	events     []secevents.Event

	failWith error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		identities: map[string]*models.Identity{},
		profiles:   map[string]*models.Profile{},
		sessions:   map[string]*models.Session{},
	}
}

type fakeRepoManager struct{ s *fakeStore }

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Identities(dbx.DBTX) identities.Repository     { return (*fakeIdentities)(m.s) }
func (m *fakeRepoManager) Profiles(dbx.DBTX) profiles.Repository         { return (*fakeProfiles)(m.s) }
func (m *fakeRepoManager) Sessions(dbx.DBTX) sessions.Repository         { return (*fakeSessions)(m.s) }
func (m *fakeRepoManager) SecurityEvents(dbx.DBTX) securityevents.Repository {
	return (*fakeEvents)(m.s)
}

type fakeIdentities fakeStore

func (f *fakeIdentities) Create(_ context.Context, i *models.Identity) (*models.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, x := range f.identities {
		if x.Email == i.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	i.ID = uuid.NewString()
	i.CreatedAt = time.Now()
	f.identities[i.ID] = i
	return i, nil
}

func (f *fakeIdentities) GetByEmail(_ context.Context, email string) (*models.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, x := range f.identities {
		if x.Email == email {
			return x, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeIdentities) GetByID(_ context.Context, id string) (*models.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if x, ok := f.identities[id]; ok {
		return x, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeIdentities) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.identities[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.identities, id)
	return nil
}

type fakeProfiles fakeStore

func (f *fakeProfiles) Get(_ context.Context, userID string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.profiles[userID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeProfiles) Create(_ context.Context, p *models.Profile) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.profiles[p.UserID]; ok {
		return nil, common.ErrorAlreadyExists
	}
	cp := *p
	f.profiles[p.UserID] = &cp
	return p, nil
}

func (f *fakeProfiles) UpdateOwn(_ context.Context, userID, displayName string, phone, cityID *string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	p.DisplayName, p.Phone, p.CityID = displayName, phone, cityID
	cp := *p
	return &cp, nil
}

func (f *fakeProfiles) SetAccountType(_ context.Context, userID string, role roles.Role) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	p.AccountType = role
	cp := *p
	return &cp, nil
}

func (f *fakeProfiles) SetAvatarKey(_ context.Context, userID, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return common.ErrorNotFound
	}
	p.AvatarKey = &key
	return nil
}

func (f *fakeProfiles) Delete(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.profiles[userID]; !ok {
		return common.ErrorNotFound
	}
	delete(f.profiles, userID)
	return nil
}

func (f *fakeProfiles) List(_ context.Context, filter models.ProfileFilter) ([]*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Profile
	for _, p := range f.profiles {
		if filter.CityID != "" && (p.CityID == nil || *p.CityID != filter.CityID) {
			continue
		}
		if filter.AccountType != "" && p.AccountType != filter.AccountType {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

type fakeSessions fakeStore

func (f *fakeSessions) Create(_ context.Context, userID, tokenHash string, validity time.Duration) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := &models.Session{ID: uuid.NewString(), UserID: userID, TokenHash: tokenHash, ExpiresAt: time.Now().Add(validity), CreatedAt: time.Now()}
	f.sessions[s.ID] = s
	cp := *s
	return &cp, nil
}

func (f *fakeSessions) FindByTokenHash(_ context.Context, tokenHash string) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sessions {
		if s.TokenHash == tokenHash {
			cp := *s
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeSessions) Get(_ context.Context, id string) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.sessions[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeSessions) Rotate(_ context.Context, id, newTokenHash string, validity time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok || s.RevokedAt != nil {
		return common.ErrorNotFound
	}
	s.TokenHash = newTokenHash
	s.ExpiresAt = time.Now().Add(validity)
	return nil
}

func (f *fakeSessions) Revoke(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.sessions[id]; ok && s.RevokedAt == nil {
		now := time.Now()
		s.RevokedAt = &now
	}
	return nil
}

func (f *fakeSessions) DeleteForUser(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, s := range f.sessions {
		if s.UserID == userID {
			delete(f.sessions, id)
		}
	}
	return nil
}

type fakeEvents fakeStore

func (f *fakeEvents) Insert(_ context.Context, e secevents.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.events = append(f.events, e)
	return nil
}

// recordingEmitter captures emitted events synchronously.
type recordingEmitter struct {
	mu     sync.Mutex
	events []secevents.Event
}

func (r *recordingEmitter) Emit(_ context.Context, t secevents.Type, actorID string, md map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, secevents.New(t, actorID, md, time.Now()))
}

func (r *recordingEmitter) types() []secevents.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]secevents.Type, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func strp(s string) *string { return &s }

// seedProfile stores an identity and profile with the given role.
func seedProfile(t *testing.T, st *fakeStore, email string, role roles.Role, city *string) *models.Profile {
	t.Helper()
	id := uuid.NewString()
	st.identities[id] = &models.Identity{ID: id, Email: email}
	p := &models.Profile{UserID: id, DisplayName: email, Email: email, AccountType: role, CityID: city}
	st.profiles[id] = p
	return p
}
