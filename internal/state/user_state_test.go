package state

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/carelink/carelink-go/internal/api"
	"github.com/carelink/carelink-go/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeUserRepo resolves each call from canned values. An optional gate
// channel holds calls open so tests can observe the Loading state.
type fakeUserRepo struct {
	user *model.User
	err  error
	gate chan struct{}
}

func (f *fakeUserRepo) await(ctx context.Context) error {
	if f.gate == nil {
		return nil
	}
	select {
	case <-f.gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeUserRepo) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if err := f.await(ctx); err != nil {
		return nil, err
	}
	return f.user, f.err
}

func (f *fakeUserRepo) Login(ctx context.Context, req *model.LoginRequest) (*model.User, error) {
	if err := f.await(ctx); err != nil {
		return nil, err
	}
	return f.user, f.err
}

func (f *fakeUserRepo) Get(ctx context.Context, userID int64) (*model.User, error) {
	if err := f.await(ctx); err != nil {
		return nil, err
	}
	return f.user, f.err
}

func (f *fakeUserRepo) Update(ctx context.Context, user *model.User) (*model.User, error) {
	if err := f.await(ctx); err != nil {
		return nil, err
	}
	return f.user, f.err
}

// fakeSessionStore is an in-memory SessionStore
type fakeSessionStore struct {
	mu   sync.Mutex
	user *model.SessionUser
}

func (f *fakeSessionStore) Save(user *model.SessionUser) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.user = user
	return nil
}

func (f *fakeSessionStore) Load() (*model.SessionUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.user, nil
}

func (f *fakeSessionStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.user = nil
	return nil
}

func testUser() *model.User {
	return &model.User{
		ID:        7,
		Username:  "jdoe",
		Email:     "jdoe@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Role:      model.RolePatient,
	}
}

func TestUserStateLogInSuccess(t *testing.T) {
	repo := &fakeUserRepo{user: testUser()}
	sessions := &fakeSessionStore{}
	s := NewUserState(repo, sessions, nil, 0, zap.NewNop())
	defer s.Close()

	s.LogIn(&model.LoginRequest{Username: "jdoe", Password: "secret123"})

	snap := waitForStatus(t, s.Login, StatusSuccess)
	assert.Equal(t, int64(7), snap.Data.ID)

	// the fresh identity doubles as the profile
	profile := waitForStatus(t, s.Profile, StatusSuccess)
	assert.Equal(t, "jdoe", profile.Data.Username)

	// and the session snapshot was persisted
	saved, err := sessions.Load()
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, int64(7), saved.ID)
	assert.Equal(t, "Jane", saved.FirstName)
}

func TestUserStateLogInSetsLoadingSynchronously(t *testing.T) {
	repo := &fakeUserRepo{user: testUser(), gate: make(chan struct{})}
	s := NewUserState(repo, &fakeSessionStore{}, nil, 0, zap.NewNop())
	defer s.Close()

	s.LogIn(&model.LoginRequest{Username: "jdoe", Password: "secret123"})

	// before the repo call resolves the slot is already Loading
	assert.Equal(t, StatusLoading, s.Login.Get().Status)

	close(repo.gate)
	waitForStatus(t, s.Login, StatusSuccess)
}

func TestUserStateLogInFailureKeepsSessionEmpty(t *testing.T) {
	repo := &fakeUserRepo{err: errors.New("invalid credentials")}
	sessions := &fakeSessionStore{}
	s := NewUserState(repo, sessions, nil, 0, zap.NewNop())
	defer s.Close()

	s.LogIn(&model.LoginRequest{Username: "jdoe", Password: "wrong"})

	snap := waitForStatus(t, s.Login, StatusError)
	assert.Equal(t, ErrorUnknown, snap.Kind)

	saved, err := sessions.Load()
	require.NoError(t, err)
	assert.Nil(t, saved)
}

func TestUserStateSignUpValidationFailsSynchronously(t *testing.T) {
	repo := &fakeUserRepo{user: testUser(), gate: make(chan struct{})}
	s := NewUserState(repo, &fakeSessionStore{}, nil, 0, zap.NewNop())
	defer s.Close()

	// empty username and short password never reach the repository
	s.SignUp(&model.RegisterRequest{Password: "short", Email: "x@example.com", Role: model.RolePatient})

	snap := s.Register.Get()
	assert.Equal(t, StatusError, snap.Status)
	assert.Equal(t, ErrorValidation, snap.Kind)
}

func TestUserStateFetchProfileNotFound(t *testing.T) {
	repo := &fakeUserRepo{err: api.ErrNotFound}
	s := NewUserState(repo, &fakeSessionStore{}, nil, 0, zap.NewNop())
	defer s.Close()

	s.FetchProfile(404)

	snap := waitForStatus(t, s.Profile, StatusError)
	assert.Equal(t, ErrorNotFound, snap.Kind)
}

func TestUserStateFetchProfileIsIdempotent(t *testing.T) {
	repo := &fakeUserRepo{user: testUser()}
	s := NewUserState(repo, &fakeSessionStore{}, nil, 0, zap.NewNop())
	defer s.Close()

	s.FetchProfile(7)
	first := waitForStatus(t, s.Profile, StatusSuccess)

	// re-fetching against unchanged backend state resolves to the same
	// payload
	s.FetchProfile(7)
	second := waitForStatus(t, s.Profile, StatusSuccess)

	assert.Equal(t, first.Data, second.Data)
}

func TestUserStateLogOutClearsSession(t *testing.T) {
	sessions := &fakeSessionStore{user: &model.SessionUser{
		ID: 7, Username: "jdoe", Email: "jdoe@example.com", FirstName: "Jane", LastName: "Doe",
	}}
	s := NewUserState(&fakeUserRepo{}, sessions, nil, 0, zap.NewNop())
	defer s.Close()

	require.NoError(t, s.LogOut())

	saved, err := sessions.Load()
	require.NoError(t, err)
	assert.Nil(t, saved)
}

func TestUserStateRestoreSession(t *testing.T) {
	sessions := &fakeSessionStore{user: &model.SessionUser{
		ID: 7, Username: "jdoe", Email: "jdoe@example.com", FirstName: "Jane", LastName: "Doe",
	}}
	s := NewUserState(&fakeUserRepo{}, sessions, nil, 0, zap.NewNop())
	defer s.Close()

	restored, err := s.RestoreSession()
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, "jdoe", restored.Username)
}

func TestUserStateCloseCancelsInFlightWork(t *testing.T) {
	repo := &fakeUserRepo{user: testUser(), gate: make(chan struct{})}
	s := NewUserState(repo, &fakeSessionStore{}, nil, 0, zap.NewNop())

	s.FetchProfile(7)
	assert.Equal(t, StatusLoading, s.Profile.Get().Status)

	s.Close()

	snap := s.Profile.Get()
	assert.Equal(t, StatusError, snap.Status)
	assert.Equal(t, ErrorTransport, snap.Kind)
}
