package state

import (
	"context"
	"time"

	"github.com/carelink/carelink-go/internal/validation"
	"github.com/carelink/carelink-go/pkg/model"
	"go.uber.org/zap"
)

// UserState holds the authentication and profile slots. The session
// store is written on successful login so the identity survives process
// restarts, and wiped on logout.
type UserState struct {
	container

	Login    *Slot[model.User]
	Register *Slot[model.User]
	Profile  *Slot[model.User]

	repo     UserRepo
	sessions SessionStore
	cache    UserCache
}

// NewUserState creates the user container. cache may be nil when no
// local store is attached.
func NewUserState(repo UserRepo, sessions SessionStore, cache UserCache, timeout time.Duration, logger *zap.Logger) *UserState {
	return &UserState{
		container: newContainer(timeout, logger),
		Login:     NewSlot[model.User](),
		Register:  NewSlot[model.User](),
		Profile:   NewSlot[model.User](),
		repo:      repo,
		sessions:  sessions,
		cache:     cache,
	}
}

// LogIn authenticates and persists the session snapshot
func (s *UserState) LogIn(req *model.LoginRequest) {
	s.Login.setLoading()
	s.run(func(ctx context.Context) {
		user, err := s.repo.Login(ctx, req)
		if err != nil {
			s.Login.fail(err)
			return
		}

		if s.sessions != nil {
			snapshot := &model.SessionUser{
				ID:        user.ID,
				Username:  user.Username,
				Email:     user.Email,
				FirstName: user.FirstName,
				LastName:  user.LastName,
			}
			if err := s.sessions.Save(snapshot); err != nil {
				s.logger.Warn("failed to persist session", zap.Error(err), zap.Int64("user_id", user.ID))
			}
		}
		s.mirror(ctx, user)

		s.Login.succeed(*user)
		// Dependent slot: the fresh identity doubles as the profile.
		s.Profile.succeed(*user)
	})
}

// SignUp validates the form and registers a new account
func (s *UserState) SignUp(req *model.RegisterRequest) {
	s.Register.setLoading()

	if err := validation.CheckRegistration(req); err != nil {
		s.Register.fail(err)
		return
	}

	s.run(func(ctx context.Context) {
		user, err := s.repo.Register(ctx, req)
		if err != nil {
			s.Register.fail(err)
			return
		}
		s.mirror(ctx, user)
		s.Register.succeed(*user)
	})
}

// FetchProfile loads a user's profile into the Profile slot
func (s *UserState) FetchProfile(userID int64) {
	s.Profile.setLoading()
	s.run(func(ctx context.Context) {
		user, err := s.repo.Get(ctx, userID)
		if err != nil {
			s.Profile.fail(err)
			return
		}
		s.mirror(ctx, user)
		s.Profile.succeed(*user)
	})
}

// UpdateProfile replaces the profile fields and refreshes the Profile slot
func (s *UserState) UpdateProfile(user *model.User) {
	s.Profile.setLoading()
	s.run(func(ctx context.Context) {
		updated, err := s.repo.Update(ctx, user)
		if err != nil {
			s.Profile.fail(err)
			return
		}
		s.mirror(ctx, updated)
		s.Profile.succeed(*updated)
	})
}

// LogOut wipes the persisted session. Slots keep their last snapshot;
// the UI tears the container down right after.
func (s *UserState) LogOut() error {
	if s.sessions == nil {
		return nil
	}
	return s.sessions.Clear()
}

// RestoreSession returns the persisted identity, or nil when no
// complete session record exists
func (s *UserState) RestoreSession() (*model.SessionUser, error) {
	if s.sessions == nil {
		return nil, nil
	}
	return s.sessions.Load()
}

func (s *UserState) mirror(ctx context.Context, user *model.User) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Upsert(ctx, user); err != nil {
		s.logger.Warn("failed to cache user", zap.Error(err), zap.Int64("user_id", user.ID))
	}
}
