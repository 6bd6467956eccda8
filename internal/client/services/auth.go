// Package services contains the application services of the triplog client:
// the session/auth manager and the trip list controller. Both sit between
// the presentation layer and the resource API and own all business rules.
package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/avilov/triplog/internal/client/api"
	"github.com/avilov/triplog/internal/client/models"
	"github.com/avilov/triplog/internal/client/repositories/session"
	"github.com/avilov/triplog/internal/common"
	"github.com/avilov/triplog/internal/logging"
)

// RegisterRequest carries the fields required to create an account.
// All four are mandatory; format rules (email shape, minimum lengths) are
// the presentation layer's job.
type RegisterRequest struct {
	Username string
	Email    string
	Password string
	FullName string
}

// Credentials identifies a user at login. EmailOrUsername matches either
// field of the stored record.
type Credentials struct {
	EmailOrUsername string
	Password        string
}

// AuthService owns the current-user session: who is signed in, and the
// persisted copy that survives restarts.
//
// Uniqueness of username and email is checked by querying the server before
// creating the record. There is no server-side constraint backing this up,
// so two concurrent registrations can both pass the check. That race is part
// of the storage contract, not a bug here.
type AuthService interface {
	// Register creates an account and, on success, signs the new user in.
	// Fails with common.ErrDuplicateEmail or common.ErrDuplicateUsername
	// when a matching record already exists.
	Register(ctx context.Context, req RegisterRequest) (models.User, error)

	// Login scans the user collection for a record matching the credentials.
	// Fails with common.ErrInvalidCredentials when nothing matches. The
	// returned user has the password stripped.
	Login(ctx context.Context, creds Credentials) (models.User, error)

	// Logout clears the in-memory and persisted session. Never fails.
	Logout(ctx context.Context) error

	// UpdateProfile merges the update over the server-side record of the
	// current user and refreshes the session on success. When the record
	// has vanished server-side the call logs and quietly does nothing.
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (models.User, error)

	// Restore rehydrates the session from the local store. Called once at
	// startup. A missing or unreadable blob leaves the session empty.
	Restore(ctx context.Context) error

	// Current returns the session user, if any.
	Current() (models.User, bool)
}

type authService struct {
	client  api.Client
	store   session.Repository
	logger  logging.Logger
	current *models.User
}

// NewAuthService constructs an AuthService bound to the given API client and
// local store.
func NewAuthService(client api.Client, store session.Repository, logger logging.Logger) AuthService {
	return &authService{client: client, store: store, logger: logger}
}

func (a *authService) Register(ctx context.Context, req RegisterRequest) (models.User, error) {
	var zero models.User

	if req.Username == "" || req.Email == "" || req.Password == "" || req.FullName == "" {
		return zero, fmt.Errorf("all fields are required")
	}

	// Fetch-then-check: the server has no uniqueness index, so this is the
	// only duplicate detection there is.
	byEmail, err := a.client.UsersByEmail(ctx, req.Email)
	if err != nil {
		return zero, fmt.Errorf("email lookup: %w", err)
	}
	if len(byEmail) > 0 {
		return zero, common.ErrDuplicateEmail
	}

	byUsername, err := a.client.UsersByUsername(ctx, req.Username)
	if err != nil {
		return zero, fmt.Errorf("username lookup: %w", err)
	}
	if len(byUsername) > 0 {
		return zero, common.ErrDuplicateUsername
	}

	newUser := models.User{
		ID:        models.NewID(),
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FullName:  req.FullName,
		CreatedAt: models.Timestamp(),
	}

	created, err := a.client.CreateUser(ctx, newUser)
	if err != nil {
		return zero, fmt.Errorf("create user: %w", err)
	}

	// Implicit login: a successful create makes the new account current.
	u := created.Stripped()
	a.setSession(ctx, u)
	return u, nil
}

func (a *authService) Login(ctx context.Context, creds Credentials) (models.User, error) {
	var zero models.User

	users, err := a.client.ListUsers(ctx)
	if err != nil {
		return zero, fmt.Errorf("fetch users: %w", err)
	}

	for _, u := range users {
		if (u.Email == creds.EmailOrUsername || u.Username == creds.EmailOrUsername) &&
			u.Password == creds.Password {
			stripped := u.Stripped()
			a.setSession(ctx, stripped)
			return stripped, nil
		}
	}
	return zero, common.ErrInvalidCredentials
}

func (a *authService) Logout(ctx context.Context) error {
	a.current = nil
	if err := a.store.Delete(ctx, session.KeyCurrentUser); err != nil {
		a.logger.Warn(ctx, "failed to clear persisted session", "error", err)
	}
	return nil
}

func (a *authService) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (models.User, error) {
	var zero models.User

	if a.current == nil {
		return zero, common.ErrNotAuthenticated
	}

	users, err := a.client.ListUsers(ctx)
	if err != nil {
		return zero, fmt.Errorf("fetch users: %w", err)
	}

	var found *models.User
	for i := range users {
		if users[i].ID == a.current.ID {
			found = &users[i]
			break
		}
	}
	if found == nil {
		// The session points at a record that no longer exists. Keep the
		// local session as-is and move on.
		a.logger.Error(ctx, "current user not found server-side", "id", a.current.ID)
		return *a.current, nil
	}

	merged := upd.Apply(*found)

	updated, err := a.client.UpdateUser(ctx, merged)
	if err != nil {
		return zero, fmt.Errorf("update user: %w", err)
	}

	u := updated.Stripped()
	a.setSession(ctx, u)
	return u, nil
}

func (a *authService) Restore(ctx context.Context) error {
	blob, err := a.store.Get(ctx, session.KeyCurrentUser)
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	if blob == nil {
		return nil
	}

	var u models.User
	if err := json.Unmarshal(blob, &u); err != nil {
		a.logger.Warn(ctx, "persisted session is unreadable, ignoring", "error", err)
		return nil
	}
	a.current = &u
	return nil
}

func (a *authService) Current() (models.User, bool) {
	if a.current == nil {
		return models.User{}, false
	}
	return *a.current, true
}

// setSession makes u current and persists it. Persistence failures are
// logged only: the in-memory session is still valid for this run.
func (a *authService) setSession(ctx context.Context, u models.User) {
	a.current = &u

	blob, err := json.Marshal(u)
	if err != nil {
		a.logger.Warn(ctx, "failed to serialize session", "error", err)
		return
	}
	if err := a.store.Set(ctx, session.KeyCurrentUser, blob); err != nil {
		a.logger.Warn(ctx, "failed to persist session", "error", err)
	}
}
