package services

import (
	"context"
	"io"

	"github.com/avilov/triplog/internal/client/models"
	"github.com/avilov/triplog/internal/common"
	"github.com/avilov/triplog/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewText(io.Discard)
}

// memStore is an in-memory session.Repository for tests.
type memStore struct {
	data map[string][]byte

	GetErr, SetErr, DeleteErr error
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (m *memStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return v, nil
}

func (m *memStore) Set(ctx context.Context, key string, value []byte) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memStore) Delete(ctx context.Context, key string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.data, key)
	return nil
}

// fakeClient implements api.Client for service tests. Create/Update echo
// their input back, the way the resource server does.
type fakeClient struct {
	UsersRet      []models.User
	UsersErr      error
	ByEmailRet    []models.User
	ByEmailErr    error
	ByUsernameRet []models.User
	ByUsernameErr error
	CreateUserErr error
	UpdateUserErr error
	DeleteUserErr error

	TripsRet      []models.Trip
	TripsErr      error
	CreateTripErr error
	UpdateTripErr error
	DeleteTripErr error

	// argument capture
	LastEmailQuery    string
	LastUsernameQuery string
	LastCreatedUser   models.User
	LastUpdatedUser   models.User
	LastTripsUserID   string
	LastCreatedTrip   models.Trip
	LastUpdatedTrip   models.Trip
	LastDeletedTripID string
}

func (f *fakeClient) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	f.LastCreatedUser = u
	if f.CreateUserErr != nil {
		return models.User{}, f.CreateUserErr
	}
	return u, nil
}

func (f *fakeClient) ListUsers(ctx context.Context) ([]models.User, error) {
	return f.UsersRet, f.UsersErr
}

func (f *fakeClient) UsersByEmail(ctx context.Context, email string) ([]models.User, error) {
	f.LastEmailQuery = email
	return f.ByEmailRet, f.ByEmailErr
}

func (f *fakeClient) UsersByUsername(ctx context.Context, username string) ([]models.User, error) {
	f.LastUsernameQuery = username
	return f.ByUsernameRet, f.ByUsernameErr
}

func (f *fakeClient) UpdateUser(ctx context.Context, u models.User) (models.User, error) {
	f.LastUpdatedUser = u
	if f.UpdateUserErr != nil {
		return models.User{}, f.UpdateUserErr
	}
	return u, nil
}

func (f *fakeClient) DeleteUser(ctx context.Context, id string) error {
	return f.DeleteUserErr
}

func (f *fakeClient) CreateTrip(ctx context.Context, t models.Trip) (models.Trip, error) {
	f.LastCreatedTrip = t
	if f.CreateTripErr != nil {
		return models.Trip{}, f.CreateTripErr
	}
	return t, nil
}

func (f *fakeClient) GetTrip(ctx context.Context, id string) (models.Trip, error) {
	for _, t := range f.TripsRet {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Trip{}, common.ErrorNotFound
}

func (f *fakeClient) TripsByUser(ctx context.Context, userID string) ([]models.Trip, error) {
	f.LastTripsUserID = userID
	return f.TripsRet, f.TripsErr
}

func (f *fakeClient) TripsByVehicleType(ctx context.Context, vt models.VehicleType) ([]models.Trip, error) {
	var out []models.Trip
	for _, t := range f.TripsRet {
		if t.VehicleType == vt {
			out = append(out, t)
		}
	}
	return out, f.TripsErr
}

func (f *fakeClient) UpdateTrip(ctx context.Context, t models.Trip) (models.Trip, error) {
	f.LastUpdatedTrip = t
	if f.UpdateTripErr != nil {
		return models.Trip{}, f.UpdateTripErr
	}
	return t, nil
}

func (f *fakeClient) DeleteTrip(ctx context.Context, id string) error {
	f.LastDeletedTripID = id
	return f.DeleteTripErr
}
