// Package api wraps the REST interface of the generic resource server the
// client stores its data on. Two collections exist: users and trips.
//
// The server enforces no schema and no uniqueness constraints; everything it
// knows about a record is the JSON the client sent. All consistency rules
// (duplicate checks, ownership, gallery invariants) live in the services
// layer on top of this package.
package api

import (
	"context"

	"github.com/avilov/triplog/internal/client/models"
)

// Client is the full resource API surface consumed by the services layer.
// RESTClient is the production implementation; tests substitute fakes.
type Client interface {
	UserAPI
	TripAPI
}

// UserAPI covers the users collection.
type UserAPI interface {
	// CreateUser stores a new user record. Expects HTTP 201.
	CreateUser(ctx context.Context, u models.User) (models.User, error)

	// ListUsers fetches the entire users collection.
	ListUsers(ctx context.Context) ([]models.User, error)

	// UsersByEmail queries users with an exact email match.
	UsersByEmail(ctx context.Context, email string) ([]models.User, error)

	// UsersByUsername queries users with an exact username match.
	UsersByUsername(ctx context.Context, username string) ([]models.User, error)

	// UpdateUser replaces the record identified by u.ID.
	UpdateUser(ctx context.Context, u models.User) (models.User, error)

	// DeleteUser removes a user record.
	DeleteUser(ctx context.Context, id string) error
}

// TripAPI covers the trips collection.
type TripAPI interface {
	// CreateTrip stores a new trip record. Expects HTTP 201.
	CreateTrip(ctx context.Context, t models.Trip) (models.Trip, error)

	// GetTrip fetches a single trip by id.
	GetTrip(ctx context.Context, id string) (models.Trip, error)

	// TripsByUser queries trips owned by the given user.
	TripsByUser(ctx context.Context, userID string) ([]models.Trip, error)

	// TripsByVehicleType queries trips with an exact vehicle-type match.
	TripsByVehicleType(ctx context.Context, vt models.VehicleType) ([]models.Trip, error)

	// UpdateTrip replaces the record identified by t.ID.
	UpdateTrip(ctx context.Context, t models.Trip) (models.Trip, error)

	// DeleteTrip removes a trip record.
	DeleteTrip(ctx context.Context, id string) error
}
