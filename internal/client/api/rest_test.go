package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avilov/triplog/internal/client/models"
)

func TestCreateUser_PostsAndDecodes(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody models.User

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(gotBody)
	}))
	t.Cleanup(srv.Close)

	c := NewRESTClient(srv.URL + "/") // trailing slash must be tolerated
	u := models.User{ID: "1", Username: "alice", Email: "a@b.c", Password: "secret"}

	created, err := c.CreateUser(context.Background(), u)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/users", gotPath)
	assert.Equal(t, "alice", gotBody.Username)
	assert.Equal(t, u, created)
}

func TestQueries_EncodeFilters(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode([]models.Trip{})
	}))
	t.Cleanup(srv.Close)

	c := NewRESTClient(srv.URL)
	ctx := context.Background()

	_, err := c.TripsByUser(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "userId=42", gotQuery)

	_, err = c.TripsByVehicleType(ctx, models.VehicleBike)
	require.NoError(t, err)
	assert.Equal(t, "vehicleType=bike", gotQuery)

	_, err = c.UsersByEmail(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, "email=a%40b.c", gotQuery)
}

func TestDo_UnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c := NewRESTClient(srv.URL)

	_, err := c.ListUsers(context.Background())
	require.ErrorIs(t, err, ErrUnexpectedStatus)

	// A 404 on delete is failure too: the caller branches on success only.
	err = c.DeleteTrip(context.Background(), "missing")
	require.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestDo_TransportFailureMapsToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listens anymore

	c := NewRESTClient(srv.URL)
	_, err := c.ListUsers(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestUpdateTrip_PutsToIDPath(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		var trip models.Trip
		_ = json.NewDecoder(r.Body).Decode(&trip)
		_ = json.NewEncoder(w).Encode(trip)
	}))
	t.Cleanup(srv.Close)

	c := NewRESTClient(srv.URL)
	trip := models.Trip{ID: "77", Route: "A to B", VehicleType: models.VehicleCar}

	updated, err := c.UpdateTrip(context.Background(), trip)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/trips/77", gotPath)
	assert.Equal(t, "A to B", updated.Route)
}
