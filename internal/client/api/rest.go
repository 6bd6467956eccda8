package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/avilov/triplog/internal/client/models"
)

// RESTClient talks JSON over HTTP to the resource server.
//
// There is deliberately no retry and no client-side timeout here: a request
// lives exactly as long as its context does, and a failure is reported once
// to the caller. See the services layer for how failures are surfaced.
type RESTClient struct {
	baseURL string
	http    *http.Client
}

// NewRESTClient builds a client for the server at baseURL
// (e.g. "http://localhost:3000"). A trailing slash is tolerated.
func NewRESTClient(baseURL string) *RESTClient {
	for len(baseURL) > 0 && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}
	return &RESTClient{baseURL: baseURL, http: &http.Client{}}
}

// do issues a single HTTP exchange: method + path (+ optional query), JSON
// body in, JSON body out. wantStatus is the only status treated as success.
// out may be nil when the response body is irrelevant.
func (c *RESTClient) do(ctx context.Context, method, path string, query url.Values, body any, out any, wantStatus int) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return fmt.Errorf("%s %s: %w %d", method, path, ErrUnexpectedStatus, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *RESTClient) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	var created models.User
	err := c.do(ctx, http.MethodPost, "/users", nil, u, &created, http.StatusCreated)
	return created, err
}

func (c *RESTClient) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := c.do(ctx, http.MethodGet, "/users", nil, nil, &users, http.StatusOK)
	return users, err
}

func (c *RESTClient) UsersByEmail(ctx context.Context, email string) ([]models.User, error) {
	var users []models.User
	err := c.do(ctx, http.MethodGet, "/users", url.Values{"email": {email}}, nil, &users, http.StatusOK)
	return users, err
}

func (c *RESTClient) UsersByUsername(ctx context.Context, username string) ([]models.User, error) {
	var users []models.User
	err := c.do(ctx, http.MethodGet, "/users", url.Values{"username": {username}}, nil, &users, http.StatusOK)
	return users, err
}

func (c *RESTClient) UpdateUser(ctx context.Context, u models.User) (models.User, error) {
	var updated models.User
	err := c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(u.ID), nil, u, &updated, http.StatusOK)
	return updated, err
}

func (c *RESTClient) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil, nil, http.StatusOK)
}

func (c *RESTClient) CreateTrip(ctx context.Context, t models.Trip) (models.Trip, error) {
	var created models.Trip
	err := c.do(ctx, http.MethodPost, "/trips", nil, t, &created, http.StatusCreated)
	return created, err
}

func (c *RESTClient) GetTrip(ctx context.Context, id string) (models.Trip, error) {
	var trip models.Trip
	err := c.do(ctx, http.MethodGet, "/trips/"+url.PathEscape(id), nil, nil, &trip, http.StatusOK)
	return trip, err
}

func (c *RESTClient) TripsByUser(ctx context.Context, userID string) ([]models.Trip, error) {
	var trips []models.Trip
	err := c.do(ctx, http.MethodGet, "/trips", url.Values{"userId": {userID}}, nil, &trips, http.StatusOK)
	return trips, err
}

func (c *RESTClient) TripsByVehicleType(ctx context.Context, vt models.VehicleType) ([]models.Trip, error) {
	var trips []models.Trip
	err := c.do(ctx, http.MethodGet, "/trips", url.Values{"vehicleType": {string(vt)}}, nil, &trips, http.StatusOK)
	return trips, err
}

func (c *RESTClient) UpdateTrip(ctx context.Context, t models.Trip) (models.Trip, error) {
	var updated models.Trip
	err := c.do(ctx, http.MethodPut, "/trips/"+url.PathEscape(t.ID), nil, t, &updated, http.StatusOK)
	return updated, err
}

func (c *RESTClient) DeleteTrip(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/trips/"+url.PathEscape(id), nil, nil, nil, http.StatusOK)
}

// compile-time interface check
var _ Client = (*RESTClient)(nil)
