package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/avilov/triplog/internal/client/api"
	"github.com/avilov/triplog/internal/client/models"
	"github.com/avilov/triplog/internal/common"
	"github.com/avilov/triplog/internal/logging"
)

// TripDraft carries the user-entered fields of a new trip. Everything else
// (id, owner, gallery defaults, favorite flag, creation time) is filled in
// by the controller.
type TripDraft struct {
	VehicleType models.VehicleType
	Route       string
	Distance    float64
	Date        string
	Notes       string
	Images      []string
}

// TripService is the trip list controller. It exclusively owns the
// authoritative in-memory trip collection of the signed-in user; the
// presentation layer only ever sees copies derived from it.
//
// Every mutating operation round-trips through the resource API first and
// touches the collection only after the server confirms. A failed call
// leaves the collection exactly as it was. There is no locking: all calls
// happen on the single interactive goroutine, and stale reads between a
// request and its completion are accepted (last response wins).
type TripService interface {
	// Load fetches the user's trips and resets the view parameters.
	// Called once per session, right after login.
	Load(ctx context.Context, userID string) error

	// Reset drops the collection and view state. Called on logout.
	Reset()

	// Trips returns a copy of the authoritative, unfiltered collection.
	Trips() []models.Trip

	// View returns the derived collection for the current query.
	View() []models.Trip

	// Stats aggregates over the unfiltered collection.
	Stats() Stats

	// Query returns the current view parameters.
	Query() Query

	SetSearch(term string)
	SetVehicleFilter(vehicle string)
	SetSort(key SortKey)
	SetFavoritesOnly(on bool)

	// Add persists a new trip and prepends the server's copy on success.
	Add(ctx context.Context, draft TripDraft) (models.Trip, error)

	// Update merges the patch over the stored record, persists the result
	// and replaces the record with the server's copy on success.
	Update(ctx context.Context, id string, patch models.TripPatch) (models.Trip, error)

	// Delete removes the trip server-side, then locally.
	Delete(ctx context.Context, id string) error

	// ToggleFavorite flips the favorite flag through the update path.
	ToggleFavorite(ctx context.Context, id string) (models.Trip, error)

	// AddImage appends a URL to the gallery. A URL already present is
	// rejected with ErrDuplicateImage and nothing changes.
	AddImage(ctx context.Context, id, url string) (models.Trip, error)

	// RemoveImage deletes the image at index. A highlight above the index
	// shifts down with the list; a highlight at the index resets to 0.
	RemoveImage(ctx context.Context, id string, index int) (models.Trip, error)

	// SetHighlight marks the image at index as the gallery highlight.
	SetHighlight(ctx context.Context, id string, index int) (models.Trip, error)
}

type tripService struct {
	client api.Client
	logger logging.Logger

	userID string
	trips  []models.Trip
	query  Query
}

// NewTripService constructs a TripService bound to the given API client.
func NewTripService(client api.Client, logger logging.Logger) TripService {
	return &tripService{client: client, logger: logger, query: DefaultQuery()}
}

func (s *tripService) Load(ctx context.Context, userID string) error {
	trips, err := s.client.TripsByUser(ctx, userID)
	if err != nil {
		s.logger.Error(ctx, "failed to load trips", "error", err)
		return fmt.Errorf("load trips: %w", err)
	}
	s.userID = userID
	s.trips = trips
	s.query = DefaultQuery()
	return nil
}

func (s *tripService) Reset() {
	s.userID = ""
	s.trips = nil
	s.query = DefaultQuery()
}

func (s *tripService) Trips() []models.Trip {
	out := make([]models.Trip, len(s.trips))
	copy(out, s.trips)
	return out
}

func (s *tripService) View() []models.Trip {
	return DeriveView(s.trips, s.query)
}

func (s *tripService) Stats() Stats {
	return Summarize(s.trips)
}

func (s *tripService) Query() Query { return s.query }

func (s *tripService) SetSearch(term string)     { s.query.Search = term }
func (s *tripService) SetVehicleFilter(v string) { s.query.Vehicle = v }
func (s *tripService) SetSort(key SortKey)       { s.query.Sort = key }
func (s *tripService) SetFavoritesOnly(on bool)  { s.query.FavoritesOnly = on }

func (s *tripService) Add(ctx context.Context, draft TripDraft) (models.Trip, error) {
	var zero models.Trip

	if s.userID == "" {
		return zero, common.ErrNotAuthenticated
	}

	images := draft.Images
	if images == nil {
		images = []string{}
	}

	trip := models.Trip{
		ID:             models.NewID(),
		UserID:         s.userID,
		VehicleType:    draft.VehicleType,
		Route:          draft.Route,
		Distance:       draft.Distance,
		Date:           draft.Date,
		Notes:          draft.Notes,
		Images:         images,
		HighlightImage: 0,
		IsFavorite:     false,
		CreatedAt:      models.Timestamp(),
	}

	created, err := s.client.CreateTrip(ctx, trip)
	if err != nil {
		s.logger.Error(ctx, "failed to add trip", "error", err)
		return zero, fmt.Errorf("add trip: %w", err)
	}

	// Newest entry goes first, matching the default date-descending view.
	s.trips = append([]models.Trip{created}, s.trips...)
	return created, nil
}

func (s *tripService) Update(ctx context.Context, id string, patch models.TripPatch) (models.Trip, error) {
	var zero models.Trip

	i, ok := s.find(id)
	if !ok {
		return zero, common.ErrorNotFound
	}

	merged := patch.Apply(s.trips[i])

	updated, err := s.client.UpdateTrip(ctx, merged)
	if err != nil {
		s.logger.Error(ctx, "failed to update trip", "id", id, "error", err)
		return zero, fmt.Errorf("update trip: %w", err)
	}

	s.trips[i] = updated
	return updated, nil
}

func (s *tripService) Delete(ctx context.Context, id string) error {
	i, ok := s.find(id)
	if !ok {
		return common.ErrorNotFound
	}

	if err := s.client.DeleteTrip(ctx, id); err != nil {
		s.logger.Error(ctx, "failed to delete trip", "id", id, "error", err)
		return fmt.Errorf("delete trip: %w", err)
	}

	s.trips = append(s.trips[:i], s.trips[i+1:]...)
	return nil
}

func (s *tripService) ToggleFavorite(ctx context.Context, id string) (models.Trip, error) {
	i, ok := s.find(id)
	if !ok {
		return models.Trip{}, common.ErrorNotFound
	}

	flipped := !s.trips[i].IsFavorite
	return s.Update(ctx, id, models.TripPatch{IsFavorite: &flipped})
}

func (s *tripService) AddImage(ctx context.Context, id, url string) (models.Trip, error) {
	var zero models.Trip

	i, ok := s.find(id)
	if !ok {
		return zero, common.ErrorNotFound
	}

	url = strings.TrimSpace(url)
	if url == "" {
		return zero, ErrEmptyImageURL
	}

	trip := s.trips[i]
	for _, img := range trip.Images {
		if img == url {
			return trip, ErrDuplicateImage
		}
	}

	images := append(append([]string{}, trip.Images...), url)
	return s.Update(ctx, id, models.TripPatch{Images: &images})
}

func (s *tripService) RemoveImage(ctx context.Context, id string, index int) (models.Trip, error) {
	var zero models.Trip

	i, ok := s.find(id)
	if !ok {
		return zero, common.ErrorNotFound
	}

	trip := s.trips[i]
	if index < 0 || index >= len(trip.Images) {
		return zero, ErrImageIndexOutOfRange
	}

	images := append(append([]string{}, trip.Images[:index]...), trip.Images[index+1:]...)

	// The highlight tracks the shifted list. Removing the highlighted image
	// resets to 0, even when the gallery just became empty: an empty gallery
	// gives the highlight no meaning anyway.
	highlight := trip.HighlightImage
	if highlight == index {
		highlight = 0
	} else if highlight > index {
		highlight--
	}

	return s.Update(ctx, id, models.TripPatch{Images: &images, HighlightImage: &highlight})
}

func (s *tripService) SetHighlight(ctx context.Context, id string, index int) (models.Trip, error) {
	var zero models.Trip

	i, ok := s.find(id)
	if !ok {
		return zero, common.ErrorNotFound
	}

	if index < 0 || index >= len(s.trips[i].Images) {
		return zero, ErrImageIndexOutOfRange
	}

	return s.Update(ctx, id, models.TripPatch{HighlightImage: &index})
}

func (s *tripService) find(id string) (int, bool) {
	for i := range s.trips {
		if s.trips[i].ID == id {
			return i, true
		}
	}
	return 0, false
}
