package cli

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/avilov/triplog/internal/client/models"
	"github.com/avilov/triplog/internal/client/services"
	"github.com/avilov/triplog/internal/common"
)

// List renders the current view of the trip collection.
func (a *App) List(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Please sign in first.")
		return common.ErrNotAuthenticated
	}

	q := a.tripService.Query()
	var active []string
	if q.Search != "" {
		active = append(active, fmt.Sprintf("search=%q", q.Search))
	}
	if q.Vehicle != services.VehicleFilterAll {
		active = append(active, "vehicle="+q.Vehicle)
	}
	if q.FavoritesOnly {
		active = append(active, "favorites only")
	}
	if len(active) > 0 {
		printlnFn("Filters:", strings.Join(active, ", "))
	}

	renderTrips(os.Stdout, a.tripService.View())
	return nil
}

// Add prompts for the new trip's fields, validates them and creates the
// trip. The new trip appears at the top of the list.
func (a *App) Add(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Please sign in first.")
		return common.ErrNotAuthenticated
	}

	f, notes, err := a.promptTripForm(tripForm{})
	if err != nil {
		return err
	}
	if err := f.Validate(); err != nil {
		printlnFn(err.Error())
		return err
	}

	trip, err := a.tripService.Add(ctx, services.TripDraft{
		VehicleType: models.VehicleType(f.VehicleType),
		Route:       f.Route,
		Distance:    f.Distance,
		Date:        f.Date,
		Notes:       notes,
	})
	if err != nil {
		printlnFn("Could not save the trip:", err)
		return err
	}
	printlnFn("Trip", trip.ID, "saved.")
	return nil
}

// Edit prompts for a trip id and new field values. Empty answers keep the
// stored value, so this is a partial update.
func (a *App) Edit(ctx context.Context) error {
	t, err := a.promptTrip("Trip id to edit")
	if err != nil {
		return err
	}

	f := tripForm{
		Route:       t.Route,
		VehicleType: string(t.VehicleType),
		Distance:    t.Distance,
		Date:        t.Date,
	}
	var patch models.TripPatch

	if v, err := a.optionalAnswer("Route [" + t.Route + "]"); err != nil {
		return err
	} else if v != "" {
		f.Route = v
		patch.Route = &v
	}
	if v, err := a.optionalAnswer("Vehicle [" + string(t.VehicleType) + "]"); err != nil {
		return err
	} else if v != "" {
		f.VehicleType = v
		vt := models.VehicleType(v)
		patch.VehicleType = &vt
	}
	if v, err := a.optionalAnswer(fmt.Sprintf("Distance [%.1f]", t.Distance)); err != nil {
		return err
	} else if v != "" {
		d, perr := strconv.ParseFloat(v, 64)
		if perr != nil {
			printlnFn("Please enter a valid distance")
			return perr
		}
		f.Distance = d
		patch.Distance = &d
	}
	if v, err := a.optionalAnswer("Date [" + t.Date + "]"); err != nil {
		return err
	} else if v != "" {
		f.Date = v
		patch.Date = &v
	}
	if v, err := a.optionalAnswer("Notes [" + t.Notes + "]"); err != nil {
		return err
	} else if v != "" {
		patch.Notes = &v
	}

	if err := f.Validate(); err != nil {
		printlnFn(err.Error())
		return err
	}

	updated, err := a.tripService.Update(ctx, t.ID, patch)
	if err != nil {
		printlnFn("Could not save the trip:", err)
		return err
	}
	printlnFn("Trip", updated.ID, "saved.")
	return nil
}

// Delete prompts for a trip id and removes the trip after confirmation.
func (a *App) Delete(ctx context.Context) error {
	t, err := a.promptTrip("Trip id to delete")
	if err != nil {
		return err
	}

	answer, err := GetSimpleText(a.reader, fmt.Sprintf("Delete trip %s (%s)? (y/N)", t.ID, t.Route), os.Stdout)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") {
		return nil
	}

	if err := a.tripService.Delete(ctx, t.ID); err != nil {
		printlnFn("Could not delete the trip:", err)
		return err
	}
	printlnFn("Trip", t.ID, "deleted.")
	return nil
}

// Favorite prompts for a trip id and flips its favorite flag.
func (a *App) Favorite(ctx context.Context) error {
	t, err := a.promptTrip("Trip id")
	if err != nil {
		return err
	}

	updated, err := a.tripService.ToggleFavorite(ctx, t.ID)
	if err != nil {
		printlnFn("Could not update the trip:", err)
		return err
	}
	if updated.IsFavorite {
		printlnFn("Trip", updated.ID, "marked as favorite.")
	} else {
		printlnFn("Trip", updated.ID, "is no longer a favorite.")
	}
	return nil
}

// Stats renders aggregates over the whole collection. The active view
// parameters do not change the numbers.
func (a *App) Stats(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Please sign in first.")
		return common.ErrNotAuthenticated
	}
	renderStats(os.Stdout, a.tripService.Stats())
	return nil
}

// Search sets (or, with an empty term, clears) the search term and shows
// the refreshed view.
func (a *App) Search(ctx context.Context, term string) error {
	if !a.isLoggedIn() {
		printlnFn("Please sign in first.")
		return common.ErrNotAuthenticated
	}
	a.tripService.SetSearch(term)
	return a.List(ctx)
}

// Vehicle sets the vehicle filter and shows the refreshed view.
func (a *App) Vehicle(ctx context.Context, vehicle string) error {
	if !a.isLoggedIn() {
		printlnFn("Please sign in first.")
		return common.ErrNotAuthenticated
	}
	if vehicle != services.VehicleFilterAll && !models.VehicleType(vehicle).Valid() {
		printlnFn("Unknown vehicle type:", vehicle)
		return fmt.Errorf("unknown vehicle type %q", vehicle)
	}
	a.tripService.SetVehicleFilter(vehicle)
	return a.List(ctx)
}

// Sort sets the sort order and shows the refreshed view.
func (a *App) Sort(ctx context.Context, key string) error {
	if !a.isLoggedIn() {
		printlnFn("Please sign in first.")
		return common.ErrNotAuthenticated
	}
	switch services.SortKey(key) {
	case services.SortByDate, services.SortByDistance, services.SortByFavorites:
		a.tripService.SetSort(services.SortKey(key))
	default:
		printlnFn("Unknown sort key:", key)
		return fmt.Errorf("unknown sort key %q", key)
	}
	return a.List(ctx)
}

// ToggleFavoritesOnly flips the favorites-only filter and shows the
// refreshed view.
func (a *App) ToggleFavoritesOnly(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Please sign in first.")
		return common.ErrNotAuthenticated
	}
	q := a.tripService.Query()
	a.tripService.SetFavoritesOnly(!q.FavoritesOnly)
	if !q.FavoritesOnly {
		printlnFn("Showing favorites only.")
	} else {
		printlnFn("Showing all trips.")
	}
	return a.List(ctx)
}

// Weather prints the external weather link. Purely a link-out, nothing in
// the data model depends on it.
func (a *App) Weather(ctx context.Context) error {
	if !a.config.WeatherEnabled {
		printlnFn("Weather links are disabled.")
		return nil
	}
	printlnFn("Check the weather:", a.config.WeatherURL)
	return nil
}

// promptTrip asks for a trip id and resolves it against the loaded
// collection.
func (a *App) promptTrip(prompt string) (models.Trip, error) {
	var zero models.Trip
	if !a.isLoggedIn() {
		printlnFn("Please sign in first.")
		return zero, common.ErrNotAuthenticated
	}

	id, err := GetSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return zero, err
	}
	for _, t := range a.tripService.Trips() {
		if t.ID == id {
			return t, nil
		}
	}
	printlnFn("No trip with id", id)
	return zero, common.ErrorNotFound
}

// optionalAnswer reads one line; empty means "keep the current value".
func (a *App) optionalAnswer(prompt string) (string, error) {
	return GetSimpleText(a.reader, prompt, os.Stdout)
}

// promptTripForm collects the fields of a new trip. Notes are free text and
// not validated, so they travel next to the form.
func (a *App) promptTripForm(f tripForm) (tripForm, string, error) {
	var err error

	if f.Route, err = GetSimpleText(a.reader, "Route (e.g. Riga - Sigulda)", os.Stdout); err != nil {
		return f, "", err
	}
	vehicles := make([]string, len(models.VehicleTypes))
	for i, v := range models.VehicleTypes {
		vehicles[i] = string(v)
	}
	if f.VehicleType, err = GetSimpleText(a.reader, "Vehicle ("+strings.Join(vehicles, "/")+")", os.Stdout); err != nil {
		return f, "", err
	}
	distance, err := GetSimpleText(a.reader, "Distance, km", os.Stdout)
	if err != nil {
		return f, "", err
	}
	if distance != "" {
		d, perr := strconv.ParseFloat(distance, 64)
		if perr != nil {
			printlnFn("Please enter a valid distance")
			return f, "", perr
		}
		f.Distance = d
	}
	if f.Date, err = GetSimpleText(a.reader, "Date (YYYY-MM-DD)", os.Stdout); err != nil {
		return f, "", err
	}
	notes, err := GetSimpleText(a.reader, "Notes (optional)", os.Stdout)
	if err != nil {
		return f, "", err
	}
	return f, notes, nil
}

// mapLink renders the route search link for a trip, if the integration is
// enabled.
func (a *App) mapLink(t models.Trip) string {
	if !a.config.MapEnabled || t.Route == "" {
		return ""
	}
	return fmt.Sprintf(a.config.MapURLTemplate, url.QueryEscape(t.Route))
}
