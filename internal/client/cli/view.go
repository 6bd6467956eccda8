package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/avilov/triplog/internal/client/models"
	"github.com/avilov/triplog/internal/client/services"
)

// renderTrips writes the trip list as an aligned table. The order is the
// view order, so whatever search, filter and sort are active show through
// here unchanged.
func renderTrips(w io.Writer, trips []models.Trip) {
	if len(trips) == 0 {
		fmt.Fprintln(w, "No trips to show.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tVEHICLE\tROUTE\tKM\tFAV\tIMAGES")
	for _, t := range trips {
		fav := ""
		if t.IsFavorite {
			fav = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.1f\t%s\t%d\n",
			t.ID, t.Date, t.VehicleType, t.Route, t.Distance, fav, len(t.Images))
	}
	tw.Flush()
}

// renderTrip writes the full detail of one trip, including notes and the
// gallery with the highlight marked.
func renderTrip(w io.Writer, t models.Trip) {
	fmt.Fprintf(w, "Trip %s\n", t.ID)
	fmt.Fprintf(w, "  Route:    %s\n", t.Route)
	fmt.Fprintf(w, "  Vehicle:  %s\n", t.VehicleType)
	fmt.Fprintf(w, "  Date:     %s\n", t.Date)
	fmt.Fprintf(w, "  Distance: %.1f km\n", t.Distance)
	if t.Notes != "" {
		fmt.Fprintf(w, "  Notes:    %s\n", t.Notes)
	}
	if t.IsFavorite {
		fmt.Fprintln(w, "  Favorite: yes")
	}
	renderGallery(w, t)
}

// renderGallery lists the trip's image URLs, marking the highlight.
func renderGallery(w io.Writer, t models.Trip) {
	if len(t.Images) == 0 {
		fmt.Fprintln(w, "  Gallery:  empty")
		return
	}
	fmt.Fprintln(w, "  Gallery:")
	for i, url := range t.Images {
		marker := " "
		if i == t.HighlightImage {
			marker = "*"
		}
		fmt.Fprintf(w, "   %s [%d] %s\n", marker, i, url)
	}
}

// renderStats writes the aggregate numbers over the whole collection.
func renderStats(w io.Writer, s services.Stats) {
	fmt.Fprintf(w, "Trips:          %d\n", s.Total)
	fmt.Fprintf(w, "Total distance: %.1f km\n", s.TotalDistance)
	fmt.Fprintf(w, "Favorites:      %d\n", s.Favorites)
	if len(s.ByType) > 0 {
		fmt.Fprintln(w, "By vehicle:")
		for _, vc := range s.ByType {
			fmt.Fprintf(w, "  %-12s %d\n", vc.Type, vc.Count)
		}
	}
}
