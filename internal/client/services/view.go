package services

import (
	"math"
	"sort"
	"strings"

	"github.com/avilov/triplog/internal/client/models"
)

// SortKey selects the ordering of the derived trip view.
type SortKey string

const (
	SortByDate      SortKey = "date"      // most recent first
	SortByDistance  SortKey = "distance"  // longest first
	SortByFavorites SortKey = "favorites" // favorites before the rest
)

// VehicleFilterAll disables vehicle-type filtering.
const VehicleFilterAll = "all"

// Query is the full set of view parameters. The derived view is a pure
// function of (collection, Query): same inputs, same ordered output.
type Query struct {
	Search        string
	Vehicle       string // VehicleFilterAll or one vehicle type
	Sort          SortKey
	FavoritesOnly bool
}

// DefaultQuery mirrors the initial UI state: no search, every vehicle,
// newest first, favorites toggle off.
func DefaultQuery() Query {
	return Query{Vehicle: VehicleFilterAll, Sort: SortByDate}
}

// DeriveView filters and sorts trips according to q. The input slice is
// never modified; the result is a fresh slice.
//
// Pipeline order: search term, vehicle filter, favorites toggle, sort.
// An unrecognized sort key leaves the filtered order untouched.
func DeriveView(trips []models.Trip, q Query) []models.Trip {
	result := make([]models.Trip, 0, len(trips))

	term := strings.ToLower(q.Search)
	for _, t := range trips {
		if term != "" &&
			!strings.Contains(strings.ToLower(t.Route), term) &&
			!strings.Contains(strings.ToLower(string(t.VehicleType)), term) {
			continue
		}
		if q.Vehicle != VehicleFilterAll && q.Vehicle != "" && string(t.VehicleType) != q.Vehicle {
			continue
		}
		if q.FavoritesOnly && !t.IsFavorite {
			continue
		}
		result = append(result, t)
	}

	switch q.Sort {
	case SortByDate:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].When().After(result[j].When())
		})
	case SortByDistance:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Distance > result[j].Distance
		})
	case SortByFavorites:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].IsFavorite && !result[j].IsFavorite
		})
	}

	return result
}

// VehicleCount is one row of the per-type breakdown.
type VehicleCount struct {
	Type  models.VehicleType
	Count int
}

// Stats are aggregates over the full, unfiltered collection. The active
// view parameters have no influence here.
type Stats struct {
	Total         int
	TotalDistance float64
	Favorites     int
	// ByType lists counts per vehicle type in first-seen order.
	ByType []VehicleCount
}

// Summarize computes Stats for the given collection. A NaN distance counts
// as zero so one bad record cannot poison the total.
func Summarize(trips []models.Trip) Stats {
	s := Stats{Total: len(trips)}

	index := make(map[models.VehicleType]int)
	for _, t := range trips {
		if !math.IsNaN(t.Distance) {
			s.TotalDistance += t.Distance
		}
		if t.IsFavorite {
			s.Favorites++
		}
		if i, ok := index[t.VehicleType]; ok {
			s.ByType[i].Count++
		} else {
			index[t.VehicleType] = len(s.ByType)
			s.ByType = append(s.ByType, VehicleCount{Type: t.VehicleType, Count: 1})
		}
	}
	return s
}
