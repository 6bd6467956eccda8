package models

import "time"

// VehicleType enumerates the supported kinds of vehicle for a trip.
type VehicleType string

const (
	VehicleCar        VehicleType = "car"
	VehicleBike       VehicleType = "bike"
	VehicleBus        VehicleType = "bus"
	VehicleTrain      VehicleType = "train"
	VehicleMotorcycle VehicleType = "motorcycle"
)

// VehicleTypes lists every valid vehicle type, in presentation order.
var VehicleTypes = []VehicleType{
	VehicleCar, VehicleBike, VehicleBus, VehicleTrain, VehicleMotorcycle,
}

// Valid reports whether v is one of the known vehicle types.
func (v VehicleType) Valid() bool {
	for _, t := range VehicleTypes {
		if v == t {
			return true
		}
	}
	return false
}

// DateLayout is the calendar-date wire format for Trip.Date.
const DateLayout = "2006-01-02"

// Trip is a single logged journey owned by one user.
//
// Images is the ordered gallery of image URLs; HighlightImage indexes into
// it. When Images is empty HighlightImage is 0 and carries no meaning; do
// not dereference it without checking the gallery length first.
type Trip struct {
	ID             string      `json:"id"`
	UserID         string      `json:"userId"`
	VehicleType    VehicleType `json:"vehicleType"`
	Route          string      `json:"route"`
	Distance       float64     `json:"distance"`
	Date           string      `json:"date"`
	Notes          string      `json:"notes,omitempty"`
	Images         []string    `json:"images"`
	HighlightImage int         `json:"highlightImage"`
	IsFavorite     bool        `json:"isFavorite"`
	CreatedAt      string      `json:"createdAt"`
}

// When parses the trip date. Unparseable dates sort as the zero time, which
// pushes them to the end of a most-recent-first view.
func (t Trip) When() time.Time {
	d, err := time.Parse(DateLayout, t.Date)
	if err != nil {
		return time.Time{}
	}
	return d
}

// TripPatch is a partial update of a trip. Nil fields are left untouched by
// Apply. ID, UserID and CreatedAt are not patchable: identity and ownership
// are immutable after creation.
type TripPatch struct {
	VehicleType    *VehicleType
	Route          *string
	Distance       *float64
	Date           *string
	Notes          *string
	Images         *[]string
	HighlightImage *int
	IsFavorite     *bool
}

// Apply merges the patch over t and returns the result.
func (p TripPatch) Apply(t Trip) Trip {
	if p.VehicleType != nil {
		t.VehicleType = *p.VehicleType
	}
	if p.Route != nil {
		t.Route = *p.Route
	}
	if p.Distance != nil {
		t.Distance = *p.Distance
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
	if p.Images != nil {
		t.Images = *p.Images
	}
	if p.HighlightImage != nil {
		t.HighlightImage = *p.HighlightImage
	}
	if p.IsFavorite != nil {
		t.IsFavorite = *p.IsFavorite
	}
	return t
}
