package services

import "errors"

var (
	// ErrDuplicateImage means the URL is already in the trip's gallery.
	// The gallery is left untouched.
	ErrDuplicateImage = errors.New("image already in gallery")

	// ErrImageIndexOutOfRange means the given index does not point at an
	// existing gallery image.
	ErrImageIndexOutOfRange = errors.New("image index out of range")

	// ErrEmptyImageURL means a blank URL was submitted to the gallery.
	ErrEmptyImageURL = errors.New("image url is required")
)
