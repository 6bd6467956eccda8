package cli

import (
	"context"
	"errors"
	"os"
	"strconv"

	"github.com/avilov/triplog/internal/client/services"
)

// Gallery shows one trip's image gallery and lets the user manage it:
// add an image URL, remove an image by index, or pick the highlight.
func (a *App) Gallery(ctx context.Context) error {
	t, err := a.promptTrip("Trip id")
	if err != nil {
		return err
	}

	renderTrip(os.Stdout, t)
	if link := a.mapLink(t); link != "" {
		printlnFn("Map:", link)
	}

	action, err := GetSimpleText(a.reader, "Gallery action: (a)dd, (r)emove, (h)ighlight, Enter to go back", os.Stdout)
	if err != nil {
		return err
	}

	switch action {
	case "":
		return nil

	case "a":
		url, err := GetSimpleText(a.reader, "Image URL", os.Stdout)
		if err != nil {
			return err
		}
		updated, err := a.tripService.AddImage(ctx, t.ID, url)
		switch {
		case errors.Is(err, services.ErrDuplicateImage):
			printlnFn("That image is already in the gallery.")
			return nil
		case errors.Is(err, services.ErrEmptyImageURL):
			printlnFn("Please enter an image URL")
			return err
		case err != nil:
			printlnFn("Could not add the image:", err)
			return err
		}
		renderGallery(os.Stdout, updated)
		return nil

	case "r":
		index, err := a.promptIndex("Image index to remove")
		if err != nil {
			return err
		}
		updated, err := a.tripService.RemoveImage(ctx, t.ID, index)
		if err != nil {
			if errors.Is(err, services.ErrImageIndexOutOfRange) {
				printlnFn("No image at index", index)
			} else {
				printlnFn("Could not remove the image:", err)
			}
			return err
		}
		renderGallery(os.Stdout, updated)
		return nil

	case "h":
		index, err := a.promptIndex("Image index to highlight")
		if err != nil {
			return err
		}
		updated, err := a.tripService.SetHighlight(ctx, t.ID, index)
		if err != nil {
			if errors.Is(err, services.ErrImageIndexOutOfRange) {
				printlnFn("No image at index", index)
			} else {
				printlnFn("Could not set the highlight:", err)
			}
			return err
		}
		renderGallery(os.Stdout, updated)
		return nil

	default:
		printlnFn("Unknown action:", action)
		return nil
	}
}

func (a *App) promptIndex(prompt string) (int, error) {
	raw, err := GetSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return 0, err
	}
	index, err := strconv.Atoi(raw)
	if err != nil {
		printlnFn("Please enter a number")
		return 0, err
	}
	return index, nil
}
