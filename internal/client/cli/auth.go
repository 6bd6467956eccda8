package cli

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/avilov/triplog/internal/client/models"
	"github.com/avilov/triplog/internal/client/services"
	"github.com/avilov/triplog/internal/common"
)

// Register prompts for the sign-up fields, validates them and creates the
// account. On success the user is signed in and their (empty) trip
// collection is loaded.
func (a *App) Register(ctx context.Context) error {
	if a.isLoggedIn() {
		printlnFn("You are already signed in. Use logout first.")
		return nil
	}

	var f registerForm
	var err error

	if f.FullName, err = GetSimpleText(a.reader, "Full name", os.Stdout); err != nil {
		return err
	}
	if f.Username, err = GetSimpleText(a.reader, "Username", os.Stdout); err != nil {
		return err
	}
	if f.Email, err = GetSimpleText(a.reader, "Email", os.Stdout); err != nil {
		return err
	}
	if f.Password, err = GetPassword("Password", os.Stdout); err != nil {
		return err
	}
	if f.ConfirmPassword, err = GetPassword("Confirm password", os.Stdout); err != nil {
		return err
	}

	if err := f.Validate(); err != nil {
		printlnFn(err.Error())
		return err
	}

	user, err := a.authService.Register(ctx, services.RegisterRequest{
		Username: f.Username,
		Email:    f.Email,
		Password: f.Password,
		FullName: f.FullName,
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrDuplicateEmail):
			printlnFn("Email already registered")
		case errors.Is(err, common.ErrDuplicateUsername):
			printlnFn("Username already taken")
		default:
			printlnFn("Registration failed:", err)
		}
		return err
	}

	printlnFn("Welcome,", user.FullName)
	if err := a.tripService.Load(ctx, user.ID); err != nil {
		printlnFn("Could not load your trips:", err)
	}
	return nil
}

// Login prompts for credentials and signs the user in. The identifier
// matches either the email or the username of an account.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		printlnFn("You are already signed in. Use logout first.")
		return nil
	}

	id, err := GetSimpleText(a.reader, "Email or username", os.Stdout)
	if err != nil {
		return err
	}
	pw, err := GetPassword("Password", os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.authService.Login(ctx, services.Credentials{
		EmailOrUsername: strings.TrimSpace(id),
		Password:        pw,
	})
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			printlnFn("Invalid credentials")
		} else {
			printlnFn("Login failed:", err)
		}
		return err
	}

	printlnFn("Welcome back,", user.FullName)
	if err := a.tripService.Load(ctx, user.ID); err != nil {
		printlnFn("Could not load your trips:", err)
	}
	return nil
}

// Logout clears the session and drops the loaded trip collection.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.tripService.Reset()
	printlnFn("Signed out.")
	return nil
}

// Profile shows the current profile and optionally edits it. Fields left
// empty keep their current value, so this is a partial update.
func (a *App) Profile(ctx context.Context) error {
	u, ok := a.authService.Current()
	if !ok {
		printlnFn("Please sign in first.")
		return common.ErrNotAuthenticated
	}

	printlnFn("Full name:", u.FullName)
	printlnFn("Username: ", u.Username)
	printlnFn("Email:    ", u.Email)
	if u.Avatar != "" {
		printlnFn("Avatar:   ", u.Avatar)
	}

	answer, err := GetSimpleText(a.reader, "Edit profile? (y/N)", os.Stdout)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") {
		return nil
	}

	var patch models.ProfileUpdate
	if patch.FullName, err = a.optionalField("Full name ["+u.FullName+"]"); err != nil {
		return err
	}
	if patch.Username, err = a.optionalField("Username ["+u.Username+"]"); err != nil {
		return err
	}
	if patch.Email, err = a.optionalField("Email ["+u.Email+"]"); err != nil {
		return err
	}
	if patch.Avatar, err = a.optionalField("Avatar URL ["+u.Avatar+"]"); err != nil {
		return err
	}

	updated, err := a.authService.UpdateProfile(ctx, patch)
	if err != nil {
		printlnFn("Profile update failed:", err)
		return err
	}
	printlnFn("Profile saved for", updated.Username)
	return nil
}

// optionalField reads one profile field. An empty answer means "keep the
// current value" and maps to a nil pointer in the patch.
func (a *App) optionalField(prompt string) (*string, error) {
	v, err := GetSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return nil, err
	}
	if v == "" {
		return nil, nil
	}
	return &v, nil
}
