package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avilov/triplog/internal/client/config"
	"github.com/avilov/triplog/internal/client/models"
	"github.com/avilov/triplog/internal/client/services"
	"github.com/avilov/triplog/internal/common"
)

// ------------ helpers ------------

func readerFromLines(lines ...string) *bufio.Reader {
	lines = append(lines, "")
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
}

// capturePrintln redirects printlnFn into a buffer for the test's duration.
func capturePrintln(t *testing.T) *strings.Builder {
	t.Helper()
	var sb strings.Builder
	orig := printlnFn
	printlnFn = func(args ...any) (int, error) {
		sb.WriteString(fmt.Sprintln(args...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &sb
}

func stubPassword(t *testing.T, passwords ...string) {
	t.Helper()
	orig := readPassword
	i := 0
	readPassword = func(int) ([]byte, error) {
		pw := passwords[i%len(passwords)]
		i++
		return []byte(pw), nil
	}
	t.Cleanup(func() { readPassword = orig })
}

func newTestApp(as services.AuthService, ts services.TripService, rdr *bufio.Reader) *App {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return &App{
		config:      cfg,
		authService: as,
		tripService: ts,
		reader:      rdr,
	}
}

type fakeAS struct {
	current *models.User

	registerReq services.RegisterRequest
	registerOut models.User
	registerErr error

	loginCreds services.Credentials
	loginOut   models.User
	loginErr   error

	logoutCalled bool
}

func (f *fakeAS) Register(ctx context.Context, req services.RegisterRequest) (models.User, error) {
	f.registerReq = req
	if f.registerErr == nil {
		f.current = &f.registerOut
	}
	return f.registerOut, f.registerErr
}

func (f *fakeAS) Login(ctx context.Context, creds services.Credentials) (models.User, error) {
	f.loginCreds = creds
	if f.loginErr == nil {
		f.current = &f.loginOut
	}
	return f.loginOut, f.loginErr
}

func (f *fakeAS) Logout(ctx context.Context) error {
	f.logoutCalled = true
	f.current = nil
	return nil
}

func (f *fakeAS) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (models.User, error) {
	if f.current == nil {
		return models.User{}, common.ErrNotAuthenticated
	}
	u := upd.Apply(*f.current)
	f.current = &u
	return u, nil
}

func (f *fakeAS) Restore(ctx context.Context) error { return nil }

func (f *fakeAS) Current() (models.User, bool) {
	if f.current == nil {
		return models.User{}, false
	}
	return *f.current, true
}

type fakeTS struct {
	loadUserID string
	loadErr    error
	trips      []models.Trip
	query      services.Query

	addDraft      services.TripDraft
	addOut        models.Trip
	addErr        error
	deletedID     string
	toggledID     string
	resetCalled   bool
	highlightID   string
	highlightIdx  int
	addImageID    string
	addImageURL   string
	addImageErr   error
	removeImageID string
	removeIndex   int
}

func (f *fakeTS) Load(ctx context.Context, userID string) error {
	f.loadUserID = userID
	return f.loadErr
}
func (f *fakeTS) Reset()                       { f.resetCalled = true }
func (f *fakeTS) Trips() []models.Trip         { return f.trips }
func (f *fakeTS) View() []models.Trip          { return f.trips }
func (f *fakeTS) Stats() services.Stats        { return services.Summarize(f.trips) }
func (f *fakeTS) Query() services.Query        { return f.query }
func (f *fakeTS) SetSearch(term string)        { f.query.Search = term }
func (f *fakeTS) SetVehicleFilter(v string)    { f.query.Vehicle = v }
func (f *fakeTS) SetSort(key services.SortKey) { f.query.Sort = key }
func (f *fakeTS) SetFavoritesOnly(on bool)     { f.query.FavoritesOnly = on }

func (f *fakeTS) Add(ctx context.Context, draft services.TripDraft) (models.Trip, error) {
	f.addDraft = draft
	return f.addOut, f.addErr
}

func (f *fakeTS) Update(ctx context.Context, id string, patch models.TripPatch) (models.Trip, error) {
	for _, t := range f.trips {
		if t.ID == id {
			return patch.Apply(t), nil
		}
	}
	return models.Trip{}, common.ErrorNotFound
}

func (f *fakeTS) Delete(ctx context.Context, id string) error {
	f.deletedID = id
	return nil
}

func (f *fakeTS) ToggleFavorite(ctx context.Context, id string) (models.Trip, error) {
	f.toggledID = id
	for _, t := range f.trips {
		if t.ID == id {
			t.IsFavorite = !t.IsFavorite
			return t, nil
		}
	}
	return models.Trip{}, common.ErrorNotFound
}

func (f *fakeTS) AddImage(ctx context.Context, id, url string) (models.Trip, error) {
	f.addImageID = id
	f.addImageURL = url
	if f.addImageErr != nil {
		return models.Trip{}, f.addImageErr
	}
	return models.Trip{ID: id, Images: []string{url}}, nil
}

func (f *fakeTS) RemoveImage(ctx context.Context, id string, index int) (models.Trip, error) {
	f.removeImageID = id
	f.removeIndex = index
	return models.Trip{ID: id}, nil
}

func (f *fakeTS) SetHighlight(ctx context.Context, id string, index int) (models.Trip, error) {
	f.highlightID = id
	f.highlightIdx = index
	return models.Trip{ID: id, HighlightImage: index}, nil
}

// ------------ tests ------------

func TestAppRegister(t *testing.T) {
	out := capturePrintln(t)
	stubPassword(t, "secret1")

	as := &fakeAS{registerOut: models.User{ID: "10", Username: "anna", FullName: "Anna"}}
	ts := &fakeTS{}
	app := newTestApp(as, ts, readerFromLines("Anna", "anna", "anna@example.com"))

	require.NoError(t, app.Register(context.Background()))

	assert.Equal(t, "anna", as.registerReq.Username)
	assert.Equal(t, "anna@example.com", as.registerReq.Email)
	assert.Equal(t, "secret1", as.registerReq.Password)
	assert.Equal(t, "10", ts.loadUserID)
	assert.Contains(t, out.String(), "Welcome, Anna")
}

func TestAppRegister_ValidationStopsBeforeService(t *testing.T) {
	out := capturePrintln(t)
	stubPassword(t, "12345")

	as := &fakeAS{}
	ts := &fakeTS{}
	app := newTestApp(as, ts, readerFromLines("Anna", "anna", "anna@example.com"))

	err := app.Register(context.Background())
	require.Error(t, err)
	assert.Contains(t, out.String(), "Password must be at least 6 characters")
	assert.Empty(t, as.registerReq.Username)
	assert.Empty(t, ts.loadUserID)
}

func TestAppRegister_DuplicateEmailMessage(t *testing.T) {
	out := capturePrintln(t)
	stubPassword(t, "secret1")

	as := &fakeAS{registerErr: common.ErrDuplicateEmail}
	app := newTestApp(as, &fakeTS{}, readerFromLines("Anna", "anna", "anna@example.com"))

	err := app.Register(context.Background())
	require.ErrorIs(t, err, common.ErrDuplicateEmail)
	assert.Contains(t, out.String(), "Email already registered")
}

func TestAppLogin(t *testing.T) {
	out := capturePrintln(t)
	stubPassword(t, "secret1")

	as := &fakeAS{loginOut: models.User{ID: "10", Username: "anna", FullName: "Anna"}}
	ts := &fakeTS{}
	app := newTestApp(as, ts, readerFromLines("anna@example.com"))

	require.NoError(t, app.Login(context.Background()))
	assert.Equal(t, "anna@example.com", as.loginCreds.EmailOrUsername)
	assert.Equal(t, "10", ts.loadUserID)
	assert.Contains(t, out.String(), "Welcome back, Anna")
}

func TestAppLogin_InvalidCredentialsMessage(t *testing.T) {
	out := capturePrintln(t)
	stubPassword(t, "wrong")

	as := &fakeAS{loginErr: common.ErrInvalidCredentials}
	app := newTestApp(as, &fakeTS{}, readerFromLines("anna"))

	err := app.Login(context.Background())
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
	assert.Contains(t, out.String(), "Invalid credentials")
}

func TestAppLogout_ResetsTrips(t *testing.T) {
	capturePrintln(t)

	as := &fakeAS{current: &models.User{ID: "10"}}
	ts := &fakeTS{}
	app := newTestApp(as, ts, readerFromLines())

	require.NoError(t, app.Logout(context.Background()))
	assert.True(t, as.logoutCalled)
	assert.True(t, ts.resetCalled)
}

func TestAppCommands_RequireSession(t *testing.T) {
	capturePrintln(t)

	app := newTestApp(&fakeAS{}, &fakeTS{}, readerFromLines())
	ctx := context.Background()

	assert.ErrorIs(t, app.List(ctx), common.ErrNotAuthenticated)
	assert.ErrorIs(t, app.Add(ctx), common.ErrNotAuthenticated)
	assert.ErrorIs(t, app.Stats(ctx), common.ErrNotAuthenticated)
	assert.ErrorIs(t, app.Favorite(ctx), common.ErrNotAuthenticated)
	assert.ErrorIs(t, app.Search(ctx, "x"), common.ErrNotAuthenticated)
}

func TestAppAdd(t *testing.T) {
	out := capturePrintln(t)

	as := &fakeAS{current: &models.User{ID: "10"}}
	ts := &fakeTS{addOut: models.Trip{ID: "123"}}
	app := newTestApp(as, ts, readerFromLines(
		"Riga - Sigulda", "bike", "53.2", "2024-06-01", "sunny day",
	))

	require.NoError(t, app.Add(context.Background()))
	assert.Equal(t, models.VehicleBike, ts.addDraft.VehicleType)
	assert.Equal(t, "Riga - Sigulda", ts.addDraft.Route)
	assert.InDelta(t, 53.2, ts.addDraft.Distance, 0.001)
	assert.Equal(t, "sunny day", ts.addDraft.Notes)
	assert.Contains(t, out.String(), "Trip 123 saved.")
}

func TestAppAdd_InvalidForm(t *testing.T) {
	out := capturePrintln(t)

	as := &fakeAS{current: &models.User{ID: "10"}}
	ts := &fakeTS{}
	app := newTestApp(as, ts, readerFromLines(
		"", "bike", "10", "2024-06-01", "",
	))

	require.Error(t, app.Add(context.Background()))
	assert.Contains(t, out.String(), "Please enter a route")
	assert.Empty(t, ts.addDraft.Route)
}

func TestAppFavorite(t *testing.T) {
	capturePrintln(t)

	as := &fakeAS{current: &models.User{ID: "10"}}
	ts := &fakeTS{trips: []models.Trip{{ID: "1", Route: "a"}}}
	app := newTestApp(as, ts, readerFromLines("1"))

	require.NoError(t, app.Favorite(context.Background()))
	assert.Equal(t, "1", ts.toggledID)
}

func TestAppDelete_AsksForConfirmation(t *testing.T) {
	capturePrintln(t)

	as := &fakeAS{current: &models.User{ID: "10"}}
	ts := &fakeTS{trips: []models.Trip{{ID: "1", Route: "a"}}}

	app := newTestApp(as, ts, readerFromLines("1", "n"))
	require.NoError(t, app.Delete(context.Background()))
	assert.Empty(t, ts.deletedID)

	app = newTestApp(as, ts, readerFromLines("1", "y"))
	require.NoError(t, app.Delete(context.Background()))
	assert.Equal(t, "1", ts.deletedID)
}

func TestAppVehicle_RejectsUnknownType(t *testing.T) {
	out := capturePrintln(t)

	as := &fakeAS{current: &models.User{ID: "10"}}
	ts := &fakeTS{query: services.DefaultQuery()}
	app := newTestApp(as, ts, readerFromLines())

	require.Error(t, app.Vehicle(context.Background(), "rocket"))
	assert.Contains(t, out.String(), "Unknown vehicle type: rocket")

	require.NoError(t, app.Vehicle(context.Background(), "bike"))
	assert.Equal(t, "bike", ts.query.Vehicle)
}

func TestAppGallery_AddDuplicateImage(t *testing.T) {
	out := capturePrintln(t)

	as := &fakeAS{current: &models.User{ID: "10"}}
	ts := &fakeTS{
		trips:       []models.Trip{{ID: "1", Route: "a", Images: []string{"x.jpg"}}},
		addImageErr: services.ErrDuplicateImage,
	}
	app := newTestApp(as, ts, readerFromLines("1", "a", "x.jpg"))

	require.NoError(t, app.Gallery(context.Background()))
	assert.Contains(t, out.String(), "already in the gallery")
}

func TestAppGallery_SetHighlight(t *testing.T) {
	capturePrintln(t)

	as := &fakeAS{current: &models.User{ID: "10"}}
	ts := &fakeTS{trips: []models.Trip{{ID: "1", Images: []string{"a.jpg", "b.jpg"}}}}
	app := newTestApp(as, ts, readerFromLines("1", "h", "1"))

	require.NoError(t, app.Gallery(context.Background()))
	assert.Equal(t, "1", ts.highlightID)
	assert.Equal(t, 1, ts.highlightIdx)
}
