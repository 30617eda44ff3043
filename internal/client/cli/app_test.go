package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophgarage/internal/client/client"
	"github.com/dmitrijs2005/gophgarage/internal/client/config"
	"github.com/dmitrijs2005/gophgarage/internal/client/reconcile"
	"github.com/dmitrijs2005/gophgarage/internal/client/repositories/cache"
	"github.com/dmitrijs2005/gophgarage/internal/client/session"
	"github.com/dmitrijs2005/gophgarage/internal/logging"
	"github.com/dmitrijs2005/gophgarage/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// offlineRemote is never reached: the apps built here stay offline.
type offlineRemote struct {
	reconcile.Remote
}

type fakeAuth struct {
	sess *session.Context

	loginErr  error
	lastUser  string
	lastPass  string
	lastEmail string
	loggedOut bool
}

func (f *fakeAuth) Register(ctx context.Context, username, email, password string) (session.Session, error) {
	f.lastEmail = email
	return f.Login(ctx, username, password)
}

func (f *fakeAuth) Login(ctx context.Context, username, password string) (session.Session, error) {
	f.lastUser, f.lastPass = username, password
	if f.loginErr != nil {
		return session.Session{}, f.loginErr
	}
	s := session.Session{UserID: "1", Username: username, Token: "t"}
	f.sess.SetSession(ctx, s)
	return s, nil
}

func (f *fakeAuth) Restore(context.Context) (bool, error) { return false, nil }

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.loggedOut = true
	f.sess.ClearSession(ctx)
	return nil
}

func (f *fakeAuth) Ping(context.Context) error { return client.ErrUnavailable }

type fakeImages struct{}

func (fakeImages) VehicleImageUploadURL(context.Context, models.ID) (*models.ImageUpload, error) {
	return &models.ImageUpload{Key: "k", URL: "http://example.invalid"}, nil
}

func (fakeImages) VehicleImageURL(context.Context, models.ID) (string, error) {
	return "http://example.invalid/k", nil
}

type testApp struct {
	*App
	auth *fakeAuth
	buf  *bytes.Buffer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db, err := cache.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.RequestTimeout = 50 * time.Millisecond

	sess := session.New()
	garage := reconcile.New(offlineRemote{}, cache.NewSQLiteRepository(db), sess, logging.NewNop())
	auth := &fakeAuth{sess: sess}
	in := strings.NewReader("")
	buf := &bytes.Buffer{}

	a := newApp(cfg, logging.NewNop(), sess, auth, garage, fakeImages{}, in, buf)
	t.Cleanup(garage.Close)

	orig := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte("secret"), nil }
	t.Cleanup(func() { getPassword = orig })

	return &testApp{App: a, auth: auth, buf: buf}
}

// feed replaces pending input with lines.
func (ta *testApp) feed(lines ...string) {
	ta.reader.Reset(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

func (ta *testApp) login(t *testing.T) {
	t.Helper()
	ta.feed("ana")
	require.NoError(t, ta.Login(context.Background()))
}

func (ta *testApp) addVehicle(t *testing.T) models.Vehicle {
	t.Helper()
	ta.feed("Skoda", "Octavia", "AB-123", "2015")
	require.NoError(t, ta.AddVehicle(context.Background()))
	vs := ta.garage.Vehicles()
	require.NotEmpty(t, vs)
	return vs[len(vs)-1]
}

func TestLogin(t *testing.T) {
	ta := newTestApp(t)
	out := capturePrint(t)

	ta.login(t)
	assert.Equal(t, "ana", ta.auth.lastUser)
	assert.Equal(t, "secret", ta.auth.lastPass)
	assert.True(t, ta.isLoggedIn())
	assert.Equal(t, "(ana offline)", ta.getStatus())
	assert.Contains(t, *out, "Logged in as ana")

	require.NoError(t, ta.Logout(context.Background()))
	assert.False(t, ta.isLoggedIn())
	assert.Equal(t, "(offline)", ta.getStatus())
}

func TestLogin_BadPassword(t *testing.T) {
	ta := newTestApp(t)
	capturePrint(t)
	ta.auth.loginErr = client.ErrUnauthorized

	ta.feed("ana")
	err := ta.Login(context.Background())
	require.Error(t, err)
	assert.Equal(t, "invalid username or password", err.Error())
}

func TestRegister(t *testing.T) {
	ta := newTestApp(t)
	capturePrint(t)

	ta.feed("ana", "ana@example.com")
	require.NoError(t, ta.Register(context.Background()))
	assert.Equal(t, "ana@example.com", ta.auth.lastEmail)
	assert.True(t, ta.isLoggedIn())
}

func TestAddAndListVehicles(t *testing.T) {
	ta := newTestApp(t)
	out := capturePrint(t)
	ta.login(t)

	v := ta.addVehicle(t)
	assert.Equal(t, "Skoda", v.Brand)
	assert.Equal(t, 2015, v.Year)
	assert.Contains(t, *out, "Saved locally, it will be synced when the server is reachable")

	ta.buf.Reset()
	require.NoError(t, ta.ListVehicles(context.Background()))
	assert.Contains(t, ta.buf.String(), "Octavia")
	assert.Contains(t, ta.buf.String(), "local")
}

func TestAddVehicle_Invalid(t *testing.T) {
	ta := newTestApp(t)
	capturePrint(t)
	ta.login(t)

	ta.feed("Skoda", "", "", "2015")
	err := ta.AddVehicle(context.Background())
	assert.ErrorIs(t, err, reconcile.ErrValidationFailed)
}

func TestEditVehicle(t *testing.T) {
	ta := newTestApp(t)
	capturePrint(t)
	ta.login(t)
	ta.addVehicle(t)

	ta.feed("", "", "ZZ-999", "")
	require.NoError(t, ta.EditVehicle(context.Background(), "1"))

	v := ta.garage.Vehicles()[0]
	assert.Equal(t, "ZZ-999", v.Plate)
	assert.Equal(t, "Octavia", v.Model)
	assert.Equal(t, 2015, v.Year)
}

func TestOilChangeAndReminderFlow(t *testing.T) {
	ta := newTestApp(t)
	out := capturePrint(t)
	ta.login(t)
	v := ta.addVehicle(t)
	ctx := context.Background()

	ta.feed("oil change", "2025-01-15", "40000", "59.90", "synthetic")
	require.NoError(t, ta.AddMaintenance(ctx, "1"))
	assert.Contains(t, *out, "Next oil change due 2025-07-15 or at 45000")

	ms := ta.garage.Maintenances(v.ID)
	require.Len(t, ms, 1)
	assert.InDelta(t, 59.9, ms[0].Cost, 1e-9)
	assert.Equal(t, 40000, ta.lastMileage(v.ID))

	ta.buf.Reset()
	require.NoError(t, ta.History(ctx, "1"))
	assert.Contains(t, ta.buf.String(), "synthetic")

	ta.buf.Reset()
	require.NoError(t, ta.ListReminders(ctx, ""))
	assert.Contains(t, ta.buf.String(), "2025-07-15")

	require.NoError(t, ta.CompleteReminder(ctx, "1"))
	assert.Contains(t, *out, "Next one due 2026-01-15")
	assert.Len(t, ta.activeReminders(""), 1)

	require.NoError(t, ta.DeleteMaintenance(ctx, string(ms[0].ID)))
	assert.Empty(t, ta.garage.Maintenances(""))
}

func TestAddReminderAndDue(t *testing.T) {
	ta := newTestApp(t)
	capturePrint(t)
	ta.login(t)
	ta.addVehicle(t)
	ctx := context.Background()

	ta.feed("tyres", time.Now().AddDate(0, 0, 2).Format(time.DateOnly), "")
	require.NoError(t, ta.AddReminder(ctx, "1"))

	ta.buf.Reset()
	require.NoError(t, ta.Due(ctx))
	assert.Contains(t, ta.buf.String(), "tyres")
	assert.Contains(t, ta.buf.String(), "AB-123")
}

func TestDeleteVehicle(t *testing.T) {
	ta := newTestApp(t)
	out := capturePrint(t)
	ta.login(t)
	ta.addVehicle(t)
	ctx := context.Background()

	ta.feed("no")
	require.NoError(t, ta.DeleteVehicle(ctx, "1"))
	assert.Contains(t, *out, "Cancelled")
	assert.Len(t, ta.garage.Vehicles(), 1)

	ta.feed("yes")
	require.NoError(t, ta.DeleteVehicle(ctx, "1"))
	assert.Empty(t, ta.garage.Vehicles())

	assert.Error(t, ta.DeleteVehicle(ctx, "1"))
}

func TestPhotoCommands_NeedSyncedVehicle(t *testing.T) {
	ta := newTestApp(t)
	capturePrint(t)
	ta.login(t)
	ta.addVehicle(t)
	ctx := context.Background()

	assert.ErrorIs(t, ta.UploadPhoto(ctx, "1"), errNotSynced)
	assert.EqualError(t, ta.PhotoURL(ctx, "1"), "the vehicle has no photo")
}

func TestRefresh_Offline(t *testing.T) {
	ta := newTestApp(t)
	capturePrint(t)
	ta.login(t)

	assert.Error(t, ta.Refresh(context.Background()))
}

func TestPick(t *testing.T) {
	ta := newTestApp(t)
	items := []models.Vehicle{{ID: "2"}, {ID: "10"}}
	id := func(v models.Vehicle) models.ID { return v.ID }

	v, err := pick(ta.App, "2", "vehicle", items, id)
	require.NoError(t, err)
	assert.Equal(t, models.ID("2"), v.ID)

	v, err = pick(ta.App, "1", "vehicle", items, id)
	require.NoError(t, err)
	assert.Equal(t, models.ID("2"), v.ID)

	ta.feed("10")
	v, err = pick(ta.App, "", "vehicle", items, id)
	require.NoError(t, err)
	assert.Equal(t, models.ID("10"), v.ID)

	_, err = pick(ta.App, "7", "vehicle", items, id)
	assert.EqualError(t, err, `vehicle "7" not found`)
}
