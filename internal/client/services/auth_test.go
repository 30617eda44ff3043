package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/gophgarage/internal/client/client"
	"github.com/dmitrijs2005/gophgarage/internal/client/repositories/cache"
	"github.com/dmitrijs2005/gophgarage/internal/client/session"
	"github.com/dmitrijs2005/gophgarage/internal/logging"
	"github.com/dmitrijs2005/gophgarage/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fake client ----

// fakeClient implements the auth part of client.Client; the embedded
// interface panics if anything else is called.
type fakeClient struct {
	client.Client

	LoginResp *models.AuthResponse
	LoginErr  error

	RegisterResp *models.AuthResponse
	RegisterErr  error

	PingErr error

	LastCreds models.Credentials
}

func (f *fakeClient) Login(_ context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	f.LastCreds = creds
	return f.LoginResp, f.LoginErr
}

func (f *fakeClient) Register(_ context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	f.LastCreds = creds
	return f.RegisterResp, f.RegisterErr
}

func (f *fakeClient) Ping(context.Context) error { return f.PingErr }

// ---- helpers ----

func setup(t *testing.T, fc *fakeClient) (AuthService, *cache.SQLiteRepository, *session.Context) {
	t.Helper()
	db, err := cache.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := cache.NewSQLiteRepository(db)
	sess := session.New()
	return NewAuthService(fc, store, sess, logging.NewNop()), store, sess
}

var anaResp = &models.AuthResponse{Token: "tok", ID: "42", Username: "ana", Email: "ana@example.com"}

// ---- tests ----

func TestLogin_OnlineStartsSessionAndSavesAccount(t *testing.T) {
	fc := &fakeClient{LoginResp: anaResp}
	svc, store, sess := setup(t, fc)
	ctx := context.Background()

	s, err := svc.Login(ctx, "ana", "secret")
	require.NoError(t, err)
	assert.Equal(t, models.ID("42"), s.UserID)
	assert.Equal(t, "secret", fc.LastCreds.Password)

	cur, ok := sess.Current()
	require.True(t, ok)
	assert.Equal(t, "tok", cur.Token)

	saved, found, err := cache.LoadValue[session.Session](ctx, store, "current_user")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, s, saved)

	acc, found, err := cache.LoadValue[account](ctx, store, "account_ana")
	require.NoError(t, err)
	require.True(t, found)
	assert.NotEqual(t, "secret", string(acc.PasswordHash))
}

func TestLogin_RejectedByServer(t *testing.T) {
	fc := &fakeClient{LoginErr: client.ErrUnauthorized}
	svc, _, sess := setup(t, fc)

	_, err := svc.Login(context.Background(), "ana", "bad")
	assert.ErrorIs(t, err, client.ErrUnauthorized)
	_, ok := sess.Current()
	assert.False(t, ok)
}

func TestLogin_OfflineUsesSavedHash(t *testing.T) {
	fc := &fakeClient{LoginResp: anaResp}
	svc, _, sess := setup(t, fc)
	ctx := context.Background()

	_, err := svc.Login(ctx, "ana", "secret")
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx))

	fc.LoginResp, fc.LoginErr = nil, client.ErrUnavailable

	_, err = svc.Login(ctx, "ana", "wrong")
	assert.ErrorIs(t, err, client.ErrUnauthorized)

	s, err := svc.Login(ctx, "ANA", "secret")
	require.NoError(t, err)
	assert.Equal(t, models.ID("42"), s.UserID)
	cur, ok := sess.Current()
	require.True(t, ok)
	assert.Equal(t, "ana", cur.Username)
}

func TestLogin_OfflineUnknownUser(t *testing.T) {
	fc := &fakeClient{LoginErr: client.ErrUnavailable}
	svc, _, _ := setup(t, fc)

	_, err := svc.Login(context.Background(), "bob", "pw")
	assert.ErrorIs(t, err, ErrNoOfflineAccount)
}

func TestLogin_ResponseWithoutID(t *testing.T) {
	fc := &fakeClient{LoginResp: &models.AuthResponse{Token: "tok", Username: "ana"}}
	svc, _, _ := setup(t, fc)

	_, err := svc.Login(context.Background(), "ana", "pw")
	assert.ErrorIs(t, err, client.ErrBadRequest)
}

func TestRegister_StartsSession(t *testing.T) {
	fc := &fakeClient{RegisterResp: anaResp}
	svc, _, sess := setup(t, fc)

	_, err := svc.Register(context.Background(), "ana", "ana@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", fc.LastCreds.Email)
	assert.Equal(t, models.ID("42"), sess.UserID())
}

func TestRegister_Conflict(t *testing.T) {
	fc := &fakeClient{RegisterErr: client.ErrConflict}
	svc, _, _ := setup(t, fc)

	_, err := svc.Register(context.Background(), "ana", "ana@example.com", "secret")
	assert.ErrorIs(t, err, client.ErrConflict)
}

func TestRestore(t *testing.T) {
	fc := &fakeClient{LoginResp: anaResp}
	svc, store, _ := setup(t, fc)
	ctx := context.Background()

	ok, err := svc.Restore(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.Login(ctx, "ana", "secret")
	require.NoError(t, err)

	sess := session.New()
	restored := NewAuthService(fc, store, sess, logging.NewNop())
	ok, err = restored.Restore(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", sess.Token())
}

func TestLogout_KeepsCollections(t *testing.T) {
	fc := &fakeClient{LoginResp: anaResp}
	svc, store, sess := setup(t, fc)
	ctx := context.Background()

	_, err := svc.Login(ctx, "ana", "secret")
	require.NoError(t, err)
	require.NoError(t, cache.SaveList(ctx, store, cache.Vehicles.Key("42"), []models.Vehicle{{ID: "1"}}))

	require.NoError(t, svc.Logout(ctx))

	_, ok := sess.Current()
	assert.False(t, ok)
	_, found, err := cache.LoadValue[session.Session](ctx, store, "current_user")
	require.NoError(t, err)
	assert.False(t, found)

	vs, err := cache.LoadList[models.Vehicle](ctx, store, cache.Vehicles.Key("42"))
	require.NoError(t, err)
	assert.Len(t, vs, 1)
}

func TestPing(t *testing.T) {
	fc := &fakeClient{PingErr: client.ErrUnavailable}
	svc, _, _ := setup(t, fc)
	assert.ErrorIs(t, svc.Ping(context.Background()), client.ErrUnavailable)
}
