package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkubator_backend/internals/portal/apiclient"
	"inkubator_backend/internals/portal/localstore"
)

type fakeRefresher struct {
	calls int
	err   error
}

func (f *fakeRefresher) Refresh(_ context.Context, refreshToken string) (string, string, error) {
	f.calls++
	if f.err != nil {
		return "", "", f.err
	}
	return "fresh-id-token", refreshToken + "-2", nil
}

type fakeAuth struct{}

func (fakeAuth) Login(_ context.Context, idToken string) (*apiclient.User, error) {
	if idToken == "" {
		return nil, &apiclient.APIError{StatusCode: 401, Detail: "no token"}
	}
	return &apiclient.User{ID: "u1", Role: "TENANT"}, nil
}

func newProvider(t *testing.T, r Refresher) (*TokenProvider, *time.Time) {
	t.Helper()
	kv, err := localstore.NewFileKV(t.TempDir())
	require.NoError(t, err)

	clock := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	p := NewTokenProvider(kv, r, nil)
	p.Now = func() time.Time { return clock }
	return p, &clock
}

func TestGetValidToken_NoSession(t *testing.T) {
	p, _ := newProvider(t, nil)
	_, err := p.GetValidToken(context.Background())
	assert.ErrorIs(t, err, ErrReauthenticate)
}

func TestGetValidToken_FreshTokenReturned(t *testing.T) {
	ref := &fakeRefresher{}
	p, clock := newProvider(t, ref)
	ctx := context.Background()

	_, err := p.Login(ctx, fakeAuth{}, "id-1", "rt")
	require.NoError(t, err)

	*clock = clock.Add(49 * time.Minute)
	tok, err := p.GetValidToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "id-1", tok)
	assert.Zero(t, ref.calls)
}

func TestGetValidToken_StaleTokenRefreshed(t *testing.T) {
	ref := &fakeRefresher{}
	p, clock := newProvider(t, ref)
	ctx := context.Background()

	_, err := p.Login(ctx, fakeAuth{}, "id-1", "rt")
	require.NoError(t, err)

	*clock = clock.Add(51 * time.Minute)
	tok, err := p.GetValidToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fresh-id-token", tok)
	assert.Equal(t, 1, ref.calls)

	// token baru + timestamp tersimpan → tidak refresh lagi
	tok, err = p.GetValidToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fresh-id-token", tok)
	assert.Equal(t, 1, ref.calls)

	s, err := p.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "rt-2", s.RefreshToken)
}

func TestGetValidToken_RefreshFailureTearsDown(t *testing.T) {
	ref := &fakeRefresher{err: errors.New("TOKEN_EXPIRED")}
	p, clock := newProvider(t, ref)
	ctx := context.Background()

	_, err := p.Login(ctx, fakeAuth{}, "id-1", "rt")
	require.NoError(t, err)

	*clock = clock.Add(time.Hour)
	_, err = p.GetValidToken(ctx)
	assert.ErrorIs(t, err, ErrReauthenticate)
	assert.Contains(t, err.Error(), "TOKEN_EXPIRED")

	// tidak di-retry diam-diam: sesi sudah hilang
	_, err = p.GetValidToken(ctx)
	assert.ErrorIs(t, err, ErrReauthenticate)
	assert.Equal(t, 1, ref.calls)
}

func TestGetValidToken_SessionExpiresAfterValidity(t *testing.T) {
	ref := &fakeRefresher{}
	p, clock := newProvider(t, ref)
	ctx := context.Background()

	_, err := p.Login(ctx, fakeAuth{}, "id-1", "rt")
	require.NoError(t, err)

	*clock = clock.Add(25 * time.Hour)
	_, err = p.GetValidToken(ctx)
	assert.ErrorIs(t, err, ErrReauthenticate)
	assert.Zero(t, ref.calls)
}

func TestLogin_FailureStoresNothing(t *testing.T) {
	p, _ := newProvider(t, nil)
	ctx := context.Background()

	_, err := p.Login(ctx, fakeAuth{}, "", "")
	require.Error(t, err)
	_, err = p.Current(ctx)
	assert.ErrorIs(t, err, ErrReauthenticate)
}

func TestLogout(t *testing.T) {
	p, _ := newProvider(t, nil)
	ctx := context.Background()
	_, err := p.Login(ctx, fakeAuth{}, "id-1", "")
	require.NoError(t, err)

	require.NoError(t, p.Logout(ctx))
	_, err = p.GetValidToken(ctx)
	assert.ErrorIs(t, err, ErrReauthenticate)
}

func TestFirebaseRefresher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "k", r.URL.Query().Get("key"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		if r.PostForm.Get("refresh_token") == "bad" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"message":"INVALID_REFRESH_TOKEN"}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id_token":"new-id","refresh_token":"new-rt"}`))
	}))
	defer srv.Close()

	f := NewFirebaseRefresher("k")
	f.Endpoint = srv.URL

	id, rt, err := f.Refresh(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "new-id", id)
	assert.Equal(t, "new-rt", rt)

	_, _, err = f.Refresh(context.Background(), "bad")
	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}
