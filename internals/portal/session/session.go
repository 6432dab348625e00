// Package session menyimpan sesi login portal dan menyediakan token yang
// masih valid untuk setiap request ke backend.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"inkubator_backend/internals/portal/apiclient"
	"inkubator_backend/internals/portal/localstore"
)

const (
	Key = "auth_session"

	DefaultValidity  = 24 * time.Hour
	DefaultStaleness = 50 * time.Minute
)

// ErrReauthenticate: caller harus login ulang, request asal jangan diulang.
var ErrReauthenticate = errors.New("session expired, please sign in again")

type Session struct {
	User         apiclient.User `json:"user"`
	IDToken      string         `json:"idToken"`
	RefreshToken string         `json:"refreshToken,omitempty"`
	// Timestamp waktu token terakhir diterbitkan/di-refresh.
	Timestamp time.Time `json:"timestamp"`
	// StartedAt awal sesi; batas 24 jam dihitung dari sini.
	StartedAt time.Time `json:"startedAt"`
}

// Refresher menukar refresh token dengan ID token baru.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (idToken, newRefreshToken string, err error)
}

// Authenticator endpoint login backend (apiclient.Client memenuhi ini).
type Authenticator interface {
	Login(ctx context.Context, idToken string) (*apiclient.User, error)
}

type TokenProvider struct {
	KV        localstore.KV
	Refresher Refresher
	Log       *zap.Logger
	Now       func() time.Time
	Validity  time.Duration
	Staleness time.Duration

	mu sync.Mutex
}

func NewTokenProvider(kv localstore.KV, refresher Refresher, log *zap.Logger) *TokenProvider {
	if log == nil {
		log = zap.NewNop()
	}
	return &TokenProvider{
		KV:        kv,
		Refresher: refresher,
		Log:       log,
		Now:       time.Now,
		Validity:  DefaultValidity,
		Staleness: DefaultStaleness,
	}
}

func (p *TokenProvider) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// Current membaca sesi tersimpan; belum login → ErrReauthenticate.
func (p *TokenProvider) Current(ctx context.Context) (*Session, error) {
	raw, err := p.KV.Get(ctx, Key)
	if errors.Is(err, localstore.ErrNotFound) {
		return nil, ErrReauthenticate
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		p.Log.Warn("⚠️ sesi rusak, dihapus", zap.Error(err))
		_ = p.KV.Delete(ctx, Key)
		return nil, ErrReauthenticate
	}
	if s.StartedAt.IsZero() {
		s.StartedAt = s.Timestamp
	}
	return &s, nil
}

// GetValidToken mengembalikan ID token siap pakai. Token yang sudah lewat
// ambang staleness di-refresh lebih dulu; refresh gagal menghapus sesi.
// Dipanggil berurutan per proses (mutex) agar tidak ada dua refresh bersamaan.
func (p *TokenProvider) GetValidToken(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, err := p.Current(ctx)
	if err != nil {
		return "", err
	}

	now := p.now()
	if now.Sub(s.StartedAt) > p.Validity {
		p.teardown(ctx, "session older than validity window")
		return "", ErrReauthenticate
	}
	if now.Sub(s.Timestamp) < p.Staleness {
		return s.IDToken, nil
	}

	if p.Refresher == nil || s.RefreshToken == "" {
		p.teardown(ctx, "stale token without refresher")
		return "", ErrReauthenticate
	}
	idToken, refreshToken, err := p.Refresher.Refresh(ctx, s.RefreshToken)
	if err != nil {
		p.teardown(ctx, "token refresh failed")
		return "", fmt.Errorf("%w: %v", ErrReauthenticate, err)
	}

	s.IDToken = idToken
	if refreshToken != "" {
		s.RefreshToken = refreshToken
	}
	s.Timestamp = now
	if err := p.save(ctx, s); err != nil {
		return "", err
	}
	p.Log.Debug("🔄 token di-refresh", zap.String("user_id", s.User.ID))
	return idToken, nil
}

// Login menukar ID token ke backend lalu menyimpan sesi baru.
func (p *TokenProvider) Login(ctx context.Context, auth Authenticator, idToken, refreshToken string) (*Session, error) {
	user, err := auth.Login(ctx, idToken)
	if err != nil {
		return nil, err
	}
	now := p.now()
	s := &Session{
		User:         *user,
		IDToken:      idToken,
		RefreshToken: refreshToken,
		Timestamp:    now,
		StartedAt:    now,
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.save(ctx, s); err != nil {
		return nil, err
	}
	p.Log.Info("✅ login berhasil", zap.String("user_id", user.ID), zap.String("role", user.Role))
	return s, nil
}

func (p *TokenProvider) Logout(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.KV.Delete(ctx, Key)
}

func (p *TokenProvider) save(ctx context.Context, s *Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := p.KV.Set(ctx, Key, b); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (p *TokenProvider) teardown(ctx context.Context, reason string) {
	p.Log.Info("🔒 sesi diakhiri", zap.String("reason", reason))
	if err := p.KV.Delete(ctx, Key); err != nil {
		p.Log.Warn("⚠️ gagal menghapus sesi", zap.Error(err))
	}
}
