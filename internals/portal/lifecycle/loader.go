package lifecycle

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"inkubator_backend/internals/portal/apiclient"
	"inkubator_backend/internals/portal/draft"
)

// Generation penjaga hasil async: hanya hasil dari Begin terakhir yang boleh di-commit.
type Generation struct {
	mu  sync.Mutex
	cur uint64
}

type Ticket uint64

func (g *Generation) Begin() Ticket {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cur++
	return Ticket(g.cur)
}

// Invalidate membuang semua ticket yang sedang berjalan (mis. view ditutup).
func (g *Generation) Invalidate() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cur++
}

// Commit menjalankan fn hanya bila t masih ticket terbaru.
func (g *Generation) Commit(t Ticket, fn func()) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if uint64(t) != g.cur {
		return false
	}
	fn()
	return true
}

type RegistrationLookup interface {
	MyRegistration(ctx context.Context, token string) (*apiclient.Registration, error)
}

type TokenSource interface {
	GetValidToken(ctx context.Context) (string, error)
}

type Result struct {
	Stage        Stage
	Registration *apiclient.Registration
	// Err terisi saat LookupFailed (termasuk session.ErrReauthenticate).
	Err error
	// Prefill terisi untuk Rejected.
	Prefill *PrefillResult
	// Draft tersimpan, hanya dibaca saat NoRegistration.
	Draft *draft.Draft
}

type Loader struct {
	API    RegistrationLookup
	Tokens TokenSource
	Drafts *draft.Store
	Gen    *Generation
	Log    *zap.Logger

	mu   sync.Mutex
	last Result
}

func NewLoader(api RegistrationLookup, tokens TokenSource, drafts *draft.Store, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{API: api, Tokens: tokens, Drafts: drafts, Gen: &Generation{}, Log: log}
}

// Load lookup registrasi tenant. committed false berarti ada Load lain yang
// lebih baru; hasil ini tidak disimpan ke Last.
func (l *Loader) Load(ctx context.Context) (res Result, committed bool) {
	ticket := l.Gen.Begin()
	res = l.lookup(ctx)

	committed = l.Gen.Commit(ticket, func() {
		l.mu.Lock()
		l.last = res
		l.mu.Unlock()
	})
	if !committed {
		l.Log.Debug("hasil lookup usang dibuang", zap.Stringer("stage", res.Stage))
	}
	return res, committed
}

func (l *Loader) Last() Result {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.last
}

func (l *Loader) lookup(ctx context.Context) Result {
	token, err := l.Tokens.GetValidToken(ctx)
	if err != nil {
		return Result{Stage: LookupFailed, Err: err}
	}

	reg, err := l.API.MyRegistration(ctx, token)
	stage := Derive(reg, err)
	res := Result{Stage: stage, Registration: reg}

	switch stage {
	case LookupFailed:
		res.Err = err
		if err == nil {
			res.Err = fmt.Errorf("unknown registration status %q", reg.Status)
			l.Log.Warn("⚠️ status registrasi tidak dikenal", zap.String("status", string(reg.Status)))
		}
	case Rejected:
		p := Prefill(reg, l.Log)
		res.Prefill = &p
	case NoRegistration:
		if l.Drafts != nil {
			d, derr := l.Drafts.Load(ctx)
			if derr != nil {
				l.Log.Warn("⚠️ gagal membaca draft", zap.Error(derr))
			}
			res.Draft = d
		}
	case Pending, Approved:
	}
	return res
}
