package draft

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultDebounce     = 2000 * time.Millisecond
	DefaultDismissAfter = 2000 * time.Millisecond
	writeTimeout        = 10 * time.Second
)

type Status int

const (
	StatusIdle Status = iota
	StatusSaving
	StatusSaved
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSaving:
		return "saving"
	case StatusSaved:
		return "saved"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

type Saver interface {
	Save(ctx context.Context, d Draft) error
	Delete(ctx context.Context) error
}

// Autosaver: setiap Touch me-restart timer debounce; hanya snapshot terakhir
// dalam satu jendela diam yang ditulis. Penulisan diserialisasi lewat writeMu.
type Autosaver struct {
	saver        Saver
	Debounce     time.Duration
	DismissAfter time.Duration
	OnStatus     func(Status)
	Log          *zap.Logger

	mu        sync.Mutex
	timer     *time.Timer
	dismiss   *time.Timer
	pending   *Draft
	stopped   bool
	status    Status
	statusGen uint64

	writeMu sync.Mutex
}

func NewAutosaver(saver Saver, onStatus func(Status), log *zap.Logger) *Autosaver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Autosaver{
		saver:        saver,
		Debounce:     DefaultDebounce,
		DismissAfter: DefaultDismissAfter,
		OnStatus:     onStatus,
		Log:          log,
	}
}

func (a *Autosaver) Touch(d Draft) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopped {
		return
	}
	a.pending = &d
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.Debounce, a.fire)
}

func (a *Autosaver) Status() Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}

func (a *Autosaver) fire() {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	_ = a.Flush(ctx)
}

// Flush menulis snapshot pending sekarang juga (tanpa menunggu debounce).
func (a *Autosaver) Flush(ctx context.Context) error {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	a.mu.Lock()
	if a.stopped || a.pending == nil {
		a.mu.Unlock()
		return nil
	}
	d := *a.pending
	a.pending = nil
	if a.timer != nil {
		a.timer.Stop()
	}
	a.mu.Unlock()

	a.setStatus(StatusSaving)
	if err := a.saver.Save(ctx, d); err != nil {
		a.Log.Warn("⚠️ autosave draft gagal", zap.Error(err))
		a.setStatus(StatusFailed)
		return err
	}
	gen := a.setStatus(StatusSaved)

	a.mu.Lock()
	if a.dismiss != nil {
		a.dismiss.Stop()
	}
	a.dismiss = time.AfterFunc(a.DismissAfter, func() { a.dismissSaved(gen) })
	a.mu.Unlock()
	return nil
}

func (a *Autosaver) dismissSaved(gen uint64) {
	a.mu.Lock()
	if a.statusGen != gen || a.status != StatusSaved {
		a.mu.Unlock()
		return
	}
	a.status = StatusIdle
	a.statusGen++
	cb := a.OnStatus
	a.mu.Unlock()

	if cb != nil {
		cb(StatusIdle)
	}
}

func (a *Autosaver) setStatus(s Status) uint64 {
	a.mu.Lock()
	a.status = s
	a.statusGen++
	gen := a.statusGen
	cb := a.OnStatus
	a.mu.Unlock()

	if cb != nil {
		cb(s)
	}
	return gen
}

// Stop membatalkan write yang masih menunggu; Touch berikutnya diabaikan.
func (a *Autosaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopped = true
	a.pending = nil
	if a.timer != nil {
		a.timer.Stop()
	}
	if a.dismiss != nil {
		a.dismiss.Stop()
	}
}

// Discard: Stop, tunggu write yang sedang jalan, lalu hapus draft.
func (a *Autosaver) Discard(ctx context.Context) error {
	a.Stop()
	a.writeMu.Lock()
	defer a.writeMu.Unlock()
	return a.saver.Delete(ctx)
}
