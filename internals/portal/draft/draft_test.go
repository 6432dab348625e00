package draft

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkubator_backend/internals/portal/formdata"
	"inkubator_backend/internals/portal/localstore"
)

type spySaver struct {
	mu      sync.Mutex
	saves   []Draft
	deletes int
	err     error
}

func (s *spySaver) Save(_ context.Context, d Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves = append(s.saves, d)
	return s.err
}

func (s *spySaver) Delete(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes++
	return nil
}

func (s *spySaver) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saves)
}

func (s *spySaver) last() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves[len(s.saves)-1]
}

type statusLog struct {
	mu  sync.Mutex
	all []Status
}

func (l *statusLog) record(s Status) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.all = append(l.all, s)
}

func (l *statusLog) snapshot() []Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Status(nil), l.all...)
}

func snap(t *testing.T, name string) Draft {
	t.Helper()
	fd := formdata.Defaults()
	fd.NamaBisnis = name
	d, err := New(fd, []formdata.Member{{Name: "Budi", NIM: "1"}})
	require.NoError(t, err)
	return d
}

func newTestAutosaver(spy *spySaver, log *statusLog) *Autosaver {
	a := NewAutosaver(spy, log.record, nil)
	a.Debounce = 40 * time.Millisecond
	a.DismissAfter = 40 * time.Millisecond
	return a
}

func TestAutosaver_BurstWritesOnce(t *testing.T) {
	spy := &spySaver{}
	log := &statusLog{}
	a := newTestAutosaver(spy, log)
	a.Debounce = 100 * time.Millisecond

	for i := 0; i < 5; i++ {
		a.Touch(snap(t, string(rune('a'+i))))
		time.Sleep(5 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return spy.count() >= 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, 1, spy.count())

	d := spy.last()
	fd, err := d.MergeInto(formdata.Defaults())
	require.NoError(t, err)
	assert.Equal(t, "e", fd.NamaBisnis)
}

func TestAutosaver_StatusSavedThenIdle(t *testing.T) {
	spy := &spySaver{}
	log := &statusLog{}
	a := newTestAutosaver(spy, log)

	a.Touch(snap(t, "x"))
	require.Eventually(t, func() bool {
		s := log.snapshot()
		return len(s) == 3
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []Status{StatusSaving, StatusSaved, StatusIdle}, log.snapshot())
	assert.Equal(t, StatusIdle, a.Status())
}

func TestAutosaver_Failed(t *testing.T) {
	spy := &spySaver{err: errors.New("disk full")}
	log := &statusLog{}
	a := newTestAutosaver(spy, log)

	a.Touch(snap(t, "x"))
	require.Eventually(t, func() bool { return a.Status() == StatusFailed }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []Status{StatusSaving, StatusFailed}, log.snapshot())
}

func TestAutosaver_StopCancelsPending(t *testing.T) {
	spy := &spySaver{}
	a := newTestAutosaver(spy, &statusLog{})

	a.Touch(snap(t, "x"))
	a.Stop()
	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, spy.count())

	a.Touch(snap(t, "y"))
	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, spy.count())
}

func TestAutosaver_FlushAndDiscard(t *testing.T) {
	spy := &spySaver{}
	a := newTestAutosaver(spy, &statusLog{})
	a.Debounce = time.Hour

	a.Touch(snap(t, "x"))
	require.NoError(t, a.Flush(context.Background()))
	assert.Equal(t, 1, spy.count())

	a.Touch(snap(t, "y"))
	require.NoError(t, a.Discard(context.Background()))
	assert.Equal(t, 1, spy.count())
	assert.Equal(t, 1, spy.deletes)
}

func TestStore_TenantScopedRoundTrip(t *testing.T) {
	kv, err := localstore.NewFileKV(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	a := NewStore(kv, "tenant-a")
	b := NewStore(kv, "tenant-b")
	assert.Equal(t, "draft:tenant-a", a.Key())

	got, err := a.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, a.Save(ctx, snap(t, "Kopi Kita")))

	other, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, other)

	got, err = a.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []formdata.Member{{Name: "Budi", NIM: "1"}}, got.Members)

	require.NoError(t, a.Delete(ctx))
	got, err = a.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDraft_MergeKeepsDefaultsForMissingFields(t *testing.T) {
	d := Draft{FormData: []byte(`{"nama_bisnis":"Kopi","omzet":"5000000"}`)}
	defaults := formdata.Defaults()
	defaults.Fakultas = "Teknik"

	fd, err := d.MergeInto(defaults)
	require.NoError(t, err)
	assert.Equal(t, "Kopi", fd.NamaBisnis)
	assert.Equal(t, "5000000", fd.Omzet)
	assert.Equal(t, "Teknik", fd.Fakultas)
	assert.Equal(t, formdata.StartupBaru, fd.StartupStatus)
}
