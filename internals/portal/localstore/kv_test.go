package localstore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	_, err := kv.Get(ctx, "draft:abc")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Set(ctx, "draft:abc", []byte(`{"a":1}`)))
	got, err := kv.Get(ctx, "draft:abc")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(got))

	// overwrite penuh
	require.NoError(t, kv.Set(ctx, "draft:abc", []byte(`{"b":2}`)))
	got, err = kv.Get(ctx, "draft:abc")
	require.NoError(t, err)
	assert.JSONEq(t, `{"b":2}`, string(got))

	require.NoError(t, kv.Delete(ctx, "draft:abc"))
	_, err = kv.Get(ctx, "draft:abc")
	assert.ErrorIs(t, err, ErrNotFound)

	// hapus key yang tidak ada bukan error
	assert.NoError(t, kv.Delete(ctx, "draft:abc"))
}

func TestRedisKV(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	kv := NewRedisKV(client, "test:")
	exerciseKV(t, kv)

	require.NoError(t, kv.Set(context.Background(), "auth_session", []byte("x")))
	assert.True(t, mr.Exists("test:auth_session"))
}

func TestFileKV(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	require.NoError(t, err)
	exerciseKV(t, kv)
}

func TestFileKV_CancelledContext(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, kv.Set(ctx, "k", []byte("v")), context.Canceled)
}
