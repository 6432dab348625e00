// Package localstore pengganti browser storage untuk portal: key-value kecil
// (sesi login, draft registrasi) yang bertahan antar proses.
package localstore

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("localstore: key not found")

type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
