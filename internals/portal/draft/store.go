// Package draft menyimpan snapshot form registrasi yang belum dikirim
// (field + anggota tim, tanpa file) dan autosave dengan debounce.
package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"inkubator_backend/internals/portal/formdata"
	"inkubator_backend/internals/portal/localstore"
)

const keyPrefix = "draft:"

// Draft bentuk tersimpan {formData, members}. FormData disimpan mentah agar
// field yang tidak ada di draft lama tetap memakai default saat di-merge.
type Draft struct {
	FormData json.RawMessage   `json:"formData"`
	Members  []formdata.Member `json:"members"`
}

func New(fd formdata.FormData, members []formdata.Member) (Draft, error) {
	raw, err := json.Marshal(fd)
	if err != nil {
		return Draft{}, err
	}
	cp := make([]formdata.Member, len(members))
	copy(cp, members)
	return Draft{FormData: raw, Members: cp}, nil
}

// MergeInto menimpa defaults dengan field yang ada di draft.
func (d *Draft) MergeInto(defaults formdata.FormData) (formdata.FormData, error) {
	out := defaults
	if len(d.FormData) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(d.FormData, &out); err != nil {
		return defaults, fmt.Errorf("decode draft form: %w", err)
	}
	return out, nil
}

// Store draft per tenant: key "draft:{tenantID}".
type Store struct {
	KV       localstore.KV
	TenantID string
}

func NewStore(kv localstore.KV, tenantID string) *Store {
	return &Store{KV: kv, TenantID: tenantID}
}

func (s *Store) Key() string { return keyPrefix + s.TenantID }

// Load: draft tidak ada → (nil, nil).
func (s *Store) Load(ctx context.Context) (*Draft, error) {
	raw, err := s.KV.Get(ctx, s.Key())
	if errors.Is(err, localstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var d Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	return &d, nil
}

// Save selalu overwrite penuh.
func (s *Store) Save(ctx context.Context, d Draft) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return s.KV.Set(ctx, s.Key(), raw)
}

func (s *Store) Delete(ctx context.Context) error {
	return s.KV.Delete(ctx, s.Key())
}
