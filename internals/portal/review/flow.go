package review

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"inkubator_backend/internals/portal/apiclient"
)

// ErrDialogInvalid: dialog diblok oleh validasi lokal, tidak ada request.
var ErrDialogInvalid = errors.New("status update blocked by validation")

type Updater interface {
	UpdateStatus(ctx context.Context, token, id string, status apiclient.Status, reason string) (*apiclient.StatusUpdate, error)
}

type Flow struct {
	API    Updater
	Tokens TokenSource
	Board  *Board
	Log    *zap.Logger
}

func NewFlow(api Updater, tokens TokenSource, board *Board, log *zap.Logger) *Flow {
	if log == nil {
		log = zap.NewNop()
	}
	return &Flow{API: api, Tokens: tokens, Board: board, Log: log}
}

// Confirm mengirim perubahan status lalu me-refresh seluruh daftar.
// Gagal refresh dikembalikan bersama hasil update yang sudah sukses.
func (f *Flow) Confirm(ctx context.Context, d *Dialog) (*apiclient.StatusUpdate, error) {
	if !d.Validate() {
		return nil, ErrDialogInvalid
	}

	token, err := f.Tokens.GetValidToken(ctx)
	if err != nil {
		return nil, err
	}
	out, err := f.API.UpdateStatus(ctx, token, d.Target.ID, d.NewStatus, d.TrimmedReason())
	if err != nil {
		d.Error = apiclient.Message(err)
		return nil, err
	}
	f.Log.Info("✅ status registrasi diperbarui",
		zap.String("registration_id", out.TenantID), zap.String("status", string(out.Status)))

	if f.Board != nil {
		if err := f.Board.Refresh(ctx); err != nil {
			return out, err
		}
	}
	return out, nil
}
