package submission

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"inkubator_backend/internals/portal/apiclient"
	"inkubator_backend/internals/portal/wizard"
)

const DashboardPath = "/tenant"

type Submitter interface {
	SubmitRegistration(ctx context.Context, token string, payload *apiclient.Multipart) (*apiclient.Registration, error)
}

type TokenSource interface {
	GetValidToken(ctx context.Context) (string, error)
}

// DraftDiscarder menghentikan autosave lalu menghapus draft (draft.Autosaver).
type DraftDiscarder interface {
	Discard(ctx context.Context) error
}

type Flow struct {
	API      Submitter
	Tokens   TokenSource
	Drafts   DraftDiscarder
	Navigate func(path string)
	Log      *zap.Logger
}

func NewFlow(api Submitter, tokens TokenSource, drafts DraftDiscarder, navigate func(string), log *zap.Logger) *Flow {
	if log == nil {
		log = zap.NewNop()
	}
	return &Flow{API: api, Tokens: tokens, Drafts: drafts, Navigate: navigate, Log: log}
}

// Submit: draft hanya dihapus setelah backend mengonfirmasi. Gagal di tahap
// mana pun → form, file, dan draft tidak disentuh.
func (f *Flow) Submit(ctx context.Context, form *wizard.Form) (*apiclient.Registration, error) {
	payload, err := BuildPayload(form)
	if err != nil {
		return nil, err
	}

	token, err := f.Tokens.GetValidToken(ctx)
	if err != nil {
		return nil, err
	}

	reg, err := f.API.SubmitRegistration(ctx, token, payload)
	if err != nil {
		f.Log.Warn("⚠️ submit registrasi gagal", zap.String("detail", apiclient.Message(err)))
		return nil, err
	}

	if f.Drafts != nil {
		if derr := f.Drafts.Discard(ctx); derr != nil {
			f.Log.Warn("⚠️ registrasi terkirim tapi draft gagal dihapus", zap.Error(derr))
		}
	}
	f.Log.Info("✅ registrasi terkirim", zap.String("registration_id", reg.ID), zap.String("status", string(reg.Status)))
	if f.Navigate != nil {
		f.Navigate(DashboardPath)
	}
	return reg, nil
}

// ErrorMessage teks error untuk banner inline.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	if msg := apiclient.Message(err); msg != "" {
		return msg
	}
	return apiclient.GenericErrorMessage
}
