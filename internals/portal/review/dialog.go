// Package review alur admin: daftar registrasi (cari, filter, paging) dan
// dialog approve/reject.
package review

import (
	"errors"
	"strings"
	"unicode/utf8"

	"inkubator_backend/internals/features/tenants/registrations/validation"
	"inkubator_backend/internals/portal/apiclient"
)

var ErrInvalidTransition = errors.New("status can only change from pending to approved or rejected")

// CanTransition: pending → approved|rejected, satu arah.
func CanTransition(from, to apiclient.Status) bool {
	switch from {
	case apiclient.StatusPending:
		switch to {
		case apiclient.StatusApproved, apiclient.StatusRejected:
			return true
		case apiclient.StatusPending:
			return false
		}
	case apiclient.StatusApproved, apiclient.StatusRejected:
		return false
	}
	return false
}

type Dialog struct {
	Target    apiclient.Registration
	NewStatus apiclient.Status
	Reason    string
	// Error pesan inline terakhir dari Validate.
	Error string
}

func OpenDialog(target apiclient.Registration, newStatus apiclient.Status) (*Dialog, error) {
	if !CanTransition(target.Status, newStatus) {
		return nil, ErrInvalidTransition
	}
	return &Dialog{Target: target, NewStatus: newStatus}, nil
}

// Validate: approve tanpa input; reject butuh alasan ≥ 10 karakter (trim).
func (d *Dialog) Validate() bool {
	switch d.NewStatus {
	case apiclient.StatusApproved:
		d.Error = ""
		return true
	case apiclient.StatusRejected:
		r := validation.ValidateRejectionReason(d.Reason)
		d.Error = r.Message
		return r.Valid
	case apiclient.StatusPending:
	}
	d.Error = ErrInvalidTransition.Error()
	return false
}

// CharCount jumlah karakter alasan setelah trim (ditampilkan live).
func (d *Dialog) CharCount() int {
	return utf8.RuneCountInString(strings.TrimSpace(d.Reason))
}

func (d *Dialog) TrimmedReason() string { return strings.TrimSpace(d.Reason) }
