// Package lifecycle menurunkan tahap registrasi tenant dari hasil lookup
// backend dan menentukan tampilan mana yang boleh dibuka.
package lifecycle

import (
	"inkubator_backend/internals/portal/apiclient"
)

type Stage int

const (
	NoRegistration Stage = iota
	Pending
	Approved
	Rejected
	// LookupFailed: lookup gagal (jaringan/auth), bisa dicoba ulang. Bukan "belum daftar".
	LookupFailed
)

func (s Stage) String() string {
	switch s {
	case NoRegistration:
		return "NO_REGISTRATION"
	case Pending:
		return "PENDING"
	case Approved:
		return "APPROVED"
	case Rejected:
		return "REJECTED"
	case LookupFailed:
		return "LOOKUP_FAILED"
	}
	return "UNKNOWN"
}

// Editable: wizard hanya terbuka saat belum daftar atau ditolak.
func (s Stage) Editable() bool {
	switch s {
	case NoRegistration, Rejected:
		return true
	case Pending, Approved, LookupFailed:
		return false
	}
	return false
}

type View int

const (
	ViewEmptyPrompt View = iota
	ViewWizard
	ViewDetail
	ViewError
)

func (v View) String() string {
	switch v {
	case ViewEmptyPrompt:
		return "empty-prompt"
	case ViewWizard:
		return "wizard"
	case ViewDetail:
		return "detail"
	case ViewError:
		return "error"
	}
	return "unknown"
}

// View tampilan dashboard tenant. Rejected langsung ke wizard (ter-prefill).
func (s Stage) View() View {
	switch s {
	case NoRegistration:
		return ViewEmptyPrompt
	case Rejected:
		return ViewWizard
	case Pending, Approved:
		return ViewDetail
	case LookupFailed:
		return ViewError
	}
	return ViewError
}

// Derive: err → LookupFailed; reg nil → NoRegistration. Status di luar enum
// dianggap LookupFailed supaya data aneh tidak membuka wizard.
func Derive(reg *apiclient.Registration, err error) Stage {
	if err != nil {
		if apiclient.IsNotFound(err) {
			return NoRegistration
		}
		return LookupFailed
	}
	if reg == nil {
		return NoRegistration
	}
	switch reg.Status {
	case apiclient.StatusPending:
		return Pending
	case apiclient.StatusApproved:
		return Approved
	case apiclient.StatusRejected:
		return Rejected
	}
	return LookupFailed
}
