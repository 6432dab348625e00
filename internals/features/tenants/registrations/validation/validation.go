// Package validation berisi aturan validasi form registrasi tenant yang
// dipakai bersama oleh portal (sebelum request dikirim) dan server
// (saat submit diterima). Semua fungsi murni tanpa efek samping.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const MB int64 = 1024 * 1024

const (
	MsgPhonePrefix   = "Phone number must start with 08"
	MsgPhoneTooShort = "Phone number must be at least 10 digits"

	MsgReasonRequired = "Alasan penolakan wajib diisi"
	MsgReasonTooShort = "Alasan penolakan minimal 10 karakter"

	MinPhoneLength  = 10
	MinReasonLength = 10
)

type Result struct {
	Valid   bool
	Message string
}

func ok() Result { return Result{Valid: true} }

func fail(msg string) Result { return Result{Valid: false, Message: msg} }

// ValidatePhone: kosong dianggap valid (wajib-isi dicek terpisah oleh form).
func ValidatePhone(value string) Result {
	if value == "" {
		return ok()
	}
	if !strings.HasPrefix(value, "08") {
		return fail(MsgPhonePrefix)
	}
	if utf8.RuneCountInString(value) < MinPhoneLength {
		return fail(MsgPhoneTooShort)
	}
	return ok()
}

// ValidateRejectionReason dihitung dari alasan yang sudah di-trim.
func ValidateRejectionReason(reason string) Result {
	trimmed := strings.TrimSpace(reason)
	if trimmed == "" {
		return fail(MsgReasonRequired)
	}
	if utf8.RuneCountInString(trimmed) < MinReasonLength {
		return fail(MsgReasonTooShort)
	}
	return ok()
}

/* ===============================
   Dokumen & batas ukuran
=================================*/

type DocumentKind string

const (
	KindLogo            DocumentKind = "logo"
	KindSertifikatNIB   DocumentKind = "sertifikat_nib"
	KindProposal        DocumentKind = "proposal"
	KindBMC             DocumentKind = "bmc"
	KindRAB             DocumentKind = "rab"
	KindLaporanKeuangan DocumentKind = "laporan_keuangan"
	KindFotoProduk      DocumentKind = "foto_produk"
)

// SingleFileKinds: dokumen satu file per registrasi (foto produk terpisah, multi-file).
var SingleFileKinds = []DocumentKind{
	KindLogo, KindSertifikatNIB, KindProposal, KindBMC, KindRAB, KindLaporanKeuangan,
}

func ParseDocumentKind(raw string) (DocumentKind, bool) {
	k := DocumentKind(strings.TrimSpace(raw))
	return k, k.Valid()
}

func (k DocumentKind) Valid() bool {
	switch k {
	case KindLogo, KindSertifikatNIB, KindProposal, KindBMC, KindRAB, KindLaporanKeuangan, KindFotoProduk:
		return true
	}
	return false
}

// MaxBytes batas ukuran per file untuk tiap jenis dokumen.
func (k DocumentKind) MaxBytes() int64 {
	switch k {
	case KindLogo:
		return 2 * MB
	case KindSertifikatNIB, KindBMC, KindRAB, KindFotoProduk:
		return 5 * MB
	case KindProposal, KindLaporanKeuangan:
		return 10 * MB
	}
	return 0
}

// FieldName nama field multipart kanonik.
func (k DocumentKind) FieldName() string { return string(k) }

func (k DocumentKind) Label() string {
	switch k {
	case KindLogo:
		return "Logo"
	case KindSertifikatNIB:
		return "Sertifikat NIB"
	case KindProposal:
		return "Proposal"
	case KindBMC:
		return "BMC"
	case KindRAB:
		return "RAB"
	case KindLaporanKeuangan:
		return "Laporan Keuangan"
	case KindFotoProduk:
		return "Foto Produk"
	}
	return string(k)
}

// IsImage: jenis yang di-encode ulang ke WebP di server.
func (k DocumentKind) IsImage() bool {
	return k == KindLogo || k == KindFotoProduk
}

func (k DocumentKind) limitMB() int64 { return k.MaxBytes() / MB }

// ValidateFile: ukuran tepat di batas diterima, satu byte lebih ditolak.
func ValidateFile(size int64, kind DocumentKind) Result {
	if !kind.Valid() {
		return fail(fmt.Sprintf("Unknown document type %q", string(kind)))
	}
	if size > kind.MaxBytes() {
		return fail(fmt.Sprintf("%s file must not exceed %dMB", kind.Label(), kind.limitMB()))
	}
	return ok()
}

// ProductPhotoBatchMessage pesan gabungan untuk foto produk yang terlalu besar.
func ProductPhotoBatchMessage(rejected []string) string {
	if len(rejected) == 0 {
		return ""
	}
	return fmt.Sprintf("%s files must not exceed %dMB each (skipped: %s)",
		KindFotoProduk.Label(), KindFotoProduk.limitMB(), strings.Join(rejected, ", "))
}

/* ===============================
   ErrorMap: field → pesan
=================================*/

type ErrorMap map[string]string

func (m ErrorMap) Set(field, msg string) { m[field] = msg }

func (m ErrorMap) Clear(field string) { delete(m, field) }

func (m ErrorMap) Get(field string) string { return m[field] }

func (m ErrorMap) Has(field string) bool {
	_, found := m[field]
	return found
}

func (m ErrorMap) Empty() bool { return len(m) == 0 }

// Apply menyimpan pesan bila r gagal, atau menghapus pesan lama bila r valid.
func (m ErrorMap) Apply(field string, r Result) bool {
	if r.Valid {
		m.Clear(field)
		return true
	}
	m.Set(field, r.Message)
	return false
}

/* ===============================
   Anggota tim (array paralel)
=================================*/

const MaxMembers = 4

// ValidateMembers: nama & NIM harus paralel, maksimal 4 anggota.
func ValidateMembers(names, nims []string) Result {
	if len(names) != len(nims) {
		return fail("Member names and member IDs must have the same length")
	}
	if len(names) > MaxMembers {
		return fail(fmt.Sprintf("At most %d team members are allowed", MaxMembers))
	}
	return ok()
}
