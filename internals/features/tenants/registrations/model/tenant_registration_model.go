// file: internals/features/tenants/registrations/model/tenant_registration_model.go
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

/* ======================================================
   ENUM status registrasi
   pending → approved | rejected (oleh admin)
   rejected → pending (submit ulang oleh tenant)
====================================================== */

type RegistrationStatus string

const (
	StatusPending  RegistrationStatus = "pending"
	StatusApproved RegistrationStatus = "approved"
	StatusRejected RegistrationStatus = "rejected"
)

var AllStatuses = []RegistrationStatus{StatusPending, StatusApproved, StatusRejected}

func ParseRegistrationStatus(raw string) (RegistrationStatus, error) {
	s := RegistrationStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("invalid status: %q", raw)
	}
	return s, nil
}

func (s RegistrationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// CanReviewTo: transisi yang boleh dilakukan admin.
func (s RegistrationStatus) CanReviewTo(next RegistrationStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusApproved || next == StatusRejected
	case StatusApproved, StatusRejected:
		return false
	}
	return false
}

// CanResubmit: tenant hanya boleh kirim ulang setelah ditolak.
func (s RegistrationStatus) CanResubmit() bool {
	switch s {
	case StatusRejected:
		return true
	case StatusPending, StatusApproved:
		return false
	}
	return false
}

// Label untuk tampilan (badge / export).
func (s RegistrationStatus) Label() string {
	switch s {
	case StatusPending:
		return "Menunggu Verifikasi"
	case StatusApproved:
		return "Disetujui"
	case StatusRejected:
		return "Ditolak"
	}
	return string(s)
}

/* ======================================================
   Model: tenant_registrations (1:1 dengan user tenant)
====================================================== */

type TenantRegistrationModel struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:user_id" json:"user_id"`

	// identitas ketua
	NamaKetuaTim string `gorm:"type:varchar(150);not null;column:nama_ketua_tim" json:"nama_ketua_tim"`
	NimNidnKetua string `gorm:"type:varchar(50);not null;index;column:nim_nidn_ketua" json:"nim_nidn_ketua"`
	NomorTelepon string `gorm:"type:varchar(20);not null;column:nomor_telepon" json:"nomor_telepon"`
	Fakultas     string `gorm:"type:varchar(120);not null;column:fakultas" json:"fakultas"`
	Prodi        string `gorm:"type:varchar(120);not null;column:prodi" json:"prodi"`

	// bisnis
	NamaBisnis     string `gorm:"type:varchar(150);not null;index;column:nama_bisnis" json:"nama_bisnis"`
	KategoriBisnis string `gorm:"type:varchar(80);not null;column:kategori_bisnis" json:"kategori_bisnis"`
	JenisUsaha     string `gorm:"type:varchar(80);not null;column:jenis_usaha" json:"jenis_usaha"`
	AlamatUsaha    string `gorm:"type:text;not null;column:alamat_usaha" json:"alamat_usaha"`
	LamaUsaha      int    `gorm:"not null;default:0;check:lama_usaha >= 0;column:lama_usaha" json:"lama_usaha"`
	Omzet          string `gorm:"type:numeric(18,2);not null;default:0;column:omzet" json:"omzet"`

	// tim: JSON array string, paralel (index i = satu anggota)
	NamaAnggotaTim string `gorm:"type:text;not null;default:'[]';column:nama_anggota_tim" json:"nama_anggota_tim"`
	NimNidnAnggota string `gorm:"type:text;not null;default:'[]';column:nim_nidn_anggota" json:"nim_nidn_anggota"`

	// status review
	Status          RegistrationStatus `gorm:"type:varchar(20);not null;default:'pending';index;column:status" json:"status"`
	RejectionReason *string            `gorm:"type:text;column:rejection_reason" json:"rejection_reason"`
	ReviewedBy      *uuid.UUID         `gorm:"type:uuid;column:reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time         `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:updated_at" json:"updated_at"`

	BusinessDocuments *BusinessDocumentModel `gorm:"foreignKey:TenantID;references:ID;constraint:OnDelete:CASCADE" json:"business_documents,omitempty"`
}

func (TenantRegistrationModel) TableName() string { return "tenant_registrations" }

/* ======================================================
   Model: business_documents (1:1 dengan registrasi)
   Semua URL opsional; kosong = belum diupload.
====================================================== */

type BusinessDocumentModel struct {
	ID       uint      `gorm:"primaryKey;column:id" json:"id"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:tenant_id" json:"tenant_id"`

	LogoURL            string `gorm:"type:text;not null;default:'';column:logo_url" json:"logo_url"`
	ProposalURL        string `gorm:"type:text;not null;default:'';column:proposal_url" json:"proposal_url"`
	BMCURL             string `gorm:"type:text;not null;default:'';column:bmc_url" json:"bmc_url"`
	SertifikatNIBURL   string `gorm:"type:text;not null;default:'';column:sertifikat_nib_url" json:"sertifikat_nib_url"`
	LaporanKeuanganURL string `gorm:"type:text;not null;default:'';column:laporan_keuangan_url" json:"laporan_keuangan_url"`
	RABURL             string `gorm:"type:text;not null;default:'';column:rab_url" json:"rab_url"`

	FotoProdukURLs datatypes.JSON `gorm:"type:jsonb;not null;default:'[]';column:foto_produk_urls" json:"foto_produk_urls"`
	AkunMedsos     datatypes.JSON `gorm:"type:jsonb;not null;default:'{}';column:akun_medsos" json:"akun_medsos"`

	// object key di storage, untuk dibersihkan saat dokumen diganti
	ObjectKeys pq.StringArray `gorm:"type:text[];column:object_keys" json:"-"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:updated_at" json:"updated_at"`
}

func (BusinessDocumentModel) TableName() string { return "business_documents" }
