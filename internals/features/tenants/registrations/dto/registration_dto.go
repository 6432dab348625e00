package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"inkubator_backend/internals/features/tenants/registrations/model"
)

/* ===============================
   REQUEST: POST /api/tenant/register (multipart)
=================================*/

// RegisterForm field scalar multipart. Anggota tim & akun_medsos dikirim sebagai JSON string.
type RegisterForm struct {
	NamaKetuaTim   string `form:"nama_ketua_tim" validate:"required,max=150"`
	NimNidnKetua   string `form:"nim_nidn_ketua" validate:"required,max=50"`
	NomorTelepon   string `form:"nomor_telepon" validate:"required,max=20"`
	Fakultas       string `form:"fakultas" validate:"required,max=120"`
	Prodi          string `form:"prodi" validate:"required,max=120"`
	NamaBisnis     string `form:"nama_bisnis" validate:"required,max=150"`
	KategoriBisnis string `form:"kategori_bisnis" validate:"required,max=80"`
	JenisUsaha     string `form:"jenis_usaha" validate:"required,max=80"`
	AlamatUsaha    string `form:"alamat_usaha" validate:"required"`
	LamaUsaha      string `form:"lama_usaha" validate:"omitempty,number"`
	Omzet          string `form:"omzet" validate:"omitempty,numeric"`
	NamaAnggotaTim string `form:"nama_anggota_tim"`
	NimNidnAnggota string `form:"nim_nidn_anggota"`
	AkunMedsos     string `form:"akun_medsos"`
}

func (f *RegisterForm) Normalize() {
	for _, p := range []*string{
		&f.NamaKetuaTim, &f.NimNidnKetua, &f.NomorTelepon, &f.Fakultas, &f.Prodi,
		&f.NamaBisnis, &f.KategoriBisnis, &f.JenisUsaha, &f.AlamatUsaha,
		&f.LamaUsaha, &f.Omzet, &f.NamaAnggotaTim, &f.NimNidnAnggota, &f.AkunMedsos,
	} {
		*p = strings.TrimSpace(*p)
	}
	if f.LamaUsaha == "" {
		f.LamaUsaha = "0"
	}
	if f.Omzet == "" {
		f.Omzet = "0"
	}
}

// AkunMedsos bentuk objek {instagram?, tiktok?}
type AkunMedsos struct {
	Instagram string `json:"instagram,omitempty"`
	Tiktok    string `json:"tiktok,omitempty"`
}

/* ===============================
   REQUEST: PUT /api/tenant/:id/status
=================================*/

type StatusUpdateRequest struct {
	Status          string  `json:"status" validate:"required,oneof=approved rejected"`
	RejectionReason *string `json:"rejection_reason"`
}

type StatusUpdateResponse struct {
	TenantID        uuid.UUID `json:"tenant_id"`
	Status          string    `json:"status"`
	RejectionReason *string   `json:"rejection_reason"`
}

/* ===============================
   RESPONSE
=================================*/

// BusinessDocumentsResponse: foto_produk_urls & akun_medsos dikirim sebagai JSON string
// (kontrak lama FE, di-parse ulang di sisi klien).
type BusinessDocumentsResponse struct {
	LogoURL            string `json:"logo_url"`
	ProposalURL        string `json:"proposal_url"`
	BMCURL             string `json:"bmc_url"`
	SertifikatNIBURL   string `json:"sertifikat_nib_url"`
	LaporanKeuanganURL string `json:"laporan_keuangan_url"`
	RABURL             string `json:"rab_url"`
	FotoProdukURLs     string `json:"foto_produk_urls"`
	AkunMedsos         string `json:"akun_medsos"`
}

type RegistrationResponse struct {
	ID              uuid.UUID                  `json:"id"`
	UserID          uuid.UUID                  `json:"user_id"`
	NamaKetuaTim    string                     `json:"nama_ketua_tim"`
	NimNidnKetua    string                     `json:"nim_nidn_ketua"`
	NomorTelepon    string                     `json:"nomor_telepon"`
	Fakultas        string                     `json:"fakultas"`
	Prodi           string                     `json:"prodi"`
	NamaBisnis      string                     `json:"nama_bisnis"`
	KategoriBisnis  string                     `json:"kategori_bisnis"`
	JenisUsaha      string                     `json:"jenis_usaha"`
	AlamatUsaha     string                     `json:"alamat_usaha"`
	LamaUsaha       int                        `json:"lama_usaha"`
	Omzet           string                     `json:"omzet"`
	NamaAnggotaTim  string                     `json:"nama_anggota_tim"`
	NimNidnAnggota  string                     `json:"nim_nidn_anggota"`
	Status          string                     `json:"status"`
	RejectionReason *string                    `json:"rejection_reason"`
	CreatedAt       time.Time                  `json:"created_at"`
	UpdatedAt       time.Time                  `json:"updated_at"`
	Documents       *BusinessDocumentsResponse `json:"business_documents"`
}

func FromModel(m *model.TenantRegistrationModel) RegistrationResponse {
	resp := RegistrationResponse{
		ID:              m.ID,
		UserID:          m.UserID,
		NamaKetuaTim:    m.NamaKetuaTim,
		NimNidnKetua:    m.NimNidnKetua,
		NomorTelepon:    m.NomorTelepon,
		Fakultas:        m.Fakultas,
		Prodi:           m.Prodi,
		NamaBisnis:      m.NamaBisnis,
		KategoriBisnis:  m.KategoriBisnis,
		JenisUsaha:      m.JenisUsaha,
		AlamatUsaha:     m.AlamatUsaha,
		LamaUsaha:       m.LamaUsaha,
		Omzet:           m.Omzet,
		NamaAnggotaTim:  m.NamaAnggotaTim,
		NimNidnAnggota:  m.NimNidnAnggota,
		Status:          string(m.Status),
		RejectionReason: m.RejectionReason,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if d := m.BusinessDocuments; d != nil {
		resp.Documents = &BusinessDocumentsResponse{
			LogoURL:            d.LogoURL,
			ProposalURL:        d.ProposalURL,
			BMCURL:             d.BMCURL,
			SertifikatNIBURL:   d.SertifikatNIBURL,
			LaporanKeuanganURL: d.LaporanKeuanganURL,
			RABURL:             d.RABURL,
			FotoProdukURLs:     rawOr(d.FotoProdukURLs, "[]"),
			AkunMedsos:         rawOr(d.AkunMedsos, "{}"),
		}
	}
	return resp
}

func FromModels(list []model.TenantRegistrationModel) []RegistrationResponse {
	out := make([]RegistrationResponse, 0, len(list))
	for i := range list {
		out = append(out, FromModel(&list[i]))
	}
	return out
}

func rawOr(raw datatypes.JSON, def string) string {
	if len(raw) == 0 {
		return def
	}
	return string(raw)
}

// TenantListResponse: kontrak GET /api/tenant/
type TenantListResponse struct {
	Tenants []RegistrationResponse `json:"tenants"`
	Total   int64                  `json:"total"`
	Skip    int                    `json:"skip"`
	Limit   int                    `json:"limit"`
}
