package apiclient

import (
	"bytes"
	"encoding/json"
	"time"
)

// Status registrasi sebagai enum tertutup; switch di pemakai harus exhaustive.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func ParseStatus(raw string) (Status, bool) {
	switch s := Status(raw); s {
	case StatusPending, StatusApproved, StatusRejected:
		return s, true
	}
	return "", false
}

// LooseJSON menampung sub-field yang dikirim backend sebagai JSON string
// ("[\"a\"]") maupun JSON mentah (["a"]).
type LooseJSON []byte

func (l *LooseJSON) UnmarshalJSON(b []byte) error {
	*l = append((*l)[:0], b...)
	return nil
}

func (l LooseJSON) MarshalJSON() ([]byte, error) {
	if len(l) == 0 {
		return []byte("null"), nil
	}
	return l, nil
}

// Payload mengembalikan isi JSON sebenarnya; string di-unquote dulu.
// null atau kosong → nil.
func (l LooseJSON) Payload() []byte {
	trimmed := bytes.TrimSpace(l)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return trimmed
		}
		return []byte(s)
	}
	return trimmed
}

type User struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	DisplayName   string     `json:"display_name"`
	PhotoURL      *string    `json:"photo_url,omitempty"`
	PhoneNumber   *string    `json:"phone_number,omitempty"`
	Role          string     `json:"role"`
	NIDN          *string    `json:"nidn,omitempty"`
	IsActive      bool       `json:"is_active"`
	EmailVerified bool       `json:"email_verified"`
	LastLogin     *time.Time `json:"last_login,omitempty"`
}

type BusinessDocuments struct {
	LogoURL            string    `json:"logo_url"`
	ProposalURL        string    `json:"proposal_url"`
	BMCURL             string    `json:"bmc_url"`
	SertifikatNIBURL   string    `json:"sertifikat_nib_url"`
	LaporanKeuanganURL string    `json:"laporan_keuangan_url"`
	RABURL             string    `json:"rab_url"`
	FotoProdukURLs     LooseJSON `json:"foto_produk_urls"`
	AkunMedsos         LooseJSON `json:"akun_medsos"`
}

type Registration struct {
	ID              string             `json:"id"`
	UserID          string             `json:"user_id"`
	NamaKetuaTim    string             `json:"nama_ketua_tim"`
	NimNidnKetua    string             `json:"nim_nidn_ketua"`
	NomorTelepon    string             `json:"nomor_telepon"`
	Fakultas        string             `json:"fakultas"`
	Prodi           string             `json:"prodi"`
	NamaBisnis      string             `json:"nama_bisnis"`
	KategoriBisnis  string             `json:"kategori_bisnis"`
	JenisUsaha      string             `json:"jenis_usaha"`
	AlamatUsaha     string             `json:"alamat_usaha"`
	LamaUsaha       int                `json:"lama_usaha"`
	Omzet           string             `json:"omzet"`
	NamaAnggotaTim  LooseJSON          `json:"nama_anggota_tim"`
	NimNidnAnggota  LooseJSON          `json:"nim_nidn_anggota"`
	Status          Status             `json:"status"`
	RejectionReason *string            `json:"rejection_reason"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	Documents       *BusinessDocuments `json:"business_documents"`
}

type TenantList struct {
	Tenants []Registration `json:"tenants"`
	Total   int64          `json:"total"`
	Skip    int            `json:"skip"`
	Limit   int            `json:"limit"`
}

type StatusUpdate struct {
	TenantID        string  `json:"tenant_id"`
	Status          Status  `json:"status"`
	RejectionReason *string `json:"rejection_reason"`
}

// ListParams: Status kosong = semua status.
type ListParams struct {
	Status Status
	Q      string
	Skip   int
	Limit  int
}

// Multipart payload POST /api/tenant/register. Fields dijaga urut agar
// request dapat diprediksi (dan mudah dites).
type Multipart struct {
	Fields []Field
	Files  []FilePart
}

type Field struct {
	Name  string
	Value string
}

type FilePart struct {
	Field    string
	Filename string
	Data     []byte
}

// Value mengembalikan nilai field pertama bernama name.
func (m *Multipart) Value(name string) (string, bool) {
	for _, f := range m.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

func (m *Multipart) FilesFor(field string) []FilePart {
	var out []FilePart
	for _, f := range m.Files {
		if f.Field == field {
			out = append(out, f)
		}
	}
	return out
}
