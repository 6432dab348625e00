// Package formdata tipe field form registrasi yang dipakai bersama oleh
// draft, wizard, lifecycle, dan submission.
package formdata

import "strings"

// StartupStatus pilihan "lama usaha" di wizard.
type StartupStatus string

const (
	StartupBaru      StartupStatus = "baru"
	StartupBertumbuh StartupStatus = "bertumbuh"
)

// FormData semua field yang bisa diedit. Tag json dipakai juga sebagai
// kunci field di ErrorMap dan di draft tersimpan.
type FormData struct {
	NamaKetuaTim   string        `json:"nama_ketua_tim"`
	NimNidnKetua   string        `json:"nim_nidn_ketua"`
	NomorTelepon   string        `json:"nomor_telepon"`
	Fakultas       string        `json:"fakultas"`
	Prodi          string        `json:"prodi"`
	NamaBisnis     string        `json:"nama_bisnis"`
	KategoriBisnis string        `json:"kategori_bisnis"`
	JenisUsaha     string        `json:"jenis_usaha"`
	AlamatUsaha    string        `json:"alamat_usaha"`
	StartupStatus  StartupStatus `json:"startupStatus"`
	LamaWaktuUsaha string        `json:"lama_waktu_usaha"`
	Omzet          string        `json:"omzet"`
	Instagram      string        `json:"instagram"`
	Tiktok         string        `json:"tiktok"`
}

// Defaults nilai awal wizard kosong.
func Defaults() FormData {
	return FormData{StartupStatus: StartupBaru}
}

type Member struct {
	Name string `json:"name"`
	NIM  string `json:"nim"`
}

// HasNamedMember true bila minimal satu anggota punya nama (bukan spasi).
func HasNamedMember(members []Member) bool {
	for _, m := range members {
		if strings.TrimSpace(m.Name) != "" {
			return true
		}
	}
	return false
}

// Split memecah anggota ke dua array paralel (nama, nim).
func Split(members []Member) (names, nims []string) {
	names = make([]string, len(members))
	nims = make([]string, len(members))
	for i, m := range members {
		names[i] = m.Name
		nims[i] = m.NIM
	}
	return names, nims
}

// Zip kebalikan Split; array yang lebih pendek diisi string kosong.
func Zip(names, nims []string) []Member {
	n := len(names)
	if len(nims) > n {
		n = len(nims)
	}
	out := make([]Member, n)
	for i := range out {
		if i < len(names) {
			out[i].Name = names[i]
		}
		if i < len(nims) {
			out[i].NIM = nims[i]
		}
	}
	return out
}
