package lifecycle

import (
	"encoding/json"
	"strconv"

	"go.uber.org/zap"

	"inkubator_backend/internals/portal/apiclient"
	"inkubator_backend/internals/portal/formdata"
)

// Parsed hasil parse sub-field JSON; Fallback true bila nilai default dipakai
// karena data kosong atau rusak.
type Parsed[T any] struct {
	Value    T
	Fallback bool
	Err      error
}

// ParseJSON: kosong → fallback tanpa error; rusak → fallback + Err.
func ParseJSON[T any](raw []byte, def T) Parsed[T] {
	if len(raw) == 0 {
		return Parsed[T]{Value: def, Fallback: true}
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return Parsed[T]{Value: def, Fallback: true, Err: err}
	}
	return Parsed[T]{Value: v}
}

type socialLinks struct {
	Instagram string `json:"instagram"`
	Tiktok    string `json:"tiktok"`
}

// PrefillResult isi wizard untuk registrasi yang ditolak.
type PrefillResult struct {
	Data    formdata.FormData
	Members []formdata.Member

	Names  Parsed[[]string]
	NIMs   Parsed[[]string]
	Social Parsed[socialLinks]
}

// Prefill: field scalar disalin apa adanya, array anggota & akun_medsos di-parse
// dengan fallback ([] / {}) yang dicatat di log.
func Prefill(reg *apiclient.Registration, log *zap.Logger) PrefillResult {
	if log == nil {
		log = zap.NewNop()
	}
	res := PrefillResult{
		Names: ParseJSON(reg.NamaAnggotaTim.Payload(), []string{}),
		NIMs:  ParseJSON(reg.NimNidnAnggota.Payload(), []string{}),
	}
	var social []byte
	if reg.Documents != nil {
		social = reg.Documents.AkunMedsos.Payload()
	}
	res.Social = ParseJSON(social, socialLinks{})

	for field, err := range map[string]error{
		"nama_anggota_tim": res.Names.Err,
		"nim_nidn_anggota": res.NIMs.Err,
		"akun_medsos":      res.Social.Err,
	} {
		if err != nil {
			log.Warn("⚠️ sub-field registrasi tidak valid, pakai default",
				zap.String("registration_id", reg.ID),
				zap.String("field", field),
				zap.Error(err))
		}
	}

	startup := formdata.StartupBaru
	lama := ""
	// lama_usaha > 0 dianggap usaha bertumbuh; backend belum punya flag eksplisit.
	if reg.LamaUsaha > 0 {
		startup = formdata.StartupBertumbuh
		lama = strconv.Itoa(reg.LamaUsaha)
	}

	res.Data = formdata.FormData{
		NamaKetuaTim:   reg.NamaKetuaTim,
		NimNidnKetua:   reg.NimNidnKetua,
		NomorTelepon:   reg.NomorTelepon,
		Fakultas:       reg.Fakultas,
		Prodi:          reg.Prodi,
		NamaBisnis:     reg.NamaBisnis,
		KategoriBisnis: reg.KategoriBisnis,
		JenisUsaha:     reg.JenisUsaha,
		AlamatUsaha:    reg.AlamatUsaha,
		StartupStatus:  startup,
		LamaWaktuUsaha: lama,
		Omzet:          reg.Omzet,
		Instagram:      res.Social.Value.Instagram,
		Tiktok:         res.Social.Value.Tiktok,
	}
	res.Members = formdata.Zip(res.Names.Value, res.NIMs.Value)
	return res
}
