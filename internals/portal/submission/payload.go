// Package submission merakit form wizard menjadi request multipart
// POST /api/tenant/register dan mengirimnya.
package submission

import (
	"encoding/json"
	"errors"

	"inkubator_backend/internals/features/tenants/registrations/validation"
	"inkubator_backend/internals/portal/apiclient"
	"inkubator_backend/internals/portal/formdata"
	"inkubator_backend/internals/portal/wizard"
)

// ValidationError: submit diblok sebelum ada request ke backend.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Message }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// BuildPayload mengubah form jadi multipart. Nomor telepon divalidasi ulang di
// sini, terlepas dari validasi per-field sebelumnya.
func BuildPayload(form *wizard.Form) (*apiclient.Multipart, error) {
	d := form.Data
	if r := validation.ValidatePhone(d.NomorTelepon); !r.Valid {
		form.Errors.Set("nomor_telepon", r.Message)
		return nil, &ValidationError{Field: "nomor_telepon", Message: r.Message}
	}

	lama, omzet := "0", "0"
	if d.StartupStatus == formdata.StartupBertumbuh {
		lama, omzet = d.LamaWaktuUsaha, d.Omzet
	}

	p := &apiclient.Multipart{}
	add := func(name, value string) {
		p.Fields = append(p.Fields, apiclient.Field{Name: name, Value: value})
	}
	add("nama_ketua_tim", d.NamaKetuaTim)
	add("nim_nidn_ketua", d.NimNidnKetua)
	add("nomor_telepon", d.NomorTelepon)
	add("fakultas", d.Fakultas)
	add("prodi", d.Prodi)
	add("nama_bisnis", d.NamaBisnis)
	add("kategori_bisnis", d.KategoriBisnis)
	add("jenis_usaha", d.JenisUsaha)
	add("alamat_usaha", d.AlamatUsaha)
	add("lama_usaha", lama)
	add("omzet", omzet)

	if formdata.HasNamedMember(form.Members) {
		names, nims := formdata.Split(form.Members)
		namesJSON, err := json.Marshal(names)
		if err != nil {
			return nil, err
		}
		nimsJSON, err := json.Marshal(nims)
		if err != nil {
			return nil, err
		}
		add("nama_anggota_tim", string(namesJSON))
		add("nim_nidn_anggota", string(nimsJSON))
	}

	social, err := json.Marshal(struct {
		Instagram string `json:"instagram,omitempty"`
		Tiktok    string `json:"tiktok,omitempty"`
	}{d.Instagram, d.Tiktok})
	if err != nil {
		return nil, err
	}
	add("akun_medsos", string(social))

	for _, kind := range validation.SingleFileKinds {
		f, ok := form.Files[kind]
		if !ok {
			continue
		}
		p.Files = append(p.Files, apiclient.FilePart{Field: kind.FieldName(), Filename: f.Name, Data: f.Data})
	}
	for _, f := range form.ProductPhotos {
		p.Files = append(p.Files, apiclient.FilePart{
			Field:    validation.KindFotoProduk.FieldName(),
			Filename: f.Name,
			Data:     f.Data,
		})
	}
	return p, nil
}
