// Package wizard state form registrasi multi-langkah: field, anggota tim,
// file lampiran, dan error per field.
package wizard

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"inkubator_backend/internals/features/tenants/registrations/validation"
	"inkubator_backend/internals/portal/draft"
	"inkubator_backend/internals/portal/formdata"
)

var (
	ErrUnknownField   = errors.New("unknown form field")
	ErrTooManyMembers = fmt.Errorf("at most %d team members are allowed", validation.MaxMembers)
	ErrMemberIndex    = errors.New("member index out of range")
)

const MsgRequired = "Wajib diisi"

// File lampiran yang dipilih user; tidak pernah masuk draft.
type File struct {
	Name string
	Size int64
	Data []byte
}

func FileFromPath(path string) (File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	return File{Name: filepath.Base(path), Size: int64(len(b)), Data: b}, nil
}

type Form struct {
	Data          formdata.FormData
	Members       []formdata.Member
	Files         map[validation.DocumentKind]File
	ProductPhotos []File
	Errors        validation.ErrorMap

	// OnChange dipanggil setiap perubahan field/anggota (dipakai autosave).
	OnChange func(draft.Draft)
}

func New(data formdata.FormData, members []formdata.Member) *Form {
	cp := make([]formdata.Member, len(members))
	copy(cp, members)
	return &Form{
		Data:    data,
		Members: cp,
		Files:   map[validation.DocumentKind]File{},
		Errors:  validation.ErrorMap{},
	}
}

// FromDraft: field draft menimpa defaults, field yang tidak ada tetap default.
func FromDraft(defaults formdata.FormData, d *draft.Draft) *Form {
	if d == nil {
		return New(defaults, nil)
	}
	data, err := d.MergeInto(defaults)
	if err != nil {
		zap.L().Warn("⚠️ draft tidak bisa dibaca, pakai default", zap.Error(err))
	}
	return New(data, d.Members)
}

func (f *Form) changed() {
	if f.OnChange == nil {
		return
	}
	d, err := f.Snapshot()
	if err != nil {
		zap.L().Warn("⚠️ snapshot draft gagal", zap.Error(err))
		return
	}
	f.OnChange(d)
}

func (f *Form) Snapshot() (draft.Draft, error) {
	return draft.New(f.Data, f.Members)
}

func (f *Form) field(key string) *string {
	d := &f.Data
	switch key {
	case "nama_ketua_tim":
		return &d.NamaKetuaTim
	case "nim_nidn_ketua":
		return &d.NimNidnKetua
	case "nomor_telepon":
		return &d.NomorTelepon
	case "fakultas":
		return &d.Fakultas
	case "prodi":
		return &d.Prodi
	case "nama_bisnis":
		return &d.NamaBisnis
	case "kategori_bisnis":
		return &d.KategoriBisnis
	case "jenis_usaha":
		return &d.JenisUsaha
	case "alamat_usaha":
		return &d.AlamatUsaha
	case "lama_waktu_usaha":
		return &d.LamaWaktuUsaha
	case "omzet":
		return &d.Omzet
	case "instagram":
		return &d.Instagram
	case "tiktok":
		return &d.Tiktok
	}
	return nil
}

// SetField mengubah satu field (kunci = tag json FormData) dan menghapus
// error lama field itu. nomor_telepon divalidasi lewat SetPhone.
func (f *Form) SetField(key, value string) error {
	switch key {
	case "nomor_telepon":
		f.SetPhone(value)
		return nil
	case "startupStatus":
		s := formdata.StartupStatus(value)
		if s != formdata.StartupBaru && s != formdata.StartupBertumbuh {
			return fmt.Errorf("%w: startupStatus must be %q or %q", ErrUnknownField, formdata.StartupBaru, formdata.StartupBertumbuh)
		}
		f.Data.StartupStatus = s
		f.Errors.Clear(key)
		f.changed()
		return nil
	}

	p := f.field(key)
	if p == nil {
		return fmt.Errorf("%w: %s", ErrUnknownField, key)
	}
	*p = value
	f.Errors.Clear(key)
	f.changed()
	return nil
}

// SetPhone menyimpan nilai apa pun yang diketik, error diperbarui sesuai hasil validasi.
func (f *Form) SetPhone(value string) validation.Result {
	f.Data.NomorTelepon = value
	r := validation.ValidatePhone(value)
	f.Errors.Apply("nomor_telepon", r)
	f.changed()
	return r
}

/* ===============================
   Lampiran
=================================*/

// AttachResult: Reset true berarti input file harus dikosongkan di UI.
type AttachResult struct {
	Accepted bool
	Reset    bool
	Message  string
}

func (f *Form) AttachFile(kind validation.DocumentKind, file File) AttachResult {
	field := kind.FieldName()
	if kind == validation.KindFotoProduk {
		res := f.AddProductPhotos([]File{file})
		return AttachResult{Accepted: res.Accepted == 1, Reset: res.Accepted == 0, Message: res.Message}
	}

	r := validation.ValidateFile(file.Size, kind)
	if !r.Valid {
		f.Errors.Set(field, r.Message)
		return AttachResult{Reset: true, Message: r.Message}
	}
	f.Files[kind] = file
	f.Errors.Clear(field)
	return AttachResult{Accepted: true}
}

func (f *Form) RemoveFile(kind validation.DocumentKind) {
	delete(f.Files, kind)
	f.Errors.Clear(kind.FieldName())
}

type PhotoResult struct {
	Accepted int
	Rejected []string
	Message  string
}

// AddProductPhotos: file valid ditambahkan ke daftar yang sudah ada,
// file terlalu besar dilaporkan dalam satu pesan gabungan.
func (f *Form) AddProductPhotos(files []File) PhotoResult {
	var res PhotoResult
	for _, file := range files {
		if validation.ValidateFile(file.Size, validation.KindFotoProduk).Valid {
			f.ProductPhotos = append(f.ProductPhotos, file)
			res.Accepted++
			continue
		}
		res.Rejected = append(res.Rejected, file.Name)
	}

	field := validation.KindFotoProduk.FieldName()
	if len(res.Rejected) > 0 {
		res.Message = validation.ProductPhotoBatchMessage(res.Rejected)
		f.Errors.Set(field, res.Message)
	} else {
		f.Errors.Clear(field)
	}
	return res
}

func (f *Form) RemoveProductPhoto(i int) {
	if i < 0 || i >= len(f.ProductPhotos) {
		return
	}
	f.ProductPhotos = append(f.ProductPhotos[:i], f.ProductPhotos[i+1:]...)
}

/* ===============================
   Anggota tim
=================================*/

func (f *Form) AddMember(m formdata.Member) error {
	if len(f.Members) >= validation.MaxMembers {
		return ErrTooManyMembers
	}
	f.Members = append(f.Members, m)
	f.changed()
	return nil
}

func (f *Form) UpdateMember(i int, m formdata.Member) error {
	if i < 0 || i >= len(f.Members) {
		return ErrMemberIndex
	}
	f.Members[i] = m
	f.changed()
	return nil
}

func (f *Form) RemoveMember(i int) error {
	if i < 0 || i >= len(f.Members) {
		return ErrMemberIndex
	}
	f.Members = append(f.Members[:i], f.Members[i+1:]...)
	f.changed()
	return nil
}

/* ===============================
   Validasi langkah
=================================*/

var requiredFields = []string{
	"nama_ketua_tim", "nim_nidn_ketua", "nomor_telepon", "fakultas", "prodi",
	"nama_bisnis", "kategori_bisnis", "jenis_usaha", "alamat_usaha",
}

// ValidateRequired menandai field wajib yang kosong; true bila semua terisi
// dan tidak ada error lain tersisa.
func (f *Form) ValidateRequired() bool {
	for _, key := range requiredFields {
		if strings.TrimSpace(*f.field(key)) == "" {
			f.Errors.Set(key, MsgRequired)
		}
	}
	if f.Data.NomorTelepon != "" {
		f.Errors.Apply("nomor_telepon", validation.ValidatePhone(f.Data.NomorTelepon))
	}
	return f.Errors.Empty()
}
