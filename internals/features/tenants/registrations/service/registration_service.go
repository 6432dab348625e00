package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"inkubator_backend/internals/features/tenants/registrations/dto"
	"inkubator_backend/internals/features/tenants/registrations/model"
	"inkubator_backend/internals/features/tenants/registrations/repository"
	"inkubator_backend/internals/features/tenants/registrations/validation"
	"inkubator_backend/internals/helpers/storage"
)

var (
	ErrRegistrationNotFound = errors.New("registrasi tenant tidak ditemukan")
	ErrRegistrationExists   = errors.New("registrasi sudah ada dan tidak bisa diajukan ulang")
	ErrInvalidTransition    = errors.New("perubahan status tidak diizinkan")
	ErrInvalidReason        = errors.New("alasan penolakan tidak valid")
	ErrStorageUnavailable   = errors.New("penyimpanan dokumen belum dikonfigurasi")
)

// FieldErrors: kumpulan pesan per field dari validasi submit.
type FieldErrors struct {
	Fields validation.ErrorMap
}

func (e *FieldErrors) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return strings.Join(parts, "; ")
}

// Upload satu file dari multipart yang sudah dibaca ke memori.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

type SubmitInput struct {
	Form          dto.RegisterForm
	Files         map[validation.DocumentKind]Upload
	ProductPhotos []Upload
}

type Service struct {
	Repo  repository.Repository
	Blobs storage.BlobService
	WebP  storage.WebPOptions
	Log   *zap.Logger
	Now   func() time.Time
}

func NewService(repo repository.Repository, blobs storage.BlobService) *Service {
	return &Service{
		Repo:  repo,
		Blobs: blobs,
		WebP:  storage.DefaultWebPOptionsFromEnv(),
		Log:   zap.L().Named("tenant_registration"),
		Now:   func() time.Time { return time.Now().UTC() },
	}
}

/* ===============================
   Query
=================================*/

func (s *Service) GetMine(ctx context.Context, userID uuid.UUID) (*model.TenantRegistrationModel, error) {
	return s.find(s.Repo.FindByUserID(ctx, userID))
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.TenantRegistrationModel, error) {
	return s.find(s.Repo.FindByID(ctx, id))
}

func (s *Service) find(reg *model.TenantRegistrationModel, err error) (*model.TenantRegistrationModel, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRegistrationNotFound
	}
	return reg, err
}

func (s *Service) List(ctx context.Context, f repository.ListFilter) ([]model.TenantRegistrationModel, int64, error) {
	return s.Repo.List(ctx, f)
}

/* ===============================
   Submit (baru / kirim ulang setelah ditolak)
=================================*/

// Submit membuat registrasi pending, atau mengirim ulang registrasi yang rejected.
// created=true bila registrasi baru.
func (s *Service) Submit(ctx context.Context, userID uuid.UUID, in SubmitInput) (*model.TenantRegistrationModel, bool, error) {
	in.Form.Normalize()
	fields, err := s.validate(&in)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.Repo.FindByUserID(ctx, userID)
	switch {
	case err == nil:
		if !existing.Status.CanResubmit() {
			return nil, false, ErrRegistrationExists
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		existing = nil
	default:
		return nil, false, fmt.Errorf("find registration: %w", err)
	}

	if (len(in.Files) > 0 || len(in.ProductPhotos) > 0) && s.Blobs == nil {
		return nil, false, ErrStorageUnavailable
	}

	reg := existing
	if reg == nil {
		reg = &model.TenantRegistrationModel{ID: uuid.New(), UserID: userID, Status: model.StatusPending}
	}
	fields.applyTo(reg)
	reg.UpdatedAt = s.Now()

	uploaded, photos, err := s.uploadAll(ctx, reg.ID, in)
	if err != nil {
		return nil, false, err
	}
	newKeys := objectKeys(uploaded, photos)

	docs := reg.BusinessDocuments
	if docs == nil {
		docs = &model.BusinessDocumentModel{TenantID: reg.ID}
		reg.BusinessDocuments = docs
	}
	replaced := applyDocuments(docs, uploaded, photos)
	docs.AkunMedsos = datatypes.JSON(fields.akunMedsos)

	if existing == nil {
		err = s.Repo.Create(ctx, reg)
	} else {
		err = s.Repo.SaveResubmission(ctx, reg)
	}
	if err != nil {
		s.cleanup(ctx, newKeys)
		if errors.Is(err, repository.ErrStaleRegistration) {
			return nil, false, ErrRegistrationExists
		}
		return nil, false, fmt.Errorf("save registration: %w", err)
	}

	if existing != nil {
		reg.Status = model.StatusPending
		reg.RejectionReason = nil
		reg.ReviewedBy = nil
		reg.ReviewedAt = nil
		s.cleanup(ctx, replaced)
		s.Log.Info("🔁 registrasi diajukan ulang", zap.String("tenant_id", reg.ID.String()))
	} else {
		s.Log.Info("✅ registrasi baru", zap.String("tenant_id", reg.ID.String()))
	}
	return reg, existing == nil, nil
}

// normalizedForm hasil validasi yang siap ditulis ke model.
type normalizedForm struct {
	form       dto.RegisterForm
	lamaUsaha  int
	members    string
	memberNIMs string
	akunMedsos []byte
}

func (n normalizedForm) applyTo(reg *model.TenantRegistrationModel) {
	reg.NamaKetuaTim = n.form.NamaKetuaTim
	reg.NimNidnKetua = n.form.NimNidnKetua
	reg.NomorTelepon = n.form.NomorTelepon
	reg.Fakultas = n.form.Fakultas
	reg.Prodi = n.form.Prodi
	reg.NamaBisnis = n.form.NamaBisnis
	reg.KategoriBisnis = n.form.KategoriBisnis
	reg.JenisUsaha = n.form.JenisUsaha
	reg.AlamatUsaha = n.form.AlamatUsaha
	reg.LamaUsaha = n.lamaUsaha
	reg.Omzet = n.form.Omzet
	reg.NamaAnggotaTim = n.members
	reg.NimNidnAnggota = n.memberNIMs
}

func (s *Service) validate(in *SubmitInput) (normalizedForm, error) {
	errs := validation.ErrorMap{}
	f := in.Form
	out := normalizedForm{form: f}

	errs.Apply("nomor_telepon", validation.ValidatePhone(f.NomorTelepon))

	if n, err := strconv.Atoi(f.LamaUsaha); err != nil || n < 0 {
		errs.Set("lama_usaha", "lama_usaha must be a whole number of months (>= 0)")
	} else {
		out.lamaUsaha = n
	}
	if v, err := strconv.ParseFloat(f.Omzet, 64); err != nil || v < 0 {
		errs.Set("omzet", "omzet must be a non-negative number")
	}

	names, errNames := decodeStringArray(f.NamaAnggotaTim)
	nims, errNims := decodeStringArray(f.NimNidnAnggota)
	switch {
	case errNames != nil:
		errs.Set("nama_anggota_tim", "nama_anggota_tim must be a JSON array of strings")
	case errNims != nil:
		errs.Set("nim_nidn_anggota", "nim_nidn_anggota must be a JSON array of strings")
	default:
		if errs.Apply("nama_anggota_tim", validation.ValidateMembers(names, nims)) {
			out.members = mustJSON(names)
			out.memberNIMs = mustJSON(nims)
		}
	}

	var medsos dto.AkunMedsos
	if f.AkunMedsos != "" {
		if err := json.Unmarshal([]byte(f.AkunMedsos), &medsos); err != nil {
			errs.Set("akun_medsos", "akun_medsos must be a JSON object")
		}
	}
	out.akunMedsos, _ = json.Marshal(medsos)

	for kind, up := range in.Files {
		if kind == validation.KindFotoProduk {
			in.ProductPhotos = append(in.ProductPhotos, up)
			delete(in.Files, kind)
			continue
		}
		errs.Apply(kind.FieldName(), validation.ValidateFile(up.Size, kind))
	}
	var rejected []string
	for _, p := range in.ProductPhotos {
		if !validation.ValidateFile(p.Size, validation.KindFotoProduk).Valid {
			rejected = append(rejected, p.Filename)
		}
	}
	if msg := validation.ProductPhotoBatchMessage(rejected); msg != "" {
		errs.Set(validation.KindFotoProduk.FieldName(), msg)
	}

	if !errs.Empty() {
		return out, &FieldErrors{Fields: errs}
	}
	return out, nil
}

/* ===============================
   Upload dokumen
=================================*/

func (s *Service) uploadAll(ctx context.Context, regID uuid.UUID, in SubmitInput) (map[validation.DocumentKind]storage.Object, []storage.Object, error) {
	uploaded := make(map[validation.DocumentKind]storage.Object, len(in.Files))
	var photos []storage.Object

	fail := func(err error) (map[validation.DocumentKind]storage.Object, []storage.Object, error) {
		s.cleanup(ctx, objectKeys(uploaded, photos))
		return nil, nil, err
	}

	for _, kind := range validation.SingleFileKinds {
		up, ok := in.Files[kind]
		if !ok {
			continue
		}
		obj, err := s.upload(ctx, regID, kind, up)
		if err != nil {
			return fail(err)
		}
		uploaded[kind] = obj
	}
	for _, up := range in.ProductPhotos {
		obj, err := s.upload(ctx, regID, validation.KindFotoProduk, up)
		if err != nil {
			return fail(err)
		}
		photos = append(photos, obj)
	}
	return uploaded, photos, nil
}

func (s *Service) upload(ctx context.Context, regID uuid.UUID, kind validation.DocumentKind, up Upload) (storage.Object, error) {
	data, name, ct := up.Data, up.Filename, up.ContentType
	if kind.IsImage() && storage.IsConvertibleImage(name, data) {
		if webpData, err := storage.ToWebP(data, s.WebP); err == nil {
			data, name, ct = webpData, storage.WebPName(name), "image/webp"
		} else {
			s.Log.Warn("⚠️ konversi webp gagal, upload file asli", zap.String("file", name), zap.Error(err))
		}
	}
	obj, err := s.Blobs.Upload(ctx, documentDir(regID, kind), name, ct, data)
	if err != nil {
		return storage.Object{}, fmt.Errorf("upload %s: %w", kind, err)
	}
	return obj, nil
}

func (s *Service) cleanup(ctx context.Context, keys []string) {
	if len(keys) == 0 || s.Blobs == nil {
		return
	}
	if err := s.Blobs.DeleteKeys(ctx, keys); err != nil {
		s.Log.Warn("⚠️ gagal hapus object lama", zap.Strings("keys", keys), zap.Error(err))
	}
}

// documentDir: tenants/{id}/{kind}; segmen kind dipakai lagi saat mengganti dokumen.
func documentDir(regID uuid.UUID, kind validation.DocumentKind) string {
	return fmt.Sprintf("tenants/%s/%s", regID, kind)
}

func keyKind(key string) validation.DocumentKind {
	parts := strings.Split(key, "/")
	if len(parts) < 2 {
		return ""
	}
	return validation.DocumentKind(parts[len(parts)-2])
}

func objectKeys(uploaded map[validation.DocumentKind]storage.Object, photos []storage.Object) []string {
	keys := make([]string, 0, len(uploaded)+len(photos))
	for _, o := range uploaded {
		keys = append(keys, o.Key)
	}
	for _, o := range photos {
		keys = append(keys, o.Key)
	}
	return keys
}

// applyDocuments menulis URL baru ke docs dan mengembalikan object key lama yang tergantikan.
func applyDocuments(docs *model.BusinessDocumentModel, uploaded map[validation.DocumentKind]storage.Object, photos []storage.Object) []string {
	replacedKinds := map[validation.DocumentKind]bool{}
	for kind, obj := range uploaded {
		setDocumentURL(docs, kind, obj.URL)
		replacedKinds[kind] = true
	}
	if len(photos) > 0 {
		urls := make([]string, 0, len(photos))
		for _, p := range photos {
			urls = append(urls, p.URL)
		}
		docs.FotoProdukURLs = datatypes.JSON(mustJSON(urls))
		replacedKinds[validation.KindFotoProduk] = true
	} else if len(docs.FotoProdukURLs) == 0 {
		docs.FotoProdukURLs = datatypes.JSON("[]")
	}

	var kept, replaced []string
	for _, k := range docs.ObjectKeys {
		if replacedKinds[keyKind(k)] {
			replaced = append(replaced, k)
		} else {
			kept = append(kept, k)
		}
	}
	docs.ObjectKeys = pq.StringArray(append(kept, objectKeys(uploaded, photos)...))
	return replaced
}

func setDocumentURL(docs *model.BusinessDocumentModel, kind validation.DocumentKind, url string) {
	switch kind {
	case validation.KindLogo:
		docs.LogoURL = url
	case validation.KindSertifikatNIB:
		docs.SertifikatNIBURL = url
	case validation.KindProposal:
		docs.ProposalURL = url
	case validation.KindBMC:
		docs.BMCURL = url
	case validation.KindRAB:
		docs.RABURL = url
	case validation.KindLaporanKeuangan:
		docs.LaporanKeuanganURL = url
	case validation.KindFotoProduk:
	}
}

func decodeStringArray(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}

/* ===============================
   Review admin
=================================*/

func (s *Service) UpdateStatus(ctx context.Context, id, reviewer uuid.UUID, req dto.StatusUpdateRequest) (*dto.StatusUpdateResponse, error) {
	next, err := model.ParseRegistrationStatus(req.Status)
	if err != nil || next == model.StatusPending {
		return nil, fmt.Errorf("%w: status %q", ErrInvalidTransition, req.Status)
	}

	var reason *string
	if next == model.StatusRejected {
		raw := ""
		if req.RejectionReason != nil {
			raw = *req.RejectionReason
		}
		if r := validation.ValidateRejectionReason(raw); !r.Valid {
			return nil, fmt.Errorf("%w: %s", ErrInvalidReason, r.Message)
		}
		trimmed := strings.TrimSpace(raw)
		reason = &trimmed
	}

	reg, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !reg.Status.CanReviewTo(next) {
		return nil, fmt.Errorf("%w: %s → %s", ErrInvalidTransition, reg.Status, next)
	}

	err = s.Repo.UpdateStatus(ctx, repository.StatusChange{
		ID:         id,
		From:       reg.Status,
		To:         next,
		Reason:     reason,
		ReviewedBy: reviewer,
		At:         s.Now(),
	})
	if errors.Is(err, repository.ErrStaleRegistration) {
		return nil, fmt.Errorf("%w: status sudah diubah", ErrInvalidTransition)
	}
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	s.Log.Info("📝 status registrasi diubah",
		zap.String("tenant_id", id.String()),
		zap.String("status", string(next)),
		zap.String("reviewer", reviewer.String()))

	return &dto.StatusUpdateResponse{TenantID: id, Status: string(next), RejectionReason: reason}, nil
}
