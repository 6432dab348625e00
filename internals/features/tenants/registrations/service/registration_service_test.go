package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"inkubator_backend/internals/features/tenants/registrations/dto"
	"inkubator_backend/internals/features/tenants/registrations/model"
	"inkubator_backend/internals/features/tenants/registrations/repository"
	"inkubator_backend/internals/features/tenants/registrations/validation"
	"inkubator_backend/internals/helpers/storage"
)

/* ---------- fakes ---------- */

type memRepo struct {
	mu      sync.Mutex
	byUser  map[uuid.UUID]*model.TenantRegistrationModel
	changes []repository.StatusChange
	stale   bool
}

func newMemRepo() *memRepo {
	return &memRepo{byUser: map[uuid.UUID]*model.TenantRegistrationModel{}}
}

func (r *memRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*model.TenantRegistrationModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg, ok := r.byUser[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *reg
	if reg.BusinessDocuments != nil {
		d := *reg.BusinessDocuments
		cp.BusinessDocuments = &d
	}
	return &cp, nil
}

func (r *memRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.TenantRegistrationModel, error) {
	r.mu.Lock()
	var owner uuid.UUID
	found := false
	for uid, reg := range r.byUser {
		if reg.ID == id {
			owner, found = uid, true
		}
	}
	r.mu.Unlock()
	if !found {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByUserID(ctx, owner)
}

func (r *memRepo) Create(_ context.Context, reg *model.TenantRegistrationModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *reg
	r.byUser[reg.UserID] = &cp
	return nil
}

func (r *memRepo) SaveResubmission(_ context.Context, reg *model.TenantRegistrationModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur := r.byUser[reg.UserID]
	if cur == nil || cur.Status != model.StatusRejected {
		return repository.ErrStaleRegistration
	}
	cp := *reg
	cp.Status = model.StatusPending
	cp.RejectionReason = nil
	r.byUser[reg.UserID] = &cp
	return nil
}

func (r *memRepo) List(_ context.Context, f repository.ListFilter) ([]model.TenantRegistrationModel, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.TenantRegistrationModel
	for _, reg := range r.byUser {
		if f.Status != nil && reg.Status != *f.Status {
			continue
		}
		out = append(out, *reg)
	}
	return out, int64(len(out)), nil
}

func (r *memRepo) UpdateStatus(_ context.Context, ch repository.StatusChange) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stale {
		return repository.ErrStaleRegistration
	}
	for _, reg := range r.byUser {
		if reg.ID == ch.ID && reg.Status == ch.From {
			reg.Status = ch.To
			reg.RejectionReason = ch.Reason
			r.changes = append(r.changes, ch)
			return nil
		}
	}
	return repository.ErrStaleRegistration
}

type memBlobs struct {
	mu       sync.Mutex
	uploaded []storage.Object
	deleted  []string
	failOn   string
}

func (b *memBlobs) Upload(_ context.Context, dir, filename, contentType string, body []byte) (storage.Object, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failOn != "" && strings.Contains(dir, b.failOn) {
		return storage.Object{}, errors.New("boom")
	}
	key := dir + "/" + filename
	obj := storage.Object{Key: key, URL: "https://cdn.test/" + key, ContentType: contentType, Size: int64(len(body))}
	b.uploaded = append(b.uploaded, obj)
	return obj, nil
}

func (b *memBlobs) DeleteKeys(_ context.Context, keys []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deleted = append(b.deleted, keys...)
	return nil
}

func newTestService() (*Service, *memRepo, *memBlobs) {
	repo, blobs := newMemRepo(), &memBlobs{}
	svc := &Service{
		Repo:  repo,
		Blobs: blobs,
		Log:   zap.NewNop(),
		Now:   func() time.Time { return time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC) },
	}
	return svc, repo, blobs
}

func validForm() dto.RegisterForm {
	return dto.RegisterForm{
		NamaKetuaTim:   "Sari Wulandari",
		NimNidnKetua:   "2201001",
		NomorTelepon:   "081234567890",
		Fakultas:       "Ekonomi",
		Prodi:          "Manajemen",
		NamaBisnis:     "Kopi Kampus",
		KategoriBisnis: "Kuliner",
		JenisUsaha:     "Jasa",
		AlamatUsaha:    "Jl. Kampus 1",
		LamaUsaha:      "12",
		Omzet:          "1500000.50",
		NamaAnggotaTim: `["Budi","Ani"]`,
		NimNidnAnggota: `["2201002","2201003"]`,
		AkunMedsos:     `{"instagram":"@kopikampus"}`,
	}
}

func pdf(name string, size int64) Upload {
	return Upload{Filename: name, ContentType: "application/pdf", Size: size, Data: []byte("%PDF-1.4")}
}

/* ---------- submit ---------- */

func TestSubmit_CreatesPendingRegistration(t *testing.T) {
	svc, repo, blobs := newTestService()
	userID := uuid.New()

	reg, created, err := svc.Submit(context.Background(), userID, SubmitInput{
		Form:  validForm(),
		Files: map[validation.DocumentKind]Upload{validation.KindProposal: pdf("proposal.pdf", 1024)},
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, model.StatusPending, reg.Status)
	assert.Equal(t, 12, reg.LamaUsaha)
	assert.JSONEq(t, `["Budi","Ani"]`, reg.NamaAnggotaTim)
	require.NotNil(t, reg.BusinessDocuments)
	assert.Contains(t, reg.BusinessDocuments.ProposalURL, "/proposal/")
	assert.JSONEq(t, `{"instagram":"@kopikampus"}`, string(reg.BusinessDocuments.AkunMedsos))
	assert.JSONEq(t, `[]`, string(reg.BusinessDocuments.FotoProdukURLs))
	assert.Len(t, blobs.uploaded, 1)
	assert.Len(t, repo.byUser, 1)
}

func TestSubmit_ConflictWhilePendingOrApproved(t *testing.T) {
	for _, st := range []model.RegistrationStatus{model.StatusPending, model.StatusApproved} {
		svc, repo, blobs := newTestService()
		userID := uuid.New()
		repo.byUser[userID] = &model.TenantRegistrationModel{ID: uuid.New(), UserID: userID, Status: st}

		_, _, err := svc.Submit(context.Background(), userID, SubmitInput{
			Form:  validForm(),
			Files: map[validation.DocumentKind]Upload{validation.KindRAB: pdf("rab.pdf", 10)},
		})
		assert.ErrorIs(t, err, ErrRegistrationExists, st)
		assert.Empty(t, blobs.uploaded, "tidak ada upload saat konflik")
	}
}

func TestSubmit_ResubmitAfterRejection(t *testing.T) {
	svc, repo, blobs := newTestService()
	userID, regID := uuid.New(), uuid.New()
	reason := "Dokumen RAB tidak lengkap"
	oldRAB := "tenants/" + regID.String() + "/rab/old.pdf"
	oldLogo := "tenants/" + regID.String() + "/logo/old.webp"
	repo.byUser[userID] = &model.TenantRegistrationModel{
		ID: regID, UserID: userID, Status: model.StatusRejected, RejectionReason: &reason,
		BusinessDocuments: &model.BusinessDocumentModel{
			ID: 7, TenantID: regID, RABURL: "https://cdn.test/" + oldRAB, LogoURL: "https://cdn.test/" + oldLogo,
			ObjectKeys: []string{oldRAB, oldLogo},
		},
	}

	reg, created, err := svc.Submit(context.Background(), userID, SubmitInput{
		Form:  validForm(),
		Files: map[validation.DocumentKind]Upload{validation.KindRAB: pdf("rab-v2.pdf", 2048)},
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, regID, reg.ID)
	assert.Equal(t, model.StatusPending, reg.Status)
	assert.Nil(t, reg.RejectionReason)

	// RAB diganti, logo lama tetap
	assert.Contains(t, reg.BusinessDocuments.RABURL, "rab-v2.pdf")
	assert.Equal(t, "https://cdn.test/"+oldLogo, reg.BusinessDocuments.LogoURL)
	assert.Equal(t, []string{oldRAB}, blobs.deleted)
	assert.Contains(t, []string(reg.BusinessDocuments.ObjectKeys), oldLogo)
	assert.Len(t, reg.BusinessDocuments.ObjectKeys, 2)

	stored := repo.byUser[userID]
	assert.Equal(t, model.StatusPending, stored.Status)
	assert.Nil(t, stored.RejectionReason)
}

func TestSubmit_InvalidPhoneBlocksBeforeUpload(t *testing.T) {
	svc, repo, blobs := newTestService()
	form := validForm()
	form.NomorTelepon = "0712345678"

	_, _, err := svc.Submit(context.Background(), uuid.New(), SubmitInput{
		Form:  form,
		Files: map[validation.DocumentKind]Upload{validation.KindProposal: pdf("p.pdf", 1)},
	})
	var fe *FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, validation.MsgPhonePrefix, fe.Fields.Get("nomor_telepon"))
	assert.Empty(t, blobs.uploaded)
	assert.Empty(t, repo.byUser)
}

func TestSubmit_OversizeFilesRejected(t *testing.T) {
	svc, _, blobs := newTestService()

	_, _, err := svc.Submit(context.Background(), uuid.New(), SubmitInput{
		Form:  validForm(),
		Files: map[validation.DocumentKind]Upload{validation.KindLogo: {Filename: "logo.png", Size: 2*validation.MB + 1}},
		ProductPhotos: []Upload{
			{Filename: "ok.jpg", Size: 100, Data: []byte("x")},
			{Filename: "big.jpg", Size: 5*validation.MB + 1},
		},
	})
	var fe *FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe.Fields.Get("logo"), "2MB")
	assert.Contains(t, fe.Fields.Get("foto_produk"), "big.jpg")
	assert.NotContains(t, fe.Fields.Get("foto_produk"), "ok.jpg")
	assert.Empty(t, blobs.uploaded)
}

func TestSubmit_MemberArraysMustBeParallel(t *testing.T) {
	svc, _, _ := newTestService()
	form := validForm()
	form.NimNidnAnggota = `["2201002"]`

	_, _, err := svc.Submit(context.Background(), uuid.New(), SubmitInput{Form: form})
	var fe *FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.True(t, fe.Fields.Has("nama_anggota_tim"))
}

func TestSubmit_UploadFailureCleansUp(t *testing.T) {
	svc, repo, blobs := newTestService()
	blobs.failOn = "/rab"

	_, _, err := svc.Submit(context.Background(), uuid.New(), SubmitInput{
		Form: validForm(),
		Files: map[validation.DocumentKind]Upload{
			validation.KindProposal: pdf("p.pdf", 1),
			validation.KindRAB:      pdf("r.pdf", 1),
		},
	})
	require.Error(t, err)
	require.Len(t, blobs.uploaded, 1)
	assert.Equal(t, []string{blobs.uploaded[0].Key}, blobs.deleted)
	assert.Empty(t, repo.byUser)
}

func TestSubmit_StorageMissing(t *testing.T) {
	svc, _, _ := newTestService()
	svc.Blobs = nil

	_, _, err := svc.Submit(context.Background(), uuid.New(), SubmitInput{
		Form:  validForm(),
		Files: map[validation.DocumentKind]Upload{validation.KindBMC: pdf("bmc.pdf", 1)},
	})
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

/* ---------- review ---------- */

func seedPending(repo *memRepo) uuid.UUID {
	userID, id := uuid.New(), uuid.New()
	repo.byUser[userID] = &model.TenantRegistrationModel{ID: id, UserID: userID, Status: model.StatusPending}
	return id
}

func ptr(s string) *string { return &s }

func TestUpdateStatus_Approve(t *testing.T) {
	svc, repo, _ := newTestService()
	id := seedPending(repo)
	admin := uuid.New()

	resp, err := svc.UpdateStatus(context.Background(), id, admin, dto.StatusUpdateRequest{Status: "approved", RejectionReason: ptr("ignored")})
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)
	assert.Nil(t, resp.RejectionReason)
	require.Len(t, repo.changes, 1)
	assert.Equal(t, admin, repo.changes[0].ReviewedBy)
}

func TestUpdateStatus_RejectReasonRules(t *testing.T) {
	svc, repo, _ := newTestService()
	id := seedPending(repo)

	_, err := svc.UpdateStatus(context.Background(), id, uuid.New(), dto.StatusUpdateRequest{Status: "rejected", RejectionReason: ptr("123456789")})
	assert.ErrorIs(t, err, ErrInvalidReason)
	assert.Empty(t, repo.changes)

	_, err = svc.UpdateStatus(context.Background(), id, uuid.New(), dto.StatusUpdateRequest{Status: "rejected"})
	assert.ErrorIs(t, err, ErrInvalidReason)

	resp, err := svc.UpdateStatus(context.Background(), id, uuid.New(), dto.StatusUpdateRequest{Status: "rejected", RejectionReason: ptr("  1234567890  ")})
	require.NoError(t, err)
	require.NotNil(t, resp.RejectionReason)
	assert.Equal(t, "1234567890", *resp.RejectionReason)
}

func TestUpdateStatus_OneWay(t *testing.T) {
	svc, repo, _ := newTestService()
	id := seedPending(repo)

	_, err := svc.UpdateStatus(context.Background(), id, uuid.New(), dto.StatusUpdateRequest{Status: "approved"})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), id, uuid.New(), dto.StatusUpdateRequest{Status: "rejected", RejectionReason: ptr("Terlambat ditolak")})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.UpdateStatus(context.Background(), id, uuid.New(), dto.StatusUpdateRequest{Status: "pending"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_NotFoundAndStale(t *testing.T) {
	svc, repo, _ := newTestService()
	_, err := svc.UpdateStatus(context.Background(), uuid.New(), uuid.New(), dto.StatusUpdateRequest{Status: "approved"})
	assert.ErrorIs(t, err, ErrRegistrationNotFound)

	id := seedPending(repo)
	repo.stale = true
	_, err = svc.UpdateStatus(context.Background(), id, uuid.New(), dto.StatusUpdateRequest{Status: "approved"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestApplyDocuments_ProductPhotosReplaceSet(t *testing.T) {
	id := uuid.New()
	old := "tenants/" + id.String() + "/foto_produk/a.webp"
	docs := &model.BusinessDocumentModel{ObjectKeys: []string{old}}
	replaced := applyDocuments(docs, nil, []storage.Object{
		{Key: "tenants/x/foto_produk/b.webp", URL: "u-b"},
		{Key: "tenants/x/foto_produk/c.webp", URL: "u-c"},
	})
	assert.Equal(t, []string{old}, replaced)
	assert.JSONEq(t, `["u-b","u-c"]`, string(docs.FotoProdukURLs))
	assert.Len(t, docs.ObjectKeys, 2)
}
