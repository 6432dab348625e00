package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"inkubator_backend/internals/features/tenants/registrations/model"
)

var ErrStaleRegistration = errors.New("registrasi sudah berubah, muat ulang data")

// ListFilter untuk GET /api/tenant/ dan export. Limit 0 = tanpa batas.
type ListFilter struct {
	Status *model.RegistrationStatus
	Q      string
	Skip   int
	Limit  int
}

type StatusChange struct {
	ID         uuid.UUID
	From       model.RegistrationStatus
	To         model.RegistrationStatus
	Reason     *string
	ReviewedBy uuid.UUID
	At         time.Time
}

type Repository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.TenantRegistrationModel, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.TenantRegistrationModel, error)
	Create(ctx context.Context, reg *model.TenantRegistrationModel) error
	SaveResubmission(ctx context.Context, reg *model.TenantRegistrationModel) error
	List(ctx context.Context, f ListFilter) ([]model.TenantRegistrationModel, int64, error)
	UpdateStatus(ctx context.Context, ch StatusChange) error
}

type GormRepository struct {
	DB *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{DB: db}
}

func (r *GormRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.TenantRegistrationModel, error) {
	var reg model.TenantRegistrationModel
	if err := r.DB.WithContext(ctx).
		Preload("BusinessDocuments").
		Where("user_id = ?", userID).
		First(&reg).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *GormRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.TenantRegistrationModel, error) {
	var reg model.TenantRegistrationModel
	if err := r.DB.WithContext(ctx).
		Preload("BusinessDocuments").
		Where("id = ?", id).
		First(&reg).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

// Create menyimpan registrasi baru beserta business_documents (association ikut dibuat).
func (r *GormRepository) Create(ctx context.Context, reg *model.TenantRegistrationModel) error {
	return r.DB.WithContext(ctx).Create(reg).Error
}

// SaveResubmission: hanya berhasil bila baris masih berstatus rejected.
func (r *GormRepository) SaveResubmission(ctx context.Context, reg *model.TenantRegistrationModel) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.TenantRegistrationModel{}).
			Where("id = ? AND status = ?", reg.ID, model.StatusRejected).
			Updates(map[string]any{
				"nama_ketua_tim":   reg.NamaKetuaTim,
				"nim_nidn_ketua":   reg.NimNidnKetua,
				"nomor_telepon":    reg.NomorTelepon,
				"fakultas":         reg.Fakultas,
				"prodi":            reg.Prodi,
				"nama_bisnis":      reg.NamaBisnis,
				"kategori_bisnis":  reg.KategoriBisnis,
				"jenis_usaha":      reg.JenisUsaha,
				"alamat_usaha":     reg.AlamatUsaha,
				"lama_usaha":       reg.LamaUsaha,
				"omzet":            reg.Omzet,
				"nama_anggota_tim": reg.NamaAnggotaTim,
				"nim_nidn_anggota": reg.NimNidnAnggota,
				"status":           model.StatusPending,
				"rejection_reason": nil,
				"reviewed_by":      nil,
				"reviewed_at":      nil,
				"updated_at":       reg.UpdatedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStaleRegistration
		}

		docs := reg.BusinessDocuments
		if docs == nil {
			return nil
		}
		docs.TenantID = reg.ID
		if docs.ID == 0 {
			return tx.Create(docs).Error
		}
		return tx.Save(docs).Error
	})
}

func (r *GormRepository) List(ctx context.Context, f ListFilter) ([]model.TenantRegistrationModel, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.TenantRegistrationModel{})
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if s := strings.TrimSpace(f.Q); s != "" {
		like := "%" + s + "%"
		q = q.Where("nama_bisnis ILIKE ? OR nama_ketua_tim ILIKE ? OR nim_nidn_ketua ILIKE ?", like, like, like)
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.TenantRegistrationModel
	q = q.Preload("BusinessDocuments").Order("created_at DESC")
	if f.Skip > 0 {
		q = q.Offset(f.Skip)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// UpdateStatus bersyarat pada status lama; 0 baris = sudah diubah admin lain.
func (r *GormRepository) UpdateStatus(ctx context.Context, ch StatusChange) error {
	res := r.DB.WithContext(ctx).Model(&model.TenantRegistrationModel{}).
		Where("id = ? AND status = ?", ch.ID, ch.From).
		Updates(map[string]any{
			"status":           ch.To,
			"rejection_reason": ch.Reason,
			"reviewed_by":      ch.ReviewedBy,
			"reviewed_at":      ch.At,
			"updated_at":       ch.At,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleRegistration
	}
	return nil
}
