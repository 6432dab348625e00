package controller

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"inkubator_backend/internals/constants"
	"inkubator_backend/internals/features/tenants/registrations/dto"
	"inkubator_backend/internals/features/tenants/registrations/model"
	"inkubator_backend/internals/features/tenants/registrations/repository"
	"inkubator_backend/internals/features/tenants/registrations/service"
	"inkubator_backend/internals/features/tenants/registrations/validation"
	helper "inkubator_backend/internals/helpers"
	authMw "inkubator_backend/internals/middlewares/auth"
)

type RegistrationController struct {
	Service  *service.Service
	Validate *validator.Validate
}

func NewRegistrationController(svc *service.Service) *RegistrationController {
	v := validator.New()
	// error validasi memakai nama field multipart / json
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			if name := strings.Split(f.Tag.Get(tag), ",")[0]; name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return &RegistrationController{Service: svc, Validate: v}
}

// GET /api/tenant/me
func (rc *RegistrationController) GetMine(c *fiber.Ctx) error {
	userID, err := authMw.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	reg, err := rc.Service.GetMine(c.UserContext(), userID)
	if err != nil {
		return registrationError(c, err)
	}
	return helper.JsonOK(c, "Registrasi ditemukan", dto.FromModel(reg))
}

// POST /api/tenant/register (multipart/form-data)
func (rc *RegistrationController) Register(c *fiber.Ctx) error {
	userID, err := authMw.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var form dto.RegisterForm
	if err := c.BodyParser(&form); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Form registrasi tidak valid")
	}
	form.Normalize()
	if err := rc.Validate.Struct(&form); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err, map[string]string{
			"nama_ketua_tim": "Nama ketua tim wajib diisi",
			"nim_nidn_ketua": "NIM/NIDN ketua wajib diisi",
			"nomor_telepon":  "Nomor telepon wajib diisi",
			"nama_bisnis":    "Nama bisnis wajib diisi",
			"lama_usaha":     "lama_usaha harus angka",
			"omzet":          "omzet harus angka",
		}))
	}

	in := service.SubmitInput{Form: form, Files: map[validation.DocumentKind]service.Upload{}}
	if mf, err := c.MultipartForm(); err == nil {
		if in.Files, in.ProductPhotos, err = readUploads(mf); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
	}

	reg, created, err := rc.Service.Submit(c.UserContext(), userID, in)
	if err != nil {
		return registrationError(c, err)
	}
	if created {
		return helper.JsonCreated(c, "Registrasi berhasil dikirim", dto.FromModel(reg))
	}
	return helper.JsonUpdated(c, "Registrasi berhasil dikirim ulang", dto.FromModel(reg))
}

// readUploads membaca file per jenis dokumen; file melebihi batas tidak dibaca isinya.
func readUploads(mf *multipart.Form) (map[validation.DocumentKind]service.Upload, []service.Upload, error) {
	files := map[validation.DocumentKind]service.Upload{}
	for _, kind := range validation.SingleFileKinds {
		headers := mf.File[kind.FieldName()]
		if len(headers) == 0 {
			continue
		}
		up, err := readUpload(headers[0], kind)
		if err != nil {
			return nil, nil, err
		}
		files[kind] = up
	}

	var photos []service.Upload
	for _, fh := range mf.File[validation.KindFotoProduk.FieldName()] {
		up, err := readUpload(fh, validation.KindFotoProduk)
		if err != nil {
			return nil, nil, err
		}
		photos = append(photos, up)
	}
	return files, photos, nil
}

func readUpload(fh *multipart.FileHeader, kind validation.DocumentKind) (service.Upload, error) {
	up := service.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
	}
	if up.ContentType == "" {
		up.ContentType = constants.ContentTypeFromExt(fh.Filename)
	}
	if fh.Size > kind.MaxBytes() {
		return up, nil
	}
	f, err := fh.Open()
	if err != nil {
		return up, fmt.Errorf("gagal membaca file %s", fh.Filename)
	}
	defer f.Close()
	if up.Data, err = io.ReadAll(f); err != nil {
		return up, fmt.Errorf("gagal membaca file %s", fh.Filename)
	}
	return up, nil
}

// GET /api/tenant/?status=&q=&skip=&limit=
func (rc *RegistrationController) List(c *fiber.Ctx) error {
	status, err := statusQuery(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	win := helper.ResolveWindow(c, helper.AdminOpts)

	rows, total, err := rc.Service.List(c.UserContext(), repository.ListFilter{
		Status: status,
		Q:      c.Query("q"),
		Skip:   win.Skip,
		Limit:  win.Limit,
	})
	if err != nil {
		zap.L().Error("[ERROR] list registrations", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data tenant")
	}
	return helper.JsonOK(c, "Data tenant berhasil diambil", dto.TenantListResponse{
		Tenants: dto.FromModels(rows),
		Total:   total,
		Skip:    win.Skip,
		Limit:   win.Limit,
	})
}

// GET /api/tenant/:id
func (rc *RegistrationController) Detail(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tenant tidak valid")
	}
	reg, err := rc.Service.Get(c.UserContext(), id)
	if err != nil {
		return registrationError(c, err)
	}
	return helper.JsonOK(c, "Detail tenant", dto.FromModel(reg))
}

// PUT /api/tenant/:id/status  {status, rejection_reason?}
func (rc *RegistrationController) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tenant tidak valid")
	}
	reviewer, err := authMw.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	req.Status = strings.ToLower(strings.TrimSpace(req.Status))
	if err := rc.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err, map[string]string{
			"status": "status harus approved atau rejected",
		}))
	}

	resp, err := rc.Service.UpdateStatus(c.UserContext(), id, reviewer, req)
	if err != nil {
		return registrationError(c, err)
	}
	return helper.JsonUpdated(c, "Status registrasi diperbarui", resp)
}

// GET /api/tenant/export?status=&q=
func (rc *RegistrationController) Export(c *fiber.Ctx) error {
	status, err := statusQuery(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	data, err := rc.Service.ExportXLSX(c.UserContext(), status, c.Query("q"))
	if err != nil {
		zap.L().Error("[ERROR] export registrations", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat file export")
	}

	name := fmt.Sprintf("tenants-%s.xlsx", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(data)
}

func statusQuery(c *fiber.Ctx) (*model.RegistrationStatus, error) {
	raw := strings.TrimSpace(c.Query("status"))
	if raw == "" || strings.EqualFold(raw, "all") {
		return nil, nil
	}
	s, err := model.ParseRegistrationStatus(raw)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// registrationError memetakan error service ke status HTTP.
func registrationError(c *fiber.Ctx, err error) error {
	var fe *service.FieldErrors
	switch {
	case errors.As(err, &fe):
		keys := make([]string, 0, len(fe.Fields))
		for k := range fe.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]helper.FieldError, 0, len(keys))
		for _, k := range keys {
			out = append(out, helper.FieldError{Loc: []string{"body", k}, Msg: fe.Fields[k]})
		}
		return helper.JsonValidationError(c, out)
	case errors.Is(err, service.ErrRegistrationNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrRegistrationExists):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidTransition):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidReason):
		msg := strings.TrimSpace(strings.TrimPrefix(err.Error(), service.ErrInvalidReason.Error()+":"))
		return helper.JsonValidationError(c, []helper.FieldError{{Loc: []string{"body", "rejection_reason"}, Msg: msg}})
	case errors.Is(err, service.ErrStorageUnavailable):
		return helper.JsonError(c, fiber.StatusServiceUnavailable, err.Error())
	}
	zap.L().Error("[ERROR] tenant registration", zap.Error(err))
	return helper.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
}
