// file: internals/helpers/json_response.go
package helper

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

/* ===============================
   Error helpers (standard shape)
=================================*/

// ErrorResponse: `detail` dibaca FE (string atau array {loc,msg} untuk validasi),
// `message` disediakan juga untuk klien lama.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Detail    any    `json:"detail"`
	ErrorCode string `json:"error_code,omitempty"`
}

// FieldError mengikuti bentuk {loc, msg} yang sudah dikenal FE.
type FieldError struct {
	Loc []string `json:"loc"`
	Msg string   `json:"msg"`
}

func statusToErrorCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusUnprocessableEntity:
		return "VALIDATION_ERROR"
	case fiber.StatusConflict:
		return "CONFLICT"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case fiber.StatusTooManyRequests:
		return "TOO_MANY_REQUESTS"
	default:
		if status >= 500 {
			return "INTERNAL_ERROR"
		}
		return "ERROR"
	}
}

// JsonError: error generic (bukan validasi)
func JsonError(c *fiber.Ctx, status int, message string) error {
	if status == 0 {
		status = fiber.StatusInternalServerError
	}
	if strings.TrimSpace(message) == "" {
		message = fiber.NewError(status).Message
		if message == "" {
			message = fiber.ErrInternalServerError.Message
		}
	}

	resp := ErrorResponse{
		Success:   false,
		Message:   message,
		Detail:    message,
		ErrorCode: statusToErrorCode(status),
	}
	return c.Status(status).JSON(resp)
}

// JsonValidationError: khusus error validasi (422)
func JsonValidationError(c *fiber.Ctx, fieldErrors []FieldError) error {
	if fieldErrors == nil {
		fieldErrors = []FieldError{}
	}
	resp := ErrorResponse{
		Success:   false,
		Message:   "validation failed",
		Detail:    fieldErrors,
		ErrorCode: "VALIDATION_ERROR",
	}
	return c.Status(fiber.StatusUnprocessableEntity).JSON(resp)
}

// ValidationErrors mengubah error validator/v10 menjadi []FieldError.
// fieldMsg opsional: pesan custom per nama field (json name).
func ValidationErrors(err error, fieldMsg map[string]string) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Loc: []string{"body"}, Msg: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		msg := fieldMsg[name]
		if msg == "" {
			msg = name + " tidak valid (" + fe.Tag() + ")"
		}
		out = append(out, FieldError{Loc: []string{"body", name}, Msg: msg})
	}
	return out
}

// FiberErrorHandler menormalkan *fiber.Error (dari middleware / return fiber.NewError)
// ke bentuk ErrorResponse yang sama.
func FiberErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	}
	msg := err.Error()
	if status >= 500 && fe == nil {
		msg = "Internal Server Error"
	}
	return JsonError(c, status, msg)
}

/* ===============================
   JSON responses (standard success)
=================================*/

// JsonOK: response sukses generic (GET detail, dsb)
func JsonOK(c *fiber.Ctx, message string, data any) error {
	if strings.TrimSpace(message) == "" {
		message = "ok"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// JsonCreated: response sukses create (POST)
func JsonCreated(c *fiber.Ctx, message string, data any) error {
	if strings.TrimSpace(message) == "" {
		message = "created"
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// JsonUpdated: response sukses update (PATCH/PUT)
func JsonUpdated(c *fiber.Ctx, message string, data any) error {
	if strings.TrimSpace(message) == "" {
		message = "updated"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}
