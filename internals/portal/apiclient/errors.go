package apiclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const GenericErrorMessage = "Terjadi kesalahan, silakan coba lagi"

// APIError respons non-2xx dari backend; Detail sudah dinormalisasi.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Detail, e.StatusCode)
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// Message teks yang aman ditampilkan ke user untuk error apa pun.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// NormalizeErrorDetail membaca body error: detail string, detail array {msg},
// atau message. Selain itu fallback.
func NormalizeErrorDetail(body []byte, fallback string) string {
	var payload struct {
		Detail  json.RawMessage `json:"detail"`
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return fallback
	}

	if msg := detailText(payload.Detail); msg != "" {
		return msg
	}
	var message string
	if json.Unmarshal(payload.Message, &message) == nil && strings.TrimSpace(message) != "" {
		return message
	}
	return fallback
}

func detailText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return strings.TrimSpace(s)
	}

	var items []json.RawMessage
	if json.Unmarshal(raw, &items) == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			msgs = append(msgs, itemText(it))
		}
		return strings.Join(msgs, ", ")
	}
	return ""
}

// itemText: "msg" bila ada, selain itu item JSON apa adanya (dipadatkan).
func itemText(raw json.RawMessage) string {
	var it struct {
		Msg string `json:"msg"`
	}
	if json.Unmarshal(raw, &it) == nil {
		if m := strings.TrimSpace(it.Msg); m != "" {
			return m
		}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
