// Package apiclient klien REST portal untuk backend inkubator (/api/auth, /api/tenant).
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"inkubator_backend/internals/configs"
)

type Client struct {
	http *resty.Client
	log  *zap.Logger
}

func New(baseURL string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(60*time.Second).
			SetHeader("Accept", "application/json"),
		log: log,
	}
}

// NewFromEnv: PORTAL_API_BASE_URL (default http://localhost:8080).
func NewFromEnv(log *zap.Logger) *Client {
	return New(configs.GetEnv("PORTAL_API_BASE_URL", "http://localhost:8080"), log)
}

type envelope[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}

func (c *Client) request(ctx context.Context, token string) *resty.Request {
	r := c.http.R().SetContext(ctx)
	if token != "" {
		r.SetAuthToken(token)
	}
	return r
}

// check mengubah respons non-2xx jadi *APIError.
func (c *Client) check(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("%s %s: %w", requestMethod(resp), requestURL(resp), err)
	}
	if resp.IsSuccess() {
		return nil
	}
	apiErr := &APIError{
		StatusCode: resp.StatusCode(),
		Detail:     NormalizeErrorDetail(resp.Body(), GenericErrorMessage),
	}
	c.log.Debug("api error",
		zap.String("method", requestMethod(resp)),
		zap.String("url", requestURL(resp)),
		zap.Int("status", apiErr.StatusCode),
		zap.String("detail", apiErr.Detail))
	return apiErr
}

func requestMethod(resp *resty.Response) string {
	if resp == nil || resp.Request == nil {
		return ""
	}
	return resp.Request.Method
}

func requestURL(resp *resty.Response) string {
	if resp == nil || resp.Request == nil {
		return ""
	}
	return resp.Request.URL
}

func decode[T any](resp *resty.Response) (T, error) {
	var env envelope[T]
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		var zero T
		return zero, fmt.Errorf("decode response: %w", err)
	}
	return env.Data, nil
}

/* ===============================
   Auth
=================================*/

// Login menukar ID token dengan record user backend.
func (c *Client) Login(ctx context.Context, idToken string) (*User, error) {
	resp, err := c.request(ctx, idToken).Post("/api/auth/login")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	var out struct {
		User User `json:"user"`
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("decode login: %w", err)
	}
	return &out.User, nil
}

func (c *Client) Me(ctx context.Context, token string) (*User, error) {
	resp, err := c.request(ctx, token).Get("/api/auth/me")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	u, err := decode[User](resp)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

type ProfileUpdate struct {
	DisplayName *string `json:"display_name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	PhotoURL    *string `json:"photo_url,omitempty"`
}

func (c *Client) UpdateMe(ctx context.Context, token string, in ProfileUpdate) (*User, error) {
	resp, err := c.request(ctx, token).SetBody(in).Put("/api/auth/me")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	u, err := decode[User](resp)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

/* ===============================
   Tenant registration
=================================*/

// MyRegistration: 404 bukan error, dikembalikan (nil, nil).
func (c *Client) MyRegistration(ctx context.Context, token string) (*Registration, error) {
	resp, err := c.request(ctx, token).Get("/api/tenant/me")
	if err == nil && resp.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	reg, err := decode[Registration](resp)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (c *Client) SubmitRegistration(ctx context.Context, token string, payload *Multipart) (*Registration, error) {
	values := url.Values{}
	for _, f := range payload.Fields {
		values.Add(f.Name, f.Value)
	}

	r := c.request(ctx, token).
		SetMultipartFields().
		SetFormDataFromValues(values)
	for _, f := range payload.Files {
		r.SetFileReader(f.Field, f.Filename, bytes.NewReader(f.Data))
	}

	resp, err := r.Post("/api/tenant/register")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	reg, err := decode[Registration](resp)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

/* ===============================
   Admin
=================================*/

func (c *Client) ListRegistrations(ctx context.Context, token string, p ListParams) (*TenantList, error) {
	r := c.request(ctx, token)
	if p.Status != "" {
		r.SetQueryParam("status", string(p.Status))
	}
	if p.Q != "" {
		r.SetQueryParam("q", p.Q)
	}
	if p.Skip > 0 {
		r.SetQueryParam("skip", strconv.Itoa(p.Skip))
	}
	if p.Limit > 0 {
		r.SetQueryParam("limit", strconv.Itoa(p.Limit))
	}

	resp, err := r.Get("/api/tenant/")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	list, err := decode[TenantList](resp)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) GetRegistration(ctx context.Context, token, id string) (*Registration, error) {
	resp, err := c.request(ctx, token).SetPathParam("id", id).Get("/api/tenant/{id}")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	reg, err := decode[Registration](resp)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// UpdateStatus: reason hanya dikirim untuk penolakan.
func (c *Client) UpdateStatus(ctx context.Context, token, id string, status Status, reason string) (*StatusUpdate, error) {
	body := map[string]any{"status": status}
	if status == StatusRejected {
		body["rejection_reason"] = reason
	}
	resp, err := c.request(ctx, token).
		SetPathParam("id", id).
		SetBody(body).
		Put("/api/tenant/{id}/status")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	out, err := decode[StatusUpdate](resp)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportRegistrations mengunduh file xlsx apa adanya.
func (c *Client) ExportRegistrations(ctx context.Context, token string, status Status) ([]byte, error) {
	r := c.request(ctx, token)
	if status != "" {
		r.SetQueryParam("status", string(status))
	}
	resp, err := r.Get("/api/tenant/export")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return resp.Body(), nil
}
