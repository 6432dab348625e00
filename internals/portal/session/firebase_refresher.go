package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"inkubator_backend/internals/configs"
	"inkubator_backend/internals/portal/apiclient"
)

const secureTokenURL = "https://securetoken.googleapis.com/v1/token"

// FirebaseRefresher memakai endpoint securetoken (grant_type=refresh_token).
type FirebaseRefresher struct {
	APIKey   string
	Endpoint string

	client *resty.Client
}

func NewFirebaseRefresher(apiKey string) *FirebaseRefresher {
	return &FirebaseRefresher{
		APIKey:   apiKey,
		Endpoint: secureTokenURL,
		client:   resty.New().SetTimeout(15 * time.Second),
	}
}

// NewFirebaseRefresherFromEnv: nil bila FIREBASE_API_KEY kosong (sesi tanpa refresh).
func NewFirebaseRefresherFromEnv() Refresher {
	key := configs.GetEnv("FIREBASE_API_KEY")
	if key == "" {
		return nil
	}
	return NewFirebaseRefresher(key)
}

func (f *FirebaseRefresher) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	if f.APIKey == "" {
		return "", "", errors.New("firebase api key is not configured")
	}
	var out struct {
		IDToken      string `json:"id_token"`
		RefreshToken string `json:"refresh_token"`
	}
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParam("key", f.APIKey).
		SetFormData(map[string]string{
			"grant_type":    "refresh_token",
			"refresh_token": refreshToken,
		}).
		SetResult(&out).
		Post(f.Endpoint)
	if err != nil {
		return "", "", fmt.Errorf("refresh token: %w", err)
	}
	if resp.IsError() {
		return "", "", &apiclient.APIError{
			StatusCode: resp.StatusCode(),
			Detail:     apiclient.NormalizeErrorDetail(resp.Body(), "token refresh rejected"),
		}
	}
	if out.IDToken == "" {
		return "", "", errors.New("refresh response without id_token")
	}
	return out.IDToken, out.RefreshToken, nil
}
