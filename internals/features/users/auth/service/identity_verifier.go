package service

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"inkubator_backend/internals/configs"
)

var ErrInvalidIDToken = errors.New("invalid id token")

// Identity hasil verifikasi ID token dari identity provider.
type Identity struct {
	UID           string
	Email         string
	Name          string
	Picture       string
	EmailVerified bool
}

type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (*Identity, error)
}

// NewVerifierFromEnv memilih verifier berdasarkan AUTH_PROVIDER.
func NewVerifierFromEnv() IdentityVerifier {
	if configs.AuthProvider == "google" {
		return &GoogleVerifier{ClientID: configs.GoogleClientID}
	}
	return NewFirebaseVerifier(configs.FirebaseProjectID)
}

/* ==========================
   Firebase (securetoken)
========================== */

const firebaseCertURL = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"

type firebaseClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	jwt.RegisteredClaims
}

// FirebaseVerifier memverifikasi ID token Firebase (RS256) dengan sertifikat
// publik Google. Sertifikat di-cache sesuai Cache-Control max-age.
type FirebaseVerifier struct {
	ProjectID string
	CertURL   string

	client *resty.Client

	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	expiresAt time.Time
}

func NewFirebaseVerifier(projectID string) *FirebaseVerifier {
	return &FirebaseVerifier{
		ProjectID: projectID,
		CertURL:   firebaseCertURL,
		client:    resty.New().SetTimeout(10 * time.Second),
	}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*Identity, error) {
	if v.ProjectID == "" {
		return nil, fmt.Errorf("%w: FIREBASE_PROJECT_ID belum diset", ErrInvalidIDToken)
	}

	claims := &firebaseClaims{}
	parser := jwt.Parser{ValidMethods: []string{jwt.SigningMethodRS256.Alg()}}
	_, err := parser.ParseWithClaims(idToken, claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("missing kid")
		}
		return v.publicKey(ctx, kid)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIDToken, err)
	}

	if claims.Issuer != "https://securetoken.google.com/"+v.ProjectID {
		return nil, fmt.Errorf("%w: unexpected issuer %q", ErrInvalidIDToken, claims.Issuer)
	}
	if !claims.VerifyAudience(v.ProjectID, true) {
		return nil, fmt.Errorf("%w: unexpected audience", ErrInvalidIDToken)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, fmt.Errorf("%w: empty subject", ErrInvalidIDToken)
	}

	return &Identity{
		UID:           claims.Subject,
		Email:         claims.Email,
		Name:          claims.Name,
		Picture:       claims.Picture,
		EmailVerified: claims.EmailVerified,
	}, nil
}

func (v *FirebaseVerifier) publicKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.RLock()
	key, ok := v.keys[kid]
	fresh := time.Now().Before(v.expiresAt)
	v.mu.RUnlock()
	if ok && fresh {
		return key, nil
	}

	if err := v.refreshKeys(ctx); err != nil {
		return nil, err
	}

	v.mu.RLock()
	defer v.mu.RUnlock()
	if key, ok := v.keys[kid]; ok {
		return key, nil
	}
	return nil, fmt.Errorf("unknown kid %q", kid)
}

func (v *FirebaseVerifier) refreshKeys(ctx context.Context) error {
	certs := map[string]string{}
	resp, err := v.client.R().
		SetContext(ctx).
		SetResult(&certs).
		Get(v.CertURL)
	if err != nil {
		return fmt.Errorf("fetch firebase certs: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("fetch firebase certs: status %d", resp.StatusCode())
	}

	keys := make(map[string]*rsa.PublicKey, len(certs))
	for kid, pem := range certs {
		pub, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pem))
		if err != nil {
			zap.L().Warn("⚠️ sertifikat firebase tidak valid", zap.String("kid", kid), zap.Error(err))
			continue
		}
		keys[kid] = pub
	}

	v.mu.Lock()
	v.keys = keys
	v.expiresAt = time.Now().Add(maxAge(resp.Header().Get("Cache-Control")))
	v.mu.Unlock()
	return nil
}

// maxAge membaca max-age dari header Cache-Control, default 1 jam.
func maxAge(cacheControl string) time.Duration {
	for _, part := range strings.Split(cacheControl, ",") {
		part = strings.TrimSpace(part)
		if !strings.HasPrefix(part, "max-age=") {
			continue
		}
		if n, err := strconv.Atoi(strings.TrimPrefix(part, "max-age=")); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return time.Hour
}

/* ==========================
   Google Sign-In
========================== */

// GoogleVerifier untuk AUTH_PROVIDER=google (ID token Google Sign-In).
type GoogleVerifier struct {
	ClientID string
}

func (g *GoogleVerifier) Verify(_ context.Context, idToken string) (*Identity, error) {
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{g.ClientID}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIDToken, err)
	}

	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIDToken, err)
	}
	return &Identity{
		UID:           claimSet.Sub,
		Email:         claimSet.Email,
		Name:          claimSet.Name,
		EmailVerified: true,
	}, nil
}
