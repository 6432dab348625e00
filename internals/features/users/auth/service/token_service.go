// internals/features/users/auth/service/token_service.go
package service

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"inkubator_backend/internals/configs"
	authModel "inkubator_backend/internals/features/users/auth/model"
)

const (
	accessTTLDefault = 24 * time.Hour
	backendIssuer    = "inkubator-backend"
)

var (
	ErrTokenSecretMissing = errors.New("JWT_SECRET belum diset")
	ErrNotBackendToken    = errors.New("bukan access token backend")
)

// AccessClaims klaim access token yang diterbitkan login password.
type AccessClaims struct {
	UserID string `json:"id"`
	Role   string `json:"role"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = accessTTLDefault
	}
	return &TokenService{secret: []byte(strings.TrimSpace(secret)), ttl: ttl, now: nowUTC}
}

func NewTokenServiceFromEnv() *TokenService {
	return NewTokenService(configs.JWTSecret, configs.GetEnvDuration("JWT_ACCESS_TTL", accessTTLDefault))
}

func (s *TokenService) Enabled() bool { return len(s.secret) > 0 }

// Issue menerbitkan access token HS256 untuk user.
func (s *TokenService) Issue(user *authModel.UserModel) (string, time.Time, error) {
	if !s.Enabled() {
		return "", time.Time{}, ErrTokenSecretMissing
	}
	now := s.now()
	exp := now.Add(s.ttl)
	claims := AccessClaims{
		UserID: user.ID.String(),
		Role:   user.Role,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    backendIssuer,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign access token: %w", err)
	}
	return signed, exp, nil
}

// Parse memverifikasi token HS256 backend. Token dengan alg lain (mis. ID token
// Firebase RS256) dikembalikan sebagai ErrNotBackendToken.
func (s *TokenService) Parse(tokenString string) (*AccessClaims, error) {
	if !s.Enabled() {
		return nil, ErrNotBackendToken
	}
	claims := &AccessClaims{}
	parser := jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}
	_, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&(jwt.ValidationErrorSignatureInvalid|jwt.ValidationErrorMalformed|jwt.ValidationErrorUnverifiable) != 0 {
			return nil, fmt.Errorf("%w: %v", ErrNotBackendToken, err)
		}
		return nil, err
	}
	if claims.Issuer != backendIssuer {
		return nil, ErrNotBackendToken
	}
	if _, err := uuid.Parse(claims.UserID); err != nil {
		return nil, fmt.Errorf("invalid user id claim: %w", err)
	}
	return claims, nil
}

// TokenHash sha256 hex, yang disimpan di token_blacklist (bukan plaintext).
func TokenHash(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func nowUTC() time.Time { return time.Now().UTC() }
