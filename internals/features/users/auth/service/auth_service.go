package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"inkubator_backend/internals/constants"
	"inkubator_backend/internals/features/tenants/registrations/validation"
	"inkubator_backend/internals/features/users/auth/dto"
	authModel "inkubator_backend/internals/features/users/auth/model"
	authRepo "inkubator_backend/internals/features/users/auth/repository"
)

var (
	ErrAccountInactive      = errors.New("akun Anda telah dinonaktifkan, hubungi admin")
	ErrInvalidCredentials   = errors.New("email atau password salah")
	ErrUserNotRegistered    = errors.New("user belum terdaftar, silakan login terlebih dahulu")
	ErrTokenRevoked         = errors.New("token sudah logout")
	ErrInvalidPhoneNumber   = errors.New("nomor telepon tidak valid")
	ErrWrongCurrentPassword = errors.New("password lama salah")
)

/* ==========================
   AuthService
========================== */

type AuthService struct {
	DB       *gorm.DB
	Verifier IdentityVerifier
	Tokens   *TokenService
	Log      *zap.Logger
}

func NewAuthService(db *gorm.DB, verifier IdentityVerifier, tokens *TokenService) *AuthService {
	return &AuthService{DB: db, Verifier: verifier, Tokens: tokens, Log: zap.L().Named("auth")}
}

// LoginWithIDToken verifikasi ID token lalu upsert user:
// cari by firebase_uid → by email (akun yang dibuat admin, uid ditautkan) → buat TENANT baru.
func (s *AuthService) LoginWithIDToken(ctx context.Context, idToken string) (*authModel.UserModel, error) {
	identity, err := s.Verifier.Verify(ctx, idToken)
	if err != nil {
		return nil, err
	}

	user, err := authRepo.FindUserByFirebaseUID(ctx, s.DB, identity.UID)
	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
		user, err = s.linkOrCreate(ctx, identity)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("find user by uid: %w", err)
	}

	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	now := nowUTC()
	if err := authRepo.UpdateLastLogin(ctx, s.DB, user.ID, now); err != nil {
		s.Log.Warn("⚠️ gagal update last_login", zap.String("user_id", user.ID.String()), zap.Error(err))
	} else {
		user.LastLogin = &now
	}
	return user, nil
}

func (s *AuthService) linkOrCreate(ctx context.Context, identity *Identity) (*authModel.UserModel, error) {
	uid := identity.UID
	if identity.Email != "" {
		existing, err := authRepo.FindUserByEmail(ctx, s.DB, identity.Email)
		if err == nil {
			if err := authRepo.LinkFirebaseUID(ctx, s.DB, existing.ID, uid); err != nil {
				return nil, fmt.Errorf("link firebase uid: %w", err)
			}
			existing.FirebaseUID = &uid
			s.Log.Info("🔗 akun ditautkan ke identity provider",
				zap.String("user_id", existing.ID.String()), zap.String("role", existing.Role))
			return existing, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("find user by email: %w", err)
		}
	}

	user := &authModel.UserModel{
		FirebaseUID:   &uid,
		Email:         strings.ToLower(strings.TrimSpace(identity.Email)),
		DisplayName:   identity.Name,
		Role:          constants.RoleTenant,
		IsActive:      true,
		EmailVerified: identity.EmailVerified,
	}
	if identity.Picture != "" {
		pic := identity.Picture
		user.PhotoURL = &pic
	}
	if err := authRepo.CreateUser(ctx, s.DB, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.Log.Info("✅ user tenant baru dibuat", zap.String("user_id", user.ID.String()))
	return user, nil
}

// LoginWithPassword untuk akun yang dibuat admin dengan password.
func (s *AuthService) LoginWithPassword(ctx context.Context, email, password string) (*authModel.UserModel, string, time.Time, error) {
	user, err := authRepo.FindUserByEmail(ctx, s.DB, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", time.Time{}, ErrInvalidCredentials
		}
		return nil, "", time.Time{}, err
	}
	if !user.HasPassword() || CheckPasswordHash(*user.PasswordHash, password) != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, "", time.Time{}, ErrAccountInactive
	}

	token, exp, err := s.Tokens.Issue(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	now := nowUTC()
	if err := authRepo.UpdateLastLogin(ctx, s.DB, user.ID, now); err == nil {
		user.LastLogin = &now
	}
	return user, token, exp, nil
}

// ResolveAccessToken dipakai middleware: access token backend dulu, lalu ID token.
func (s *AuthService) ResolveAccessToken(ctx context.Context, token string) (*authModel.UserModel, error) {
	var (
		user *authModel.UserModel
		err  error
	)

	claims, perr := s.Tokens.Parse(token)
	switch {
	case perr == nil:
		revoked, err := authRepo.IsTokenBlacklisted(ctx, s.DB, TokenHash(token))
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, ErrTokenRevoked
		}
		user, err = authRepo.FindUserByID(ctx, s.DB, uuid.MustParse(claims.UserID))
		if err != nil {
			return nil, err
		}
	case errors.Is(perr, ErrNotBackendToken):
		identity, verr := s.Verifier.Verify(ctx, token)
		if verr != nil {
			return nil, verr
		}
		user, err = authRepo.FindUserByFirebaseUID(ctx, s.DB, identity.UID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotRegistered
		}
		if err != nil {
			return nil, err
		}
	default:
		return nil, perr
	}

	if !user.IsActive {
		return nil, ErrAccountInactive
	}
	return user, nil
}

// Logout mem-blacklist access token backend; ID token cukup dibuang di client.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.Tokens.Parse(token)
	if err != nil {
		return nil
	}
	exp := nowUTC().Add(accessTTLDefault)
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}
	return authRepo.BlacklistToken(ctx, s.DB, TokenHash(token), exp)
}

func (s *AuthService) GetMe(ctx context.Context, userID uuid.UUID) (*authModel.UserModel, error) {
	return authRepo.FindUserByID(ctx, s.DB, userID)
}

// UpdateMe patch profil sendiri; nomor telepon memakai aturan yang sama dengan form registrasi.
func (s *AuthService) UpdateMe(ctx context.Context, userID uuid.UUID, req dto.UpdateMeRequest) (*authModel.UserModel, error) {
	fields := map[string]any{}
	if req.DisplayName != nil {
		fields["display_name"] = strings.TrimSpace(*req.DisplayName)
	}
	if req.PhoneNumber != nil {
		phone := strings.TrimSpace(*req.PhoneNumber)
		if r := validation.ValidatePhone(phone); !r.Valid {
			return nil, fmt.Errorf("%w: %s", ErrInvalidPhoneNumber, r.Message)
		}
		if phone == "" {
			fields["phone_number"] = nil
		} else {
			fields["phone_number"] = phone
		}
	}
	if req.PhotoURL != nil {
		fields["photo_url"] = strings.TrimSpace(*req.PhotoURL)
	}

	if err := authRepo.UpdateUserFields(ctx, s.DB, userID, fields); err != nil {
		return nil, err
	}
	return authRepo.FindUserByID(ctx, s.DB, userID)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req dto.ChangePasswordRequest) error {
	user, err := authRepo.FindUserByID(ctx, s.DB, userID)
	if err != nil {
		return err
	}
	// akun tanpa password (login via Google/Firebase) boleh set password pertama kali
	if user.HasPassword() {
		if CheckPasswordHash(*user.PasswordHash, req.CurrentPassword) != nil {
			return ErrWrongCurrentPassword
		}
	}
	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return authRepo.UpdateUserPassword(ctx, s.DB, userID, hash)
}
