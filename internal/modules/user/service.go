package user

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"mime/multipart"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/triponation/core/internal/models"
	"github.com/triponation/core/internal/pkg/jwt"
	"github.com/triponation/core/internal/pkg/mail"
	"github.com/triponation/core/internal/pkg/pagination"
	"github.com/triponation/core/internal/pkg/response"
	"github.com/triponation/core/internal/pkg/uploads"
)

const (
	profileFolder = "profileImages"
	otpValidity   = 5 * time.Minute
)

var (
	ErrEmailTaken      = errors.New("user already exists")
	ErrNotFound        = errors.New("user not found")
	ErrAlreadyVerified = errors.New("user is already verified")
	ErrOTPExpired      = errors.New("otp has expired")
	ErrOTPInvalid      = errors.New("invalid otp")
	ErrNotRegistered   = errors.New("not registered")
	ErrNotVerified     = errors.New("email not verified")
	ErrBadPassword     = errors.New("incorrect password")
)

type ErrValidation struct{ Msg string }

func (e *ErrValidation) Error() string { return e.Msg }

type Service struct {
	db      *gorm.DB
	uploads *uploads.Manager
	tokens  *jwt.Manager
	otp     mail.OTPSender
	log     *zap.Logger
}

func NewService(db *gorm.DB, um *uploads.Manager, tokens *jwt.Manager, otp mail.OTPSender, log *zap.Logger) *Service {
	return &Service{db: db, uploads: um, tokens: tokens, otp: otp, log: log}
}

// Signup registers an account, uploads the optional profile image, and
// mails a verification code. Public signups always become customers; the
// admin role is granted only through CreateAdmin.
func (s *Service) Signup(ctx context.Context, dto *SignupDTO) error {
	return s.register(ctx, dto, models.RoleCustomer)
}

// CreateAdmin registers an admin account. Callers gate this behind the
// superAdmin role.
func (s *Service) CreateAdmin(ctx context.Context, dto *SignupDTO) error {
	return s.register(ctx, dto, models.RoleAdmin)
}

func (s *Service) register(ctx context.Context, dto *SignupDTO, role string) error {
	if strings.TrimSpace(dto.Name) == "" || strings.TrimSpace(dto.Email) == "" || dto.Password == "" {
		return &ErrValidation{Msg: "Please fill all required fields."}
	}

	var n int64
	if err := s.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("email = ?", dto.Email).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	var profile *models.Attachment
	if dto.ProfileImage != nil {
		att, err := s.uploadProfileImage(ctx, dto.ProfileImage)
		if err != nil {
			return err
		}
		profile = &att
	}

	code, err := generateOTP()
	if err != nil {
		return err
	}
	hashedOTP, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash otp: %w", err)
	}
	expires := time.Now().Add(otpValidity)

	u := models.UserModel{
		Name:         dto.Name,
		Email:        dto.Email,
		Phone:        dto.Phone,
		Password:     string(hashed),
		Role:         role,
		ProfileImage: profile,
		OTP:          string(hashedOTP),
		OTPExpiresAt: &expires,
		IsVerified:   false,
	}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		if profile != nil {
			s.uploads.Remove(ctx, []models.Attachment{*profile})
		}
		return err
	}
	if profile != nil {
		s.uploads.Claim(ctx, []models.Attachment{*profile}, "user", u.ID)
	}

	if err := s.otp.SendOTP(u.Email, code); err != nil {
		s.log.Warn("otp delivery failed", zap.String("email", u.Email), zap.Error(err))
	}
	return nil
}

func (s *Service) uploadProfileImage(ctx context.Context, fh *multipart.FileHeader) (models.Attachment, error) {
	atts, err := s.uploads.CollectImages(ctx, []*multipart.FileHeader{fh}, uploads.Options{
		Folder: profileFolder,
	})
	if err != nil {
		return models.Attachment{}, err
	}
	return atts[0], nil
}

// VerifyOTP checks the mailed code and marks the account verified.
func (s *Service) VerifyOTP(ctx context.Context, email, code string) error {
	u, err := s.getByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrNotFound
	}
	if u.IsVerified {
		return ErrAlreadyVerified
	}
	if u.OTPExpiresAt == nil || u.OTPExpiresAt.Before(time.Now()) {
		return ErrOTPExpired
	}
	if bcrypt.CompareHashAndPassword([]byte(u.OTP), []byte(code)) != nil {
		return ErrOTPInvalid
	}

	return s.db.WithContext(ctx).Model(u).Updates(map[string]any{
		"is_verified":    true,
		"otp":            "",
		"otp_expires_at": nil,
	}).Error
}

// Login verifies credentials and issues a signed token.
func (s *Service) Login(ctx context.Context, email, password string) (*models.UserModel, string, error) {
	u, err := s.getByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if u == nil {
		return nil, "", ErrNotRegistered
	}
	if !u.IsVerified {
		return nil, "", ErrNotVerified
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, "", ErrBadPassword
	}

	token, err := s.tokens.Sign(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// List returns every account except the caller, without credential fields.
func (s *Service) List(ctx context.Context, q pagination.Query, selfID string) ([]models.UserModel, response.Paging, error) {
	tx := s.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("id <> ?", selfID).
		Order("created_at DESC")

	var items []models.UserModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}

// Delete removes an account and its stored profile image.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	var u models.UserModel
	err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if u.ProfileImage != nil && u.ProfileImage.ExternalID != "" {
		s.uploads.Remove(ctx, []models.Attachment{*u.ProfileImage})
	}
	return true, s.db.WithContext(ctx).Delete(&models.UserModel{}, "id = ?", id).Error
}

func (s *Service) getByEmail(ctx context.Context, email string) (*models.UserModel, error) {
	var u models.UserModel
	err := s.db.WithContext(ctx).First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// generateOTP returns a 6-digit code from the system CSPRNG.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
