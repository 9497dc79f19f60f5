package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"time"

	"petfind/internal/adapters/persistence/models"
	"petfind/internal/adapters/persistence/repositories"
	"petfind/internal/core/domain"
	"petfind/internal/pkg/metrics"

	"go.uber.org/zap"
)

const (
	// DefaultOTPTTL is how long an issued code stays valid
	DefaultOTPTTL = 10 * time.Minute
	otpMin        = 100000
	otpSpan       = 900000
)

// OTPService issues and validates email verification codes.
// Codes are stored encrypted; the latest code per user is authoritative.
type OTPService struct {
	tx       repositories.Transactor
	otpRepo  repositories.OtpCodeRepository
	userRepo repositories.UserRepository
	cipher   Cipher
	tokens   TokenIssuer
	log      *zap.Logger
	ttl      time.Duration
	now      func() time.Time
}

// NewOTPService creates a new OTP service
func NewOTPService(
	tx repositories.Transactor,
	otpRepo repositories.OtpCodeRepository,
	userRepo repositories.UserRepository,
	cipher Cipher,
	tokens TokenIssuer,
	ttl time.Duration,
	log *zap.Logger,
) *OTPService {
	if ttl <= 0 {
		ttl = DefaultOTPTTL
	}
	return &OTPService{
		tx:       tx,
		otpRepo:  otpRepo,
		userRepo: userRepo,
		cipher:   cipher,
		tokens:   tokens,
		log:      log.Named("otp"),
		ttl:      ttl,
		now:      time.Now,
	}
}

// TTL returns the code lifetime
func (s *OTPService) TTL() time.Duration {
	return s.ttl
}

// Issue creates a new code for the user and returns it in plaintext for delivery
func (s *OTPService) Issue(ctx context.Context, userID uint) (string, error) {
	code, err := generateSecureOTP()
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}

	encrypted, err := s.cipher.Encrypt(ctx, code)
	if err != nil {
		return "", fmt.Errorf("encrypt code: %w", err)
	}

	record := &models.OtpCode{
		UserID:    userID,
		OtpCode:   encrypted,
		ExpiresAt: s.now().Add(s.ttl),
		Attempts:  0,
	}
	if err := s.otpRepo.Create(ctx, record); err != nil {
		return "", err
	}

	s.log.Debug("code issued", zap.Uint("user_id", userID), zap.Time("expires_at", record.ExpiresAt))
	return code, nil
}

// Validate checks submitted against the user's latest code. On success the
// code is consumed, the user is marked verified and a session is returned.
func (s *OTPService) Validate(ctx context.Context, email, submitted string) (*domain.Session, error) {
	session, err := s.validate(ctx, email, submitted)
	metrics.OtpValidation(otpOutcome(err))
	return session, err
}

func (s *OTPService) validate(ctx context.Context, email, submitted string) (*domain.Session, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	// The latest code is read under a row lock so that concurrent
	// submissions are checked and consumed one at a time.
	mismatch := false
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		record, err := s.otpRepo.GetLatestByUserIDForUpdate(ctx, user.ID)
		if err != nil {
			return err
		}

		now := s.now()
		if record.IsConsumed() {
			return domain.ErrCodeAlreadyConsumed
		}
		if record.IsExpired(now) {
			return domain.ErrCodeExpired
		}

		stored, err := s.cipher.Decrypt(ctx, record.OtpCode)
		if err != nil {
			return fmt.Errorf("decrypt code: %w", err)
		}

		record.Attempts++
		if subtle.ConstantTimeCompare([]byte(stored), []byte(submitted)) != 1 {
			// commit the attempt, report the mismatch after
			mismatch = true
			return s.otpRepo.Update(ctx, record)
		}

		record.ConsumedAt = &now
		if err := s.otpRepo.Update(ctx, record); err != nil {
			return err
		}
		user.IsVerified = true
		return s.userRepo.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	if mismatch {
		return nil, domain.ErrInvalidCode
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.RoleName())
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.Info("email verified", zap.Uint("user_id", user.ID))
	return &domain.Session{
		AccessToken: token,
		UserID:      user.ID,
		Email:       user.Email,
		Role:        user.RoleName(),
	}, nil
}

func otpOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrCodeAlreadyConsumed):
		return "consumed"
	case errors.Is(err, domain.ErrCodeExpired):
		return "expired"
	case errors.Is(err, domain.ErrInvalidCode):
		return "invalid"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// generateSecureOTP returns a uniformly sampled code in [100000, 999999]
func generateSecureOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpSpan))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+otpMin), nil
}
