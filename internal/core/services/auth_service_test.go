package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"petfind/internal/adapters/persistence/models"
	"petfind/internal/core/domain"
	"petfind/internal/core/services/mocks"
)

type AuthServiceSuite struct {
	suite.Suite
	f *fixture
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupTest() {
	s.f = newFixture(s.T())
}

func (s *AuthServiceSuite) signUp(email string) (*models.User, string) {
	user, err := s.f.auth.SignUp(s.f.ctx, SignUpInput{
		FirstName:  "Ana",
		LastName:   "Quispe",
		DocumentID: "DNI-" + email,
		Email:      email,
		Password:   "correct-horse",
	})
	s.Require().NoError(err)
	return user, s.lastCode(email)
}

func (s *AuthServiceSuite) lastCode(email string) string {
	codes := s.f.notify.byTemplate(TemplateOtpCode)
	for i := len(codes) - 1; i >= 0; i-- {
		if codes[i].Email == email {
			code, ok := codes[i].Context["code"].(string)
			s.Require().True(ok)
			return code
		}
	}
	s.FailNow("no code sent to " + email)
	return ""
}

// =============================================================================
// Signup
// =============================================================================

func (s *AuthServiceSuite) TestSignUp() {
	s.Run("creates an unverified user and mails a six digit code", func() {
		user, code := s.signUp("Ana@Example.com ")
		s.Equal("ana@example.com", user.Email)
		s.False(user.IsVerified)
		s.Equal(domain.DefaultSystemRole, user.SystemRole.Name)
		s.Len(code, 6)
		s.NotEqual("correct-horse", user.Password)

		stored, err := s.f.repos.OtpCodes.GetLatestByUserID(s.f.ctx, user.ID)
		s.Require().NoError(err)
		s.Equal("enc:"+code, stored.OtpCode)
		s.WithinDuration(time.Now().Add(DefaultOTPTTL), stored.ExpiresAt, 5*time.Second)
	})

	s.Run("rejects a duplicate email", func() {
		_, err := s.f.auth.SignUp(s.f.ctx, SignUpInput{
			FirstName: "Ana", LastName: "Bis", DocumentID: "OTHER", Email: "ana@example.com", Password: "correct-horse",
		})
		s.ErrorIs(err, domain.ErrUserAlreadyExists)
	})

	s.Run("rejects a short password", func() {
		_, err := s.f.auth.SignUp(s.f.ctx, SignUpInput{
			FirstName: "Luis", LastName: "Rojas", DocumentID: "D-9", Email: "luis@example.com", Password: "short",
		})
		s.ErrorIs(err, domain.ErrInvalidInput)
	})
}

// =============================================================================
// Code validation
// =============================================================================

func (s *AuthServiceSuite) TestValidateCodeConsumesOnce() {
	user, code := s.signUp("once@example.com")

	session, err := s.f.auth.ValidateCode(s.f.ctx, user.Email, code)
	s.Require().NoError(err)
	s.Equal(user.ID, session.UserID)

	claims, err := s.f.tokens.Validate(session.AccessToken)
	s.Require().NoError(err)
	s.Equal(user.ID, claims.UserID)

	verified, err := s.f.repos.Users.GetByID(s.f.ctx, user.ID)
	s.Require().NoError(err)
	s.True(verified.IsVerified)

	_, err = s.f.auth.ValidateCode(s.f.ctx, user.Email, code)
	s.ErrorIs(err, domain.ErrCodeAlreadyConsumed)
}

func (s *AuthServiceSuite) TestValidateCodeRejectsWrongValue() {
	user, code := s.signUp("wrong@example.com")
	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}

	_, err := s.f.auth.ValidateCode(s.f.ctx, user.Email, wrong)
	s.ErrorIs(err, domain.ErrInvalidCode)

	stored, err := s.f.repos.OtpCodes.GetLatestByUserID(s.f.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(1, stored.Attempts)
	s.Nil(stored.ConsumedAt)

	_, err = s.f.auth.ValidateCode(s.f.ctx, user.Email, code)
	s.NoError(err, "a failed attempt does not burn the code")
}

func (s *AuthServiceSuite) TestValidateCodeExpired() {
	user, code := s.signUp("late@example.com")
	s.f.otp.now = func() time.Time { return time.Now().Add(DefaultOTPTTL + time.Minute) }

	_, err := s.f.auth.ValidateCode(s.f.ctx, user.Email, code)
	s.ErrorIs(err, domain.ErrCodeExpired)
	s.ErrorIs(err, domain.ErrExpired)

	stored, err := s.f.repos.Users.GetByID(s.f.ctx, user.ID)
	s.Require().NoError(err)
	s.False(stored.IsVerified)
}

func (s *AuthServiceSuite) TestResendCode() {
	user, first := s.signUp("again@example.com")
	s.Require().NoError(s.f.auth.ResendCode(s.f.ctx, user.Email))
	second := s.lastCode(user.Email)
	s.Len(s.f.notify.byTemplate(TemplateOtpCode), 2)

	if first != second {
		_, err := s.f.auth.ValidateCode(s.f.ctx, user.Email, first)
		s.ErrorIs(err, domain.ErrInvalidCode, "only the latest code is accepted")
	}
	_, err := s.f.auth.ValidateCode(s.f.ctx, user.Email, second)
	s.Require().NoError(err)

	err = s.f.auth.ResendCode(s.f.ctx, user.Email)
	s.ErrorIs(err, domain.ErrUserAlreadyVerified)
}

func (s *AuthServiceSuite) TestValidateCodeUnknownEmail() {
	_, err := s.f.auth.ValidateCode(s.f.ctx, "nobody@example.com", "123456")
	s.ErrorIs(err, domain.ErrNotFound)
}

// =============================================================================
// Sign in
// =============================================================================

func (s *AuthServiceSuite) TestSignIn() {
	user, code := s.signUp("login@example.com")

	s.Run("unverified account cannot sign in", func() {
		_, err := s.f.auth.SignIn(s.f.ctx, SignInInput{Email: user.Email, Password: "correct-horse"})
		s.ErrorIs(err, domain.ErrUserNotVerified)
	})

	_, err := s.f.auth.ValidateCode(s.f.ctx, user.Email, code)
	s.Require().NoError(err)

	s.Run("wrong password and unknown email look the same", func() {
		_, err := s.f.auth.SignIn(s.f.ctx, SignInInput{Email: user.Email, Password: "nope-nope"})
		s.ErrorIs(err, domain.ErrInvalidCredentials)
		_, err = s.f.auth.SignIn(s.f.ctx, SignInInput{Email: "ghost@example.com", Password: "correct-horse"})
		s.ErrorIs(err, domain.ErrInvalidCredentials)
	})

	s.Run("verified account gets a session", func() {
		session, err := s.f.auth.SignIn(s.f.ctx, SignInInput{Email: "LOGIN@example.com", Password: "correct-horse"})
		s.Require().NoError(err)
		s.Equal(string(domain.SystemRoleUser), session.Role)
		s.NotEmpty(session.AccessToken)
	})
}

// =============================================================================
// Cipher failures
// =============================================================================

func TestOTPServiceCipherFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(t)
	cipher := mocks.NewMockCipher(ctrl)
	svc := NewOTPService(f.repos.Transactor, f.repos.OtpCodes, f.repos.Users, cipher, f.tokens, time.Minute, zaptest.NewLogger(t))
	user := f.member()

	cipher.EXPECT().Encrypt(gomock.Any(), gomock.Any()).Return("opaque", nil)
	_, err := svc.Issue(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	boom := errors.New("key unavailable")
	cipher.EXPECT().Decrypt(gomock.Any(), "opaque").Return("", boom)
	_, err = svc.Validate(context.Background(), user.Email, "123456")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped cipher error, got %v", err)
	}
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("cipher failure must not map to a domain kind: %v", err)
	}
}

// =============================================================================
// Concurrent validation
// =============================================================================

// slowCipher widens the window between reading and consuming a code
type slowCipher struct{ plainCipher }

func (c slowCipher) Decrypt(ctx context.Context, s string) (string, error) {
	time.Sleep(5 * time.Millisecond)
	return c.plainCipher.Decrypt(ctx, s)
}

func TestOTPServiceConcurrentValidation(t *testing.T) {
	const callers = 8

	newService := func(f *fixture) *OTPService {
		return NewOTPService(f.repos.Transactor, f.repos.OtpCodes, f.repos.Users, slowCipher{},
			f.tokens, time.Minute, zaptest.NewLogger(t))
	}

	run := func(svc *OTPService, email, code string) []error {
		errs := make([]error, callers)
		var wg sync.WaitGroup
		for i := range callers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, errs[i] = svc.Validate(context.Background(), email, code)
			}()
		}
		wg.Wait()
		return errs
	}

	t.Run("one code validates once", func(t *testing.T) {
		f := newFixture(t)
		svc := newService(f)
		user := f.user(domain.SystemRoleUser, false)
		code, err := svc.Issue(context.Background(), user.ID)
		require.NoError(t, err)

		succeeded := 0
		for _, err := range run(svc, user.Email, code) {
			if err == nil {
				succeeded++
				continue
			}
			assert.ErrorIs(t, err, domain.ErrCodeAlreadyConsumed)
		}
		assert.Equal(t, 1, succeeded)

		stored, err := f.repos.OtpCodes.GetLatestByUserID(context.Background(), user.ID)
		require.NoError(t, err)
		assert.NotNil(t, stored.ConsumedAt)
		assert.Equal(t, 1, stored.Attempts)
	})

	t.Run("failed attempts are all counted", func(t *testing.T) {
		f := newFixture(t)
		svc := newService(f)
		user := f.user(domain.SystemRoleUser, false)
		code, err := svc.Issue(context.Background(), user.ID)
		require.NoError(t, err)
		wrong := "000000"
		if code == wrong {
			wrong = "111111"
		}

		for _, err := range run(svc, user.Email, wrong) {
			assert.ErrorIs(t, err, domain.ErrInvalidCode)
		}

		stored, err := f.repos.OtpCodes.GetLatestByUserID(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Nil(t, stored.ConsumedAt)
		assert.Equal(t, callers, stored.Attempts)
	})
}
