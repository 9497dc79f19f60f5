package services

import (
	"context"
	"errors"
	"strings"

	"petfind/internal/adapters/persistence/models"
	"petfind/internal/adapters/persistence/repositories"
	"petfind/internal/core/domain"
	"petfind/internal/pkg/password"

	"go.uber.org/zap"
)

// AuthService handles account signup, verification and login
type AuthService struct {
	tx           repositories.Transactor
	userRepo     repositories.UserRepository
	roleRepo     repositories.SystemRoleRepository
	otp          *OTPService
	tokens       TokenIssuer
	notify       Dispatcher
	msgs         *Messages
	log          *zap.Logger
	passwordCost int
}

// NewAuthService creates a new auth service
func NewAuthService(
	tx repositories.Transactor,
	userRepo repositories.UserRepository,
	roleRepo repositories.SystemRoleRepository,
	otp *OTPService,
	tokens TokenIssuer,
	notify Dispatcher,
	msgs *Messages,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		tx:           tx,
		userRepo:     userRepo,
		roleRepo:     roleRepo,
		otp:          otp,
		tokens:       tokens,
		notify:       notify,
		msgs:         msgs,
		log:          log.Named("auth"),
		passwordCost: password.DefaultCost,
	}
}

// SetPasswordCost overrides the bcrypt cost (tests use bcrypt.MinCost)
func (s *AuthService) SetPasswordCost(cost int) {
	s.passwordCost = cost
}

// SignUpInput represents registration input
type SignUpInput struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	DocumentID string `json:"document_id"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Phone      string `json:"phone"`
}

// SignInInput represents login input
type SignInInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in *SignUpInput) normalize() error {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.DocumentID = strings.TrimSpace(in.DocumentID)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if in.Email == "" || in.DocumentID == "" || in.FirstName == "" || in.LastName == "" ||
		!password.ValidatePassword(in.Password) {
		return domain.ErrInvalidSignup
	}
	return nil
}

// SignUp registers an unverified user and mails a verification code
func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (*models.User, error) {
	// 1. Validate input
	if err := input.normalize(); err != nil {
		return nil, err
	}

	// 2. Check email and document uniqueness
	exists, err := s.userRepo.ExistsByEmailOrDocument(ctx, input.Email, input.DocumentID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	// 3. Resolve default role
	role, err := s.roleRepo.GetByName(ctx, domain.DefaultSystemRole)
	if err != nil {
		return nil, err
	}

	// 4. Hash password
	hashed, err := password.HashWithCost(input.Password, s.passwordCost)
	if err != nil {
		return nil, err
	}

	// 5. Create user and first code together
	user := &models.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		DocumentID:   input.DocumentID,
		Email:        input.Email,
		Password:     hashed,
		Phone:        input.Phone,
		IsVerified:   false,
		SystemRoleID: role.ID,
	}
	var code string
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.userRepo.Create(ctx, user); err != nil {
			return err
		}
		code, err = s.otp.Issue(ctx, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	user.SystemRole = role

	// 6. Mail the code
	s.notify.Dispatch(ctx, s.msgs.OtpCode(user, code, s.otp.TTL()))

	s.log.Info("user registered", zap.Uint("user_id", user.ID))
	return user, nil
}

// ResendCode issues a new code for an unverified account
func (s *AuthService) ResendCode(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	if user.IsVerified {
		return domain.ErrUserAlreadyVerified
	}

	code, err := s.otp.Issue(ctx, user.ID)
	if err != nil {
		return err
	}
	s.notify.Dispatch(ctx, s.msgs.OtpCode(user, code, s.otp.TTL()))
	return nil
}

// ValidateCode verifies the email and opens a session
func (s *AuthService) ValidateCode(ctx context.Context, email, code string) (*domain.Session, error) {
	return s.otp.Validate(ctx, strings.ToLower(strings.TrimSpace(email)), strings.TrimSpace(code))
}

// SignIn authenticates a verified user
func (s *AuthService) SignIn(ctx context.Context, input SignInInput) (*domain.Session, error) {
	// 1. Find user by email
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Verify password
	if !password.Verify(input.Password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	// 3. Require verified email
	if !user.IsVerified {
		return nil, domain.ErrUserNotVerified
	}

	// 4. Issue token
	token, err := s.tokens.Issue(user.ID, user.Email, user.RoleName())
	if err != nil {
		return nil, err
	}

	s.log.Info("user signed in", zap.Uint("user_id", user.ID))
	return &domain.Session{
		AccessToken: token,
		UserID:      user.ID,
		Email:       user.Email,
		Role:        user.RoleName(),
	}, nil
}

// Profile returns the user with its system role
func (s *AuthService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}
