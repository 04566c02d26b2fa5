package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"personal-notes-be/internal/dto"
	"personal-notes-be/internal/entity"
	"personal-notes-be/internal/pkg/logger"
	"personal-notes-be/internal/pkg/serverutils"
	"personal-notes-be/internal/pkg/session"
	"personal-notes-be/internal/repository/specification"
	"personal-notes-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// otpTTL is the validity window of a verification code.
const otpTTL = 10 * time.Minute

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	VerifyOTP(ctx context.Context, req *dto.VerifyOTPRequest) (*dto.SessionResult, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResult, error)
	ResendOTP(ctx context.Context, req *dto.ResendOTPRequest) error
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	sessions   *session.Manager
	mailQueue  IPublisherService
	logger     logger.ILogger
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	sessions *session.Manager,
	mailQueue IPublisherService,
	log logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		sessions:   sessions,
		mailQueue:  mailQueue,
		logger:     log,
	}
}

// generateOTP returns a 6-digit code in [100000, 999999] and its expiry.
// Codes are not unique across users; the verify lookup is scoped by
// email+code+expiry so collisions are harmless.
func generateOTP() (string, time.Time, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", time.Time{}, err
	}
	code := fmt.Sprintf("%06d", n.Int64()+100000)
	return code, time.Now().Add(otpTTL), nil
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, serverutils.NewBadRequestError("User already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	otpCode, otpExpiresAt, err := generateOTP()
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Id:            uuid.New(),
		Email:         req.Email,
		FullName:      req.Name,
		PasswordHash:  &hashStr,
		EmailVerified: false,
		OTP:           &otpCode,
		OTPExpiresAt:  &otpExpiresAt,
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	s.dispatchOTP(ctx, user.Email, otpCode)

	return &dto.RegisterResponse{UserId: user.Id}, nil
}

func (s *authService) VerifyOTP(ctx context.Context, req *dto.VerifyOTPRequest) (*dto.SessionResult, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// One compound lookup: email, code, and expiry strictly in the future.
	// Matching and expiry checking in separate steps would let an expired
	// code slip through between the read and the comparison.
	user, err := uow.UserRepository().FindOne(ctx,
		specification.ByEmail{Email: req.Email},
		specification.ByOTP{Code: req.OTP, Now: time.Now()},
	)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Same message for a wrong code and an expired one.
		return nil, serverutils.NewBadRequestError("Invalid or expired OTP")
	}

	user.EmailVerified = true
	user.OTP = nil
	user.OTPExpiresAt = nil
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}

	return s.issueSession(user)
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResult, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	// Unknown email, OAuth-only account and wrong password all share one
	// message so the response never reveals whether the account exists.
	if user == nil || user.PasswordHash == nil {
		return nil, serverutils.NewBadRequestError("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, serverutils.NewBadRequestError("Invalid credentials")
	}

	if !user.EmailVerified {
		return nil, serverutils.NewBadRequestError("Please verify your email first")
	}

	return s.issueSession(user)
}

func (s *authService) ResendOTP(ctx context.Context, req *dto.ResendOTPRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx,
		specification.ByEmail{Email: req.Email},
		specification.Unverified{},
	)
	if err != nil {
		return err
	}
	if user == nil {
		return serverutils.NewBadRequestError("User not found or already verified")
	}

	otpCode, otpExpiresAt, err := generateOTP()
	if err != nil {
		return err
	}
	user.OTP = &otpCode
	user.OTPExpiresAt = &otpExpiresAt
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return err
	}

	s.dispatchOTP(ctx, user.Email, otpCode)
	return nil
}

func (s *authService) issueSession(user *entity.User) (*dto.SessionResult, error) {
	token, err := s.sessions.Generate(user.Id)
	if err != nil {
		return nil, err
	}
	return &dto.SessionResult{
		Token: token,
		User: dto.UserResponse{
			Id:    user.Id,
			Name:  user.FullName,
			Email: user.Email,
		},
	}, nil
}

func (s *authService) dispatchOTP(ctx context.Context, email, code string) {
	err := s.mailQueue.Publish(ctx, dto.SendOTPMailMessage{Email: email, OTP: code})
	if err != nil {
		s.logger.Error("Auth", "Failed to queue OTP mail", map[string]interface{}{
			"error": err.Error(),
			"email": email,
		})
	}
}
