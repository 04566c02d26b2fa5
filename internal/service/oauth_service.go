package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"personal-notes-be/internal/config"
	"personal-notes-be/internal/dto"
	"personal-notes-be/internal/entity"
	"personal-notes-be/internal/pkg/logger"
	"personal-notes-be/internal/pkg/session"
	"personal-notes-be/internal/repository/specification"
	"personal-notes-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type IOAuthService interface {
	GetLoginURL(provider string) (string, error)
	HandleCallback(ctx context.Context, provider string, code string) (*dto.SessionResult, error)
}

type oauthService struct {
	uowFactory unitofwork.RepositoryFactory
	sessions   *session.Manager
	googleConf *oauth2.Config
	logger     logger.ILogger
}

func NewOAuthService(
	uowFactory unitofwork.RepositoryFactory,
	sessions *session.Manager,
	cfg config.AuthConfig,
	log logger.ILogger,
) IOAuthService {
	conf := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	return &oauthService{
		uowFactory: uowFactory,
		sessions:   sessions,
		googleConf: conf,
		logger:     log,
	}
}

func (s *oauthService) GetLoginURL(provider string) (string, error) {
	if provider != "google" {
		return "", errors.New("unsupported provider")
	}

	b := make([]byte, 16)
	rand.Read(b)
	state := base64.URLEncoding.EncodeToString(b)

	return s.googleConf.AuthCodeURL(state), nil
}

type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

func (s *oauthService) HandleCallback(ctx context.Context, provider string, code string) (*dto.SessionResult, error) {
	if provider != "google" {
		return nil, errors.New("unsupported provider")
	}

	token, err := s.googleConf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	googleUser, err := s.fetchUserInfo(token.AccessToken)
	if err != nil {
		return nil, err
	}

	user, err := s.resolveUser(ctx, googleUser)
	if err != nil {
		return nil, err
	}

	signedToken, err := s.sessions.Generate(user.Id)
	if err != nil {
		return nil, err
	}

	return &dto.SessionResult{
		Token: signedToken,
		User: dto.UserResponse{
			Id:    user.Id,
			Name:  user.FullName,
			Email: user.Email,
		},
	}, nil
}

func (s *oauthService) fetchUserInfo(accessToken string) (*googleUserInfo, error) {
	resp, err := http.Get(googleUserInfoURL + "?access_token=" + accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed getting user info: %w", err)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed reading user info: %w", err)
	}

	var info googleUserInfo
	if err := json.Unmarshal(content, &info); err != nil {
		return nil, err
	}
	if info.ID == "" || info.Email == "" {
		return nil, errors.New("incomplete user info from provider")
	}
	return &info, nil
}

// resolveUser maps the provider identity onto a local account. Order:
// reuse by google id, link an existing account with the same email, or
// create a fresh pre-verified user. The provider's identity proof
// substitutes for OTP verification.
func (s *oauthService) resolveUser(ctx context.Context, googleUser *googleUserInfo) (*entity.User, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.UserRepository()

	user, err := repo.FindOne(ctx, specification.ByGoogleId{GoogleId: googleUser.ID})
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	user, err = repo.FindOne(ctx, specification.ByEmail{Email: googleUser.Email})
	if err != nil {
		return nil, err
	}
	if user != nil {
		googleId := googleUser.ID
		user.GoogleId = &googleId
		user.EmailVerified = true
		if err := repo.Update(ctx, user); err != nil {
			return nil, err
		}
		s.logger.Info("OAuth", "Linked Google identity to existing account", map[string]interface{}{
			"user_id": user.Id.String(),
		})
		return user, nil
	}

	googleId := googleUser.ID
	user = &entity.User{
		Id:            uuid.New(),
		GoogleId:      &googleId,
		Email:         googleUser.Email,
		FullName:      googleUser.Name,
		PasswordHash:  nil,
		EmailVerified: true,
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("OAuth", "Created user from Google identity", map[string]interface{}{
		"user_id": user.Id.String(),
	})
	return user, nil
}
