package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"communityhub-be/internal/config"
	"communityhub-be/internal/dto"
	"communityhub-be/internal/pkg/apperror"
	"communityhub-be/internal/repository/specification"
	"communityhub-be/internal/repository/unitofwork"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

type IOAuthService interface {
	GetLoginURL() (string, error)
	HandleCallback(ctx context.Context, code string) (*dto.LoginResponse, error)
}

type oauthService struct {
	uowFactory  unitofwork.RepositoryFactory
	authService IAuthService
	googleConf  *oauth2.Config
}

// NewOAuthService wires Google sign-in for operators. Unlike a consumer
// product there is no self-registration here: the Google account must match
// an operator row provisioned via cmd/seed.
func NewOAuthService(uowFactory unitofwork.RepositoryFactory, authService IAuthService, cfg config.OAuthConfig) IOAuthService {
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
		uowFactory:  uowFactory,
		authService: authService,
		googleConf:  conf,
	}
}

func (s *oauthService) GetLoginURL() (string, error) {
	if s.googleConf.ClientID == "" {
		return "", apperror.NewValidation("google oauth is not configured")
	}

	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	state := base64.URLEncoding.EncodeToString(b)

	return s.googleConf.AuthCodeURL(state), nil
}

func (s *oauthService) HandleCallback(ctx context.Context, code string) (*dto.LoginResponse, error) {
	token, err := s.googleConf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + token.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed getting user info: %w", err)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed reading user info: %w", err)
	}

	var googleUser struct {
		Email         string `json:"email"`
		VerifiedEmail bool   `json:"verified_email"`
		Name          string `json:"name"`
	}
	if err := json.Unmarshal(content, &googleUser); err != nil {
		return nil, err
	}
	if !googleUser.VerifiedEmail {
		return nil, apperror.NewAuthorization("google account email is not verified")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	operator, err := uow.OperatorRepository().FindOne(ctx, specification.ByEmail{Email: googleUser.Email})
	if err != nil {
		return nil, err
	}
	if operator == nil {
		return nil, apperror.NewAuthorization("no operator account for this google identity")
	}

	signed, err := s.authService.IssueToken(operator.Id.String(), operator.Email)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:    signed,
		Operator: operator.Id,
		Email:    operator.Email,
		Name:     operator.Name,
	}, nil
}
