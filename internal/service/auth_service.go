package service

import (
	"context"
	"time"

	"communityhub-be/internal/dto"
	"communityhub-be/internal/pkg/apperror"
	"communityhub-be/internal/repository/specification"
	"communityhub-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const operatorTokenExpiry = 24 * time.Hour

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	IssueToken(operatorId, email string) (string, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	audit      IAuditService
	jwtSecret  string
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, audit IAuditService, jwtSecret string) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		audit:      audit,
		jwtSecret:  jwtSecret,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	operator, err := uow.OperatorRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if operator == nil {
		return nil, apperror.NewAuthorization("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(operator.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.NewAuthorization("invalid credentials")
	}

	token, err := s.IssueToken(operator.Id.String(), operator.Email)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "auth.login", operator.Id.String(), operator.Email)

	return &dto.LoginResponse{
		Token:    token,
		Operator: operator.Id,
		Email:    operator.Email,
		Name:     operator.Name,
	}, nil
}

func (s *authService) IssueToken(operatorId, email string) (string, error) {
	claims := jwt.MapClaims{
		"operator_id":    operatorId,
		"operator_email": email,
		"exp":            time.Now().Add(operatorTokenExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
