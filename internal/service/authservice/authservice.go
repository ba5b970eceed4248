package authservice

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/recordbook/internal/domain"
	"github.com/GlebRadaev/recordbook/pkg/auth"
)

// OperatorID is the user id carried by every issued token.
const OperatorID = 1

var ErrInvalidCredentials = errors.New("invalid credentials")

type Credentials struct {
	Login    string
	Password string
	TokenTTL time.Duration
}

type Service struct {
	login        string
	passwordHash string
	tokenTTL     time.Duration
	hashService  auth.HashServiceInterface
	jwtService   auth.JWTServiceInterface
	now          func() time.Time
}

// New hashes the configured operator password once; Authenticate compares
// against that hash.
func New(creds Credentials, hashService auth.HashServiceInterface, jwtService auth.JWTServiceInterface) (*Service, error) {
	hashed, err := hashService.HashPassword(creds.Password)
	if err != nil {
		zap.L().Error("can't hash operator password", zap.Error(err))
		return nil, err
	}
	return &Service{
		login:        creds.Login,
		passwordHash: hashed,
		tokenTTL:     creds.TokenTTL,
		hashService:  hashService,
		jwtService:   jwtService,
		now:          time.Now,
	}, nil
}

func (s *Service) Authenticate(_ context.Context, login, password string) (*domain.User, error) {
	if login != s.login {
		zap.L().Info("invalid credentials", zap.String("login", login))
		return nil, ErrInvalidCredentials
	}
	if ok := s.hashService.ComparePassword(s.passwordHash, password); !ok {
		zap.L().Info("invalid credentials", zap.String("login", login))
		return nil, ErrInvalidCredentials
	}
	zap.L().Info("user successfully authenticated", zap.String("login", login))
	return &domain.User{ID: OperatorID, Login: login}, nil
}

func (s *Service) GenerateToken(userID int) (string, error) {
	expirationTime := s.now().Add(s.tokenTTL)

	token, err := s.jwtService.GenerateJWT(userID, expirationTime)
	if err != nil {
		zap.L().Error("can't generate token", zap.Error(err))
		return "", err
	}
	return token, nil
}
