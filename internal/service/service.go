package service

import (
	"github.com/GlebRadaev/recordbook/internal/config"
	"github.com/GlebRadaev/recordbook/internal/handlers/auth"
	"github.com/GlebRadaev/recordbook/internal/handlers/records"
	"github.com/GlebRadaev/recordbook/internal/repo"
	"github.com/GlebRadaev/recordbook/internal/service/authservice"
	"github.com/GlebRadaev/recordbook/internal/service/recordservice"
	pkgauth "github.com/GlebRadaev/recordbook/pkg/auth"
)

type Services struct {
	AuthService   auth.Service
	RecordService records.Service
}

func New(repo *repo.Repositories, cfg *config.Config, jwtService pkgauth.JWTServiceInterface) (*Services, error) {
	authService, err := authservice.New(authservice.Credentials{
		Login:    cfg.AdminLogin,
		Password: cfg.AdminPassword,
		TokenTTL: cfg.TokenTTL,
	}, &pkgauth.HashService{}, jwtService)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:   authService,
		RecordService: recordservice.New(repo.RecordRepo),
	}, nil
}
