package handlers

//go:generate mockgen -destination=mock_handlers.go -package=handlers github.com/GlebRadaev/recordbook/internal/handlers AuthHandler,RecordHandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/GlebRadaev/recordbook/docs"
	authhandlers "github.com/GlebRadaev/recordbook/internal/handlers/auth"
	recordhandlers "github.com/GlebRadaev/recordbook/internal/handlers/records"
	"github.com/GlebRadaev/recordbook/internal/service"
	"github.com/GlebRadaev/recordbook/pkg/auth"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
}

type RecordHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
	Dashboard(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler   AuthHandler
	RecordHandler RecordHandler
	Tokens        auth.TokenValidator
}

func New(s *service.Services, tokens auth.TokenValidator) *Handlers {
	return &Handlers{
		AuthHandler:   authhandlers.New(s.AuthService),
		RecordHandler: recordhandlers.New(s.RecordService),
		Tokens:        tokens,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", h.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(h.Tokens))
			r.Route("/records", func(r chi.Router) {
				r.Get("/", h.RecordHandler.List)
				r.Post("/", h.RecordHandler.Create)
				r.Get("/export", h.RecordHandler.Export)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.RecordHandler.Get)
					r.Put("/", h.RecordHandler.Update)
					r.Patch("/", h.RecordHandler.Update)
					r.Delete("/", h.RecordHandler.Delete)
				})
			})
			r.Get("/dashboard", h.RecordHandler.Dashboard)
		})
	})

	return r
}
