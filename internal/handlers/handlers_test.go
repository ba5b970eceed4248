package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/recordbook/internal/handlers/auth"
	"github.com/GlebRadaev/recordbook/internal/handlers/records"
	"github.com/GlebRadaev/recordbook/internal/service"
	pkgauth "github.com/GlebRadaev/recordbook/pkg/auth"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	services := &service.Services{
		AuthService:   auth.NewMockService(ctrl),
		RecordService: records.NewMockService(ctrl),
	}

	h := New(services, pkgauth.NewJWTService("secret"))
	assert.NotNil(t, h, "Handlers should not be nil")
	assert.NotNil(t, h.AuthHandler)
	assert.NotNil(t, h.RecordHandler)
}

func newRouter(t *testing.T) (chi.Router, *MockAuthHandler, *MockRecordHandler) {
	ctrl := gomock.NewController(t)
	mockAuthHandler := NewMockAuthHandler(ctrl)
	mockRecordHandler := NewMockRecordHandler(ctrl)

	h := &Handlers{
		AuthHandler:   mockAuthHandler,
		RecordHandler: mockRecordHandler,
		Tokens:        pkgauth.NewJWTService("secret"),
	}

	router := chi.NewRouter()
	h.InitRoutes(router)
	return router, mockAuthHandler, mockRecordHandler
}

func TestInitRoutes_Unauthorized(t *testing.T) {
	router, mockAuthHandler, _ := newRouter(t)
	mockAuthHandler.EXPECT().Login(gomock.Any(), gomock.Any()).AnyTimes()

	tests := []struct {
		method string
		url    string
		status int
	}{
		{"POST", "/api/auth/login", http.StatusOK},
		{"GET", "/swagger/doc.json", http.StatusOK},
		{"GET", "/api/records", http.StatusUnauthorized},
		{"POST", "/api/records", http.StatusUnauthorized},
		{"GET", "/api/records/export", http.StatusUnauthorized},
		{"GET", "/api/records/1", http.StatusUnauthorized},
		{"PUT", "/api/records/1", http.StatusUnauthorized},
		{"PATCH", "/api/records/1", http.StatusUnauthorized},
		{"DELETE", "/api/records/1", http.StatusUnauthorized},
		{"GET", "/api/dashboard", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestInitRoutes_Authorized(t *testing.T) {
	router, _, mockRecordHandler := newRouter(t)

	token, err := pkgauth.NewJWTService("secret").GenerateJWT(1, time.Now().Add(time.Hour))
	require.NoError(t, err)

	ok := func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

	tests := []struct {
		method  string
		url     string
		prepare func()
	}{
		{"GET", "/api/records", func() { mockRecordHandler.EXPECT().List(gomock.Any(), gomock.Any()).Do(ok) }},
		{"POST", "/api/records", func() { mockRecordHandler.EXPECT().Create(gomock.Any(), gomock.Any()).Do(ok) }},
		{"GET", "/api/records/export", func() { mockRecordHandler.EXPECT().Export(gomock.Any(), gomock.Any()).Do(ok) }},
		{"GET", "/api/records/5", func() { mockRecordHandler.EXPECT().Get(gomock.Any(), gomock.Any()).Do(ok) }},
		{"PUT", "/api/records/5", func() { mockRecordHandler.EXPECT().Update(gomock.Any(), gomock.Any()).Do(ok) }},
		{"PATCH", "/api/records/5", func() { mockRecordHandler.EXPECT().Update(gomock.Any(), gomock.Any()).Do(ok) }},
		{"DELETE", "/api/records/5", func() { mockRecordHandler.EXPECT().Delete(gomock.Any(), gomock.Any()).Do(ok) }},
		{"GET", "/api/dashboard", func() { mockRecordHandler.EXPECT().Dashboard(gomock.Any(), gomock.Any()).Do(ok) }},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			tt.prepare()

			req := httptest.NewRequest(tt.method, tt.url, nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}
