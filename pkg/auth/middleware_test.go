package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func TestMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	jwtService := NewMockJWTServiceInterface(ctrl)

	var seenID int
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID, _ = UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := Middleware(jwtService)(next)

	tests := []struct {
		name           string
		header         string
		prepareMock    func()
		expectedStatus int
		expectedUserID int
	}{
		{
			name:           "Missing header",
			prepareMock:    func() {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Not a bearer token",
			header:         "Basic YWRtaW46c2VjcmV0",
			prepareMock:    func() {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "Invalid token",
			header: "Bearer broken",
			prepareMock: func() {
				jwtService.EXPECT().ValidateToken("broken").Return(nil, errors.New("invalid token"))
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "Valid token",
			header: "Bearer good",
			prepareMock: func() {
				jwtService.EXPECT().ValidateToken("good").Return(&Claims{UserID: 1}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedUserID: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			seenID = 0

			req := httptest.NewRequest(http.MethodGet, "/api/records", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedUserID, seenID)
		})
	}
}
