package records

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/recordbook/internal/domain"
	"github.com/GlebRadaev/recordbook/internal/dto"
	"github.com/GlebRadaev/recordbook/internal/export"
	"github.com/GlebRadaev/recordbook/pkg/utils"
)

func NewMock(t *testing.T) (*RecordHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	return handler, service
}

type errorReader struct{}

func (r *errorReader) Read([]byte) (int, error) {
	return 0, errors.New("simulated read error")
}

func withID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func march(day int) time.Time {
	return time.Date(2024, time.March, day, 0, 0, 0, 0, time.UTC)
}

func sampleRecord() *domain.Record {
	return &domain.Record{
		ID:           1,
		CustomerName: "John Doe",
		Order:        "Rice 5kg",
		OrderDate:    march(15),
		Total:        100,
		Delivery:     10,
		Deposit:      40,
		Remain:       60,
		Location:     "Yangon",
		PhoneNumber:  "09-123456",
		Capital:      70,
		Kilo:         5,
		Profit:       30,
		ProfitTotal:  30,
		CapitalTotal: 70,
		CreatedAt:    march(15),
		UpdatedAt:    march(15),
	}
}

const createBody = `{"customerName":"John Doe","order":"Rice 5kg","orderDate":"2024-03-15",` +
	`"total":100,"delivery":10,"deposit":40,"location":"Yangon","phoneNumber":"09-123456",` +
	`"capital":70,"kilo":5}`

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp utils.Response
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	return resp.Error
}

func TestCreateHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful creation",
			body: createBody,
			prepareMock: func() {
				service.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, in *domain.RecordInput) (*domain.Record, error) {
						assert.Equal(t, "John Doe", *in.CustomerName)
						assert.Equal(t, march(15), *in.OrderDate)
						assert.Equal(t, 100.0, *in.Total)
						return sampleRecord(), nil
					})
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:          "Missing field",
			body:          `{"customerName":"John Doe"}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid order: is required",
		},
		{
			name:          "Negative total",
			body:          strings.Replace(createBody, `"total":100`, `"total":-1`, 1),
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid total: must be greater than or equal to 0",
		},
		{
			name:          "Total beyond float64 range",
			body:          strings.Replace(createBody, `"total":100`, `"total":"1e400"`, 1),
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid total: must be a number",
		},
		{
			name:          "Malformed body",
			body:          `{invalid json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid body: must be a JSON object",
		},
		{
			name: "Storage failure",
			body: createBody,
			prepareMock: func() {
				service.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Return(nil, &domain.StorageError{Op: "create record", Err: errors.New("connection refused")})
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest(http.MethodPost, "/api/records", bytes.NewReader([]byte(tt.body)))
			rr := httptest.NewRecorder()

			handler.Create(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, decodeError(t, rr))
				return
			}

			var resp dto.RecordResponseDTO
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, 1, resp.ID)
			assert.Equal(t, "2024-03-15", resp.OrderDate)
			assert.Equal(t, 60.0, resp.Remain)
		})
	}
}

func TestCreateHandler_ReadError(t *testing.T) {
	handler, _ := NewMock(t)

	req := httptest.NewRequest(http.MethodPost, "/api/records", &errorReader{})
	rr := httptest.NewRecorder()

	handler.Create(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Failed to read request body", decodeError(t, rr))
}

func TestCreateHandler_BodyTooLarge(t *testing.T) {
	handler, _ := NewMock(t)

	body := `{"customerName":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/records", strings.NewReader(body))
	rr := httptest.NewRecorder()

	handler.Create(rr, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Equal(t, "Request body too large", decodeError(t, rr))
}

func TestUpdateHandler_BodyTooLarge(t *testing.T) {
	handler, _ := NewMock(t)

	body := `{"order":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	req := withID(httptest.NewRequest(http.MethodPatch, "/api/records/1", strings.NewReader(body)), "1")
	rr := httptest.NewRecorder()

	handler.Update(rr, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Equal(t, "Request body too large", decodeError(t, rr))
}

func TestGetHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		id            string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Found",
			id:   "1",
			prepareMock: func() {
				service.EXPECT().Get(gomock.Any(), 1).Return(sampleRecord(), nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Not found",
			id:   "42",
			prepareMock: func() {
				service.EXPECT().Get(gomock.Any(), 42).Return(nil, domain.ErrRecordNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: "Record not found",
		},
		{
			name:          "Invalid id",
			id:            "abc",
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid id: must be a positive integer",
		},
		{
			name:          "Zero id",
			id:            "0",
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid id: must be a positive integer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := withID(httptest.NewRequest(http.MethodGet, "/api/records/"+tt.id, nil), tt.id)
			rr := httptest.NewRecorder()

			handler.Get(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, decodeError(t, rr))
			}
		})
	}
}

func TestUpdateHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		id            string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Partial update",
			id:   "1",
			body: `{"deposit":70,"remain":999}`,
			prepareMock: func() {
				service.EXPECT().
					Update(gomock.Any(), 1, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ int, in *domain.RecordInput) (*domain.Record, error) {
						require.NotNil(t, in.Deposit)
						assert.Equal(t, 70.0, *in.Deposit)
						assert.Nil(t, in.Total)
						assert.Nil(t, in.CustomerName)
						updated := sampleRecord()
						updated.Deposit, updated.Remain = 70, 30
						return updated, nil
					})
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Not found",
			id:   "7",
			body: `{"customerName":"Jane"}`,
			prepareMock: func() {
				service.EXPECT().Update(gomock.Any(), 7, gomock.Any()).Return(nil, domain.ErrRecordNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: "Record not found",
		},
		{
			name:          "Kilo beyond float64 range",
			id:            "1",
			body:          `{"kilo":"1e400"}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid kilo: must be a number",
		},
		{
			name:          "Empty customer name",
			id:            "1",
			body:          `{"customerName":"   "}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid customerName: must not be empty",
		},
		{
			name:          "Invalid id",
			id:            "-3",
			body:          `{}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid id: must be a positive integer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := withID(httptest.NewRequest(http.MethodPut, "/api/records/"+tt.id, bytes.NewReader([]byte(tt.body))), tt.id)
			rr := httptest.NewRecorder()

			handler.Update(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, decodeError(t, rr))
				return
			}

			var resp dto.RecordResponseDTO
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, 30.0, resp.Remain)
		})
	}
}

func TestDeleteHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		id           string
		prepareMock  func()
		expectedCode int
		expectedBody string
	}{
		{
			name: "Deleted",
			id:   "1",
			prepareMock: func() {
				service.EXPECT().Delete(gomock.Any(), 1).Return(nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"message":"Record deleted successfully"}`,
		},
		{
			name: "Not found",
			id:   "2",
			prepareMock: func() {
				service.EXPECT().Delete(gomock.Any(), 2).Return(domain.ErrRecordNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: `{"error":"Record not found"}`,
		},
		{
			name: "Storage failure",
			id:   "3",
			prepareMock: func() {
				service.EXPECT().Delete(gomock.Any(), 3).Return(&domain.StorageError{Op: "delete record", Err: errors.New("timeout")})
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := withID(httptest.NewRequest(http.MethodDelete, "/api/records/"+tt.id, nil), tt.id)
			rr := httptest.NewRecorder()

			handler.Delete(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.JSONEq(t, tt.expectedBody, rr.Body.String())
		})
	}
}

func TestListHandler(t *testing.T) {
	handler, service := NewMock(t)

	marchRange := &domain.DateRange{
		From: march(1),
		To:   time.Date(2024, time.March, 31, 23, 59, 59, 999999999, time.UTC),
	}

	tests := []struct {
		name          string
		query         string
		prepareMock   func()
		expectedCode  int
		expectedLen   int
		expectedError string
	}{
		{
			name:  "Month and search",
			query: "?month=3&year=2024&q=john",
			prepareMock: func() {
				service.EXPECT().
					List(gomock.Any(), domain.RecordFilter{Range: marchRange, Query: "john"}).
					Return([]domain.Record{*sampleRecord()}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  1,
		},
		{
			name:  "No filter returns empty array",
			query: "",
			prepareMock: func() {
				service.EXPECT().List(gomock.Any(), domain.RecordFilter{}).Return(nil, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  0,
		},
		{
			name:          "Month without year",
			query:         "?month=3",
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid year: is required when month is set",
		},
		{
			name:          "Month out of range",
			query:         "?month=13&year=2024",
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid month: must be between 1 and 12",
		},
		{
			name:  "Storage failure",
			query: "",
			prepareMock: func() {
				service.EXPECT().List(gomock.Any(), domain.RecordFilter{}).Return(nil, &domain.StorageError{Op: "list records", Err: errors.New("down")})
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest(http.MethodGet, "/api/records"+tt.query, nil)
			rr := httptest.NewRecorder()

			handler.List(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, decodeError(t, rr))
				return
			}

			var resp []dto.RecordResponseDTO
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.NotNil(t, resp)
			assert.Len(t, resp, tt.expectedLen)
		})
	}
}

func TestDashboardHandler(t *testing.T) {
	handler, service := NewMock(t)

	service.EXPECT().
		Dashboard(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter domain.RecordFilter) (*domain.Dashboard, error) {
			require.NotNil(t, filter.Range)
			assert.Equal(t, march(1), filter.Range.From)
			return &domain.Dashboard{
				Records: []domain.Record{*sampleRecord()},
				Stats:   domain.Stats{TotalRecords: 1, TotalRevenue: 100, TotalProfit: 30},
			}, nil
		})

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard?month=3&year=2024", nil)
	rr := httptest.NewRecorder()

	handler.Dashboard(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp dto.DashboardResponseDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Len(t, resp.Records, 1)
	assert.Equal(t, 1, resp.Stats.TotalRecords)
	assert.Equal(t, 100.0, resp.Stats.TotalRevenue)
	assert.Equal(t, 30.0, resp.Stats.TotalProfit)
}

func TestExportHandler(t *testing.T) {
	handler, service := NewMock(t)

	service.EXPECT().
		List(gomock.Any(), gomock.Any()).
		Return([]domain.Record{*sampleRecord()}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/records/export?month=3&year=2024", nil)
	rr := httptest.NewRecorder()

	handler.Export(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, export.ContentType, rr.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="records-2024-03.xlsx"`, rr.Header().Get("Content-Disposition"))

	f, err := excelize.OpenReader(rr.Body)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "John Doe", rows[1][1])
}

func TestExportHandler_InvalidFilter(t *testing.T) {
	handler, _ := NewMock(t)

	req := httptest.NewRequest(http.MethodGet, "/api/records/export?year=2024", nil)
	rr := httptest.NewRecorder()

	handler.Export(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "invalid month: is required when year is set", decodeError(t, rr))
}
