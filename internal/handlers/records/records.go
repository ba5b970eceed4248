package records

//go:generate mockgen -destination=mock_service.go -package=records github.com/GlebRadaev/recordbook/internal/handlers/records Service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/recordbook/internal/domain"
	"github.com/GlebRadaev/recordbook/internal/dto"
	"github.com/GlebRadaev/recordbook/internal/export"
	"github.com/GlebRadaev/recordbook/internal/ledger"
	"github.com/GlebRadaev/recordbook/pkg/utils"
)

// maxBodyBytes caps create and update payloads.
const maxBodyBytes = 1 << 20

type Service interface {
	Create(ctx context.Context, in *domain.RecordInput) (*domain.Record, error)
	Get(ctx context.Context, id int) (*domain.Record, error)
	Update(ctx context.Context, id int, in *domain.RecordInput) (*domain.Record, error)
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, filter domain.RecordFilter) ([]domain.Record, error)
	Dashboard(ctx context.Context, filter domain.RecordFilter) (*domain.Dashboard, error)
}

type RecordHandler struct {
	recordService Service
}

func New(recordService Service) *RecordHandler {
	return &RecordHandler{
		recordService: recordService,
	}
}

// List godoc
//
//	@Summary		List records
//	@Description	Records of the given month (all when month and year are omitted) matching the search text, newest order date first
//	@Tags			Records
//	@Produce		json
//	@Param			month	query	int		false	"Month 1-12, requires year"
//	@Param			year	query	int		false	"Year, requires month"
//	@Param			q		query	string	false	"Case-insensitive search on customer name, order, location and phone number"
//	@Security		BearerAuth
//	@Success		200	{array}		dto.RecordResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid filter"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/records [get]
func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	records, err := h.recordService.List(r.Context(), filter)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewRecordListResponse(records))
}

// Create godoc
//
//	@Summary		Create a record
//	@Description	Store a new record. remain, profit, profitTotal and capitalTotal are computed by the server
//	@Tags			Records
//	@Accept			json
//	@Produce		json
//	@Param			request	body	dto.RecordRequestDTO	true	"Record fields"
//	@Security		BearerAuth
//	@Success		201	{object}	dto.RecordResponseDTO
//	@Failure		400	{object}	utils.Response	"Validation failed"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		413	{object}	utils.Response	"Request body too large"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/records [post]
func (h *RecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	in, err := ledger.DecodeInput(body, ledger.ModeCreate)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	record, err := h.recordService.Create(r.Context(), in)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.NewRecordResponse(record))
}

// Get godoc
//
//	@Summary		Get a record
//	@Tags			Records
//	@Produce		json
//	@Param			id	path	int	true	"Record ID"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.RecordResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid id"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Record not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/records/{id} [get]
func (h *RecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	record, err := h.recordService.Get(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewRecordResponse(record))
}

// Update godoc
//
//	@Summary		Update a record
//	@Description	Partial update. Fields left out keep their stored values. Derived fields are recomputed when total, deposit or capital is sent
//	@Tags			Records
//	@Accept			json
//	@Produce		json
//	@Param			id		path	int						true	"Record ID"
//	@Param			request	body	dto.RecordRequestDTO	true	"Any subset of record fields"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.RecordResponseDTO
//	@Failure		400	{object}	utils.Response	"Validation failed"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		413	{object}	utils.Response	"Request body too large"
//	@Failure		404	{object}	utils.Response	"Record not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/records/{id} [put]
//	@Router			/api/records/{id} [patch]
func (h *RecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	in, err := ledger.DecodeInput(body, ledger.ModeUpdate)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	record, err := h.recordService.Update(r.Context(), id, in)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewRecordResponse(record))
}

// Delete godoc
//
//	@Summary		Delete a record
//	@Tags			Records
//	@Produce		json
//	@Param			id	path	int	true	"Record ID"
//	@Security		BearerAuth
//	@Success		200	{object}	utils.Response	"Record deleted successfully"
//	@Failure		400	{object}	utils.Response	"Invalid id"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Record not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/records/{id} [delete]
func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	if err := h.recordService.Delete(r.Context(), id); err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithMessage(w, http.StatusOK, "Record deleted successfully")
}

// Dashboard godoc
//
//	@Summary		Dashboard data
//	@Description	Filtered records together with the totals of the selected month
//	@Tags			Records
//	@Produce		json
//	@Param			month	query	int		false	"Month 1-12, requires year"
//	@Param			year	query	int		false	"Year, requires month"
//	@Param			q		query	string	false	"Search text"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.DashboardResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid filter"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/dashboard [get]
func (h *RecordHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	dashboard, err := h.recordService.Dashboard(r.Context(), filter)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewDashboardResponse(dashboard))
}

// Export godoc
//
//	@Summary		Export records
//	@Description	Download the filtered records as an XLSX workbook
//	@Tags			Records
//	@Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//	@Param			month	query	int		false	"Month 1-12, requires year"
//	@Param			year	query	int		false	"Year, requires month"
//	@Param			q		query	string	false	"Search text"
//	@Security		BearerAuth
//	@Success		200	{file}		file
//	@Failure		400	{object}	utils.Response	"Invalid filter"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/records/export [get]
func (h *RecordHandler) Export(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	records, err := h.recordService.List(r.Context(), filter)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, records); err != nil {
		zap.L().Error("can't render export", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFileName(filter)+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		zap.L().Error("can't write export", zap.Error(err))
	}
}

func exportFileName(filter domain.RecordFilter) string {
	if filter.Range == nil {
		return "records.xlsx"
	}
	return "records-" + filter.Range.From.Format("2006-01") + ".xlsx"
}

// readBody reads at most maxBodyBytes of the request body. On failure it
// writes the error response and reports false.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.RespondWithError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return nil, false
		}
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to read request body")
		return nil, false
	}
	return body, true
}

func parseID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, &domain.ValidationError{Field: "id", Reason: "must be a positive integer"}
	}
	return id, nil
}

func parseFilter(r *http.Request) (domain.RecordFilter, error) {
	q := r.URL.Query()
	return ledger.ParseFilter(q.Get("month"), q.Get("year"), q.Get("q"))
}

func respondWithServiceError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		utils.RespondWithError(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, domain.ErrRecordNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Record not found")
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
