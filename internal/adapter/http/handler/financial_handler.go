package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ayemen27/siteledger/internal/adapter/http/dto"
	"github.com/ayemen27/siteledger/internal/domain"
)

// FinancialService defines the behavior needed by FinancialHandler.
type FinancialService interface {
	GetProjectFinancialSummary(ctx context.Context, projectID, date, dateFrom, dateTo string) (*domain.FinancialSummary, error)
	GetDailyFinancialSummary(ctx context.Context, projectID, date string) (*domain.FinancialSummary, error)
	GetAllProjectsStats(ctx context.Context, date, dateFrom, dateTo string) ([]*domain.FinancialSummary, error)
	GetTotalDailyFinancialSummary(ctx context.Context, date string) (*domain.FinancialSummary, error)
	PersistDailySnapshot(ctx context.Context, projectID string, day time.Time) (*domain.DailySnapshot, error)
	ListSnapshots(ctx context.Context, projectID string, limit, offset int) ([]*domain.DailySnapshot, error)
}

// FinancialHandler handles financial summary HTTP requests.
type FinancialHandler struct {
	financialUC FinancialService
}

// NewFinancialHandler creates a new FinancialHandler.
func NewFinancialHandler(financialUC FinancialService) *FinancialHandler {
	return &FinancialHandler{financialUC: financialUC}
}

// ProjectSummary returns a project's summary for the period given by the
// date, dateFrom and dateTo query parameters.
func (h *FinancialHandler) ProjectSummary(w http.ResponseWriter, r *http.Request) {
	q := dto.SummaryQueryFromValues(r.URL.Query())

	summary, err := h.financialUC.GetProjectFinancialSummary(r.Context(), chi.URLParam(r, "projectID"), q.Date, q.DateFrom, q.DateTo)
	if err != nil {
		writeDomainError(w, "failed to get project summary", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SummaryFromDomain(summary))
}

// DailySummary returns a project's summary for a single day.
func (h *FinancialHandler) DailySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.financialUC.GetDailyFinancialSummary(r.Context(), chi.URLParam(r, "projectID"), chi.URLParam(r, "date"))
	if err != nil {
		writeDomainError(w, "failed to get daily summary", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SummaryFromDomain(summary))
}

// ProjectsStats returns one summary per active project.
func (h *FinancialHandler) ProjectsStats(w http.ResponseWriter, r *http.Request) {
	q := dto.SummaryQueryFromValues(r.URL.Query())

	summaries, err := h.financialUC.GetAllProjectsStats(r.Context(), q.Date, q.DateFrom, q.DateTo)
	if err != nil {
		writeDomainError(w, "failed to get project stats", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ProjectsStatsResponse{
		Projects: dto.SummariesFromDomain(summaries),
		Count:    len(summaries),
	})
}

// DailyTotal returns the all-projects total for a single day.
func (h *FinancialHandler) DailyTotal(w http.ResponseWriter, r *http.Request) {
	summary, err := h.financialUC.GetTotalDailyFinancialSummary(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		writeDomainError(w, "failed to get daily total", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SummaryFromDomain(summary))
}

// PersistSnapshot recomputes and stores a project's snapshot for a day.
func (h *FinancialHandler) PersistSnapshot(w http.ResponseWriter, r *http.Request) {
	day, err := domain.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	snapshot, err := h.financialUC.PersistDailySnapshot(r.Context(), chi.URLParam(r, "projectID"), day)
	if err != nil {
		writeDomainError(w, "failed to persist snapshot", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.SnapshotFromDomain(snapshot))
}

// ListSnapshots returns a project's snapshots, newest first.
func (h *FinancialHandler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	page := dto.PageQueryFromValues(r.URL.Query())

	snapshots, err := h.financialUC.ListSnapshots(r.Context(), chi.URLParam(r, "projectID"), page.Limit, page.Offset)
	if err != nil {
		writeDomainError(w, "failed to list snapshots", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SnapshotsFromDomain(snapshots))
}
