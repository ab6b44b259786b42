package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/punchclock-io/punchclock-backend-go/internal/domain/report"
	"github.com/punchclock-io/punchclock-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	UserReport(w http.ResponseWriter, r *http.Request)
	UserRangeReport(w http.ResponseWriter, r *http.Request)
	CompanyReport(w http.ResponseWriter, r *http.Request)
	Overview(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

// UserReport implements ReportHandler.
func (h *ReportHandlerImpl) UserReport(w http.ResponseWriter, r *http.Request) {
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))

	reportReq := report.UserReportRequest{
		UserEmail: r.URL.Query().Get("user_email"),
		Year:      year,
		Month:     month,
	}

	userReport, err := h.reportService.GenerateUserReport(r.Context(), reportReq)
	if err != nil {
		slog.Error("UserReport service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, userReport)
}

// UserRangeReport implements ReportHandler.
func (h *ReportHandlerImpl) UserRangeReport(w http.ResponseWriter, r *http.Request) {
	reportReq := report.UserRangeReportRequest{
		UserEmail: r.URL.Query().Get("user_email"),
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	userReport, err := h.reportService.GenerateUserRangeReport(r.Context(), reportReq)
	if err != nil {
		slog.Error("UserRangeReport service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, userReport)
}

// CompanyReport implements ReportHandler.
func (h *ReportHandlerImpl) CompanyReport(w http.ResponseWriter, r *http.Request) {
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))

	reportReq := report.CompanyReportRequest{
		CompanyID: r.URL.Query().Get("company_id"),
		Year:      year,
		Month:     month,
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	companyReport, err := h.reportService.GenerateCompanyReport(r.Context(), reportReq)
	if err != nil {
		slog.Error("CompanyReport service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, companyReport)
}

// Overview implements ReportHandler.
func (h *ReportHandlerImpl) Overview(w http.ResponseWriter, r *http.Request) {
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))

	overviewReq := report.OverviewRequest{
		Year:  year,
		Month: month,
	}

	overview, err := h.reportService.GenerateOverview(r.Context(), overviewReq)
	if err != nil {
		slog.Error("Overview service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, overview)
}
