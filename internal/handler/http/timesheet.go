package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/punchclock-io/punchclock-backend-go/internal/domain/timesheet"
	"github.com/punchclock-io/punchclock-backend-go/internal/handler/http/response"
)

type TimesheetHandler interface {
	PunchIn(w http.ResponseWriter, r *http.Request)
	PunchOut(w http.ResponseWriter, r *http.Request)
	PunchStatus(w http.ResponseWriter, r *http.Request)
	CreateTimestamp(w http.ResponseWriter, r *http.Request)
	EditTimestamp(w http.ResponseWriter, r *http.Request)
	DeleteTimestamp(w http.ResponseWriter, r *http.Request)
	ListRange(w http.ResponseWriter, r *http.Request)
	ListAll(w http.ResponseWriter, r *http.Request)
}

type TimesheetHandlerImpl struct {
	timesheetService timesheet.TimesheetService
}

func NewTimesheetHandler(timesheetService timesheet.TimesheetService) TimesheetHandler {
	return &TimesheetHandlerImpl{timesheetService: timesheetService}
}

// PunchIn implements TimesheetHandler.
func (h *TimesheetHandlerImpl) PunchIn(w http.ResponseWriter, r *http.Request) {
	var punchInReq timesheet.PunchInRequest

	if err := json.NewDecoder(r.Body).Decode(&punchInReq); err != nil {
		slog.Error("PunchIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	entry, err := h.timesheetService.PunchIn(r.Context(), punchInReq)
	if err != nil {
		slog.Error("PunchIn service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("User punched in", "user_email", punchInReq.UserEmail)
	response.Created(w, "Punched in successfully", entry)
}

// PunchOut implements TimesheetHandler.
func (h *TimesheetHandlerImpl) PunchOut(w http.ResponseWriter, r *http.Request) {
	var punchOutReq timesheet.PunchOutRequest

	if err := json.NewDecoder(r.Body).Decode(&punchOutReq); err != nil {
		slog.Error("PunchOut decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	entry, err := h.timesheetService.PunchOut(r.Context(), punchOutReq)
	if err != nil {
		slog.Error("PunchOut service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("User punched out", "user_email", punchOutReq.UserEmail)
	response.SuccessWithMessage(w, "Punched out successfully", entry)
}

// PunchStatus implements TimesheetHandler.
func (h *TimesheetHandlerImpl) PunchStatus(w http.ResponseWriter, r *http.Request) {
	userEmail := r.URL.Query().Get("user_email")

	punchedIn, err := h.timesheetService.CheckPunchStatus(r.Context(), userEmail)
	if err != nil {
		slog.Error("PunchStatus service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]bool{"punched_in": punchedIn})
}

// CreateTimestamp implements TimesheetHandler.
func (h *TimesheetHandlerImpl) CreateTimestamp(w http.ResponseWriter, r *http.Request) {
	var createReq timesheet.CreateTimestampRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateTimestamp decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	entry, err := h.timesheetService.CreateTimestamp(r.Context(), createReq)
	if err != nil {
		slog.Error("CreateTimestamp service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Manual entry created", "user_email", createReq.UserEmail)
	response.Created(w, "Entry created successfully", entry)
}

// EditTimestamp implements TimesheetHandler.
func (h *TimesheetHandlerImpl) EditTimestamp(w http.ResponseWriter, r *http.Request) {
	var editReq timesheet.EditTimestampRequest

	if err := json.NewDecoder(r.Body).Decode(&editReq); err != nil {
		slog.Error("EditTimestamp decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	editReq.ID = chi.URLParam(r, "id")

	entry, err := h.timesheetService.EditTimestamp(r.Context(), editReq)
	if err != nil {
		slog.Error("EditTimestamp service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Entry updated successfully", entry)
}

// DeleteTimestamp implements TimesheetHandler.
func (h *TimesheetHandlerImpl) DeleteTimestamp(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.timesheetService.DeleteTimestamp(r.Context(), id); err != nil {
		slog.Error("DeleteTimestamp service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Entry deleted successfully", nil)
}

// ListRange implements TimesheetHandler.
func (h *TimesheetHandlerImpl) ListRange(w http.ResponseWriter, r *http.Request) {
	filter := timesheet.RangeFilter{
		UserEmail: r.URL.Query().Get("user_email"),
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	entries, err := h.timesheetService.GetTimestampsRange(r.Context(), filter)
	if err != nil {
		slog.Error("ListRange service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}

// ListAll implements TimesheetHandler.
func (h *TimesheetHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	entries, err := h.timesheetService.GetAllTimestamps(r.Context())
	if err != nil {
		slog.Error("ListAll service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}
