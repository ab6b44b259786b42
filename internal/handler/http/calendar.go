package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/punchclock-io/punchclock-backend-go/internal/domain/calendar"
	"github.com/punchclock-io/punchclock-backend-go/internal/handler/http/response"
)

type CalendarHandler interface {
	GetMonth(w http.ResponseWriter, r *http.Request)
}

type CalendarHandlerImpl struct {
	calendarService calendar.CalendarService
}

func NewCalendarHandler(calendarService calendar.CalendarService) CalendarHandler {
	return &CalendarHandlerImpl{calendarService: calendarService}
}

// GetMonth implements CalendarHandler.
func (h *CalendarHandlerImpl) GetMonth(w http.ResponseWriter, r *http.Request) {
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))

	monthReq := calendar.MonthRequest{
		UserEmail: r.URL.Query().Get("user_email"),
		Year:      year,
		Month:     month,
	}

	monthResponse, err := h.calendarService.BuildMonthCalendar(r.Context(), &monthReq)
	if err != nil {
		slog.Error("GetMonth service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, monthResponse)
}
