package timesheet

import (
	"time"

	"github.com/punchclock-io/punchclock-backend-go/internal/pkg/validator"
)

// ========================================
// TIMESHEET DTOs
// ========================================

type PunchInRequest struct {
	UserEmail string `json:"user_email"`
	Detail    string `json:"detail,omitempty"`
}

func (r *PunchInRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.UserEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_email",
			Message: "a valid user_email is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PunchOutRequest struct {
	UserEmail     string `json:"user_email"`
	ReportingType string `json:"reporting_type,omitempty"`
	Detail        string `json:"detail,omitempty"`
}

func (r *PunchOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.UserEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_email",
			Message: "a valid user_email is required",
		})
	}

	if r.ReportingType != "" {
		if _, err := ParseReportingType(r.ReportingType); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "reporting_type",
				Message: "reporting_type must be work, paid_leave or unpaid_leave",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// CreateTimestampRequest covers manual entries. Punch times are optional:
// with neither present the entry opens at the current time; with only
// punch_in it is a backdated open entry; with both it is a closed entry.
type CreateTimestampRequest struct {
	UserEmail     string  `json:"user_email"`
	PunchType     int     `json:"punch_type"`
	PunchIn       *string `json:"punch_in_timestamp,omitempty"`
	PunchOut      *string `json:"punch_out_timestamp,omitempty"`
	ReportingType string  `json:"reporting_type"`
	Detail        string  `json:"detail,omitempty"`
}

func (r *CreateTimestampRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.UserEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_email",
			Message: "a valid user_email is required",
		})
	}

	if !PunchType(r.PunchType).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "punch_type",
			Message: "punch_type must be 0 (clock) or 1 (manual)",
		})
	}

	if _, err := ParseReportingType(r.ReportingType); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "reporting_type",
			Message: "reporting_type must be work, paid_leave or unpaid_leave",
		})
	}

	if r.PunchIn != nil {
		if _, ok := validator.IsValidDateTime(*r.PunchIn); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "punch_in_timestamp",
				Message: "punch_in_timestamp must be an ISO8601 timestamp",
			})
		}
	}

	if r.PunchOut != nil {
		if _, ok := validator.IsValidDateTime(*r.PunchOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "punch_out_timestamp",
				Message: "punch_out_timestamp must be an ISO8601 timestamp",
			})
		}
	}

	if r.PunchOut != nil && r.PunchIn == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "punch_in_timestamp",
			Message: "punch_in_timestamp is required when punch_out_timestamp is set",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EditTimestampRequest struct {
	ID            string  `json:"-"`
	PunchIn       *string `json:"punch_in_timestamp,omitempty"`
	PunchOut      *string `json:"punch_out_timestamp,omitempty"`
	PunchType     *int    `json:"punch_type,omitempty"`
	ReportingType *string `json:"reporting_type,omitempty"`
	Detail        *string `json:"detail,omitempty"`
}

func (r *EditTimestampRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "a valid timestamp id is required",
		})
	}

	if r.PunchIn != nil {
		if _, ok := validator.IsValidDateTime(*r.PunchIn); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "punch_in_timestamp",
				Message: "punch_in_timestamp must be an ISO8601 timestamp",
			})
		}
	}

	if r.PunchOut != nil {
		if _, ok := validator.IsValidDateTime(*r.PunchOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "punch_out_timestamp",
				Message: "punch_out_timestamp must be an ISO8601 timestamp",
			})
		}
	}

	if r.PunchType != nil && !PunchType(*r.PunchType).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "punch_type",
			Message: "punch_type must be 0 (clock) or 1 (manual)",
		})
	}

	if r.ReportingType != nil {
		if _, err := ParseReportingType(*r.ReportingType); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "reporting_type",
				Message: "reporting_type must be work, paid_leave or unpaid_leave",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RangeFilter struct {
	UserEmail string `json:"user_email"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (f *RangeFilter) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(f.UserEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_email",
			Message: "a valid user_email is required",
		})
	}

	start, startOK := validator.IsValidDate(f.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be YYYY-MM-DD",
		})
	}

	end, endOK := validator.IsValidDate(f.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be YYYY-MM-DD",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be earlier than start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TimestampResponse struct {
	ID               string  `json:"id"`
	UserEmail        string  `json:"user_email"`
	EnteredBy        string  `json:"entered_by"`
	PunchType        int     `json:"punch_type"`
	PunchIn          string  `json:"punch_in_timestamp"`
	PunchOut         *string `json:"punch_out_timestamp,omitempty"`
	ReportingType    string  `json:"reporting_type"`
	Detail           string  `json:"detail,omitempty"`
	TotalWorkSeconds int64   `json:"total_work_seconds"`
	LastUpdate       string  `json:"last_update"`
}

func NewTimestampResponse(ts TimeStamp) TimestampResponse {
	resp := TimestampResponse{
		ID:               ts.ID,
		UserEmail:        ts.UserEmail,
		EnteredBy:        ts.EnteredBy,
		PunchType:        int(ts.PunchType),
		PunchIn:          ts.PunchIn.UTC().Format(time.RFC3339),
		ReportingType:    string(ts.ReportingType),
		Detail:           ts.Detail,
		TotalWorkSeconds: ts.TotalWorkSeconds,
		LastUpdate:       ts.LastUpdate.UTC().Format(time.RFC3339),
	}
	if ts.PunchOut != nil {
		out := ts.PunchOut.UTC().Format(time.RFC3339)
		resp.PunchOut = &out
	}
	return resp
}
