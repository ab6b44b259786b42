package company

import (
	"time"

	"github.com/punchclock-io/punchclock-backend-go/internal/pkg/validator"
)

type CompanyResponse struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"company_name"`
	Username             string    `json:"company_username"`
	Address              *string   `json:"company_address,omitempty"`
	IsActive             bool      `json:"is_active"`
	DefaultWeekendChoice []string  `json:"default_weekend_choice"`
	DefaultWorkCapacity  float64   `json:"default_work_capacity"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

type CreateCompanyRequest struct {
	Name                 string   `json:"company_name"`
	Username             string   `json:"company_username"`
	Address              *string  `json:"company_address,omitempty"`
	DefaultWeekendChoice []string `json:"default_weekend_choice,omitempty"`
	DefaultWorkCapacity  *float64 `json:"default_work_capacity,omitempty"`
}

func (r *CreateCompanyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_name",
			Message: "company_name is required",
		})
	}
	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_username",
			Message: "company_username is required",
		})
	}
	for _, day := range r.DefaultWeekendChoice {
		if !validator.IsValidWeekdayName(day) {
			errs = append(errs, validator.ValidationError{
				Field:   "default_weekend_choice",
				Message: "invalid weekday name: " + day,
			})
		}
	}
	if r.DefaultWorkCapacity != nil && (*r.DefaultWorkCapacity <= 0 || *r.DefaultWorkCapacity > 24) {
		errs = append(errs, validator.ValidationError{
			Field:   "default_work_capacity",
			Message: "default_work_capacity must be between 0 and 24 hours",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateCompanyRequest struct {
	Name                 *string  `json:"company_name,omitempty"`
	Address              *string  `json:"company_address,omitempty"`
	// IsActive may only be changed by a net admin.
	IsActive             *bool    `json:"is_active,omitempty"`
	DefaultWeekendChoice []string `json:"default_weekend_choice,omitempty"`
	DefaultWorkCapacity  *float64 `json:"default_work_capacity,omitempty"`
}

func (r *UpdateCompanyRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_name",
			Message: "company_name cannot be empty",
		})
	}
	for _, day := range r.DefaultWeekendChoice {
		if !validator.IsValidWeekdayName(day) {
			errs = append(errs, validator.ValidationError{
				Field:   "default_weekend_choice",
				Message: "invalid weekday name: " + day,
			})
		}
	}
	if r.DefaultWorkCapacity != nil && (*r.DefaultWorkCapacity <= 0 || *r.DefaultWorkCapacity > 24) {
		errs = append(errs, validator.ValidationError{
			Field:   "default_work_capacity",
			Message: "default_work_capacity must be between 0 and 24 hours",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func NewCompanyResponse(c Company) CompanyResponse {
	return CompanyResponse{
		ID:                   c.ID,
		Name:                 c.Name,
		Username:             c.Username,
		Address:              c.Address,
		IsActive:             c.IsActive,
		DefaultWeekendChoice: c.DefaultWeekendChoice,
		DefaultWorkCapacity:  c.DefaultWorkCapacity,
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
}
