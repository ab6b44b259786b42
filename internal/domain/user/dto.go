package user

import (
	"github.com/punchclock-io/punchclock-backend-go/internal/pkg/validator"
)

type CreateUserRequest struct {
	Email           string   `json:"email"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	MobilePhone     *string  `json:"mobile_phone,omitempty"`
	CompanyID       string   `json:"company_id"`
	Role            string   `json:"role"`
	Permission      int      `json:"permission"`
	Password        string   `json:"password"`
	Salary          float64  `json:"salary"`
	WorkCapacity    float64  `json:"work_capacity"`
	EmploymentStart string   `json:"employment_start"`
	WeekendChoice   []string `json:"weekend_choice"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "a valid email is required",
		})
	}

	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "first_name is required",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if !Permission(r.Permission).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "permission",
			Message: "permission must be 0 (net_admin), 1 (employer) or 2 (employee)",
		})
	}

	if r.Salary < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "salary",
			Message: "salary must not be negative",
		})
	}

	if r.WorkCapacity < 0 || r.WorkCapacity > 24 {
		errs = append(errs, validator.ValidationError{
			Field:   "work_capacity",
			Message: "work_capacity must be between 0 and 24 hours",
		})
	}

	if r.EmploymentStart != "" {
		if _, ok := validator.IsValidDate(r.EmploymentStart); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "employment_start",
				Message: "employment_start must be YYYY-MM-DD",
			})
		}
	}

	for _, day := range r.WeekendChoice {
		if !validator.IsValidWeekdayName(day) {
			errs = append(errs, validator.ValidationError{
				Field:   "weekend_choice",
				Message: "weekend_choice entries must be weekday names",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateUserRequest struct {
	Email         string    `json:"-"`
	FirstName     *string   `json:"first_name,omitempty"`
	LastName      *string   `json:"last_name,omitempty"`
	MobilePhone   *string   `json:"mobile_phone,omitempty"`
	Role          *string   `json:"role,omitempty"`
	Permission    *int      `json:"permission,omitempty"`
	IsActive      *bool     `json:"is_active,omitempty"`
	Password      *string   `json:"password,omitempty"`
	Salary        *float64  `json:"salary,omitempty"`
	WorkCapacity  *float64  `json:"work_capacity,omitempty"`
	EmploymentEnd *string   `json:"employment_end,omitempty"`
	WeekendChoice *[]string `json:"weekend_choice,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "a valid email is required",
		})
	}

	if r.Permission != nil && !Permission(*r.Permission).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "permission",
			Message: "permission must be 0 (net_admin), 1 (employer) or 2 (employee)",
		})
	}

	if r.EmploymentEnd != nil && *r.EmploymentEnd != "" {
		if _, ok := validator.IsValidDate(*r.EmploymentEnd); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "employment_end",
				Message: "employment_end must be YYYY-MM-DD",
			})
		}
	}

	if r.WeekendChoice != nil {
		for _, day := range *r.WeekendChoice {
			if !validator.IsValidWeekdayName(day) {
				errs = append(errs, validator.ValidationError{
					Field:   "weekend_choice",
					Message: "weekend_choice entries must be weekday names",
				})
				break
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UserResponse struct {
	Email           string   `json:"email"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	MobilePhone     *string  `json:"mobile_phone,omitempty"`
	CompanyID       string   `json:"company_id"`
	Role            string   `json:"role"`
	Permission      int      `json:"permission"`
	IsActive        bool     `json:"is_active"`
	Salary          float64  `json:"salary"`
	WorkCapacity    float64  `json:"work_capacity"`
	EmploymentStart string   `json:"employment_start"`
	EmploymentEnd   *string  `json:"employment_end,omitempty"`
	WeekendChoice   []string `json:"weekend_choice"`
}
