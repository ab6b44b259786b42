package user

import (
	"time"
)

type User struct {
	Email           string
	FirstName       string
	LastName        string
	MobilePhone     *string
	CompanyID       string
	Role            string
	Permission      Permission
	PassHash        string
	IsActive        bool
	Salary          float64 // hourly rate
	WorkCapacity    float64 // nominal hours per work day
	EmploymentStart time.Time
	EmploymentEnd   *time.Time
	// WeekendChoice holds the weekday names this user designates as rest
	// days. It is user-configurable and not fixed to Saturday/Sunday.
	WeekendChoice []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
