package company

import "time"

type Company struct {
	ID       string
	Name     string
	Username string
	Address  *string
	IsActive bool
	// Defaults applied to newly registered employees.
	DefaultWeekendChoice []string
	DefaultWorkCapacity  float64
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
