package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/punchclock-io/punchclock-backend-go/internal/domain/company"
	"github.com/punchclock-io/punchclock-backend-go/internal/pkg/database"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

// joinWeekendChoice flattens the weekday list to the comma-separated form
// the column stores.
func joinWeekendChoice(days []string) string {
	return strings.Join(days, ",")
}

// splitWeekendChoice is the inverse of joinWeekendChoice; an empty column
// means no rest days, not one empty name.
func splitWeekendChoice(raw string) []string {
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	days := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			days = append(days, p)
		}
	}
	return days
}

// Create implements company.CompanyRepository.
func (c *companyRepositoryImpl) Create(ctx context.Context, newCompany company.Company) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		INSERT INTO companies (name, username, address, default_weekend_choice, default_work_capacity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, username, address, is_active, default_weekend_choice, default_work_capacity, created_at, updated_at
	`

	var (
		created    company.Company
		weekendRaw string
	)
	err := q.QueryRow(ctx, query,
		newCompany.Name,
		newCompany.Username,
		newCompany.Address,
		joinWeekendChoice(newCompany.DefaultWeekendChoice),
		newCompany.DefaultWorkCapacity,
	).Scan(
		&created.ID,
		&created.Name,
		&created.Username,
		&created.Address,
		&created.IsActive,
		&weekendRaw,
		&created.DefaultWorkCapacity,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return company.Company{}, err
	}
	created.DefaultWeekendChoice = splitWeekendChoice(weekendRaw)
	return created, nil
}

// GetByID implements company.CompanyRepository.
func (c *companyRepositoryImpl) GetByID(ctx context.Context, id string) (company.Company, error) {
	return c.getByColumn(ctx, "id", id)
}

// GetByUsername implements company.CompanyRepository.
func (c *companyRepositoryImpl) GetByUsername(ctx context.Context, username string) (company.Company, error) {
	return c.getByColumn(ctx, "username", username)
}

func (c *companyRepositoryImpl) getByColumn(ctx context.Context, column, value string) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := fmt.Sprintf(`
		SELECT id, name, username, address, is_active, default_weekend_choice, default_work_capacity, created_at, updated_at
		FROM companies
		WHERE %s = $1
	`, column)

	var (
		found      company.Company
		weekendRaw string
	)
	err := q.QueryRow(ctx, query, value).Scan(
		&found.ID,
		&found.Name,
		&found.Username,
		&found.Address,
		&found.IsActive,
		&weekendRaw,
		&found.DefaultWorkCapacity,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, err
	}
	found.DefaultWeekendChoice = splitWeekendChoice(weekendRaw)
	return found, nil
}

// List implements company.CompanyRepository.
func (c *companyRepositoryImpl) List(ctx context.Context) ([]company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT id, name, username, address, is_active, default_weekend_choice, default_work_capacity, created_at, updated_at
		FROM companies
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []company.Company
	for rows.Next() {
		var (
			found      company.Company
			weekendRaw string
		)
		if err := rows.Scan(
			&found.ID,
			&found.Name,
			&found.Username,
			&found.Address,
			&found.IsActive,
			&weekendRaw,
			&found.DefaultWorkCapacity,
			&found.CreatedAt,
			&found.UpdatedAt,
		); err != nil {
			return nil, err
		}
		found.DefaultWeekendChoice = splitWeekendChoice(weekendRaw)
		companies = append(companies, found)
	}
	return companies, rows.Err()
}

// ExistsByUsername implements company.CompanyRepository.
func (c *companyRepositoryImpl) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	q := GetQuerier(ctx, c.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM companies WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// Update implements company.CompanyRepository.
func (c *companyRepositoryImpl) Update(ctx context.Context, id string, req company.UpdateCompanyRequest) error {
	q := GetQuerier(ctx, c.db)

	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.DefaultWeekendChoice != nil {
		updates["default_weekend_choice"] = joinWeekendChoice(req.DefaultWeekendChoice)
	}
	if req.DefaultWorkCapacity != nil {
		updates["default_work_capacity"] = *req.DefaultWorkCapacity
	}

	if len(updates) == 0 {
		return fmt.Errorf("no updatable fields provided for company update")
	}
	updates["updated_at"] = time.Now()

	setClauses := make([]string, 0, len(updates))
	args := make([]interface{}, 0, len(updates)+1)
	i := 1
	for col, val := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, val)
		i++
	}

	sql := "UPDATE companies SET " + strings.Join(setClauses, ", ") + fmt.Sprintf(" WHERE id = $%d", i)
	args = append(args, id)

	var updatedID string
	if err := q.QueryRow(ctx, sql+" RETURNING id", args...).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return company.ErrCompanyNotFound
		}
		return fmt.Errorf("failed to update company with id %s: %w", id, err)
	}
	return nil
}
