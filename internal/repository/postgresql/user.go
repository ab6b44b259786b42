package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/punchclock-io/punchclock-backend-go/internal/domain/user"
	"github.com/punchclock-io/punchclock-backend-go/internal/pkg/database"
)

const userColumns = `email, first_name, last_name, mobile_phone, company_id, role, permission,
		  pass_hash, is_active, salary, work_capacity, employment_start, employment_end,
		  weekend_choice, created_at, updated_at`

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

func scanUser(row pgx.Row) (user.User, error) {
	var (
		u          user.User
		permission int
		weekendRaw string
	)
	err := row.Scan(
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.MobilePhone,
		&u.CompanyID,
		&u.Role,
		&permission,
		&u.PassHash,
		&u.IsActive,
		&u.Salary,
		&u.WorkCapacity,
		&u.EmploymentStart,
		&u.EmploymentEnd,
		&weekendRaw,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return user.User{}, err
	}
	u.Permission = user.Permission(permission)
	u.WeekendChoice = splitWeekendChoice(weekendRaw)
	return u, nil
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (email, first_name, last_name, mobile_phone, company_id, role, permission,
						   pass_hash, is_active, salary, work_capacity, employment_start, employment_end,
						   weekend_choice)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + userColumns

	return scanUser(q.QueryRow(ctx, query,
		newUser.Email,
		newUser.FirstName,
		newUser.LastName,
		newUser.MobilePhone,
		newUser.CompanyID,
		newUser.Role,
		int(newUser.Permission),
		newUser.PassHash,
		newUser.IsActive,
		newUser.Salary,
		newUser.WorkCapacity,
		newUser.EmploymentStart,
		newUser.EmploymentEnd,
		joinWeekendChoice(newUser.WeekendChoice),
	))
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	found, err := scanUser(q.QueryRow(ctx, query, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return found, nil
}

// Update implements user.UserRepository.
func (r *userRepositoryImpl) Update(ctx context.Context, u user.User) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET first_name = $1, last_name = $2, mobile_phone = $3, role = $4, permission = $5,
			is_active = $6, pass_hash = $7, salary = $8, work_capacity = $9,
			employment_start = $10, employment_end = $11, weekend_choice = $12, updated_at = $13
		WHERE email = $14
		RETURNING email
	`

	var updatedEmail string
	err := q.QueryRow(ctx, query,
		u.FirstName,
		u.LastName,
		u.MobilePhone,
		u.Role,
		int(u.Permission),
		u.IsActive,
		u.PassHash,
		u.Salary,
		u.WorkCapacity,
		u.EmploymentStart,
		u.EmploymentEnd,
		joinWeekendChoice(u.WeekendChoice),
		time.Now(),
		u.Email,
	).Scan(&updatedEmail)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("failed to update user %s: %w", u.Email, err)
	}
	return nil
}

// SetActive implements user.UserRepository.
func (r *userRepositoryImpl) SetActive(ctx context.Context, email string, active bool) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET is_active = $1, updated_at = NOW()
		WHERE email = $2
		RETURNING email
	`

	var updatedEmail string
	if err := q.QueryRow(ctx, query, active, email).Scan(&updatedEmail); err != nil {
		if err == pgx.ErrNoRows {
			return user.ErrUserNotFound
		}
		return err
	}
	return nil
}

// ListByCompany implements user.UserRepository.
func (r *userRepositoryImpl) ListByCompany(ctx context.Context, companyID string) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE company_id = $1 ORDER BY email`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// ExistsByEmail implements user.UserRepository.
func (r *userRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
