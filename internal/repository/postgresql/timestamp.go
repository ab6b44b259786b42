package postgresql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/punchclock-io/punchclock-backend-go/internal/domain/timesheet"
	"github.com/punchclock-io/punchclock-backend-go/internal/pkg/database"
)

const timestampColumns = `id, user_email, entered_by, punch_type, punch_in, punch_out,
		  reporting_type, detail, total_work_seconds, last_update`

type timestampRepositoryImpl struct {
	db *database.DB
}

func NewTimestampRepository(db *database.DB) timesheet.TimestampRepository {
	return &timestampRepositoryImpl{db: db}
}

func scanTimestamp(row pgx.Row) (timesheet.TimeStamp, error) {
	var (
		ts            timesheet.TimeStamp
		punchType     int
		reportingType string
	)
	err := row.Scan(
		&ts.ID,
		&ts.UserEmail,
		&ts.EnteredBy,
		&punchType,
		&ts.PunchIn,
		&ts.PunchOut,
		&reportingType,
		&ts.Detail,
		&ts.TotalWorkSeconds,
		&ts.LastUpdate,
	)
	if err != nil {
		return timesheet.TimeStamp{}, err
	}
	ts.PunchType = timesheet.PunchType(punchType)
	ts.ReportingType = timesheet.ReportingType(reportingType)
	return ts, nil
}

func collectTimestamps(rows pgx.Rows) ([]timesheet.TimeStamp, error) {
	defer rows.Close()

	var entries []timesheet.TimeStamp
	for rows.Next() {
		ts, err := scanTimestamp(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, ts)
	}
	return entries, rows.Err()
}

// Create implements timesheet.TimestampRepository.
func (r *timestampRepositoryImpl) Create(ctx context.Context, ts timesheet.TimeStamp) (timesheet.TimeStamp, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO timestamps (id, user_email, entered_by, punch_type, punch_in, punch_out,
								reporting_type, detail, total_work_seconds, last_update)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + timestampColumns

	return scanTimestamp(q.QueryRow(ctx, query,
		ts.ID,
		ts.UserEmail,
		ts.EnteredBy,
		int(ts.PunchType),
		ts.PunchIn,
		ts.PunchOut,
		string(ts.ReportingType),
		ts.Detail,
		ts.TotalWorkSeconds,
		ts.LastUpdate,
	))
}

// GetByID implements timesheet.TimestampRepository.
func (r *timestampRepositoryImpl) GetByID(ctx context.Context, id string) (timesheet.TimeStamp, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timestampColumns + ` FROM timestamps WHERE id = $1`

	found, err := scanTimestamp(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return timesheet.TimeStamp{}, timesheet.ErrTimestampNotFound
		}
		return timesheet.TimeStamp{}, err
	}
	return found, nil
}

// Update implements timesheet.TimestampRepository.
func (r *timestampRepositoryImpl) Update(ctx context.Context, ts timesheet.TimeStamp) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timestamps
		SET punch_type = $1, punch_in = $2, punch_out = $3, reporting_type = $4,
			detail = $5, total_work_seconds = $6, last_update = $7
		WHERE id = $8
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		int(ts.PunchType),
		ts.PunchIn,
		ts.PunchOut,
		string(ts.ReportingType),
		ts.Detail,
		ts.TotalWorkSeconds,
		ts.LastUpdate,
		ts.ID,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return timesheet.ErrTimestampNotFound
		}
		return err
	}
	return nil
}

// Delete implements timesheet.TimestampRepository.
func (r *timestampRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM timestamps WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return timesheet.ErrTimestampNotFound
	}
	return nil
}

// GetRange implements timesheet.TimestampRepository.
func (r *timestampRepositoryImpl) GetRange(ctx context.Context, userEmail string, start, end time.Time) ([]timesheet.TimeStamp, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timestampColumns + `
		FROM timestamps
		WHERE user_email = $1 AND punch_in >= $2 AND punch_in <= $3
	`

	rows, err := q.Query(ctx, query, userEmail, start, end)
	if err != nil {
		return nil, err
	}
	return collectTimestamps(rows)
}

// GetOpenEntry implements timesheet.TimestampRepository.
func (r *timestampRepositoryImpl) GetOpenEntry(ctx context.Context, userEmail string, start, end time.Time) (*timesheet.TimeStamp, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timestampColumns + `
		FROM timestamps
		WHERE user_email = $1 AND punch_out IS NULL AND punch_in >= $2 AND punch_in <= $3
		ORDER BY punch_in DESC
		LIMIT 1
	`

	found, err := scanTimestamp(q.QueryRow(ctx, query, userEmail, start, end))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &found, nil
}

// GetAll implements timesheet.TimestampRepository.
func (r *timestampRepositoryImpl) GetAll(ctx context.Context) ([]timesheet.TimeStamp, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+timestampColumns+` FROM timestamps ORDER BY punch_in`)
	if err != nil {
		return nil, err
	}
	return collectTimestamps(rows)
}

// GetStaleOpenEntries implements timesheet.TimestampRepository.
func (r *timestampRepositoryImpl) GetStaleOpenEntries(ctx context.Context, cutoff time.Time) ([]timesheet.TimeStamp, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timestampColumns + `
		FROM timestamps
		WHERE punch_out IS NULL AND punch_in < $1
	`

	rows, err := q.Query(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	return collectTimestamps(rows)
}
