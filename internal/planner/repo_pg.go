package planner

import (
	"context"
	"database/sql"
	"errors"

	"planner-backend/internal/catalog"
	"planner-backend/internal/semester"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new plan entry.
func (r *PGRepo) Create(ctx context.Context, rec Record) error {
	const query = `
INSERT INTO plan_entries (id, user_id, course_code, status, grade, semester, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	var grade sql.NullString
	if rec.Grade != "" {
		grade = sql.NullString{String: string(rec.Grade), Valid: true}
	}
	_, err := r.DB.ExecContext(
		ctx,
		query,
		rec.ID,
		rec.UserID,
		catalog.NormalizeCode(rec.CourseCode),
		string(rec.Status),
		grade,
		rec.Semester.String(),
		rec.CreatedAt,
	)
	return err
}

// GetByCourse fetches the plan entry for one course.
func (r *PGRepo) GetByCourse(ctx context.Context, userID, courseCode string) (Record, error) {
	const query = `
SELECT id, user_id, course_code, status, grade, semester, created_at
FROM plan_entries
WHERE user_id = $1 AND course_code = $2
LIMIT 1`
	rec, err := scanRecord(r.DB.QueryRowContext(ctx, query, userID, catalog.NormalizeCode(courseCode)).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return rec, nil
}

// ListByUser returns every plan entry for a user in course-code order.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Record, error) {
	const query = `
SELECT id, user_id, course_code, status, grade, semester, created_at
FROM plan_entries
WHERE user_id = $1
ORDER BY course_code ASC`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Update rewrites status, grade and semester for an existing entry.
func (r *PGRepo) Update(ctx context.Context, rec Record) error {
	const query = `
UPDATE plan_entries
SET status = $1, grade = $2, semester = $3
WHERE user_id = $4 AND course_code = $5`

	var grade sql.NullString
	if rec.Grade != "" {
		grade = sql.NullString{String: string(rec.Grade), Valid: true}
	}
	res, err := r.DB.ExecContext(ctx, query, string(rec.Status), grade, rec.Semester.String(), rec.UserID, catalog.NormalizeCode(rec.CourseCode))
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a plan entry.
func (r *PGRepo) Delete(ctx context.Context, userID, courseCode string) error {
	const query = `
DELETE FROM plan_entries
WHERE user_id = $1 AND course_code = $2`
	res, err := r.DB.ExecContext(ctx, query, userID, catalog.NormalizeCode(courseCode))
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanRecord(scan func(dest ...any) error) (Record, error) {
	var rec Record
	var status string
	var grade sql.NullString
	var sem string
	if err := scan(
		&rec.ID,
		&rec.UserID,
		&rec.CourseCode,
		&status,
		&grade,
		&sem,
		&rec.CreatedAt,
	); err != nil {
		return Record{}, err
	}
	parsedStatus, err := ParseStatus(status)
	if err != nil {
		return Record{}, err
	}
	rec.Status = parsedStatus
	if grade.Valid {
		parsedGrade, err := catalog.ParseGrade(grade.String)
		if err != nil {
			return Record{}, err
		}
		rec.Grade = parsedGrade
	}
	parsedSem, err := semester.Parse(sem)
	if err != nil {
		return Record{}, err
	}
	rec.Semester = parsedSem
	return rec, nil
}

var _ Repo = (*PGRepo)(nil)
