package catalog

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const courseColumns = `code, title, description, credits, department, college, difficulty, offerings, tracks, requirement, corequisites`

// ListAll returns every catalog course in ascending code order.
func (r *PGRepo) ListAll(ctx context.Context) ([]Course, error) {
	const query = `
SELECT ` + courseColumns + `
FROM courses
ORDER BY code ASC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Course
	for rows.Next() {
		course, err := scanCourse(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, course)
	}
	return out, rows.Err()
}

// GetByCode fetches a single course.
func (r *PGRepo) GetByCode(ctx context.Context, code string) (Course, error) {
	const query = `
SELECT ` + courseColumns + `
FROM courses
WHERE code = $1
LIMIT 1`
	course, err := scanCourse(r.DB.QueryRowContext(ctx, query, NormalizeCode(code)).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Course{}, ErrNotFound
		}
		return Course{}, err
	}
	return course, nil
}

// ReplaceAll swaps the whole catalog in one transaction. The scraper layer
// delivers complete catalogs, so partial updates are never written.
func (r *PGRepo) ReplaceAll(ctx context.Context, courses []Course) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM courses`); err != nil {
		return err
	}

	const insert = `
INSERT INTO courses (` + courseColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	for _, course := range courses {
		args, err := courseArgs(course)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, insert, args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func courseArgs(course Course) ([]any, error) {
	offerings, err := encodeTerms(course.Offerings)
	if err != nil {
		return nil, err
	}
	tracks, err := encodeStrings(course.Tracks)
	if err != nil {
		return nil, err
	}
	requirement, err := MarshalRequirement(course.Requirement)
	if err != nil {
		return nil, err
	}
	coreqs, err := encodeStrings(course.Corequisites)
	if err != nil {
		return nil, err
	}
	return []any{
		NormalizeCode(course.Code),
		course.Title,
		course.Description,
		course.Credits,
		course.Department,
		course.College,
		course.Difficulty,
		offerings,
		tracks,
		string(requirement),
		coreqs,
	}, nil
}

func scanCourse(scan func(dest ...any) error) (Course, error) {
	var course Course
	var offerings, tracks, requirement, coreqs string
	if err := scan(
		&course.Code,
		&course.Title,
		&course.Description,
		&course.Credits,
		&course.Department,
		&course.College,
		&course.Difficulty,
		&offerings,
		&tracks,
		&requirement,
		&coreqs,
	); err != nil {
		return Course{}, err
	}
	var err error
	if course.Offerings, err = decodeTerms(offerings); err != nil {
		return Course{}, err
	}
	if course.Tracks, err = decodeStrings(tracks); err != nil {
		return Course{}, err
	}
	if course.Requirement, err = UnmarshalRequirement([]byte(requirement)); err != nil {
		return Course{}, err
	}
	if course.Corequisites, err = decodeStrings(coreqs); err != nil {
		return Course{}, err
	}
	return course, nil
}

var _ Repo = (*PGRepo)(nil)
