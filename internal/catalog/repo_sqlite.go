package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // register sqlite3 driver
)

// SQLiteRepo implements Repo on a local SQLite file for single-node
// deployments without a Postgres instance.
type SQLiteRepo struct {
	DB *sql.DB
}

// OpenSQLite opens (and initializes) the catalog database at path.
func OpenSQLite(path string) (*SQLiteRepo, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite catalog: %w", err)
	}
	const schema = `
CREATE TABLE IF NOT EXISTS courses (
    code         TEXT PRIMARY KEY,
    title        TEXT NOT NULL,
    description  TEXT NOT NULL DEFAULT '',
    credits      INTEGER NOT NULL,
    department   TEXT NOT NULL DEFAULT '',
    college      TEXT NOT NULL DEFAULT '',
    difficulty   INTEGER NOT NULL DEFAULT 3,
    offerings    TEXT NOT NULL DEFAULT 'null',
    tracks       TEXT NOT NULL DEFAULT 'null',
    requirement  TEXT NOT NULL DEFAULT '{"type":"none"}',
    corequisites TEXT NOT NULL DEFAULT 'null'
)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init sqlite catalog schema: %w", err)
	}
	return &SQLiteRepo{DB: db}, nil
}

// ListAll returns every catalog course in ascending code order.
func (r *SQLiteRepo) ListAll(ctx context.Context) ([]Course, error) {
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
func (r *SQLiteRepo) GetByCode(ctx context.Context, code string) (Course, error) {
	const query = `
SELECT ` + courseColumns + `
FROM courses
WHERE code = ?
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

// ReplaceAll swaps the whole catalog in one transaction.
func (r *SQLiteRepo) ReplaceAll(ctx context.Context, courses []Course) error {
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
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
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

var _ Repo = (*SQLiteRepo)(nil)
