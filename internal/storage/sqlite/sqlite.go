// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// The database is opened on ":memory:", so records live only as long as the
// process, exactly like the slice backend. SQLite gives us the UNIQUE id
// constraint and transactional all-or-nothing inserts for free.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/aanand-mishra/student-records/internal/config"
	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
//
// Every connection to ":memory:" opens a brand-new empty database, so the
// pool is pinned to a single connection. That also means statements inside a
// transaction must go through the *sql.Tx, never s.Db, or they would wait on
// the connection the transaction already holds.
type SQLite struct {
	Db       *sql.DB
	capacity int
}

// querier is the subset shared by *sql.DB and *sql.Tx.
type querier interface {
	QueryRow(query string, args ...any) *sql.Row
}

// New opens the in-memory database, creates the students table and returns
// a ready-to-use *SQLite bounded by cfg.Capacity.
func New(cfg *config.Config) (*SQLite, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}
	db.SetMaxOpenConns(1)

	// Schema:
	//   seq     — autoincrement insertion counter, drives listing order
	//   id      — student id chosen by the user, unique
	//   grp     — "Downtown" or "Burnaby" ("group" is a keyword)
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS students (
			seq     INTEGER PRIMARY KEY AUTOINCREMENT,
			id      INTEGER NOT NULL UNIQUE,
			name    TEXT    NOT NULL,
			age     INTEGER NOT NULL,
			program TEXT    NOT NULL,
			gpa     REAL    NOT NULL,
			grp     TEXT    NOT NULL CHECK (grp IN ('Downtown', 'Burnaby'))
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db, capacity: cfg.Capacity}, nil
}

// Close releases the connection and with it every stored record.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// Add inserts a student inside a transaction: the capacity check, the
// duplicate check and the insert either all happen or none do.
func (s *SQLite) Add(student types.Student) error {
	if err := storage.ValidateStudent(student); err != nil {
		return fmt.Errorf("Add: %w", err)
	}

	tx, err := s.Db.Begin()
	if err != nil {
		return fmt.Errorf("Add: begin: %w", err)
	}
	// Rollback after Commit is a no-op returning sql.ErrTxDone.
	defer func() { _ = tx.Rollback() }()

	count, err := countRows(tx)
	if err != nil {
		return fmt.Errorf("Add: %w", err)
	}
	if count >= s.capacity {
		return fmt.Errorf("Add: %w (capacity %d)", storage.ErrCapacityExceeded, s.capacity)
	}

	_, err = position(tx, student.ID)
	switch {
	case err == nil:
		return fmt.Errorf("Add: %w: %d", storage.ErrDuplicateID, student.ID)
	case !errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("Add: %w", err)
	}

	_, err = tx.Exec(
		"INSERT INTO students (id, name, age, program, gpa, grp) VALUES (?, ?, ?, ?, ?, ?)",
		student.ID, student.Name, student.Age, student.Program, student.GPA, string(student.Group),
	)
	if err != nil {
		return fmt.Errorf("Add: exec: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Add: commit: %w", err)
	}
	return nil
}

// FindByID returns the insertion-order position of the student: the number
// of rows inserted before it that are still present.
func (s *SQLite) FindByID(id int) (int, error) {
	return position(s.Db, id)
}

func (s *SQLite) GetByID(id int) (types.Student, error) {
	row := s.Db.QueryRow(
		"SELECT id, name, age, program, gpa, grp FROM students WHERE id = ? LIMIT 1", id,
	)
	student, err := scanStudent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Student{}, fmt.Errorf("%w: id %d", storage.ErrNotFound, id)
	}
	if err != nil {
		return types.Student{}, fmt.Errorf("GetByID: scan: %w", err)
	}
	return student, nil
}

// DeleteByID removes one row. Listing orders by seq, so the remaining
// records keep their relative order without any shifting.
func (s *SQLite) DeleteByID(id int) error {
	result, err := s.Db.Exec("DELETE FROM students WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("DeleteByID: exec: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteByID: rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", storage.ErrNotFound, id)
	}
	return nil
}

func (s *SQLite) ListByGroup(group types.Group) ([]types.Student, error) {
	rows, err := s.Db.Query(
		"SELECT id, name, age, program, gpa, grp FROM students WHERE grp = ? ORDER BY seq",
		string(group),
	)
	if err != nil {
		return nil, fmt.Errorf("ListByGroup: query: %w", err)
	}
	defer rows.Close()

	students := make([]types.Student, 0)
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("ListByGroup: scan row: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListByGroup: rows iteration: %w", err)
	}

	return students, nil
}

func (s *SQLite) Count() (int, error) {
	return countRows(s.Db)
}

func (s *SQLite) Capacity() int { return s.capacity }

func countRows(q querier) (int, error) {
	var n int
	if err := q.QueryRow("SELECT COUNT(*) FROM students").Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

func position(q querier, id int) (int, error) {
	var seq int64
	err := q.QueryRow("SELECT seq FROM students WHERE id = ?", id).Scan(&seq)
	if errors.Is(err, sql.ErrNoRows) {
		return -1, fmt.Errorf("%w: id %d", storage.ErrNotFound, id)
	}
	if err != nil {
		return -1, fmt.Errorf("position: scan seq: %w", err)
	}

	var pos int
	if err := q.QueryRow("SELECT COUNT(*) FROM students WHERE seq < ?", seq).Scan(&pos); err != nil {
		return -1, fmt.Errorf("position: count: %w", err)
	}
	return pos, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanStudent(row scanner) (types.Student, error) {
	var (
		student types.Student
		group   string
	)
	err := row.Scan(
		&student.ID,
		&student.Name,
		&student.Age,
		&student.Program,
		&student.GPA,
		&group,
	)
	if err != nil {
		return types.Student{}, err
	}
	student.Group = types.Group(group)
	return student, nil
}
