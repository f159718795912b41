// Package db stores recorded display frames in sqlite.
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/dasdy/monoframe/logging"
	"github.com/dasdy/monoframe/model"

	_ "github.com/mattn/go-sqlite3"
)

type Storage interface {
	Store(frame *model.Frame) error
	Sessions() ([]string, error)
	AllIterator(session string) (iter.Seq[model.Frame], error)
	Get(session string, seq int) (*model.Frame, error)
	Latest(session string) (*model.Frame, error)
	Count(session string) (int, error)
	Close()
}

type SQLiteStorage struct {
	db *sql.DB
}

func NewStorage(db *sql.DB) *SQLiteStorage {
	return &SQLiteStorage{db}
}

func InitDbStorage(db *sql.DB) error {
	statements := []string{
		`create table if not exists frames(
			session text not null,
			seq int not null,
			row int not null,
			col int not null,
			cols int not null,
			rows int not null,
			mode int not null,
			data blob not null,
			ts datetime not null,
			primary key (session, seq))`,
		`create index if not exists frames_tsix on frames (ts ASC);`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			slog.Error("Could not init storage", "error", err, "statement", stmt)

			return err
		}
	}

	return nil
}

func ConnectDB(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}

	// :memory: databases are per connection.
	db.SetMaxOpenConns(1)

	if err := InitDbStorage(db); err != nil {
		db.Close()

		return nil, err
	}

	slog.DebugContext(logging.PackageCtx("db"), "Connected", "path", path)

	return NewStorage(db), nil
}

func (s *SQLiteStorage) Store(frame *model.Frame) error {
	ts := frame.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err := s.db.Exec(`insert into frames(session, seq, row, col, cols, rows, mode, data, ts)
	    values(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		frame.Session, frame.Seq, frame.Row, frame.Col, frame.Cols, frame.Rows, int(frame.Mode), frame.Data, ts.UTC())
	if err != nil {
		return fmt.Errorf("could not store frame %s/%d: %w", frame.Session, frame.Seq, err)
	}

	return nil
}

// Sessions lists recorded sessions, oldest first.
func (s *SQLiteStorage) Sessions() ([]string, error) {
	rows, err := s.db.Query(
		`select session
        from frames
        group by session
        order by min(ts), session`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]string, 0)

	for rows.Next() {
		var session string
		if err := rows.Scan(&session); err != nil {
			return nil, err
		}

		result = append(result, session)
	}

	return result, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFrame(row scanner) (model.Frame, error) {
	var (
		f    model.Frame
		mode int
	)

	err := row.Scan(&f.Session, &f.Seq, &f.Row, &f.Col, &f.Cols, &f.Rows, &mode, &f.Data, &f.Timestamp)
	f.Mode = model.Mode(mode)

	return f, err
}

const frameColumns = `session, seq, row, col, cols, rows, mode, data, ts`

// AllIterator yields the frames of a session in write order. The query runs
// when iteration starts.
func (s *SQLiteStorage) AllIterator(session string) (iter.Seq[model.Frame], error) {
	if _, err := s.Count(session); err != nil {
		return nil, err
	}

	return func(yield func(model.Frame) bool) {
		rows, err := s.db.Query(
			`select `+frameColumns+`
            from frames
            where session = ?
            order by seq`, session)
		if err != nil {
			slog.Error("Could not query frames", "session", session, "error", err)

			return
		}
		defer rows.Close()

		for rows.Next() {
			f, err := scanFrame(rows)
			if err != nil {
				slog.Error("Could not scan frame", "session", session, "error", err)

				return
			}

			if !yield(f) {
				return
			}
		}
	}, nil
}

func (s *SQLiteStorage) Get(session string, seq int) (*model.Frame, error) {
	row := s.db.QueryRow(
		`select `+frameColumns+`
        from frames
        where session = ? and seq = ?`, session, seq)

	f, err := scanFrame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("frame %s/%d: %w", session, seq, model.ErrNotFound)
	}

	if err != nil {
		return nil, err
	}

	return &f, nil
}

// Latest returns the last frame written in a session.
func (s *SQLiteStorage) Latest(session string) (*model.Frame, error) {
	var seq sql.NullInt64

	if err := s.db.QueryRow(`select max(seq) from frames where session = ?`, session).Scan(&seq); err != nil {
		return nil, err
	}

	if !seq.Valid {
		return nil, fmt.Errorf("session %s: %w", session, model.ErrNotFound)
	}

	return s.Get(session, int(seq.Int64))
}

func (s *SQLiteStorage) Count(session string) (int, error) {
	var count int

	err := s.db.QueryRow(`select count(*) from frames where session = ?`, session).Scan(&count)

	return count, err
}

func (s *SQLiteStorage) Close() {
	s.db.Close()
}
