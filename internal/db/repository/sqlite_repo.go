package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/gokatarajesh/trivia-api/internal/question"
)

// sqliteDriver is go-sqlite3 with lower() replaced by a Unicode-aware
// version; the built-in one only folds ASCII, which breaks search on
// accented text.
const sqliteDriver = "sqlite3_trivia"

func init() {
	sql.Register(sqliteDriver, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("lower", strings.ToLower, true)
		},
	})
}

// SQLiteQuestionRepository stores questions in a local SQLite file, for
// development without a Postgres server.
type SQLiteQuestionRepository struct {
	conn *sql.DB
}

var _ question.Store = (*SQLiteQuestionRepository)(nil)

// OpenSQLite opens (creating when needed) the database at path and
// initializes tables and the default categories.
func OpenSQLite(ctx context.Context, path string) (*SQLiteQuestionRepository, error) {
	conn, err := sql.Open(sqliteDriver, fmt.Sprintf("file:%s?_fk=1&_busy_timeout=5000", path))
	if err != nil {
		return nil, err
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	if err := createTables(ctx, conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return &SQLiteQuestionRepository{conn: conn}, nil
}

func createTables(ctx context.Context, conn *sql.DB) error {
	_, err := conn.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS categories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			type TEXT NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	_, err = conn.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS questions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			question TEXT NOT NULL,
			answer TEXT NOT NULL,
			category INTEGER NOT NULL REFERENCES categories(id),
			difficulty INTEGER NOT NULL CHECK (difficulty BETWEEN 1 AND 5)
		)
	`)
	if err != nil {
		return err
	}

	for _, c := range question.DefaultCategories {
		if _, err := conn.ExecContext(ctx,
			"INSERT OR IGNORE INTO categories (id, type) VALUES (?, ?)", c.ID, c.Type,
		); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connection
func (r *SQLiteQuestionRepository) Close() error {
	return r.conn.Close()
}

func (r *SQLiteQuestionRepository) ListCategories(ctx context.Context) ([]question.Category, error) {
	rows, err := r.conn.QueryContext(ctx, "SELECT id, type FROM categories ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []question.Category{}
	for rows.Next() {
		var c question.Category
		if err := rows.Scan(&c.ID, &c.Type); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *SQLiteQuestionRepository) GetCategory(ctx context.Context, id int64) (question.Category, error) {
	var c question.Category
	err := r.conn.QueryRowContext(ctx, "SELECT id, type FROM categories WHERE id = ?", id).Scan(&c.ID, &c.Type)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return question.Category{}, question.ErrNotFound
		}
		return question.Category{}, err
	}
	return c, nil
}

func (r *SQLiteQuestionRepository) ListQuestions(ctx context.Context, filter question.Filter) ([]question.Question, error) {
	query, args := buildListQuery(filter, questionMarkPlaceholder)
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := []question.Question{}
	for rows.Next() {
		var q question.Question
		if err := rows.Scan(&q.ID, &q.Question, &q.Answer, &q.Category, &q.Difficulty); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (r *SQLiteQuestionRepository) InsertQuestion(ctx context.Context, q question.NewQuestion) (int64, error) {
	res, err := r.conn.ExecContext(ctx,
		"INSERT INTO questions (question, answer, category, difficulty) VALUES (?, ?, ?, ?)",
		q.Question, q.Answer, q.Category, q.Difficulty,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return 0, fmt.Errorf("%w: %s", question.ErrUnprocessable, sqliteErr.Error())
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (r *SQLiteQuestionRepository) DeleteQuestion(ctx context.Context, id int64) error {
	res, err := r.conn.ExecContext(ctx, "DELETE FROM questions WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return question.ErrNotFound
	}
	return nil
}

func (r *SQLiteQuestionRepository) Ping(ctx context.Context) error {
	return r.conn.PingContext(ctx)
}
