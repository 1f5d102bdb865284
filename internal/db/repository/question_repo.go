package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gokatarajesh/trivia-api/internal/question"
)

// Postgres error codes surfaced as validation failures.
const (
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

// dbtx is the subset of pgxpool.Pool used by the repository.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Ping(ctx context.Context) error
}

// QuestionRepository stores questions and categories in Postgres.
type QuestionRepository struct {
	db dbtx
}

var _ question.Store = (*QuestionRepository)(nil)

// NewQuestionRepository wraps a pgx pool (or transaction-like dbtx).
func NewQuestionRepository(db dbtx) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// ListCategories returns every category in id order.
func (r *QuestionRepository) ListCategories(ctx context.Context) ([]question.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, type FROM categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (question.Category, error) {
		var c question.Category
		err := row.Scan(&c.ID, &c.Type)
		return c, err
	})
}

// GetCategory fetches a category by id.
func (r *QuestionRepository) GetCategory(ctx context.Context, id int64) (question.Category, error) {
	var c question.Category
	err := r.db.QueryRow(ctx, `SELECT id, type FROM categories WHERE id = $1`, id).Scan(&c.ID, &c.Type)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return question.Category{}, question.ErrNotFound
		}
		return question.Category{}, err
	}
	return c, nil
}

// ListQuestions scans questions matching filter in id order.
func (r *QuestionRepository) ListQuestions(ctx context.Context, filter question.Filter) ([]question.Question, error) {
	sql, args := buildListQuery(filter, dollarPlaceholder)
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	questions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (question.Question, error) {
		var q question.Question
		err := row.Scan(&q.ID, &q.Question, &q.Answer, &q.Category, &q.Difficulty)
		return q, err
	})
	if err != nil {
		return nil, err
	}
	if questions == nil {
		questions = []question.Question{}
	}
	return questions, nil
}

// InsertQuestion stores q and returns its assigned id.
func (r *QuestionRepository) InsertQuestion(ctx context.Context, q question.NewQuestion) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO questions (question, answer, category, difficulty)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, q.Question, q.Answer, q.Category, q.Difficulty).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgForeignKeyViolation, pgNotNullViolation, pgCheckViolation:
				return 0, fmt.Errorf("%w: %s", question.ErrUnprocessable, pgErr.Message)
			}
		}
		return 0, err
	}
	return id, nil
}

// DeleteQuestion removes question id.
func (r *QuestionRepository) DeleteQuestion(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return question.ErrNotFound
	}
	return nil
}

// Ping checks database connectivity.
func (r *QuestionRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
