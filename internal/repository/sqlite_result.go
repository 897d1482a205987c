package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/mindwell/internal/db"
	"github.com/alexanderramin/mindwell/internal/domain"
)

// SQLiteResultRepo implements ResultRepo using a SQLite database.
type SQLiteResultRepo struct {
	db db.DBTX
}

func NewSQLiteResultRepo(conn db.DBTX) *SQLiteResultRepo {
	return &SQLiteResultRepo{db: conn}
}

// completedLayout has fixed-width fractions so completed_at sorts lexically.
const completedLayout = "2006-01-02T15:04:05.000000000Z07:00"

const resultColumns = `id, reference_code, template_id, respondent, total_score, max_score,
	severity_name, severity_color, recommendations_json, answers_json, completed_at`

func (r *SQLiteResultRepo) Create(ctx context.Context, res *domain.AssessmentResult) error {
	answers, err := encodeJSON(res.Answers)
	if err != nil {
		return fmt.Errorf("encoding answers: %w", err)
	}
	recs, err := encodeJSON(res.Recommendations)
	if err != nil {
		return fmt.Errorf("encoding recommendations: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO assessment_results (`+resultColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.ID,
		res.ReferenceCode,
		res.TemplateID,
		res.Respondent,
		res.TotalScore,
		res.MaxScore,
		res.SeverityName,
		res.SeverityColor,
		recs,
		answers,
		res.CompletedAt.UTC().Format(completedLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting result: %w", err)
	}
	return nil
}

func (r *SQLiteResultRepo) GetByReference(ctx context.Context, code string) (*domain.AssessmentResult, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+resultColumns+` FROM assessment_results WHERE reference_code = ?`, code)
	res, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("result %q: %w", code, ErrNotFound)
	}
	return res, err
}

func (r *SQLiteResultRepo) ListByTemplate(ctx context.Context, templateID string) ([]*domain.AssessmentResult, error) {
	return r.list(ctx,
		`SELECT `+resultColumns+` FROM assessment_results WHERE template_id = ? ORDER BY completed_at DESC`,
		templateID)
}

func (r *SQLiteResultRepo) ListRecent(ctx context.Context, limit int) ([]*domain.AssessmentResult, error) {
	if limit <= 0 {
		limit = 20
	}
	return r.list(ctx,
		`SELECT `+resultColumns+` FROM assessment_results ORDER BY completed_at DESC LIMIT ?`,
		limit)
}

func (r *SQLiteResultRepo) list(ctx context.Context, query string, args ...any) ([]*domain.AssessmentResult, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing results: %w", err)
	}
	defer rows.Close()

	var results []*domain.AssessmentResult
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating results: %w", err)
	}
	return results, nil
}

// scanResult returns sql.ErrNoRows unwrapped so callers can name the lookup.
func scanResult(row rowScanner) (*domain.AssessmentResult, error) {
	var res domain.AssessmentResult
	var recsJSON, answersJSON, completedAtStr string

	err := row.Scan(
		&res.ID, &res.ReferenceCode, &res.TemplateID, &res.Respondent,
		&res.TotalScore, &res.MaxScore, &res.SeverityName, &res.SeverityColor,
		&recsJSON, &answersJSON, &completedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning result: %w", err)
	}

	if err := decodeJSON(recsJSON, &res.Recommendations, "recommendations_json"); err != nil {
		return nil, err
	}
	if len(res.Recommendations) == 0 {
		res.Recommendations = nil
	}
	if err := decodeJSON(answersJSON, &res.Answers, "answers_json"); err != nil {
		return nil, err
	}
	if res.CompletedAt, err = time.Parse(completedLayout, completedAtStr); err != nil {
		return nil, fmt.Errorf("parsing completed_at: %w", err)
	}
	return &res, nil
}
