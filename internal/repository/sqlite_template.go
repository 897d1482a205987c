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

// SQLiteTemplateRepo implements TemplateRepo. Questions and severity levels
// live in child tables keyed by position. Create and ReplaceScoring issue
// several statements; run them through a UnitOfWork for atomicity.
type SQLiteTemplateRepo struct {
	db db.DBTX
}

func NewSQLiteTemplateRepo(conn db.DBTX) *SQLiteTemplateRepo {
	return &SQLiteTemplateRepo{db: conn}
}

const templateColumns = `id, short_id, title, description, category, status, max_score, archived_at, created_at, updated_at`

func (r *SQLiteTemplateRepo) Create(ctx context.Context, t *domain.AssessmentTemplate) error {
	query := `INSERT INTO assessment_templates (` + templateColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.ShortID,
		t.Title,
		t.Description,
		t.Category,
		string(t.Status),
		t.Scoring.MaxScore,
		nullableTimeToString(t.ArchivedAt, time.RFC3339),
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting template: %w", err)
	}

	for i := range t.Questions {
		q := &t.Questions[i]
		q.TemplateID = t.ID
		if err := r.insertQuestion(ctx, q); err != nil {
			return err
		}
	}
	return r.insertLevels(ctx, t.ID, t.Scoring.SeverityLevels)
}

func (r *SQLiteTemplateRepo) GetByID(ctx context.Context, id string) (*domain.AssessmentTemplate, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+templateColumns+` FROM assessment_templates WHERE id = ?`, id)
	return r.loadOne(ctx, row)
}

func (r *SQLiteTemplateRepo) GetByShortID(ctx context.Context, shortID string) (*domain.AssessmentTemplate, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+templateColumns+` FROM assessment_templates WHERE UPPER(short_id) = UPPER(?)`, shortID)
	return r.loadOne(ctx, row)
}

func (r *SQLiteTemplateRepo) List(ctx context.Context, includeArchived bool) ([]*domain.AssessmentTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM assessment_templates`
	if !includeArchived {
		query += ` WHERE archived_at IS NULL`
	}
	query += ` ORDER BY created_at, short_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	var templates []*domain.AssessmentTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating templates: %w", err)
	}
	rows.Close()

	// Children are loaded after the cursor is closed so a single-connection
	// pool is never asked for a second concurrent query.
	for _, t := range templates {
		if err := r.loadChildren(ctx, t); err != nil {
			return nil, err
		}
	}
	return templates, nil
}

func (r *SQLiteTemplateRepo) ReplaceScoring(ctx context.Context, id string, rs domain.ScoringRuleSet) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE assessment_templates SET max_score = ?, updated_at = ? WHERE id = ?`,
		rs.MaxScore, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("updating max score: %w", err)
	}
	if err := expectAffected(res, "template"); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM severity_levels WHERE template_id = ?`, id); err != nil {
		return fmt.Errorf("clearing severity levels: %w", err)
	}
	return r.insertLevels(ctx, id, rs.SeverityLevels)
}

func (r *SQLiteTemplateRepo) UpdateStatus(ctx context.Context, id string, status domain.TemplateStatus) error {
	now := nowUTC()
	var archivedAt any
	if status == domain.TemplateArchived {
		archivedAt = now
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE assessment_templates SET status = ?, archived_at = ?, updated_at = ? WHERE id = ?`,
		string(status), archivedAt, now, id)
	if err != nil {
		return fmt.Errorf("updating template status: %w", err)
	}
	return expectAffected(res, "template")
}

func (r *SQLiteTemplateRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM assessment_templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting template: %w", err)
	}
	return expectAffected(res, "template")
}

func (r *SQLiteTemplateRepo) insertQuestion(ctx context.Context, q *domain.Question) error {
	opts, err := encodeJSON(q.Options)
	if err != nil {
		return fmt.Errorf("encoding options for question %d: %w", q.Position, err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO questions (id, template_id, position, text, type, required, options_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		q.ID, q.TemplateID, q.Position, q.Text, string(q.Type), boolToInt(q.Required), opts)
	if err != nil {
		return fmt.Errorf("inserting question %d: %w", q.Position, err)
	}
	return nil
}

func (r *SQLiteTemplateRepo) insertLevels(ctx context.Context, templateID string, levels []domain.SeverityLevel) error {
	for i, l := range levels {
		recs, err := encodeJSON(l.Recommendations)
		if err != nil {
			return fmt.Errorf("encoding recommendations for level %q: %w", l.Name, err)
		}
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO severity_levels (template_id, position, name, min_score, max_score, color, recommendations_json)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			templateID, i, l.Name, l.Range.Min, l.Range.Max, l.Color, recs)
		if err != nil {
			return fmt.Errorf("inserting severity level %q: %w", l.Name, err)
		}
	}
	return nil
}

func (r *SQLiteTemplateRepo) loadOne(ctx context.Context, row *sql.Row) (*domain.AssessmentTemplate, error) {
	t, err := scanTemplate(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadChildren(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *SQLiteTemplateRepo) loadChildren(ctx context.Context, t *domain.AssessmentTemplate) error {
	questions, err := r.listQuestions(ctx, t.ID)
	if err != nil {
		return err
	}
	levels, err := r.listLevels(ctx, t.ID)
	if err != nil {
		return err
	}
	t.Questions = questions
	t.Scoring.SeverityLevels = levels
	return nil
}

func (r *SQLiteTemplateRepo) listQuestions(ctx context.Context, templateID string) ([]domain.Question, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, template_id, position, text, type, required, options_json
		FROM questions WHERE template_id = ? ORDER BY position`, templateID)
	if err != nil {
		return nil, fmt.Errorf("listing questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var q domain.Question
		var typeStr, optsJSON string
		var required int
		if err := rows.Scan(&q.ID, &q.TemplateID, &q.Position, &q.Text, &typeStr, &required, &optsJSON); err != nil {
			return nil, fmt.Errorf("scanning question: %w", err)
		}
		q.Type = domain.QuestionType(typeStr)
		q.Required = intToBool(required)
		if err := decodeJSON(optsJSON, &q.Options, "options_json"); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating questions: %w", err)
	}
	return questions, nil
}

func (r *SQLiteTemplateRepo) listLevels(ctx context.Context, templateID string) ([]domain.SeverityLevel, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, min_score, max_score, color, recommendations_json
		FROM severity_levels WHERE template_id = ? ORDER BY position`, templateID)
	if err != nil {
		return nil, fmt.Errorf("listing severity levels: %w", err)
	}
	defer rows.Close()

	var levels []domain.SeverityLevel
	for rows.Next() {
		var l domain.SeverityLevel
		var recsJSON string
		if err := rows.Scan(&l.Name, &l.Range.Min, &l.Range.Max, &l.Color, &recsJSON); err != nil {
			return nil, fmt.Errorf("scanning severity level: %w", err)
		}
		if err := decodeJSON(recsJSON, &l.Recommendations, "recommendations_json"); err != nil {
			return nil, err
		}
		if len(l.Recommendations) == 0 {
			l.Recommendations = nil
		}
		levels = append(levels, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating severity levels: %w", err)
	}
	return levels, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row rowScanner) (*domain.AssessmentTemplate, error) {
	var t domain.AssessmentTemplate
	var statusStr, createdAtStr, updatedAtStr string
	var archivedAtStr sql.NullString

	err := row.Scan(
		&t.ID, &t.ShortID, &t.Title, &t.Description, &t.Category,
		&statusStr, &t.Scoring.MaxScore, &archivedAtStr,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("template: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning template: %w", err)
	}

	t.Status = domain.TemplateStatus(statusStr)
	t.ArchivedAt = parseNullableTime(archivedAtStr, time.RFC3339)
	if t.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if t.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &t, nil
}
