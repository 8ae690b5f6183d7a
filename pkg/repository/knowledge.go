package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/luna/pkg/domain"
)

// ErrNotFound is returned when a requested record doesn't exist
var ErrNotFound = errors.New("not found")

// KnowledgeRepository handles knowledge base (prompt_data) operations
type KnowledgeRepository struct {
	db *sqlx.DB
}

// qaSQL represents a knowledge base record for SQL operations
type qaSQL struct {
	ID         int64     `db:"id"`
	Question   string    `db:"question"`
	Answer     string    `db:"answer"`
	Tags       string    `db:"tags"`
	Confidence float64   `db:"confidence_level"`
	Status     string    `db:"status"`
	IsTrained  bool      `db:"is_trained"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

const qaColumns = "id, question, answer, tags, confidence_level, status, is_trained, created_at, updated_at"

// NewKnowledgeRepository creates a new knowledge base repository
func NewKnowledgeRepository(db *sqlx.DB) *KnowledgeRepository {
	return &KnowledgeRepository{db: db}
}

// CreateRecord inserts a new knowledge base record and sets its ID
func (r *KnowledgeRepository) CreateRecord(ctx context.Context, rec *domain.QARecord) error {
	if err := validateRecord(rec); err != nil {
		return err
	}

	query := `
		INSERT INTO prompt_data (question, answer, tags, confidence_level, status, is_trained)
		VALUES (:question, :answer, :tags, :confidence_level, :status, :is_trained)
	`
	result, err := r.db.NamedExecContext(ctx, query, toQASQL(rec))
	if err != nil {
		return fmt.Errorf("create record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get insert id: %w", err)
	}
	rec.ID = id
	return nil
}

// GetRecord retrieves a knowledge base record by ID
func (r *KnowledgeRepository) GetRecord(ctx context.Context, id int64) (*domain.QARecord, error) {
	var rec qaSQL
	err := r.db.GetContext(ctx, &rec, "SELECT "+qaColumns+" FROM prompt_data WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get record %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return rec.toDomain(), nil
}

// UpdateRecord replaces question, answer, tags, confidence, status and trained flag
func (r *KnowledgeRepository) UpdateRecord(ctx context.Context, rec *domain.QARecord) error {
	if err := validateRecord(rec); err != nil {
		return err
	}

	query := `
		UPDATE prompt_data
		SET question = :question,
		    answer = :answer,
		    tags = :tags,
		    confidence_level = :confidence_level,
		    status = :status,
		    is_trained = :is_trained
		WHERE id = :id
	`
	result, err := r.db.NamedExecContext(ctx, query, toQASQL(rec))
	if err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update record %d: %w", rec.ID, ErrNotFound)
	}
	return nil
}

// DeleteRecord removes a knowledge base record
func (r *KnowledgeRepository) DeleteRecord(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM prompt_data WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("delete record %d: %w", id, ErrNotFound)
	}
	return nil
}

// ListRecords returns records ordered by id, optionally filtered by status
func (r *KnowledgeRepository) ListRecords(ctx context.Context, status domain.QAStatus, limit, offset int) ([]domain.QARecord, error) {
	query := "SELECT " + qaColumns + " FROM prompt_data"
	args := []interface{}{}
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, string(status))
	}
	query += " ORDER BY id LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	var recs []qaSQL
	if err := r.db.SelectContext(ctx, &recs, query, args...); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return toDomainRecords(recs), nil
}

// FindActiveByQuestion returns the active record whose question equals the given one
// case-insensitively. The lowest id wins when several records qualify.
// Returns nil without error when nothing matches.
func (r *KnowledgeRepository) FindActiveByQuestion(ctx context.Context, question string) (*domain.QARecord, error) {
	query := `
		SELECT ` + qaColumns + `
		FROM prompt_data
		WHERE ulower(question) = ulower(?) AND status = 'active'
		ORDER BY id
		LIMIT 1
	`
	var rec qaSQL
	err := r.db.GetContext(ctx, &rec, query, strings.TrimSpace(question))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find active by question: %w", err)
	}
	return rec.toDomain(), nil
}

// FindActiveByKeywords returns active records whose question contains any of the keywords,
// case-insensitively, ordered by id
func (r *KnowledgeRepository) FindActiveByKeywords(ctx context.Context, keywords []string) ([]domain.QARecord, error) {
	if len(keywords) == 0 {
		return []domain.QARecord{}, nil
	}

	clauses := make([]string, 0, len(keywords))
	args := make([]interface{}, 0, len(keywords))
	for _, kw := range keywords {
		clauses = append(clauses, `ulower(question) LIKE ? ESCAPE '\'`)
		args = append(args, likePattern(kw))
	}

	query := `
		SELECT ` + qaColumns + `
		FROM prompt_data
		WHERE (` + strings.Join(clauses, " OR ") + `) AND status = 'active'
		ORDER BY id
	`
	var recs []qaSQL
	if err := r.db.SelectContext(ctx, &recs, query, args...); err != nil {
		return nil, fmt.Errorf("find active by keywords: %w", err)
	}
	return toDomainRecords(recs), nil
}

// GetTrainedRecords returns active records marked as trained, ordered by id
func (r *KnowledgeRepository) GetTrainedRecords(ctx context.Context) ([]domain.QARecord, error) {
	query := "SELECT " + qaColumns + " FROM prompt_data WHERE is_trained = 1 AND status = 'active' ORDER BY id"
	var recs []qaSQL
	if err := r.db.SelectContext(ctx, &recs, query); err != nil {
		return nil, fmt.Errorf("get trained records: %w", err)
	}
	return toDomainRecords(recs), nil
}

// TrainFromLog turns a reviewed interaction into an active, trained knowledge base record.
// An existing record with the same question (case-insensitive) is updated instead of duplicated.
// The interaction is flagged as trained in the same transaction. Returns the record id.
func (r *KnowledgeRepository) TrainFromLog(ctx context.Context, logID int64, rec *domain.QARecord) (int64, error) {
	rec.Status = domain.QAStatusActive
	rec.IsTrained = true
	if err := validateRecord(rec); err != nil {
		return 0, err
	}

	var recID int64
	err := retryOnLock(ctx, func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback() //nolint:errcheck // no-op after commit

		res, err := tx.ExecContext(ctx, "UPDATE response_logs SET trained = 1 WHERE id = ?", logID)
		if err != nil {
			return fmt.Errorf("mark log trained: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("interaction %d: %w", logID, ErrNotFound)
		}

		var existingID int64
		err = tx.GetContext(ctx, &existingID,
			"SELECT id FROM prompt_data WHERE ulower(question) = ulower(?) ORDER BY id LIMIT 1", rec.Question)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			res, err := tx.ExecContext(ctx, `
				INSERT INTO prompt_data (question, answer, tags, confidence_level, status, is_trained)
				VALUES (?, ?, ?, ?, 'active', 1)`,
				rec.Question, rec.Answer, tagsSQL(rec.Tags), rec.Confidence)
			if err != nil {
				return fmt.Errorf("insert trained record: %w", err)
			}
			if recID, err = res.LastInsertId(); err != nil {
				return fmt.Errorf("get insert id: %w", err)
			}
		case err != nil:
			return fmt.Errorf("find existing record: %w", err)
		default:
			_, err := tx.ExecContext(ctx, `
				UPDATE prompt_data
				SET answer = ?, tags = ?, confidence_level = ?, is_trained = 1, status = 'active'
				WHERE id = ?`,
				rec.Answer, tagsSQL(rec.Tags), rec.Confidence, existingID)
			if err != nil {
				return fmt.Errorf("update trained record: %w", err)
			}
			recID = existingID
		}

		return tx.Commit()
	})
	if err != nil {
		return 0, fmt.Errorf("train from log: %w", err)
	}
	rec.ID = recID
	return recID, nil
}

// validateRecord checks record invariants before writing
func validateRecord(rec *domain.QARecord) error {
	if strings.TrimSpace(rec.Question) == "" || strings.TrimSpace(rec.Answer) == "" {
		return fmt.Errorf("question and answer are required")
	}
	if rec.Confidence < 0 || rec.Confidence > 1 {
		return fmt.Errorf("confidence %.2f out of range 0..1", rec.Confidence)
	}
	if rec.Status == "" {
		rec.Status = domain.QAStatusActive
	}
	if !rec.Status.Valid() {
		return fmt.Errorf("unknown status %q", rec.Status)
	}
	return nil
}

func toQASQL(rec *domain.QARecord) *qaSQL {
	return &qaSQL{
		ID:         rec.ID,
		Question:   strings.TrimSpace(rec.Question),
		Answer:     rec.Answer,
		Tags:       tagsSQL(rec.Tags),
		Confidence: rec.Confidence,
		Status:     string(rec.Status),
		IsTrained:  rec.IsTrained,
	}
}

// toDomain converts qaSQL to domain.QARecord
func (q *qaSQL) toDomain() *domain.QARecord {
	return &domain.QARecord{
		ID:         q.ID,
		Question:   q.Question,
		Answer:     q.Answer,
		Tags:       parseTags(q.Tags),
		Confidence: q.Confidence,
		Status:     domain.QAStatus(q.Status),
		IsTrained:  q.IsTrained,
		CreatedAt:  q.CreatedAt,
		UpdatedAt:  q.UpdatedAt,
	}
}

func toDomainRecords(recs []qaSQL) []domain.QARecord {
	res := make([]domain.QARecord, len(recs))
	for i := range recs {
		res[i] = *recs[i].toDomain()
	}
	return res
}
