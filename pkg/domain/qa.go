package domain

import "time"

// QAStatus is the curation state of a knowledge base record
type QAStatus string

const (
	QAStatusActive   QAStatus = "active"
	QAStatusInactive QAStatus = "inactive"
	QAStatusDraft    QAStatus = "draft"
)

// Valid reports whether the status is one of the known values
func (s QAStatus) Valid() bool {
	switch s {
	case QAStatusActive, QAStatusInactive, QAStatusDraft:
		return true
	}
	return false
}

// QARecord is a curated question/answer pair of the knowledge base.
// Only records with QAStatusActive take part in matching.
type QARecord struct {
	ID         int64
	Question   string
	Answer     string
	Tags       []string
	Confidence float64 // 0.0-1.0
	Status     QAStatus
	IsTrained  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
