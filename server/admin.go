package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/umputun/luna/pkg/domain"
	"github.com/umputun/luna/pkg/repository"
	"github.com/umputun/luna/pkg/settings"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// logRecord is the review format of an interaction log entry
type logRecord struct {
	ID          int64     `json:"id"`
	UserMessage string    `json:"user_message"`
	AIResponse  string    `json:"ai_response"`
	Source      string    `json:"source"`
	Score       *float64  `json:"score"`
	Feedback    *string   `json:"feedback"`
	IP          string    `json:"ip_address"`
	UserAgent   string    `json:"user_agent"`
	CreatedAt   time.Time `json:"created_at"`
	Trained     bool      `json:"trained"`
	ExistsInDB  bool      `json:"exists_in_db"`
}

// knowledgeRecord is the curation format of a knowledge base record
type knowledgeRecord struct {
	ID         int64     `json:"id"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	Tags       []string  `json:"tags"`
	Confidence float64   `json:"confidence"`
	Status     string    `json:"status"`
	IsTrained  bool      `json:"is_trained"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// knowledgeRequest is the body of knowledge base create and update calls
type knowledgeRequest struct {
	Question   string   `json:"question"`
	Answer     string   `json:"answer"`
	Tags       []string `json:"tags"`
	Confidence *float64 `json:"confidence"`
	Status     string   `json:"status"`
	IsTrained  bool     `json:"is_trained"`
}

// listLogsHandler returns interaction log entries, newest first.
// Query: source, trained (0/1), limit, offset. trained=0 is the review queue.
func (s *Server) listLogsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, offset, err := paging(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	filter := repository.LogFilter{Source: domain.Source(q.Get("source")), Limit: limit, Offset: offset}
	if filter.Source != "" && !filter.Source.Valid() {
		renderError(w, r, fmt.Errorf("unknown source %q", filter.Source), http.StatusBadRequest)
		return
	}
	if v := q.Get("trained"); v != "" {
		trained, err := strconv.ParseBool(v)
		if err != nil {
			renderError(w, r, fmt.Errorf("invalid trained value %q", v), http.StatusBadRequest)
			return
		}
		filter.Trained = &trained
	}

	entries, err := s.logs.ListEntries(r.Context(), filter)
	if err != nil {
		s.log.Logf("[ERROR] failed to list interaction logs: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	data := make([]logRecord, 0, len(entries))
	for i := range entries {
		data = append(data, toLogRecord(&entries[i]))
	}
	renderJSON(w, r, http.StatusOK, apiResponse{Success: true, Data: data})
}

// getLogHandler returns a single interaction log entry
func (s *Server) getLogHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	entry, err := s.logs.GetEntry(r.Context(), id)
	if err != nil {
		s.renderStoreError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, apiResponse{Success: true, Data: toLogRecord(entry)})
}

// listKnowledgeHandler returns knowledge base records ordered by id. Query: status, limit, offset.
func (s *Server) listKnowledgeHandler(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := paging(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	status := domain.QAStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		renderError(w, r, fmt.Errorf("unknown status %q", status), http.StatusBadRequest)
		return
	}

	recs, err := s.knowledge.ListRecords(r.Context(), status, limit, offset)
	if err != nil {
		s.log.Logf("[ERROR] failed to list knowledge records: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	data := make([]knowledgeRecord, 0, len(recs))
	for i := range recs {
		data = append(data, toKnowledgeRecord(&recs[i]))
	}
	renderJSON(w, r, http.StatusOK, apiResponse{Success: true, Data: data})
}

// getKnowledgeHandler returns a single knowledge base record
func (s *Server) getKnowledgeHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	rec, err := s.knowledge.GetRecord(r.Context(), id)
	if err != nil {
		s.renderStoreError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, apiResponse{Success: true, Data: toKnowledgeRecord(rec)})
}

// createKnowledgeHandler adds a curated record
func (s *Server) createKnowledgeHandler(w http.ResponseWriter, r *http.Request) {
	rec, err := decodeKnowledge(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	if err := s.knowledge.CreateRecord(r.Context(), rec); err != nil {
		s.log.Logf("[ERROR] failed to create knowledge record: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	s.log.Logf("[INFO] knowledge record %d created", rec.ID)
	renderJSON(w, r, http.StatusCreated, apiResponse{Success: true, Message: "Created", Data: toKnowledgeRecord(rec)})
}

// updateKnowledgeHandler replaces a curated record
func (s *Server) updateKnowledgeHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	rec, err := decodeKnowledge(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	rec.ID = id

	if err := s.knowledge.UpdateRecord(r.Context(), rec); err != nil {
		s.renderStoreError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, apiResponse{Success: true, Message: "Updated", Data: toKnowledgeRecord(rec)})
}

// deleteKnowledgeHandler removes a curated record
func (s *Server) deleteKnowledgeHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	if err := s.knowledge.DeleteRecord(r.Context(), id); err != nil {
		s.renderStoreError(w, r, err)
		return
	}
	s.log.Logf("[INFO] knowledge record %d deleted", id)
	renderJSON(w, r, http.StatusOK, apiResponse{Success: true, Message: "Deleted", Data: []string{}})
}

// setSettingHandler writes one runtime setting and drops the settings cache
func (s *Server) setSettingHandler(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	var req struct {
		Value *string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Value == nil {
		renderError(w, r, fmt.Errorf("value is required"), http.StatusBadRequest)
		return
	}
	value := strings.TrimSpace(*req.Value)
	if err := settings.Validate(key, value); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	if err := s.settingsStore.SetSetting(r.Context(), key, value); err != nil {
		s.log.Logf("[ERROR] failed to set %s: %v", key, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	s.settings.Invalidate()
	s.log.Logf("[INFO] setting %s updated", key)
	renderJSON(w, r, http.StatusOK, apiResponse{Success: true, Message: "Setting updated", Data: []string{}})
}

// renderStoreError maps repository.ErrNotFound to 404, everything else to 500
func (s *Server) renderStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		renderError(w, r, err, http.StatusNotFound)
		return
	}
	s.log.Logf("[ERROR] store error on %s %s: %v", r.Method, r.URL.Path, err)
	renderError(w, r, err, http.StatusInternalServerError)
}

// decodeKnowledge reads and validates a knowledge request body.
// Confidence defaults to 1.0 and status to active.
func decodeKnowledge(r *http.Request) (*domain.QARecord, error) {
	var req knowledgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("invalid request body")
	}

	rec := &domain.QARecord{
		Question:   strings.TrimSpace(req.Question),
		Answer:     strings.TrimSpace(req.Answer),
		Tags:       req.Tags,
		Confidence: 1.0,
		Status:     domain.QAStatus(req.Status),
		IsTrained:  req.IsTrained,
	}
	if req.Confidence != nil {
		rec.Confidence = *req.Confidence
	}
	if rec.Status == "" {
		rec.Status = domain.QAStatusActive
	}

	switch {
	case rec.Question == "" || rec.Answer == "":
		return nil, fmt.Errorf("question and answer are required")
	case rec.Confidence < 0 || rec.Confidence > 1:
		return nil, fmt.Errorf("confidence must be in range 0..1")
	case !rec.Status.Valid():
		return nil, fmt.Errorf("unknown status %q", rec.Status)
	}
	return rec, nil
}

// paging reads limit and offset query parameters
func paging(r *http.Request) (limit, offset int, err error) {
	q := r.URL.Query()
	limit = defaultPageSize
	if v := q.Get("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil || limit < 1 || limit > maxPageSize {
			return 0, 0, fmt.Errorf("limit must be in range 1..%d", maxPageSize)
		}
	}
	if v := q.Get("offset"); v != "" {
		if offset, err = strconv.Atoi(v); err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("offset must be non-negative")
		}
	}
	return limit, offset, nil
}

// pathID parses the {id} path value
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", r.PathValue("id"))
	}
	return id, nil
}

func toLogRecord(e *domain.InteractionLogEntry) logRecord {
	return logRecord{
		ID:          e.ID,
		UserMessage: e.UserMessage,
		AIResponse:  e.AIResponse,
		Source:      string(e.Source),
		Score:       e.Score,
		Feedback:    e.Feedback,
		IP:          e.IP,
		UserAgent:   e.UserAgent,
		CreatedAt:   e.CreatedAt,
		Trained:     e.Trained,
		ExistsInDB:  e.InKnowledge,
	}
}

func toKnowledgeRecord(rec *domain.QARecord) knowledgeRecord {
	tags := rec.Tags
	if tags == nil {
		tags = []string{}
	}
	return knowledgeRecord{
		ID:         rec.ID,
		Question:   rec.Question,
		Answer:     rec.Answer,
		Tags:       tags,
		Confidence: rec.Confidence,
		Status:     string(rec.Status),
		IsTrained:  rec.IsTrained,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
}
