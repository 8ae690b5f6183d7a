package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/umputun/luna/pkg/domain"
	"github.com/umputun/luna/pkg/interaction"
	"github.com/umputun/luna/pkg/repository"
)

// apiResponse is the envelope of the integration endpoints
type apiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// trainedRecord is the export format of a trained knowledge base record
type trainedRecord struct {
	ID         int64    `json:"id"`
	Question   string   `json:"question"`
	Answer     string   `json:"answer"`
	Tags       []string `json:"tags"`
	Confidence float64  `json:"confidence"`
}

// logResponseHandler records an interaction produced by an external backend
func (s *Server) logResponseHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserMessage *string  `json:"user_message"`
		AIResponse  *string  `json:"ai_response"`
		Source      string   `json:"source"`
		Score       *float64 `json:"score"`
		Feedback    *string  `json:"feedback"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserMessage == nil || req.AIResponse == nil {
		renderJSON(w, r, http.StatusBadRequest, apiResponse{Message: "Invalid request. Required fields missing.", Data: []string{}})
		return
	}

	source := domain.Source(strings.TrimSpace(req.Source))
	if source == "" {
		source = domain.SourceGPT
	}
	if !source.Valid() {
		renderJSON(w, r, http.StatusBadRequest, apiResponse{Message: fmt.Sprintf("Invalid source %q", source), Data: []string{}})
		return
	}

	entry := interaction.Entry{
		UserMessage: strings.TrimSpace(*req.UserMessage),
		AIResponse:  strings.TrimSpace(*req.AIResponse),
		Source:      source,
		Score:       req.Score,
		IP:          requestMeta(r).IP,
		UserAgent:   r.UserAgent(),
	}
	if req.Feedback != nil {
		entry.Feedback = interaction.String(strings.TrimSpace(*req.Feedback))
	}

	id, err := s.recorder.Record(r.Context(), entry)
	if err != nil {
		s.log.Logf("[ERROR] failed to log response: %v", err)
		renderJSON(w, r, http.StatusInternalServerError, apiResponse{Message: "Failed to log response", Data: []string{}})
		return
	}
	renderJSON(w, r, http.StatusOK, apiResponse{Success: true, Message: "Response logged successfully",
		Data: map[string]int64{"log_id": id}})
}

// trainedHandler exports active trained records as a JSON download
func (s *Server) trainedHandler(w http.ResponseWriter, r *http.Request) {
	recs, err := s.knowledge.GetTrainedRecords(r.Context())
	if err != nil {
		s.log.Logf("[ERROR] export trained data error: %v", err)
		renderJSON(w, r, http.StatusInternalServerError, apiResponse{Message: "Failed to export data", Data: []string{}})
		return
	}

	data := make([]trainedRecord, 0, len(recs))
	for _, rec := range recs {
		data = append(data, trainedRecord{ID: rec.ID, Question: rec.Question, Answer: rec.Answer,
			Tags: rec.Tags, Confidence: rec.Confidence})
	}

	now := time.Now()
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="trained_data_%s.json"`, now.Format("2006-01-02")))
	renderJSON(w, r, http.StatusOK, map[string]interface{}{
		"success":      true,
		"count":        len(data),
		"generated_at": now.Format("2006-01-02 15:04:05"),
		"data":         data,
	})
}

// trainHandler turns a reviewed interaction into a trained knowledge base record
func (s *Server) trainHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LogID      int64    `json:"log_id"`
		Question   string   `json:"question"`
		Answer     string   `json:"answer"`
		Tags       []string `json:"tags"`
		Confidence *float64 `json:"confidence"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}

	confidence := 1.0
	if req.Confidence != nil {
		confidence = *req.Confidence
	}
	switch {
	case req.LogID <= 0:
		renderError(w, r, fmt.Errorf("log_id is required"), http.StatusBadRequest)
		return
	case strings.TrimSpace(req.Question) == "" || strings.TrimSpace(req.Answer) == "":
		renderError(w, r, fmt.Errorf("question and answer are required"), http.StatusBadRequest)
		return
	case confidence < 0 || confidence > 1:
		renderError(w, r, fmt.Errorf("confidence must be in range 0..1"), http.StatusBadRequest)
		return
	}

	rec := &domain.QARecord{
		Question:   strings.TrimSpace(req.Question),
		Answer:     strings.TrimSpace(req.Answer),
		Tags:       req.Tags,
		Confidence: confidence,
	}
	id, err := s.knowledge.TrainFromLog(r.Context(), req.LogID, rec)
	if errors.Is(err, repository.ErrNotFound) {
		renderError(w, r, fmt.Errorf("interaction %d not found", req.LogID), http.StatusNotFound)
		return
	}
	if err != nil {
		s.log.Logf("[ERROR] failed to train from log %d: %v", req.LogID, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, apiResponse{Success: true, Message: "Trained", Data: map[string]int64{"id": id}})
}

// statsHandler reports interaction counts by answer source
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	counts, err := s.stats.CountBySource(r.Context())
	if err != nil {
		s.log.Logf("[ERROR] failed to count interactions: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	var total int64
	sources := make(map[string]int64, len(counts))
	for src, n := range counts {
		sources[string(src)] = n
		total += n
	}
	renderJSON(w, r, http.StatusOK, map[string]interface{}{"total": total, "sources": sources})
}

// invalidateSettingsHandler drops cached settings after they were changed in the database
func (s *Server) invalidateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	s.settings.Invalidate()
	s.log.Logf("[INFO] settings cache invalidated")
	renderJSON(w, r, http.StatusOK, apiResponse{Success: true, Message: "Settings reloaded", Data: []string{}})
}
