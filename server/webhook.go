package server

import (
	"encoding/json"
	"errors"
	"html"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/rest/realip"
	"github.com/google/uuid"

	"github.com/umputun/luna/pkg/resolver"
	"github.com/umputun/luna/pkg/settings"
)

// webhook reply texts
const (
	msgWebhookReady     = "Luna webhook siap menerima requests"
	msgQuestionNotFound = "Pertanyaan tidak ditemukan dalam request"
	msgNotUnderstood    = "Maaf, saya tidak dapat memahami pertanyaan Anda."
	msgTooManyRequests  = "Terlalu banyak permintaan. Silakan coba lagi nanti."
)

const rateLimitWindow = time.Minute

// webhookMessage is a single reply item in the chat front-end format
type webhookMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// webhookResponse is the reply envelope expected by the chat front-end
type webhookResponse struct {
	Responses []webhookMessage `json:"responses"`
}

// webhookHandler serves the chat front-end webhook.
// A challenge parameter is echoed back before anything else, for the webhook registration handshake.
func (s *Server) webhookHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if challenge, ok := challengeParam(r); ok {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(challenge))
		return
	}

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
	case http.MethodPost:
		s.answerWebhook(w, r)
	default:
		renderJSON(w, r, http.StatusOK, map[string]string{"status": "ok", "message": msgWebhookReady})
	}
}

// answerWebhook extracts the question, resolves it and replies in the webhook envelope
func (s *Server) answerWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if s.webhookAuth && !s.authorized(r) {
		renderError(w, r, errUnauthorized, http.StatusUnauthorized)
		return
	}

	meta := requestMeta(r)
	current := s.settings.Get(ctx)
	if limit := current.RateLimitPerMinute; limit > 0 && s.rateLimiter != nil {
		hits, err := s.rateLimiter.Hit(ctx, meta.IP, rateLimitWindow, time.Now())
		switch {
		case err != nil:
			// limiter failure never blocks the request
			s.log.Logf("[WARN] rate limiter failed for %s, %v", meta.IP, err)
		case hits > limit:
			s.log.Logf("[INFO] rate limit exceeded for %s, %d hits", meta.IP, hits)
			renderWebhook(w, r, http.StatusTooManyRequests, msgTooManyRequests)
			return
		}
	}

	var body map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.log.Logf("[DEBUG] can't decode webhook body from %s, %v", meta.IP, err)
	}

	raw, found := extractQuestion(body)
	if !found {
		msg := msgQuestionNotFound
		if hasChatIDs(body) {
			msg = msgNotUnderstood
		}
		renderWebhook(w, r, http.StatusBadRequest, msg)
		return
	}

	answer, err := s.resolver.Resolve(ctx, s.sanitize(raw), meta)
	switch {
	case errors.Is(err, resolver.ErrValidation):
		renderWebhook(w, r, http.StatusBadRequest, msgQuestionNotFound)
		return
	case err != nil:
		// the user-facing webhook degrades to the static text instead of failing
		s.log.Logf("[ERROR] can't resolve question for request %s, %v", meta.RequestID, err)
		answer = current.FallbackResponse
		if answer == "" {
			answer = settings.DefaultFallbackResponse
		}
	}

	renderWebhook(w, r, http.StatusOK, answer)
}

// sanitize strips markup from inbound questions, entities are decoded back to text
func (s *Server) sanitize(q string) string {
	return strings.TrimSpace(html.UnescapeString(s.sanitizer.Sanitize(q)))
}

func renderWebhook(w http.ResponseWriter, r *http.Request, code int, msg string) {
	renderJSON(w, r, code, webhookResponse{Responses: []webhookMessage{{Type: "TEXT", Message: msg}}})
}

// challengeParam looks for the challenge in the query string and in form-encoded bodies
func challengeParam(r *http.Request) (string, bool) {
	if q := r.URL.Query(); q.Has("challenge") {
		return q.Get("challenge"), true
	}
	if r.Method == http.MethodPost && strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err == nil && r.PostForm.Has("challenge") {
			return r.PostForm.Get("challenge"), true
		}
	}
	return "", false
}

// extractQuestion probes question, message and text keys in this order, then the first
// INPUT_MESSAGE entry of the responses array. The first present string value wins, even if empty.
func extractQuestion(body map[string]json.RawMessage) (string, bool) {
	for _, key := range []string{"question", "message", "text"} {
		raw, ok := body[key]
		if !ok {
			continue
		}
		var v *string
		if err := json.Unmarshal(raw, &v); err == nil && v != nil {
			return *v, true
		}
	}

	raw, ok := body["responses"]
	if !ok {
		return "", false
	}
	var items []struct {
		Type  string  `json:"type"`
		Value *string `json:"value"`
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return "", false
	}
	for _, it := range items {
		if it.Type == "INPUT_MESSAGE" && it.Value != nil {
			return *it.Value, true
		}
	}
	return "", false
}

// hasChatIDs detects the chat front-end message format that carries user, external and message ids
func hasChatIDs(body map[string]json.RawMessage) bool {
	for _, key := range []string{"userId", "externalId", "messageId"} {
		if _, ok := body[key]; !ok {
			return false
		}
	}
	return true
}

// requestMeta collects caller details for the resolution chain
func requestMeta(r *http.Request) resolver.RequestMeta {
	ip, err := realip.Get(r)
	if err != nil || ip == "" {
		if host, _, splitErr := net.SplitHostPort(r.RemoteAddr); splitErr == nil {
			ip = host
		} else {
			ip = r.RemoteAddr
		}
	}

	reqID := r.Header.Get("X-Request-ID")
	if reqID == "" {
		reqID = uuid.NewString()
	}
	return resolver.RequestMeta{IP: ip, UserAgent: r.UserAgent(), RequestID: reqID}
}
