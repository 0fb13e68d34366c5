package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/neweraservicez/startup-os/internal/adapters/sessionexchange"
	"github.com/neweraservicez/startup-os/internal/app/auth"
	"github.com/neweraservicez/startup-os/internal/app/blueprint"
	"github.com/neweraservicez/startup-os/internal/app/conversation"
	"github.com/neweraservicez/startup-os/internal/app/generation"
	"github.com/neweraservicez/startup-os/internal/domain"
	"github.com/neweraservicez/startup-os/internal/observability"
)

const sessionCookieName = "session_token"

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type messageResponse struct {
	Message string `json:"message"`
}

type sessionResponse struct {
	User         *domain.User `json:"user"`
	SessionToken string       `json:"session_token"`
}

type companyNameRequest struct {
	CompanyName string `json:"company_name"`
}

type updateLayerRequest struct {
	LayerID string         `json:"layer_id"`
	Content map[string]any `json:"content"`
	Status  *string        `json:"status"`
}

type updateLayerResponse struct {
	Message string                 `json:"message"`
	Layers  []domain.LayerProgress `json:"layers"`
}

type generateRequest struct {
	LayerID     string `json:"layer_id"`
	Prompt      string `json:"prompt"`
	CompanyName string `json:"company_name"`
}

type generateResponse struct {
	Content domain.GeneratedContent `json:"content"`
}

type chatRequest struct {
	Message string  `json:"message"`
	Context *string `json:"context"`
}

type chatResponse struct {
	Response string `json:"response"`
}

type historyResponse struct {
	Messages []*domain.ChatMessage `json:"messages"`
}

type waitlistRequest struct {
	Email string  `json:"email"`
	Name  *string `json:"name"`
}

type waitlistResponse struct {
	Message string                `json:"message"`
	Entry   *domain.WaitlistEntry `json:"entry"`
}

// ─────────────────────────────────────────────
// System
// ─────────────────────────────────────────────

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "New Era Servicez API",
		"status":  "operational",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.store != nil {
		if err := s.store.Ping(r.Context()); err != nil {
			observability.LoggerFromContext(r.Context()).Warn("readiness check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// ─────────────────────────────────────────────
// Auth
// ─────────────────────────────────────────────

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	out, err := s.auth.Login(r.Context(), r.Header.Get(sessionexchange.HeaderSessionID))
	if err != nil {
		writeError(w, r, err)
		return
	}

	http.SetCookie(w, s.sessionCookie(string(out.Token), int(sessionMaxAge.Seconds())))
	writeJSON(w, http.StatusOK, sessionResponse{
		User:         out.User,
		SessionToken: string(out.Token),
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.Logout(r.Context(), credentials(r)); err != nil {
		writeError(w, r, err)
		return
	}
	http.SetCookie(w, s.sessionCookie("", -1))
	writeJSON(w, http.StatusOK, messageResponse{Message: "Logged out"})
}

// ─────────────────────────────────────────────
// Blueprint
// ─────────────────────────────────────────────

func (s *Server) handleGetBlueprint(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	bp, err := s.blueprints.GetOrCreate(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bp)
}

func (s *Server) handleUpdateCompanyName(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var req companyNameRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.blueprints.UpdateCompanyName(r.Context(), user.ID, req.CompanyName); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Company name updated"})
}

func (s *Server) handleUpdateLayer(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var req updateLayerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.LayerID == "" {
		writeDetail(w, http.StatusBadRequest, "layer_id is required")
		return
	}

	in := blueprint.UpdateLayerInput{
		UserID:  user.ID,
		LayerID: domain.LayerID(req.LayerID),
		Content: req.Content,
	}
	if req.Status != nil {
		st := domain.LayerStatus(*req.Status)
		in.Status = &st
	}

	layers, err := s.blueprints.UpdateLayer(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updateLayerResponse{Message: "Layer updated", Layers: layers})
}

// ─────────────────────────────────────────────
// Generation and chat
// ─────────────────────────────────────────────

func (s *Server) handleGenerateLayerContent(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var req generateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	content, err := s.generation.GenerateLayerContent(r.Context(), generation.LayerContentInput{
		UserID:      user.ID,
		LayerID:     domain.LayerID(req.LayerID),
		Prompt:      req.Prompt,
		CompanyName: req.CompanyName,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, generateResponse{Content: content})
}

func (s *Server) handleMentorChat(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var req chatRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeDetail(w, http.StatusBadRequest, "message is required")
		return
	}

	in := conversation.SendMessageInput{UserID: user.ID, Text: req.Message}
	if req.Context != nil {
		in.Context = *req.Context
	}

	out, err := s.conversation.SendMessage(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Response: out.AssistantMessage.Content})
}

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	msgs, err := s.conversation.History(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if msgs == nil {
		msgs = []*domain.ChatMessage{}
	}
	writeJSON(w, http.StatusOK, historyResponse{Messages: msgs})
}

// ─────────────────────────────────────────────
// Export
// ─────────────────────────────────────────────

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	file, err := s.export.PDF(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+file.Name)
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Data)
}

func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	bp, err := s.export.JSON(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bp)
}

// ─────────────────────────────────────────────
// Waitlist
// ─────────────────────────────────────────────

func (s *Server) handleJoinWaitlist(w http.ResponseWriter, r *http.Request) {
	var req waitlistRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	entry, created, err := s.waitlist.Join(r.Context(), req.Email, req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	msg := "Already on waitlist"
	if created {
		msg = "Successfully joined waitlist"
	}
	writeJSON(w, http.StatusOK, waitlistResponse{Message: msg, Entry: entry})
}

// ─────────────────────────────────────────────
// Auth Helpers
// ─────────────────────────────────────────────

// credentials extracts the session cookie and bearer token, if any.
func credentials(r *http.Request) auth.Credentials {
	var creds auth.Credentials
	if c, err := r.Cookie(sessionCookieName); err == nil {
		creds.CookieToken = c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		creds.BearerToken = strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return creds
}

// requireUser resolves the caller, writing the error response itself when
// the caller is anonymous or the lookup fails.
func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	user, err := s.auth.RequireAuth(r.Context(), credentials(r))
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	return user, true
}

func (s *Server) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteNoneMode,
	}
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// writeError maps domain errors to status codes. Anything unrecognised is a
// store or programming failure and is logged, not shown.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var invalid *domain.InvalidInputError

	switch {
	case errors.Is(err, domain.ErrAuthenticationRequired):
		writeDetail(w, http.StatusUnauthorized, domain.ErrAuthenticationRequired.Error())
	case errors.Is(err, domain.ErrInvalidExternalSession):
		writeDetail(w, http.StatusUnauthorized, domain.ErrInvalidExternalSession.Error())
	case errors.Is(err, domain.ErrMissingSessionID):
		writeDetail(w, http.StatusBadRequest, domain.ErrMissingSessionID.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeDetail(w, http.StatusNotFound, "Blueprint not found")
	case errors.As(err, &invalid):
		writeDetail(w, http.StatusBadRequest, invalid.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		writeDetail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrGenerationFailed):
		writeDetail(w, http.StatusInternalServerError, err.Error())
	default:
		observability.LoggerFromContext(r.Context()).Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeDetail(w, http.StatusInternalServerError, "internal server error")
	}
}
