package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"carecompass/internal/model"
	"carecompass/internal/service"
	"carecompass/internal/transport/rest/middleware"
	"carecompass/internal/triage"
)

// InterviewHandler exposes the triage interview over HTTP.
type InterviewHandler struct {
	interviews *service.InterviewService
	tokens     *service.TokenService
}

// NewInterviewHandler creates the interview handler.
func NewInterviewHandler(interviews *service.InterviewService, tokens *service.TokenService) *InterviewHandler {
	return &InterviewHandler{interviews: interviews, tokens: tokens}
}

type startSessionResponse struct {
	SessionToken string          `json:"sessionToken"`
	Status       string          `json:"status"`
	Question     *model.Question `json:"question,omitempty"`
}

type submitAnswerRequest struct {
	QuestionID string   `json:"questionId"`
	Number     *float64 `json:"number,omitempty"`
	Choice     string   `json:"choice,omitempty"`
	Choices    []string `json:"choices,omitempty"`
	FreeText   string   `json:"freeText,omitempty"`
}

type questionResponse struct {
	Done     bool            `json:"done"`
	Question *model.Question `json:"question,omitempty"`
}

// StartSession begins a new interview and returns the session token with
// the first question.
func (h *InterviewHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	session, question, err := h.interviews.Start(r.Context())
	if err != nil {
		log.Printf("start session: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to start session")
		return
	}

	token, err := h.tokens.Issue(session.ID)
	if err != nil {
		log.Printf("issue token: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to start session")
		return
	}

	writeJSON(w, http.StatusCreated, startSessionResponse{
		SessionToken: token,
		Status:       string(session.Status),
		Question:     question,
	})
}

// GetCurrentQuestion returns the pending question for the session.
func (h *InterviewHandler) GetCurrentQuestion(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())

	question, done, err := h.interviews.CurrentQuestion(r.Context(), sessionID)
	if err != nil {
		h.writeInterviewError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, questionResponse{Done: done, Question: question})
}

// SubmitAnswer records an answer and returns the next question, or
// done=true once the interview has reached a terminal state.
func (h *InterviewHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())

	var req submitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.QuestionID == "" {
		writeError(w, http.StatusBadRequest, "questionId is required")
		return
	}

	value := model.AnswerValue{Number: req.Number, Choice: req.Choice, Choices: req.Choices}
	question, done, err := h.interviews.SubmitAnswer(r.Context(), sessionID, req.QuestionID, value, req.FreeText)
	if err != nil {
		h.writeInterviewError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, questionResponse{Done: done, Question: question})
}

// GetRecommendation returns the final triage result for a terminal
// session.
func (h *InterviewHandler) GetRecommendation(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())

	recommendation, err := h.interviews.Recommendation(r.Context(), sessionID)
	if err != nil {
		h.writeInterviewError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recommendation)
}

// DiscardSession drops the session so the client can start over.
func (h *InterviewHandler) DiscardSession(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())

	if err := h.interviews.Discard(r.Context(), sessionID); err != nil {
		log.Printf("discard session: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to discard session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "discarded"})
}

func (h *InterviewHandler) writeInterviewError(w http.ResponseWriter, err error) {
	var validationErr *triage.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":      validationErr.Reason,
			"questionId": validationErr.QuestionID,
			"expected":   validationErr.Expected,
		})
	case errors.Is(err, triage.ErrUnknownQuestion):
		writeError(w, http.StatusBadRequest, "question is not the pending question")
	case errors.Is(err, triage.ErrInvalidState):
		writeError(w, http.StatusConflict, "interview has already concluded")
	case errors.Is(err, triage.ErrNotTerminal):
		writeError(w, http.StatusConflict, "interview is still in progress")
	case errors.Is(err, service.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session not found or expired")
	default:
		log.Printf("interview error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
