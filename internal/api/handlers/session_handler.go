package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hirevox/backend/internal/services"
	"github.com/hirevox/backend/internal/utils"
)

type SessionHandler struct {
	sessions  services.SessionService
	questions services.QuestionService
	evaluator services.EvaluationService
}

func NewSessionHandler(sessions services.SessionService, questions services.QuestionService, evaluator services.EvaluationService) *SessionHandler {
	return &SessionHandler{sessions: sessions, questions: questions, evaluator: evaluator}
}

type CreateSessionRequest struct {
	Role            string   `json:"role" binding:"required"`
	ExperienceLevel string   `json:"experience_level" binding:"required"` // junior|mid|senior
	Skills          []string `json:"skills"`
	NumQuestions    int      `json:"num_questions"`
}

// Create sets up a mock interview: a fresh session seeded with generated
// (or fallback-bank) questions.
func (h *SessionHandler) Create(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SessionHandler.Create", "invalid request body", err))
		return
	}
	if req.NumQuestions == 0 {
		req.NumQuestions = 20
	}
	if req.NumQuestions < 1 || req.NumQuestions > 100 {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SessionHandler.Create", "num_questions must be between 1 and 100", nil))
		return
	}

	session, err := h.sessions.Create(req.Role, req.ExperienceLevel, req.Skills)
	if err != nil {
		writeError(c, err)
		return
	}

	generated, err := h.questions.Generate(c.Request.Context(), req.Role, req.ExperienceLevel, req.Skills, req.NumQuestions)
	if err != nil {
		writeError(c, err)
		return
	}
	for _, q := range generated {
		if err := h.sessions.AddQuestion(session.SessionID, q); err != nil {
			writeError(c, err)
			return
		}
	}

	session, err = h.sessions.Get(session.SessionID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Mock interview session created successfully",
		"data":    session,
	})
}

func (h *SessionHandler) Get(c *gin.Context) {
	session, err := h.sessions.Get(c.Param("session_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *SessionHandler) List(c *gin.Context) {
	sessions, err := h.sessions.List()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions, "count": len(sessions)})
}

// NextQuestion returns the first unasked question and marks it asked.
func (h *SessionHandler) NextQuestion(c *gin.Context) {
	sessionID := c.Param("session_id")

	question, err := h.sessions.NextQuestion(sessionID)
	if err != nil {
		writeError(c, err)
		return
	}
	if question == "" {
		c.JSON(http.StatusOK, gin.H{"question": nil, "message": "no questions remaining"})
		return
	}

	if err := h.sessions.MarkAsked(sessionID, question); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"question": question})
}

type SubmitAnswerRequest struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
}

// SubmitAnswer evaluates the answer and appends it to the session record.
func (h *SessionHandler) SubmitAnswer(c *gin.Context) {
	sessionID := c.Param("session_id")

	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SessionHandler.SubmitAnswer", "invalid request body", err))
		return
	}

	session, err := h.sessions.Get(sessionID)
	if err != nil {
		writeError(c, err)
		return
	}

	eval, err := h.evaluator.Evaluate(c.Request.Context(), req.Question, req.Answer, session.Role, session.ExperienceLevel)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.sessions.AddAnswer(sessionID, req.Question, req.Answer, eval); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"score":      eval.Score,
		"feedback":   eval.Feedback,
		"strengths":  nonEmpty(eval.Strengths),
		"weaknesses": nonEmpty(eval.Weaknesses),
	})
}

func (h *SessionHandler) Progress(c *gin.Context) {
	progress, err := h.sessions.Progress(c.Param("session_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

func (h *SessionHandler) Report(c *gin.Context) {
	session, err := h.sessions.Get(c.Param("session_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.evaluator.Report(session))
}

func (h *SessionHandler) End(c *gin.Context) {
	session, err := h.sessions.End(c.Param("session_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.sessions.Delete(c.Param("session_id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
