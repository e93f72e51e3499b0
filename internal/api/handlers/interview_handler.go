package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hirevox/backend/internal/services"
	"github.com/hirevox/backend/internal/utils"
)

type InterviewHandler struct {
	questions services.QuestionService
	evaluator services.EvaluationService
}

func NewInterviewHandler(questions services.QuestionService, evaluator services.EvaluationService) *InterviewHandler {
	return &InterviewHandler{questions: questions, evaluator: evaluator}
}

type GenerateQuestionsRequest struct {
	JobTitle        string   `json:"job_title" binding:"required"`
	ExperienceLevel string   `json:"experience_level" binding:"required"` // junior|mid|senior
	NumQuestions    int      `json:"num_questions"`
	FocusAreas      []string `json:"focus_areas"`
}

type GenerateQuestionsResponse struct {
	Status    string   `json:"status"`
	JobTitle  string   `json:"job_title"`
	Questions []string `json:"questions"`
}

func (h *InterviewHandler) GenerateQuestions(c *gin.Context) {
	var req GenerateQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "InterviewHandler.GenerateQuestions", "invalid request body", err))
		return
	}
	if req.NumQuestions == 0 {
		req.NumQuestions = 5
	}
	if req.NumQuestions < 1 || req.NumQuestions > 100 {
		writeError(c, utils.E(utils.CodeInvalidArgument, "InterviewHandler.GenerateQuestions", "num_questions must be between 1 and 100", nil))
		return
	}

	questions, err := h.questions.Generate(c.Request.Context(), req.JobTitle, req.ExperienceLevel, req.FocusAreas, req.NumQuestions)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, GenerateQuestionsResponse{
		Status:    "success",
		JobTitle:  req.JobTitle,
		Questions: questions,
	})
}

type EvaluateAnswerRequest struct {
	Question        string `json:"question" binding:"required"`
	CandidateAnswer string `json:"candidate_answer" binding:"required"`
	Role            string `json:"role"`
	ExperienceLevel string `json:"experience_level"`
}

type EvaluateAnswerResponse struct {
	Status              string   `json:"status"`
	Score               int      `json:"score"`
	Feedback            string   `json:"feedback"`
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areas_for_improvement"`
	Suggestions         string   `json:"suggestions"`
}

func (h *InterviewHandler) EvaluateAnswer(c *gin.Context) {
	var req EvaluateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "InterviewHandler.EvaluateAnswer", "invalid request body", err))
		return
	}
	if req.Role == "" {
		req.Role = "Software Engineer"
	}
	if req.ExperienceLevel == "" {
		req.ExperienceLevel = "mid"
	}

	eval, err := h.evaluator.Evaluate(c.Request.Context(), req.Question, req.CandidateAnswer, req.Role, req.ExperienceLevel)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, EvaluateAnswerResponse{
		Status:              "success",
		Score:               eval.Score,
		Feedback:            eval.Feedback,
		Strengths:           nonEmpty(eval.Strengths),
		AreasForImprovement: nonEmpty(eval.Weaknesses),
		Suggestions:         eval.Suggestions,
	})
}

// nonEmpty drops the placeholder entries the heuristic fallback emits.
func nonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
