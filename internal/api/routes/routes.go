package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/hirevox/backend/internal/api/handlers"
	"github.com/hirevox/backend/internal/api/middleware"
)

type Deps struct {
	Interview *handlers.InterviewHandler
	Session   *handlers.SessionHandler
	Audio     *handlers.AudioHandler
	Resume    *handlers.ResumeHandler

	// JWTSecret, when non-empty, puts every route group behind bearer
	// auth. Empty means open (local dev).
	JWTSecret string
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := r.Group("/")
	if d.JWTSecret != "" {
		api.Use(middleware.JWTAuth(d.JWTSecret))
	}

	interview := api.Group("/interview")
	interview.POST("/questions", d.Interview.GenerateQuestions)
	interview.POST("/evaluate-answer", d.Interview.EvaluateAnswer)

	interview.POST("/sessions", d.Session.Create)
	interview.GET("/sessions", d.Session.List)
	interview.GET("/sessions/:session_id", d.Session.Get)
	interview.GET("/sessions/:session_id/next-question", d.Session.NextQuestion)
	interview.POST("/sessions/:session_id/answers", d.Session.SubmitAnswer)
	interview.GET("/sessions/:session_id/progress", d.Session.Progress)
	interview.GET("/sessions/:session_id/report", d.Session.Report)
	interview.POST("/sessions/:session_id/end", d.Session.End)
	interview.DELETE("/sessions/:session_id", d.Session.Delete)

	audio := api.Group("/audio")
	audio.POST("/upload", d.Audio.Upload)
	audio.POST("/transcribe", d.Audio.Transcribe)
	audio.POST("/analyze", d.Audio.Analyze)
	audio.POST("/score", d.Audio.Score)

	resume := api.Group("/resume")
	resume.POST("/parse", d.Resume.Parse)
}
