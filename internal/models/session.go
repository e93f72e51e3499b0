package models

// Experience levels accepted by the API.
const (
	LevelJunior = "junior"
	LevelMid    = "mid"
	LevelSenior = "senior"
)

func ValidLevel(level string) bool {
	switch level {
	case LevelJunior, LevelMid, LevelSenior:
		return true
	}
	return false
}

// Session is the unit of persistence: one record per interview attempt.
// The JSON field names are the on-disk wire contract; collaborators that
// read session files directly depend on them.
type Session struct {
	SessionID       string         `json:"session_id"` // uuid v4
	Role            string         `json:"role"`
	ExperienceLevel string         `json:"experience_level"` // junior|mid|senior
	Skills          []string       `json:"skills"`
	Questions       []string       `json:"questions"` // insertion order = display order
	Asked           []string       `json:"asked"`
	Answers         []AnswerRecord `json:"answers"`
	Status          string         `json:"status"` // started|completed
	CreatedAt       string         `json:"created_at"`
}

// AnswerRecord keeps the answered question, the answer text, and the
// score when one was computed. Strengths and weaknesses are carried only
// when the answer went through the evaluator, so the session report can
// surface recurring themes.
type AnswerRecord struct {
	Question   string   `json:"question"`
	Answer     string   `json:"answer"`
	Score      *int     `json:"score"`
	Strengths  []string `json:"strengths,omitempty"`
	Weaknesses []string `json:"weaknesses,omitempty"`
}

// HasQuestion reports whether q was generated for this session.
func (s *Session) HasQuestion(q string) bool {
	for _, existing := range s.Questions {
		if existing == q {
			return true
		}
	}
	return false
}

func (s *Session) WasAsked(q string) bool {
	for _, existing := range s.Asked {
		if existing == q {
			return true
		}
	}
	return false
}

type SessionProgress struct {
	SessionID          string  `json:"session_id"`
	TotalQuestions     int     `json:"total_questions"`
	QuestionsAsked     int     `json:"questions_asked"`
	AnswersSubmitted   int     `json:"answers_submitted"`
	RemainingQuestions int     `json:"remaining_questions"`
	ProgressPercentage float64 `json:"progress_percentage"`
	Status             string  `json:"status"`
}
