package models

// Evaluation is the structured assessment of a single answer. It is not
// persisted on its own: the score is embedded into the session's answer
// record and the rest is returned to the caller.
//
// Strengths and weaknesses may contain empty-string placeholders (the
// heuristic fallback emits them); they are filtered before display.
type Evaluation struct {
	Score            int      `json:"score"`
	Strengths        []string `json:"strengths"`
	Weaknesses       []string `json:"weaknesses"`
	Feedback         string   `json:"feedback"`
	Suggestions      string   `json:"suggestions"`
	FollowUpQuestion string   `json:"follow_up_question,omitempty"`
}

type ScoreBreakdown struct {
	Excellent        int `json:"excellent"`
	VeryGood         int `json:"very_good"`
	Good             int `json:"good"`
	Fair             int `json:"fair"`
	NeedsImprovement int `json:"needs_improvement"`
}

type SessionScore struct {
	TotalScore     int            `json:"total_score"`
	AverageScore   float64        `json:"average_score"`
	TotalQuestions int            `json:"total_questions"`
	Performance    string         `json:"performance"`
	ScoreBreakdown ScoreBreakdown `json:"score_breakdown"`
}

type SessionReport struct {
	SessionScore          SessionScore `json:"session_score"`
	TopStrengths          []string     `json:"top_strengths"`
	AreasForImprovement   []string     `json:"areas_for_improvement"`
	OverallRecommendation string       `json:"overall_recommendation"`
	NextSteps             []string     `json:"next_steps"`
}
