package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/hirevox/backend/internal/models"
	"github.com/hirevox/backend/internal/providers/llm"
	"github.com/hirevox/backend/internal/utils"
)

const minAnswerLength = 10

type EvaluationService interface {
	// Evaluate scores a single answer. Provider failures and unparseable
	// replies are absorbed by a deterministic heuristic; the only errors
	// returned are invalid-input ones.
	Evaluate(ctx context.Context, question, answer, role, level string) (*models.Evaluation, error)

	SessionScore(answers []models.AnswerRecord) models.SessionScore
	Report(session *models.Session) *models.SessionReport
	Recommendation(score float64, level string) string
}

type evaluationService struct {
	provider llm.Provider
	log      *logrus.Logger
}

func NewEvaluationService(provider llm.Provider, log *logrus.Logger) EvaluationService {
	if log == nil {
		log = logrus.New()
	}
	return &evaluationService{provider: provider, log: log}
}

func (s *evaluationService) Evaluate(ctx context.Context, question, answer, role, level string) (*models.Evaluation, error) {
	const op = "EvaluationService.Evaluate"

	if question == "" || answer == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "question and answer are required", nil)
	}
	if !models.ValidLevel(level) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "experience_level must be 'junior', 'mid', or 'senior'", nil)
	}
	if len(strings.TrimSpace(answer)) < minAnswerLength {
		return nil, utils.E(utils.CodeInvalidArgument, op, fmt.Sprintf("answer must be at least %d characters long", minAnswerLength), nil)
	}

	if s.provider == nil {
		return heuristicEvaluation(answer, role, level), nil
	}

	var eval models.Evaluation
	if err := llm.CompleteJSON(ctx, s.provider, buildEvaluationPrompt(question, answer, role, level), &eval); err != nil {
		s.log.WithError(err).Warn("answer evaluation failed, using heuristic")
		return heuristicEvaluation(answer, role, level), nil
	}

	eval.Score = clampScore(eval.Score)
	return &eval, nil
}

func buildEvaluationPrompt(question, answer, role, level string) string {
	var sb strings.Builder
	sb.WriteString("You are an expert technical interviewer and hiring manager. Evaluate the candidate's answer and provide a structured assessment.\n\n")
	sb.WriteString("Return ONLY a JSON object with no additional text:\n")
	sb.WriteString(`{"score": (0-100), "strengths": ["strength1", "strength2"], "weaknesses": ["weakness1", "weakness2"], "feedback": "Brief feedback on the answer", "suggestions": "How to improve", "follow_up_question": "Suggested follow-up if needed"}`)
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Role: %s\nExperience Level: %s\n\nQuestion: %s\n\nCandidate's Answer:\n%s\n", role, level, question, answer)
	return sb.String()
}

var technicalKeywords = []string{
	"algorithm", "complexity", "optimize", "architecture", "design", "pattern",
	"cache", "database", "sql", "api", "rest", "microservices",
}

// heuristicEvaluation is the deterministic fallback: base 50, bonuses for
// length and technical vocabulary, a ceiling for entry and mid levels.
// No ceiling is defined for senior.
func heuristicEvaluation(answer, role, level string) *models.Evaluation {
	score := 50

	if len(answer) > 100 {
		score += 10
	}
	if len(answer) > 300 {
		score += 15
	}

	lower := strings.ToLower(answer)
	matched := 0
	for _, kw := range technicalKeywords {
		if strings.Contains(lower, kw) {
			matched++
		}
	}
	bonus := matched * 5
	if bonus > 20 {
		bonus = 20
	}
	score += bonus

	switch strings.ToLower(level) {
	case "entry":
		if score > 80 {
			score = 80
		}
	case "mid":
		if score > 95 {
			score = 95
		}
	}
	score = clampScore(score)

	understanding := "basic"
	if score > 70 {
		understanding = "solid"
	}

	strengths := []string{"Answer demonstrates understanding of the topic"}
	if len(answer) > 150 {
		strengths = append(strengths, "Provides practical examples")
	} else {
		strengths = append(strengths, "")
	}

	var weaknesses []string
	if score < 60 {
		weaknesses = append(weaknesses, "Could provide more technical depth")
	} else {
		weaknesses = append(weaknesses, "")
	}
	if score < 70 {
		weaknesses = append(weaknesses, "Could include edge cases or optimization considerations")
	} else {
		weaknesses = append(weaknesses, "")
	}

	return &models.Evaluation{
		Score:      score,
		Strengths:  strengths,
		Weaknesses: weaknesses,
		Feedback: fmt.Sprintf("Good effort on answering this %s level question. Your answer shows a %s understanding. Score: %d/100",
			role, understanding, score),
		Suggestions:      "Consider adding specific implementation details, edge cases, and performance considerations to strengthen your answer.",
		FollowUpQuestion: "How would you optimize this solution for scalability?",
	}
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// SessionScore reduces a list of answer records into summary statistics.
func (s *evaluationService) SessionScore(answers []models.AnswerRecord) models.SessionScore {
	if len(answers) == 0 {
		return models.SessionScore{Performance: "No answers"}
	}

	var total int
	var breakdown models.ScoreBreakdown
	for _, a := range answers {
		score := 0
		if a.Score != nil {
			score = *a.Score
		}
		total += score

		switch {
		case score >= 90:
			breakdown.Excellent++
		case score >= 80:
			breakdown.VeryGood++
		case score >= 70:
			breakdown.Good++
		case score >= 60:
			breakdown.Fair++
		default:
			breakdown.NeedsImprovement++
		}
	}

	average := float64(total) / float64(len(answers))

	var performance string
	switch {
	case average >= 90:
		performance = "Excellent"
	case average >= 80:
		performance = "Very Good"
	case average >= 70:
		performance = "Good"
	case average >= 60:
		performance = "Fair"
	default:
		performance = "Needs Improvement"
	}

	return models.SessionScore{
		TotalScore:     total,
		AverageScore:   math.Round(average*100) / 100,
		TotalQuestions: len(answers),
		Performance:    performance,
		ScoreBreakdown: breakdown,
	}
}

// Report builds the aggregate feedback for a whole session: score
// summary, top recurring strengths/weaknesses, and a hire recommendation.
func (s *evaluationService) Report(session *models.Session) *models.SessionReport {
	score := s.SessionScore(session.Answers)

	return &models.SessionReport{
		SessionScore:          score,
		TopStrengths:          topByFrequency(collectStrengths(session.Answers), 3),
		AreasForImprovement:   topByFrequency(collectWeaknesses(session.Answers), 3),
		OverallRecommendation: s.Recommendation(score.AverageScore, session.ExperienceLevel),
		NextSteps: []string{
			"Practice coding problems on LeetCode or HackerRank",
			"Study system design concepts",
			"Prepare behavioral stories using STAR method",
			"Mock more interviews to build confidence",
		},
	}
}

// Recommendation maps an average score onto a hire/no-hire band; the
// threshold shifts with the experience level.
func (s *evaluationService) Recommendation(score float64, level string) string {
	threshold := 85.0 // senior
	switch strings.ToLower(level) {
	case "entry", "junior":
		threshold = 70
	case "mid":
		threshold = 75
	}

	switch {
	case score >= threshold:
		return "Strong candidate - recommended for next round"
	case score >= threshold-10:
		return "Qualified candidate - consider for next round"
	case score >= threshold-20:
		return "Candidate needs more preparation - suggest interview coaching"
	default:
		return "Not ready for this level - recommend further study"
	}
}

func collectStrengths(answers []models.AnswerRecord) []string {
	var out []string
	for _, a := range answers {
		out = append(out, a.Strengths...)
	}
	return out
}

func collectWeaknesses(answers []models.AnswerRecord) []string {
	var out []string
	for _, a := range answers {
		out = append(out, a.Weaknesses...)
	}
	return out
}

// topByFrequency counts non-empty strings and returns the n most common,
// breaking ties by first-seen order.
func topByFrequency(items []string, n int) []string {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	var order []string

	for i, item := range items {
		if item == "" {
			continue
		}
		if _, ok := counts[item]; !ok {
			firstSeen[item] = i
			order = append(order, item)
		}
		counts[item]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return firstSeen[order[i]] < firstSeen[order[j]]
	})

	if len(order) > n {
		order = order[:n]
	}
	return order
}
