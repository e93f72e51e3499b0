package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirevox/backend/internal/models"
	"github.com/hirevox/backend/internal/utils"
)

func intPtr(v int) *int { return &v }

func TestEvaluate_StructuredReply(t *testing.T) {
	provider := &stubLLM{reply: `{"score": 88, "strengths": ["clear structure"], "weaknesses": ["no examples"], "feedback": "good", "suggestions": "add examples"}`}
	svc := NewEvaluationService(provider, nil)

	eval, err := svc.Evaluate(context.Background(), "Explain caching.", "Caching keeps hot data close to the consumer.", "Backend Engineer", "mid")
	require.NoError(t, err)

	assert.Equal(t, 88, eval.Score)
	assert.Equal(t, []string{"clear structure"}, eval.Strengths)
	assert.Equal(t, "good", eval.Feedback)
}

func TestEvaluate_ClampsProviderScore(t *testing.T) {
	provider := &stubLLM{reply: `{"score": 150, "feedback": "overenthusiastic"}`}
	svc := NewEvaluationService(provider, nil)

	eval, err := svc.Evaluate(context.Background(), "Q?", "An answer long enough to evaluate.", "Engineer", "senior")
	require.NoError(t, err)
	assert.Equal(t, 100, eval.Score)
}

func TestEvaluate_UnparseableReplyFallsBack(t *testing.T) {
	provider := &stubLLM{reply: "I think this answer deserves a high score."}
	svc := NewEvaluationService(provider, nil)

	eval, err := svc.Evaluate(context.Background(), "Q?", "A reasonable answer with enough text.", "Engineer", "senior")
	require.NoError(t, err)

	assert.GreaterOrEqual(t, eval.Score, 0)
	assert.LessOrEqual(t, eval.Score, 100)
	assert.NotEmpty(t, eval.Feedback)
}

func TestEvaluate_ProviderErrorFallsBack(t *testing.T) {
	provider := &stubLLM{err: errors.New("timeout")}
	svc := NewEvaluationService(provider, nil)

	eval, err := svc.Evaluate(context.Background(), "Q?", "A reasonable answer with enough text.", "Engineer", "mid")
	require.NoError(t, err)
	assert.Equal(t, 1, provider.calls) // one shot, no retry
	assert.NotNil(t, eval)
}

func TestEvaluate_InvalidInput(t *testing.T) {
	svc := NewEvaluationService(&stubLLM{}, nil)

	_, err := svc.Evaluate(context.Background(), "", "long enough answer", "Engineer", "mid")
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	_, err = svc.Evaluate(context.Background(), "Q?", "short", "Engineer", "mid")
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestEvaluate_UnknownLevelRejected(t *testing.T) {
	provider := &stubLLM{reply: `{"score": 80}`}
	svc := NewEvaluationService(provider, nil)

	_, err := svc.Evaluate(context.Background(), "Q?", "a perfectly reasonable answer with detail", "Engineer", "principal")
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	// Rejected before the provider or the heuristic is consulted.
	assert.Equal(t, 0, provider.calls)
}

func TestHeuristicEvaluation_KeywordAndLengthBonuses(t *testing.T) {
	// >300 chars with exactly three keyword matches:
	// 50 + 10 + 15 + 3*5 = 90, under the mid-level ceiling of 95.
	filler := strings.Repeat("more detail on the topic at hand ", 10)
	answer := "The architecture uses a relational database behind an api gateway. " + filler
	require.Greater(t, len(answer), 300)

	eval := heuristicEvaluation(answer, "Engineer", "mid")
	assert.Equal(t, 90, eval.Score)
}

func TestHeuristicEvaluation_KeywordBonusCapped(t *testing.T) {
	// Six matches would be +30; the bonus caps at +20.
	answer := "algorithm complexity optimize cache sql rest " + strings.Repeat("padding words here ", 20)
	require.Greater(t, len(answer), 300)

	eval := heuristicEvaluation(answer, "Engineer", "senior")
	assert.Equal(t, 95, eval.Score) // 50+10+15+20, no senior ceiling
}

func TestHeuristicEvaluation_EntryCeiling(t *testing.T) {
	answer := "architecture database api " + strings.Repeat("padding words here ", 20)
	require.Greater(t, len(answer), 300)

	eval := heuristicEvaluation(answer, "Engineer", "entry")
	assert.Equal(t, 80, eval.Score)
}

func TestHeuristicEvaluation_ShortAnswerBaseline(t *testing.T) {
	eval := heuristicEvaluation("it depends on the workload", "Engineer", "senior")
	assert.Equal(t, 50, eval.Score)
}

func TestSessionScore_Empty(t *testing.T) {
	svc := NewEvaluationService(nil, nil)

	score := svc.SessionScore(nil)
	assert.Equal(t, 0.0, score.AverageScore)
	assert.Equal(t, "No answers", score.Performance)
}

func TestSessionScore_FiveAnswers(t *testing.T) {
	svc := NewEvaluationService(nil, nil)

	answers := []models.AnswerRecord{
		{Score: intPtr(95)},
		{Score: intPtr(85)},
		{Score: intPtr(75)},
		{Score: intPtr(65)},
		{Score: intPtr(50)},
	}

	score := svc.SessionScore(answers)
	assert.Equal(t, 370, score.TotalScore)
	assert.Equal(t, 74.0, score.AverageScore)
	assert.Equal(t, "Good", score.Performance)
	assert.Equal(t, models.ScoreBreakdown{
		Excellent:        1,
		VeryGood:         1,
		Good:             1,
		Fair:             1,
		NeedsImprovement: 1,
	}, score.ScoreBreakdown)
}

func TestSessionScore_NilScoreCountsAsZero(t *testing.T) {
	svc := NewEvaluationService(nil, nil)

	score := svc.SessionScore([]models.AnswerRecord{{Score: nil}})
	assert.Equal(t, 0, score.TotalScore)
	assert.Equal(t, "Needs Improvement", score.Performance)
}

func TestRecommendation_Thresholds(t *testing.T) {
	svc := NewEvaluationService(nil, nil)

	tests := []struct {
		level string
		score float64
		want  string
	}{
		{"entry", 70, "Strong candidate - recommended for next round"},
		{"junior", 70, "Strong candidate - recommended for next round"},
		{"mid", 75, "Strong candidate - recommended for next round"},
		{"mid", 70, "Qualified candidate - consider for next round"},
		{"senior", 85, "Strong candidate - recommended for next round"},
		{"senior", 76, "Qualified candidate - consider for next round"},
		{"senior", 66, "Candidate needs more preparation - suggest interview coaching"},
		{"senior", 50, "Not ready for this level - recommend further study"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, svc.Recommendation(tt.score, tt.level), "level=%s score=%v", tt.level, tt.score)
	}
}

func TestReport_TopStrengthsFrequencyAndTies(t *testing.T) {
	svc := NewEvaluationService(nil, nil)

	session := &models.Session{
		ExperienceLevel: "mid",
		Answers: []models.AnswerRecord{
			{Score: intPtr(80), Strengths: []string{"clear", "", "concise"}, Weaknesses: []string{"shallow"}},
			{Score: intPtr(80), Strengths: []string{"clear", "thorough"}, Weaknesses: []string{"shallow", "vague"}},
			{Score: intPtr(80), Strengths: []string{"clear", "concise", "thorough", "calm"}},
		},
	}

	report := svc.Report(session)

	// "clear" x3, then "concise" and "thorough" x2 with concise seen first;
	// empty placeholders are dropped before counting.
	assert.Equal(t, []string{"clear", "concise", "thorough"}, report.TopStrengths)
	assert.Equal(t, []string{"shallow", "vague"}, report.AreasForImprovement)
	assert.Equal(t, 80.0, report.SessionScore.AverageScore)
	assert.Equal(t, "Strong candidate - recommended for next round", report.OverallRecommendation)
	assert.NotEmpty(t, report.NextSteps)
}
