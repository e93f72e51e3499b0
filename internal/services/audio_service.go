package services

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/hirevox/backend/internal/models"
	"github.com/hirevox/backend/internal/providers/stt"
)

type AudioService interface {
	// Transcribe runs speech-to-text; if the provider is missing or
	// fails, a static placeholder transcript is returned instead of an
	// error so the scoring pipeline keeps working.
	Transcribe(ctx context.Context, audio []byte, language string) *models.Transcription

	// ScoreSpokenAnswer blends the evaluator's content score (70%) with
	// delivery metrics (30%) computed from the transcript alone.
	ScoreSpokenAnswer(ctx context.Context, transcript, question, role, level string, durationSeconds float64) *models.AudioScore

	// AnalyzeDelivery computes clarity, pacing, and key phrases without
	// running the content evaluator.
	AnalyzeDelivery(transcript string, durationSeconds float64) *models.AudioAnalysis
}

type audioService struct {
	sttProvider stt.Provider // may be nil
	evaluator   EvaluationService
	log         *logrus.Logger
}

func NewAudioService(sttProvider stt.Provider, evaluator EvaluationService, log *logrus.Logger) AudioService {
	if log == nil {
		log = logrus.New()
	}
	return &audioService{sttProvider: sttProvider, evaluator: evaluator, log: log}
}

const placeholderTranscript = "I have extensive experience with backend development using Python and FastAPI. " +
	"I've built scalable microservices, optimized database queries, and implemented API design best practices. " +
	"My focus areas include system architecture, performance optimization, and team collaboration."

func (s *audioService) Transcribe(ctx context.Context, audio []byte, language string) *models.Transcription {
	if language == "" {
		language = "en"
	}

	if s.sttProvider != nil {
		res, err := s.sttProvider.Transcribe(ctx, audio, language)
		if err == nil && res.Text != "" {
			return &models.Transcription{
				Text:            res.Text,
				Confidence:      res.Confidence,
				DurationSeconds: res.DurationSeconds,
				Language:        language,
				Source:          "stt",
			}
		}
		if err != nil {
			s.log.WithError(err).Warn("transcription failed, using placeholder")
		}
	}

	return &models.Transcription{
		Text:            placeholderTranscript,
		Confidence:      0.85,
		DurationSeconds: 0,
		Language:        language,
		Source:          "fallback",
	}
}

func (s *audioService) ScoreSpokenAnswer(ctx context.Context, transcript, question, role, level string, durationSeconds float64) *models.AudioScore {
	clarity := AssessClarity(transcript)
	pacing := AssessPacing(transcript, durationSeconds)

	eval, err := s.evaluator.Evaluate(ctx, question, transcript, role, level)
	if err != nil {
		s.log.WithError(err).Warn("spoken answer evaluation failed, using keyword fallback")
		return s.fallbackScore(transcript, clarity, pacing, durationSeconds)
	}

	delivery := float64(clarity.ClarityScore+pacing.PacingScore) / 2
	overall := clampScore(int(math.Round(float64(eval.Score)*0.7 + delivery*0.3)))

	return &models.AudioScore{
		OverallScore:      overall,
		ContentScore:      eval.Score,
		DeliveryScore:     delivery,
		ClarityScore:      clarity.ClarityScore,
		PacingScore:       pacing.PacingScore,
		DurationSeconds:   durationSeconds,
		Transcription:     transcript,
		KeyPhrases:        ExtractKeyPhrases(transcript),
		Feedback:          composeAudioFeedback(clarity, pacing, eval.Feedback),
		Strengths:         eval.Strengths,
		Weaknesses:        eval.Weaknesses,
		Suggestions:       eval.Suggestions,
		Recommendation:    s.evaluator.Recommendation(float64(overall), level),
		ClarityAssessment: clarity.Assessment,
		PacingAssessment:  pacing.Assessment,
		WordCount:         clarity.WordCount,
		WordsPerMinute:    pacing.WordsPerMinute,
	}
}

func (s *audioService) AnalyzeDelivery(transcript string, durationSeconds float64) *models.AudioAnalysis {
	return &models.AudioAnalysis{
		Transcription:   transcript,
		Clarity:         AssessClarity(transcript),
		Pacing:          AssessPacing(transcript, durationSeconds),
		KeyPhrases:      ExtractKeyPhrases(transcript),
		DurationSeconds: durationSeconds,
	}
}

var fallbackKeywords = []string{"experience", "system", "design", "implementation", "solution"}

// fallbackScore is the pure keyword heuristic used when the evaluator
// errors out. It never calls the evaluator again.
func (s *audioService) fallbackScore(transcript string, clarity models.ClarityMetrics, pacing models.PacingMetrics, durationSeconds float64) *models.AudioScore {
	lower := strings.ToLower(transcript)
	score := 50
	for _, kw := range fallbackKeywords {
		if strings.Contains(lower, kw) {
			score += 5
		}
	}
	score = clampScore(score)

	return &models.AudioScore{
		OverallScore:      score,
		ContentScore:      score,
		DeliveryScore:     float64(clarity.ClarityScore+pacing.PacingScore) / 2,
		ClarityScore:      clarity.ClarityScore,
		PacingScore:       pacing.PacingScore,
		DurationSeconds:   durationSeconds,
		Transcription:     transcript,
		KeyPhrases:        ExtractKeyPhrases(transcript),
		Feedback:          "Fallback scoring - detailed analysis unavailable",
		Strengths:         []string{"Audio successfully transcribed", "Key concepts identified"},
		Weaknesses:        []string{"Scoring system unavailable"},
		Suggestions:       "Provide more specific technical details",
		Recommendation:    "Audio processed - manual review recommended",
		ClarityAssessment: clarity.Assessment,
		PacingAssessment:  pacing.Assessment,
		WordCount:         clarity.WordCount,
		WordsPerMinute:    pacing.WordsPerMinute,
	}
}

func composeAudioFeedback(clarity models.ClarityMetrics, pacing models.PacingMetrics, contentFeedback string) string {
	var parts []string

	if contentFeedback != "" {
		parts = append(parts, "Content: "+contentFeedback)
	}

	switch {
	case clarity.ClarityScore >= 80:
		parts = append(parts, "Excellent audio clarity and articulation. "+clarity.Assessment)
	case clarity.ClarityScore >= 60:
		parts = append(parts, "Good audio quality. "+clarity.Assessment)
	default:
		parts = append(parts, "Audio clarity could be improved. "+clarity.Assessment)
	}

	if pacing.Assessment != "" {
		parts = append(parts, fmt.Sprintf("Speaking pace: %s (%g WPM)", pacing.Assessment, pacing.WordsPerMinute))
	}

	feedback := strings.Join(parts, " ")
	if feedback == "" {
		return "Answer recorded and analyzed. See detailed metrics below."
	}
	return feedback
}

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// AssessClarity derives a clarity score from transcript statistics alone:
// word count, sentence count, average word length, and filler tokens.
func AssessClarity(transcript string) models.ClarityMetrics {
	if transcript == "" {
		return models.ClarityMetrics{ClarityScore: 0, Assessment: "No transcription"}
	}

	words := strings.Fields(transcript)
	wordCount := len(words)
	sentenceCount := len(sentenceSplit.Split(transcript, -1))

	var totalLen int
	for _, w := range words {
		totalLen += len(w)
	}
	avgWordLen := float64(totalLen) / math.Max(float64(wordCount), 1)

	score := 75
	if wordCount > 100 {
		score += 10
	}
	if sentenceCount > 5 {
		score += 5
	}
	if avgWordLen > 4 {
		score += 5
	}
	if wordCount < 20 {
		score -= 20
	}
	lower := strings.ToLower(transcript)
	if strings.Contains(lower, "um") || strings.Contains(lower, "uh") {
		score -= 5
	}
	score = clampScore(score)

	var assessment string
	switch {
	case score >= 80:
		assessment = "Excellent clarity"
	case score >= 60:
		assessment = "Good clarity"
	case score >= 40:
		assessment = "Acceptable clarity"
	default:
		assessment = "Poor clarity"
	}

	return models.ClarityMetrics{
		ClarityScore:  score,
		Assessment:    assessment,
		WordCount:     wordCount,
		SentenceCount: sentenceCount,
		AvgWordLength: math.Round(avgWordLen*100) / 100,
	}
}

// AssessPacing scores words per minute against the 100-180 WPM band that
// suits spoken answers. Unknown duration defaults to a neutral 75.
func AssessPacing(transcript string, durationSeconds float64) models.PacingMetrics {
	if durationSeconds <= 0 {
		return models.PacingMetrics{PacingScore: 75, WordsPerMinute: 0, Assessment: "Duration unavailable"}
	}

	wordCount := len(strings.Fields(transcript))
	wpm := float64(wordCount) / durationSeconds * 60

	var score int
	switch {
	case wpm >= 100 && wpm <= 180:
		score = 85
	case (wpm >= 80 && wpm < 100) || (wpm > 180 && wpm <= 200):
		score = 70
	default:
		score = 50
	}

	var assessment string
	switch {
	case wpm < 100:
		assessment = "Too slow"
	case wpm > 180:
		assessment = "Too fast"
	default:
		assessment = "Good pace"
	}

	return models.PacingMetrics{
		PacingScore:    score,
		WordsPerMinute: math.Round(wpm*10) / 10,
		Assessment:     assessment,
	}
}

var techPhrases = []string{
	"python", "javascript", "java", "c++", "fastapi", "flask", "django",
	"react", "vue", "angular", "sql", "postgresql", "mongodb", "redis",
	"docker", "kubernetes", "aws", "gcp", "azure", "git", "ci/cd",
	"microservices", "api", "rest", "graphql", "websocket",
	"machine learning", "ai", "deep learning", "neural network",
	"architecture", "design pattern", "algorithm", "database",
	"optimization", "performance", "scalability", "reliability",
}

var numericMention = regexp.MustCompile(`\b(\d+)\s*(?:years?|months?|weeks?|days?|%|million|thousand|k|kb|mb|gb)\b`)

// ExtractKeyPhrases picks matched domain keywords plus up to 5 numeric
// mentions (years, metrics), deduplicated in first-seen order.
func ExtractKeyPhrases(transcript string) []string {
	lower := strings.ToLower(transcript)

	seen := make(map[string]bool)
	phrases := []string{}

	for _, kw := range techPhrases {
		if strings.Contains(lower, kw) && !seen[kw] {
			seen[kw] = true
			phrases = append(phrases, kw)
		}
	}

	matches := numericMention.FindAllStringSubmatch(lower, -1)
	for i, m := range matches {
		if i >= 5 {
			break
		}
		if !seen[m[1]] {
			seen[m[1]] = true
			phrases = append(phrases, m[1])
		}
	}

	return phrases
}
