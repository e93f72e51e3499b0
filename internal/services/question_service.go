package services

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hirevox/backend/internal/cache"
	"github.com/hirevox/backend/internal/models"
	"github.com/hirevox/backend/internal/providers/llm"
	"github.com/hirevox/backend/internal/utils"
)

type QuestionService interface {
	// Generate returns at most count questions, each terminated with "?".
	// A failed provider call falls through to the static bank immediately;
	// there are no retries.
	Generate(ctx context.Context, role, level string, skills []string, count int) ([]string, error)
}

type questionService struct {
	provider llm.Provider
	cache    cache.Cache // may be nil
	log      *logrus.Logger
}

func NewQuestionService(provider llm.Provider, c cache.Cache, log *logrus.Logger) QuestionService {
	if log == nil {
		log = logrus.New()
	}
	return &questionService{provider: provider, cache: c, log: log}
}

const questionCacheTTL = time.Hour

var numberedLine = regexp.MustCompile(`(?m)^\s*\d+\.\s*(.+)$`)

func (s *questionService) Generate(ctx context.Context, role, level string, skills []string, count int) ([]string, error) {
	const op = "QuestionService.Generate"

	if role == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "role is required", nil)
	}
	if !models.ValidLevel(level) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "experience_level must be 'junior', 'mid', or 'senior'", nil)
	}
	if count < 1 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "count must be positive", nil)
	}

	key := questionCacheKey(role, level, skills, count)
	if s.cache != nil {
		var cached []string
		if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit && len(cached) > 0 {
			return cached, nil
		}
	}

	if s.provider == nil {
		return defaultQuestions(level, count), nil
	}

	reply, err := s.provider.Complete(ctx, buildQuestionPrompt(role, level, skills, count))
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"role":  role,
			"level": level,
		}).Warn("question generation failed, using static bank")
		return defaultQuestions(level, count), nil
	}

	questions := parseQuestions(reply)
	if len(questions) == 0 {
		return defaultQuestions(level, count), nil
	}
	if len(questions) > count {
		questions = questions[:count]
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, questions, questionCacheTTL)
	}
	return questions, nil
}

func buildQuestionPrompt(role, level string, skills []string, count int) string {
	skillsStr := "General technical skills"
	if len(skills) > 0 {
		skillsStr = strings.Join(skills, ", ")
	}

	var sb strings.Builder
	sb.WriteString("You are an expert technical interviewer. Generate high-quality, contextual interview questions that assess both technical competency and problem-solving ability.\n\n")
	fmt.Fprintf(&sb, "Generate exactly %d interview questions for:\n", count)
	fmt.Fprintf(&sb, "Role: %s\nExperience Level: %s\nKey Skills: %s\n\n", role, level, skillsStr)
	sb.WriteString("Mix technical, behavioral, and scenario-based questions specific to the candidate's experience level.\n")
	sb.WriteString("Return the questions as a numbered list (1. Question? 2. Question? etc.)\n")
	sb.WriteString("Only return questions, nothing else.")
	return sb.String()
}

// parseQuestions extracts questions from a free-text reply: numbered
// "<int>. <text>" lines first, otherwise any line longer than 10 chars.
func parseQuestions(reply string) []string {
	var questions []string

	for _, m := range numberedLine.FindAllStringSubmatch(reply, -1) {
		q := strings.TrimSpace(m[1])
		if q != "" {
			questions = append(questions, ensureQuestionMark(q))
		}
	}
	if len(questions) > 0 {
		return questions
	}

	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		if len(line) > 10 {
			questions = append(questions, ensureQuestionMark(line))
		}
	}
	return questions
}

func ensureQuestionMark(q string) string {
	if strings.HasSuffix(q, "?") {
		return q
	}
	return strings.TrimRight(q, ".!") + "?"
}

func questionCacheKey(role, level string, skills []string, count int) string {
	h := sha1.Sum([]byte(role + "|" + level + "|" + strings.Join(skills, ",")))
	return fmt.Sprintf("questions:%s:%d", hex.EncodeToString(h[:8]), count)
}

// defaultQuestions slices the static bank by experience level: junior
// gets the first 20, mid the middle 20, senior the last 20.
func defaultQuestions(level string, count int) []string {
	questions := questionBank
	switch strings.ToLower(level) {
	case "junior", "entry":
		questions = questions[:20]
	case "mid":
		questions = questions[5:25]
	default: // senior
		questions = questions[10:]
	}
	if count < len(questions) {
		questions = questions[:count]
	}
	out := make([]string, len(questions))
	for i, q := range questions {
		out[i] = ensureQuestionMark(q)
	}
	return out
}

// Static fallback bank: five questions per theme, ordered easy to hard so
// the level slices stay meaningful.
var questionBank = []string{
	// Technical foundation
	"Explain the difference between a stack and a queue, and when you would use each.",
	"What is time complexity and how do you calculate it for an algorithm?",
	"Describe the SOLID principles and provide an example of each.",
	"What is polymorphism and how does it differ from inheritance?",
	"Explain the concept of memoization and when it's beneficial.",

	// System design
	"How would you design a URL shortening service like Bit.ly?",
	"Design a chat application that supports one-to-one messaging.",
	"How would you design a search engine like Google?",
	"Explain how you would scale a social media feed.",
	"Design a real-time notification system.",

	// Problem solving
	"Given an unsorted array, find the missing number. Optimize for space complexity.",
	"Implement a function to check if a string is a valid palindrome.",
	"How would you detect a cycle in a linked list?",
	"Write code to reverse a binary tree.",
	"Implement a least recently used (LRU) cache.",

	// Behavioral
	"Tell me about a challenging project and how you overcame obstacles.",
	"How do you approach learning new technologies?",
	"Describe a time you had to work with a difficult team member.",
	"How do you prioritize when you have multiple tasks?",
	"Tell me about your greatest professional achievement.",

	// Role-specific
	"What's your experience with microservices architecture?",
	"How do you approach database optimization?",
	"Explain CI/CD pipelines and their importance.",
	"What's your experience with containerization (Docker/Kubernetes)?",
	"How do you ensure code quality in your projects?",

	// Situational
	"How would you debug a slow application?",
	"Describe your approach to writing maintainable code.",
	"How do you handle technical debt?",
	"What's your experience with agile methodologies?",
	"How do you approach code reviews?",
}
