package services

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/hirevox/backend/internal/models"
	filerepo "github.com/hirevox/backend/internal/repositories/file"
	"github.com/hirevox/backend/internal/utils"
)

type SessionService interface {
	Create(role, level string, skills []string) (*models.Session, error)
	Get(sessionID string) (*models.Session, error)
	Save(s *models.Session) error
	AddQuestion(sessionID, question string) error
	MarkAsked(sessionID, question string) error
	AddAnswer(sessionID, question, answer string, eval *models.Evaluation) error
	NextQuestion(sessionID string) (string, error)
	Progress(sessionID string) (*models.SessionProgress, error)
	End(sessionID string) (*models.Session, error)
	Delete(sessionID string) error
	List() ([]*models.Session, error)
}

type sessionService struct {
	sessions filerepo.SessionRepository
}

func NewSessionService(sessions filerepo.SessionRepository) SessionService {
	return &sessionService{sessions: sessions}
}

func (s *sessionService) Create(role, level string, skills []string) (*models.Session, error) {
	const op = "SessionService.Create"

	if role == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "role is required", nil)
	}
	if !models.ValidLevel(level) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "experience_level must be 'junior', 'mid', or 'senior'", nil)
	}
	if skills == nil {
		skills = []string{}
	}

	session := &models.Session{
		SessionID:       uuid.NewString(),
		Role:            role,
		ExperienceLevel: level,
		Skills:          skills,
		Questions:       []string{},
		Asked:           []string{},
		Answers:         []models.AnswerRecord{},
		Status:          "started",
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.sessions.Save(session); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create session", err)
	}
	return session, nil
}

func (s *sessionService) Get(sessionID string) (*models.Session, error) {
	const op = "SessionService.Get"

	if sessionID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "session_id is required", nil)
	}

	session, err := s.sessions.Load(sessionID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "session not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load session", err)
	}
	return session, nil
}

func (s *sessionService) Save(session *models.Session) error {
	const op = "SessionService.Save"
	if err := s.sessions.Save(session); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to save session", err)
	}
	return nil
}

// AddQuestion appends question to the session; adding the same question
// twice is a no-op.
func (s *sessionService) AddQuestion(sessionID, question string) error {
	const op = "SessionService.AddQuestion"

	if question == "" {
		return utils.E(utils.CodeInvalidArgument, op, "question is required", nil)
	}

	session, err := s.Get(sessionID)
	if err != nil {
		return err
	}
	if session.HasQuestion(question) {
		return nil
	}

	session.Questions = append(session.Questions, question)
	return s.Save(session)
}

// MarkAsked records that question was put to the candidate. The question
// must already be in the session's question list; asking a question that
// was never generated is rejected. Marking twice is a no-op.
func (s *sessionService) MarkAsked(sessionID, question string) error {
	const op = "SessionService.MarkAsked"

	if question == "" {
		return utils.E(utils.CodeInvalidArgument, op, "question is required", nil)
	}

	session, err := s.Get(sessionID)
	if err != nil {
		return err
	}
	if !session.HasQuestion(question) {
		return utils.E(utils.CodeInvalidArgument, op, "question is not part of this session", nil)
	}
	if session.WasAsked(question) {
		return nil
	}

	session.Asked = append(session.Asked, question)
	return s.Save(session)
}

// AddAnswer always appends; answers are not deduplicated and the question
// is deliberately not checked against the asked list (free-form Q&A is
// allowed).
func (s *sessionService) AddAnswer(sessionID, question, answer string, eval *models.Evaluation) error {
	const op = "SessionService.AddAnswer"

	if question == "" || answer == "" {
		return utils.E(utils.CodeInvalidArgument, op, "question and answer are required", nil)
	}

	session, err := s.Get(sessionID)
	if err != nil {
		return err
	}

	record := models.AnswerRecord{Question: question, Answer: answer}
	if eval != nil {
		score := eval.Score
		record.Score = &score
		record.Strengths = eval.Strengths
		record.Weaknesses = eval.Weaknesses
	}

	session.Answers = append(session.Answers, record)
	return s.Save(session)
}

// NextQuestion returns the first question that has not been asked yet, or
// "" when the session is exhausted.
func (s *sessionService) NextQuestion(sessionID string) (string, error) {
	session, err := s.Get(sessionID)
	if err != nil {
		return "", err
	}

	for _, q := range session.Questions {
		if !session.WasAsked(q) {
			return q, nil
		}
	}
	return "", nil
}

func (s *sessionService) Progress(sessionID string) (*models.SessionProgress, error) {
	session, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}

	total := len(session.Questions)
	asked := len(session.Asked)
	answered := len(session.Answers)

	var pct float64
	if total > 0 {
		pct = float64(answered) / float64(total) * 100
	}

	return &models.SessionProgress{
		SessionID:          session.SessionID,
		TotalQuestions:     total,
		QuestionsAsked:     asked,
		AnswersSubmitted:   answered,
		RemainingQuestions: total - asked,
		ProgressPercentage: pct,
		Status:             session.Status,
	}, nil
}

func (s *sessionService) End(sessionID string) (*models.Session, error) {
	session, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}

	session.Status = "completed"
	if err := s.Save(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *sessionService) Delete(sessionID string) error {
	const op = "SessionService.Delete"

	if sessionID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "session_id is required", nil)
	}

	if err := s.sessions.Delete(sessionID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "session not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to delete session", err)
	}
	return nil
}

func (s *sessionService) List() ([]*models.Session, error) {
	const op = "SessionService.List"

	sessions, err := s.sessions.List()
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list sessions", err)
	}
	return sessions, nil
}
