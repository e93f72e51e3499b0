package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirevox/backend/internal/models"
	filerepo "github.com/hirevox/backend/internal/repositories/file"
	"github.com/hirevox/backend/internal/utils"
)

func newTestSessionService(t *testing.T) SessionService {
	t.Helper()
	repo, err := filerepo.NewSessionRepo(t.TempDir())
	require.NoError(t, err)
	return NewSessionService(repo)
}

func TestCreate_Defaults(t *testing.T) {
	svc := newTestSessionService(t)

	session, err := svc.Create("Backend Engineer", "mid", []string{"go"})
	require.NoError(t, err)

	assert.NotEmpty(t, session.SessionID)
	assert.Equal(t, "started", session.Status)
	assert.Empty(t, session.Questions)
	assert.Empty(t, session.Asked)
	assert.Empty(t, session.Answers)
	assert.NotEmpty(t, session.CreatedAt)
}

func TestCreate_InvalidInput(t *testing.T) {
	svc := newTestSessionService(t)

	_, err := svc.Create("", "mid", nil)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	_, err = svc.Create("Engineer", "staff", nil)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestAddQuestion_Idempotent(t *testing.T) {
	svc := newTestSessionService(t)
	session, err := svc.Create("Engineer", "mid", nil)
	require.NoError(t, err)

	require.NoError(t, svc.AddQuestion(session.SessionID, "What is a goroutine?"))
	require.NoError(t, svc.AddQuestion(session.SessionID, "What is a goroutine?"))
	require.NoError(t, svc.AddQuestion(session.SessionID, "Explain channels?"))

	got, err := svc.Get(session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, []string{"What is a goroutine?", "Explain channels?"}, got.Questions)
}

func TestMarkAsked_Idempotent(t *testing.T) {
	svc := newTestSessionService(t)
	session, err := svc.Create("Engineer", "mid", nil)
	require.NoError(t, err)

	require.NoError(t, svc.AddQuestion(session.SessionID, "Q1?"))
	require.NoError(t, svc.MarkAsked(session.SessionID, "Q1?"))
	require.NoError(t, svc.MarkAsked(session.SessionID, "Q1?"))

	got, err := svc.Get(session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Q1?"}, got.Asked)
}

func TestMarkAsked_UnknownQuestionRejected(t *testing.T) {
	svc := newTestSessionService(t)
	session, err := svc.Create("Engineer", "mid", nil)
	require.NoError(t, err)

	err = svc.MarkAsked(session.SessionID, "Never generated?")
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestAddAnswer_AlwaysAppends(t *testing.T) {
	svc := newTestSessionService(t)
	session, err := svc.Create("Engineer", "mid", nil)
	require.NoError(t, err)

	eval := &models.Evaluation{Score: 75, Strengths: []string{"clear"}, Weaknesses: []string{"brief"}}
	require.NoError(t, svc.AddAnswer(session.SessionID, "Q1?", "first try", eval))
	require.NoError(t, svc.AddAnswer(session.SessionID, "Q1?", "second try", nil))

	got, err := svc.Get(session.SessionID)
	require.NoError(t, err)
	require.Len(t, got.Answers, 2)

	require.NotNil(t, got.Answers[0].Score)
	assert.Equal(t, 75, *got.Answers[0].Score)
	assert.Equal(t, []string{"clear"}, got.Answers[0].Strengths)
	assert.Nil(t, got.Answers[1].Score)
}

func TestNextQuestion_WalksUnasked(t *testing.T) {
	svc := newTestSessionService(t)
	session, err := svc.Create("Engineer", "mid", nil)
	require.NoError(t, err)

	require.NoError(t, svc.AddQuestion(session.SessionID, "Q1?"))
	require.NoError(t, svc.AddQuestion(session.SessionID, "Q2?"))

	q, err := svc.NextQuestion(session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "Q1?", q)

	require.NoError(t, svc.MarkAsked(session.SessionID, "Q1?"))

	q, err = svc.NextQuestion(session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "Q2?", q)

	require.NoError(t, svc.MarkAsked(session.SessionID, "Q2?"))

	q, err = svc.NextQuestion(session.SessionID)
	require.NoError(t, err)
	assert.Empty(t, q)
}

func TestProgress(t *testing.T) {
	svc := newTestSessionService(t)
	session, err := svc.Create("Engineer", "mid", nil)
	require.NoError(t, err)

	require.NoError(t, svc.AddQuestion(session.SessionID, "Q1?"))
	require.NoError(t, svc.AddQuestion(session.SessionID, "Q2?"))
	require.NoError(t, svc.AddQuestion(session.SessionID, "Q3?"))
	require.NoError(t, svc.AddQuestion(session.SessionID, "Q4?"))
	require.NoError(t, svc.MarkAsked(session.SessionID, "Q1?"))
	require.NoError(t, svc.AddAnswer(session.SessionID, "Q1?", "an answer", nil))

	progress, err := svc.Progress(session.SessionID)
	require.NoError(t, err)

	assert.Equal(t, 4, progress.TotalQuestions)
	assert.Equal(t, 1, progress.QuestionsAsked)
	assert.Equal(t, 1, progress.AnswersSubmitted)
	assert.Equal(t, 3, progress.RemainingQuestions)
	assert.Equal(t, 25.0, progress.ProgressPercentage)
	assert.Equal(t, "started", progress.Status)
}

func TestProgress_NoQuestions(t *testing.T) {
	svc := newTestSessionService(t)
	session, err := svc.Create("Engineer", "mid", nil)
	require.NoError(t, err)

	progress, err := svc.Progress(session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, progress.ProgressPercentage)
}

func TestEnd(t *testing.T) {
	svc := newTestSessionService(t)
	session, err := svc.Create("Engineer", "mid", nil)
	require.NoError(t, err)

	ended, err := svc.End(session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "completed", ended.Status)

	got, err := svc.Get(session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "completed", got.Status)
}

func TestDeleteThenGet_NotFound(t *testing.T) {
	svc := newTestSessionService(t)
	session, err := svc.Create("Engineer", "mid", nil)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(session.SessionID))

	_, err = svc.Get(session.SessionID)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestGet_MissingSession(t *testing.T) {
	svc := newTestSessionService(t)

	_, err := svc.Get("9a2f1d9e-0000-4000-8000-000000000000")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestList(t *testing.T) {
	svc := newTestSessionService(t)

	_, err := svc.Create("Engineer", "mid", nil)
	require.NoError(t, err)
	_, err = svc.Create("Engineer", "senior", nil)
	require.NoError(t, err)

	sessions, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
}
