package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirevox/backend/internal/models"
	"github.com/hirevox/backend/internal/utils"
)

func newTestRepo(t *testing.T) SessionRepository {
	t.Helper()
	repo, err := NewSessionRepo(t.TempDir())
	require.NoError(t, err)
	return repo
}

func sampleSession(id string) *models.Session {
	score := 80
	return &models.Session{
		SessionID:       id,
		Role:            "Backend Engineer",
		ExperienceLevel: "mid",
		Skills:          []string{"go", "postgres"},
		Questions:       []string{"What is a goroutine?", "Explain indexes?"},
		Asked:           []string{"What is a goroutine?"},
		Answers: []models.AnswerRecord{
			{Question: "What is a goroutine?", Answer: "A lightweight thread managed by the runtime.", Score: &score},
		},
		Status:    "started",
		CreatedAt: "2026-08-29T10:00:00Z",
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	repo := newTestRepo(t)

	want := sampleSession("11111111-1111-1111-1111-111111111111")
	require.NoError(t, repo.Save(want))

	got, err := repo.Load(want.SessionID)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadMissingSession(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Load("22222222-2222-2222-2222-222222222222")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestDeleteThenLoad(t *testing.T) {
	repo := newTestRepo(t)

	s := sampleSession("33333333-3333-3333-3333-333333333333")
	require.NoError(t, repo.Save(s))
	require.NoError(t, repo.Delete(s.SessionID))

	_, err := repo.Load(s.SessionID)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestDeleteMissingSession(t *testing.T) {
	repo := newTestRepo(t)
	assert.ErrorIs(t, repo.Delete("44444444-4444-4444-4444-444444444444"), utils.ErrNotFound)
}

func TestListSkipsCorruptFiles(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewSessionRepo(dir)
	require.NoError(t, err)

	require.NoError(t, repo.Save(sampleSession("55555555-5555-5555-5555-555555555555")))
	require.NoError(t, repo.Save(sampleSession("66666666-6666-6666-6666-666666666666")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644))

	sessions, err := repo.List()
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
}

func TestPathTraversalRejected(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Load("../escape")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, utils.ErrNotFound)
}
