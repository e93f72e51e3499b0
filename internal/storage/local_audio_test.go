package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirevox/backend/internal/utils"
)

func TestSaveLoadDelete(t *testing.T) {
	store, err := NewLocalAudioStore(t.TempDir())
	require.NoError(t, err)

	content := []byte("not really audio")
	info, err := store.Save(content, "answer.wav")
	require.NoError(t, err)

	assert.NotEmpty(t, info.FileID)
	assert.Equal(t, "wav", info.Format)
	assert.Equal(t, len(content), info.SizeBytes)
	assert.Equal(t, "answer.wav", info.OriginalFilename)

	got, err := store.Load(info.FileID)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	meta, err := store.Info(info.FileID)
	require.NoError(t, err)
	assert.Equal(t, info.Filename, meta.Filename)

	require.NoError(t, store.Delete(info.FileID))
	_, err = store.Load(info.FileID)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestLoadUnknownID(t *testing.T) {
	store, err := NewLocalAudioStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load("no-such-id")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestList(t *testing.T) {
	store, err := NewLocalAudioStore(t.TempDir())
	require.NoError(t, err)

	a, err := store.Save([]byte("a"), "a.mp3")
	require.NoError(t, err)
	b, err := store.Save([]byte("b"), "b.ogg")
	require.NoError(t, err)

	ids, err := store.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a.FileID, b.FileID}, ids)
}
