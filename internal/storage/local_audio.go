package storage

import (
	"errors"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/hirevox/backend/internal/models"
	"github.com/hirevox/backend/internal/utils"
)

// LocalAudioStore stores uploads on the local filesystem, one file per
// upload named "<uuid><ext>".
type LocalAudioStore struct {
	dir string
}

func NewLocalAudioStore(dir string) (*LocalAudioStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalAudioStore{dir: dir}, nil
}

func (s *LocalAudioStore) Save(content []byte, originalFilename string) (*models.AudioFile, error) {
	fileID := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(originalFilename))

	name := fileID + ext
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return nil, err
	}

	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		mimeType = "audio/unknown"
	}

	return &models.AudioFile{
		FileID:           fileID,
		Filename:         name,
		Path:             path,
		SizeBytes:        len(content),
		Format:           strings.TrimPrefix(ext, "."),
		MimeType:         mimeType,
		OriginalFilename: originalFilename,
	}, nil
}

func (s *LocalAudioStore) find(fileID string) (string, error) {
	if fileID == "" || fileID != filepath.Base(fileID) {
		return "", errors.New("invalid file id")
	}
	matches, err := filepath.Glob(filepath.Join(s.dir, fileID+".*"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", utils.ErrNotFound
	}
	return matches[0], nil
}

func (s *LocalAudioStore) Load(fileID string) ([]byte, error) {
	path, err := s.find(fileID)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, utils.ErrNotFound
	}
	return b, err
}

func (s *LocalAudioStore) Info(fileID string) (*models.AudioFile, error) {
	path, err := s.find(fileID)
	if err != nil {
		return nil, err
	}
	st, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	ext := filepath.Ext(path)
	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		mimeType = "audio/unknown"
	}

	return &models.AudioFile{
		FileID:    fileID,
		Filename:  filepath.Base(path),
		Path:      path,
		SizeBytes: int(st.Size()),
		Format:    strings.TrimPrefix(ext, "."),
		MimeType:  mimeType,
	}, nil
}

func (s *LocalAudioStore) Delete(fileID string) error {
	path, err := s.find(fileID)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

func (s *LocalAudioStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ids = append(ids, strings.TrimSuffix(name, filepath.Ext(name)))
	}
	return ids, nil
}
