package storage

import "github.com/hirevox/backend/internal/models"

// AudioStore keeps uploaded audio payloads keyed by a generated file ID.
type AudioStore interface {
	Save(content []byte, originalFilename string) (*models.AudioFile, error)
	Load(fileID string) ([]byte, error)
	Info(fileID string) (*models.AudioFile, error)
	Delete(fileID string) error
	List() ([]string, error)
}
