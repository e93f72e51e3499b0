package file

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hirevox/backend/internal/models"
	"github.com/hirevox/backend/internal/utils"
)

// SessionRepository persists one JSON document per session. Writes are
// whole-record overwrites: two callers mutating the same session race on
// read-modify-write and the last writer wins. Acceptable for the
// single-writer-per-session workload this serves.
type SessionRepository interface {
	Save(s *models.Session) error
	Load(sessionID string) (*models.Session, error)
	Delete(sessionID string) error
	List() ([]*models.Session, error)
}

type sessionRepo struct {
	dir string
}

func NewSessionRepo(dir string) (SessionRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &sessionRepo{dir: dir}, nil
}

func (r *sessionRepo) path(sessionID string) (string, error) {
	// IDs are uuids; reject anything that could escape the directory.
	if sessionID == "" || sessionID != filepath.Base(sessionID) || strings.ContainsAny(sessionID, "/\\") {
		return "", errors.New("invalid session id")
	}
	return filepath.Join(r.dir, sessionID+".json"), nil
}

func (r *sessionRepo) Save(s *models.Session) error {
	path, err := r.path(s.SessionID)
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func (r *sessionRepo) Load(sessionID string) (*models.Session, error) {
	path, err := r.path(sessionID)
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var s models.Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepo) Delete(sessionID string) error {
	path, err := r.path(sessionID)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return utils.ErrNotFound
		}
		return err
	}
	return nil
}

// List returns every decodable session record and silently skips files
// that fail to parse.
func (r *sessionRepo) List() ([]*models.Session, error) {
	paths, err := filepath.Glob(filepath.Join(r.dir, "*.json"))
	if err != nil {
		return nil, err
	}

	sessions := make([]*models.Session, 0, len(paths))
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		var s models.Session
		if err := json.Unmarshal(b, &s); err != nil {
			continue
		}
		sessions = append(sessions, &s)
	}
	return sessions, nil
}
