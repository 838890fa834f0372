package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	domainErrors "github.com/polkiloo/posdocs/internal/domain/errors"
	"github.com/polkiloo/posdocs/internal/domain/model"
)

const (
	tokenFile = "auth_token"
	userFile  = "auth_user.json"
)

// ErrIncomplete is returned when only one of the two session keys is present.
var ErrIncomplete = errors.New("incomplete session")

// Store persists the session token and user together.
type Store interface {
	Load() (string, model.User, error)
	Save(token string, user model.User) error
	Clear() error
}

// FileStore keeps the session in two files inside a private directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Load reads both keys. ErrNoSession means neither key exists.
func (s *FileStore) Load() (string, model.User, error) {
	token, tokenErr := os.ReadFile(filepath.Join(s.dir, tokenFile))
	rawUser, userErr := os.ReadFile(filepath.Join(s.dir, userFile))

	switch {
	case errors.Is(tokenErr, os.ErrNotExist) && errors.Is(userErr, os.ErrNotExist):
		return "", model.User{}, domainErrors.ErrNoSession
	case tokenErr != nil || userErr != nil:
		return "", model.User{}, fmt.Errorf("%w: %v", ErrIncomplete, errors.Join(tokenErr, userErr))
	}

	var user model.User
	if err := json.Unmarshal(rawUser, &user); err != nil {
		return "", model.User{}, fmt.Errorf("%w: decode user: %v", ErrIncomplete, err)
	}
	if len(token) == 0 {
		return "", model.User{}, fmt.Errorf("%w: empty token", ErrIncomplete)
	}

	return string(token), user, nil
}

// Save writes both keys atomically.
func (s *FileStore) Save(token string, user model.User) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	rawUser, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	if err := writeFileAtomic(filepath.Join(s.dir, userFile), rawUser); err != nil {
		return err
	}
	if err := writeFileAtomic(filepath.Join(s.dir, tokenFile), []byte(token)); err != nil {
		_ = s.Clear()
		return err
	}
	return nil
}

// Clear removes both keys.
func (s *FileStore) Clear() error {
	var errs []error
	for _, name := range []string{tokenFile, userFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", filepath.Base(path), err)
	}
	return nil
}
