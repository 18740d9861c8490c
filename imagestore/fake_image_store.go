package imagestore

import (
	"io"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ArjunKaliyath/socials/utils"
)

// FakeImageStore is an in-memory Store for tests. It records every save and
// delete instead of touching disk.
type FakeImageStore struct {
	mu      sync.Mutex
	Saved   []string
	Deleted []string
}

func (s *FakeImageStore) Save(src io.Reader, originalName string) (string, error) {
	if !utils.ContainsString(allowedExts, strings.ToLower(filepath.Ext(originalName))) {
		return "", ErrUnsupportedType
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	imagePath := path.Join(PublicPrefix, "fake-"+originalName)
	s.Saved = append(s.Saved, imagePath)
	return imagePath, nil
}

func (s *FakeImageStore) Delete(imagePath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Deleted = append(s.Deleted, imagePath)
	return nil
}
