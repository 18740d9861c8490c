package imagestore

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ArjunKaliyath/socials/utils"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// PublicPrefix is the URL path segment uploaded images are served under.
const PublicPrefix = "images"

var allowedExts = []string{".png", ".jpg", ".jpeg"}

// LocalImageStore keeps uploaded images on local disk under a single folder.
type LocalImageStore struct {
	folderName string
}

func NewLocalImageStore(folderName string) (*LocalImageStore, error) {
	if err := os.MkdirAll(folderName, os.ModePerm); err != nil {
		return nil, errors.Wrap(err, "fail to create image folder")
	}
	return &LocalImageStore{folderName: folderName}, nil
}

// Save streams the upload to disk under a uuid-prefixed file name so that two
// uploads with the same original name never collide. Returns the public
// relative path of the stored image.
func (s *LocalImageStore) Save(src io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !utils.ContainsString(allowedExts, ext) {
		return "", ErrUnsupportedType
	}

	fileName := uuid.New().String() + "-" + filepath.Base(originalName)
	out, err := os.Create(filepath.Join(s.folderName, fileName))
	if err != nil {
		return "", errors.Wrap(err, "fail to create image file")
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return "", errors.Wrap(err, "fail to write image file")
	}

	// Always use forward slashes: this value is a URL path, not an OS path.
	return path.Join(PublicPrefix, fileName), nil
}

// Delete removes a stored image by its public relative path. Deleting an
// unknown path is an error the caller is expected to swallow.
func (s *LocalImageStore) Delete(imagePath string) error {
	fileName := path.Base(imagePath)
	if err := os.Remove(filepath.Join(s.folderName, fileName)); err != nil {
		return errors.Wrap(err, "fail to delete image file")
	}
	return nil
}
