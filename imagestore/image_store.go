package imagestore

import (
	"io"

	"github.com/pkg/errors"
)

// Store persists uploaded post images and releases them when the owning post
// changes or goes away. Save returns the public relative path (e.g.
// "images/<name>") that gets persisted on the post and served statically.
type Store interface {
	Save(src io.Reader, originalName string) (imagePath string, err error)
	Delete(imagePath string) error
}

// ErrUnsupportedType is returned by Save for anything that is not a
// png/jpg/jpeg upload.
var ErrUnsupportedType = errors.New("unsupported image type")
