package imagestore

import (
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalImageStoreSaveAndDelete(t *testing.T) {
	store, err := NewLocalImageStore(t.TempDir())
	require.NoError(t, err)

	imagePath, err := store.Save(strings.NewReader("fake png bytes"), "cat.png")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(imagePath, PublicPrefix+"/"))
	require.True(t, strings.HasSuffix(imagePath, "-cat.png"))

	onDisk := filepath.Join(store.folderName, path.Base(imagePath))
	content, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	require.Equal(t, "fake png bytes", string(content))

	require.NoError(t, store.Delete(imagePath))
	_, err = os.Stat(onDisk)
	require.True(t, os.IsNotExist(err))
}

func TestLocalImageStoreUniqueNames(t *testing.T) {
	store, err := NewLocalImageStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.Save(strings.NewReader("a"), "cat.png")
	require.NoError(t, err)
	second, err := store.Save(strings.NewReader("b"), "cat.png")
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestLocalImageStoreRejectsUnsupportedType(t *testing.T) {
	store, err := NewLocalImageStore(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"script.exe", "notes.txt", "archive.png.zip", "noext"} {
		_, err := store.Save(strings.NewReader("x"), name)
		require.ErrorIs(t, err, ErrUnsupportedType)
	}
}

func TestLocalImageStoreDeleteMissing(t *testing.T) {
	store, err := NewLocalImageStore(t.TempDir())
	require.NoError(t, err)

	require.Error(t, store.Delete("images/nothing-here.png"))
}
