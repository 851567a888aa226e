package files

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/fajarnugraha/cetakin-backend/pkg/errors"
)

const maxTestBytes = 5 << 20

func TestValidateAllowedTypes(t *testing.T) {
	for _, name := range []string{"design.jpg", "design.JPEG", "logo.png", "proof.pdf"} {
		err := Validate(Upload{FileName: name, Size: 1024}, maxTestBytes)
		assert.NoError(t, err, name)
	}
}

func TestValidateRejectsUnknownExtension(t *testing.T) {
	err := Validate(Upload{FileName: "design.psd", Size: 1024}, maxTestBytes)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestValidateRejectsMismatchedContentType(t *testing.T) {
	err := Validate(Upload{FileName: "design.jpg", ContentType: "application/zip", Size: 1024}, maxTestBytes)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestValidateRejectsOversizedFile(t *testing.T) {
	err := Validate(Upload{FileName: "design.png", Size: maxTestBytes + 1}, maxTestBytes)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestDiskStorageSave(t *testing.T) {
	root := t.TempDir()
	store := NewDiskStorage(root)
	orderID := uuid.New()

	stored, err := store.Save(context.Background(), orderID, Upload{
		FileName:    "my banner.png",
		ContentType: "image/png",
		Size:        11,
		Content:     strings.NewReader("png-content"),
	})
	require.NoError(t, err)

	assert.Equal(t, "my banner.png", stored.FileName)
	assert.Equal(t, "image/png", stored.ContentType)
	assert.Equal(t, int64(11), stored.Size)
	assert.True(t, strings.HasPrefix(stored.Path, "orders/"+orderID.String()+"/"))
	assert.NotContains(t, stored.Path, " ")

	raw, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(stored.Path)))
	require.NoError(t, err)
	assert.Equal(t, "png-content", string(raw))
}

func TestDiskStorageUniqueNames(t *testing.T) {
	store := NewDiskStorage(t.TempDir())
	orderID := uuid.New()

	first, err := store.Save(context.Background(), orderID, Upload{FileName: "a.pdf", Content: strings.NewReader("one")})
	require.NoError(t, err)
	second, err := store.Save(context.Background(), orderID, Upload{FileName: "a.pdf", Content: strings.NewReader("two")})
	require.NoError(t, err)

	assert.NotEqual(t, first.Path, second.Path)
}
