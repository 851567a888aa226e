// Package files validates and stores customer design uploads.
package files

import (
	"fmt"
	"path/filepath"
	"strings"

	pkgerrors "github.com/fajarnugraha/cetakin-backend/pkg/errors"
)

var allowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".pdf":  "application/pdf",
}

var allowedContentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
}

// Validate checks one upload against the allow-list and the size cap before
// anything touches disk.
func Validate(upload Upload, maxBytes int64) error {
	ext := strings.ToLower(filepath.Ext(upload.FileName))
	if _, ok := allowedExtensions[ext]; !ok {
		return pkgerrors.NewFieldValidation("Validation error", map[string][]string{
			"design_files": {fmt.Sprintf("%s: file type not allowed, use jpg, jpeg, png or pdf", upload.FileName)},
		})
	}
	if upload.ContentType != "" && !allowedContentTypes[upload.ContentType] {
		return pkgerrors.NewFieldValidation("Validation error", map[string][]string{
			"design_files": {fmt.Sprintf("%s: content type %s not allowed", upload.FileName, upload.ContentType)},
		})
	}
	if upload.Size > maxBytes {
		return pkgerrors.NewFieldValidation("Validation error", map[string][]string{
			"design_files": {fmt.Sprintf("%s: exceeds the %d MB limit", upload.FileName, maxBytes/(1<<20))},
		})
	}
	return nil
}

// ContentTypeFor returns the canonical MIME type for a file name, falling
// back to the declared type when the extension is unknown.
func ContentTypeFor(fileName, declared string) string {
	if mime, ok := allowedExtensions[strings.ToLower(filepath.Ext(fileName))]; ok {
		return mime
	}
	return declared
}
