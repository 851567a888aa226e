package files

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Upload is one incoming design file, decoupled from the transport that
// carried it.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// Stored describes a persisted file. Path is relative to the storage root so
// records stay valid when the root moves.
type Stored struct {
	FileName    string
	Path        string
	ContentType string
	Size        int64
}

// Storage persists design uploads grouped by order.
type Storage interface {
	Save(ctx context.Context, orderID uuid.UUID, upload Upload) (*Stored, error)
}

type diskStorage struct {
	root string
}

// NewDiskStorage builds a Storage writing under root/orders/{order-id}/.
func NewDiskStorage(root string) Storage {
	return &diskStorage{root: root}
}

func (s *diskStorage) Save(ctx context.Context, orderID uuid.UUID, upload Upload) (*Stored, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := filepath.Join(s.root, "orders", orderID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}

	name := uniqueName(upload.FileName)
	dest := filepath.Join(dir, name)

	out, err := os.Create(dest)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	defer out.Close()

	written, err := io.Copy(out, upload.Content)
	if err != nil {
		os.Remove(dest)
		return nil, fmt.Errorf("writing %s: %w", name, err)
	}

	return &Stored{
		FileName:    upload.FileName,
		Path:        filepath.ToSlash(filepath.Join("orders", orderID.String(), name)),
		ContentType: ContentTypeFor(upload.FileName, upload.ContentType),
		Size:        written,
	}, nil
}

// uniqueName prefixes a sanitized original name with a random id so repeated
// uploads of the same file never collide.
func uniqueName(original string) string {
	base := filepath.Base(original)
	base = strings.ReplaceAll(base, " ", "_")
	return uuid.NewString()[:8] + "_" + base
}
