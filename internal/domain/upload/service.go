package upload

import (
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// FieldName is the multipart form field carrying the image.
	FieldName = "image"

	// MaxFileSize caps uploads at 5 MiB.
	MaxFileSize = 5 << 20

	// URLPrefix is where stored files are served from.
	URLPrefix = "/uploads"
)

// Service writes uploaded images to a local directory and hands back the
// public path they are served from. Files are never deleted; a listing that
// goes away leaves its image behind.
type Service struct {
	dir string
}

// NewService creates the upload directory if it does not exist yet.
func NewService(dir string) (*Service, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Service{dir: dir}, nil
}

// Dir returns the directory files are written to.
func (s *Service) Dir() string { return s.dir }

// Stored describes one accepted upload.
type Stored struct {
	Name string // generated filename on disk
	URL  string // public path under /uploads
	Size int64
	Mime string
}

// Store validates and persists a single multipart image file. Nothing is
// written to disk unless the file passes the type and size checks.
func (s *Service) Store(fh *multipart.FileHeader) (*Stored, error) {
	if fh.Size == 0 {
		return nil, ErrEmptyFile
	}
	if fh.Size > MaxFileSize {
		return nil, ErrTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	// Sniff the content type from the leading bytes; the client's declared
	// type is not trusted.
	head := make([]byte, 512)
	n, _ := f.Read(head)
	mime := strings.Split(http.DetectContentType(head[:n]), ";")[0]
	if !strings.HasPrefix(mime, "image/") {
		return nil, ErrNotImage
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind upload: %w", err)
	}

	name := generateName(fh.Filename)
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", name, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, f); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("write %s: %w", name, err)
	}

	return &Stored{
		Name: name,
		URL:  URLPrefix + "/" + name,
		Size: fh.Size,
		Mime: mime,
	}, nil
}

// generateName builds "image-{millis}-{random}{ext}", keeping the original
// extension. Timestamp plus random suffix avoids collisions between uploads
// of identically named files.
func generateName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return fmt.Sprintf("%s-%d-%d%s", FieldName, time.Now().UnixMilli(), rand.Int63n(1_000_000_000), ext)
}
