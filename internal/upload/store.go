package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxFileSize caps evidence uploads at 16 MiB.
const MaxFileSize = 16 << 20

var allowedExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
}

var (
	ErrFileTooLarge  = errors.New("file exceeds 16 MiB limit")
	ErrInvalidType   = errors.New("invalid file type: only png, jpg, jpeg and gif are allowed")
	ErrEmptyFilename = errors.New("empty filename")
)

// Store saves validated evidence images under a base directory. The rest of
// the system only ever sees the stored filename it returns, never raw bytes.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

// Dir returns the base directory uploads are written to.
func (s *Store) Dir() string { return s.dir }

// Save validates the upload (extension allow-list, size cap) and writes it
// under a collision-free name: <prefix>_<uuid><ext>. Returns the stored
// filename.
func (s *Store) Save(fh *multipart.FileHeader, prefix string) (string, error) {
	if fh == nil || fh.Filename == "" {
		return "", ErrEmptyFilename
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", ErrInvalidType
	}
	if fh.Size > MaxFileSize {
		return "", ErrFileTooLarge
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := fmt.Sprintf("%s_%s%s", prefix, uuid.New().String(), ext)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	// Guard against a lying Content-Length: stop one byte past the cap.
	n, err := io.Copy(dst, io.LimitReader(src, MaxFileSize+1))
	if err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	if n > MaxFileSize {
		os.Remove(dst.Name())
		return "", ErrFileTooLarge
	}
	return name, nil
}
