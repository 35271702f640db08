package staging

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

const (
	previewDir     = "previews"
	previewMaxSize = 320
	previewQuality = 85
)

var ErrNotStaged = errors.New("staged file not found")

// File is a cover image parked on disk between the event form being
// submitted and the backend accepting it. Keeping the bytes server-side lets
// a failed submit be retried without the admin re-choosing the file.
type File struct {
	ID          string
	Name        string // original filename, forwarded to the backend
	path        string
	previewPath string
}

// HasPreview reports whether a thumbnail could be derived from the file.
func (f *File) HasPreview() bool {
	return f.previewPath != ""
}

// Store holds staged uploads. Contents are form-lifetime only: the
// directory is wiped whenever the panel starts.
type Store struct {
	dir string

	mu    sync.Mutex
	files map[string]*File
}

func New(dir string) (*Store, error) {
	if err := os.RemoveAll(dir); err != nil {
		return nil, fmt.Errorf("failed to reset staging directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(dir, previewDir), 0755); err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}
	return &Store{dir: dir, files: make(map[string]*File)}, nil
}

// Save spools the upload to disk under a fresh id and derives a preview
// thumbnail when the content decodes as an image.
func (s *Store) Save(filename string, r io.Reader) (*File, error) {
	id := uuid.New().String()
	name := filepath.Base(filename)
	path := filepath.Join(s.dir, id+filepath.Ext(name))

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stage %s: %w", name, err)
	}
	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		os.Remove(path)
		return nil, fmt.Errorf("failed to stage %s: %w", name, err)
	}
	dst.Close()

	f := &File{ID: id, Name: name, path: path}
	f.previewPath = s.makePreview(id, path)

	s.mu.Lock()
	s.files[id] = f
	s.mu.Unlock()
	return f, nil
}

// Get returns the staged file for id, if it is still held.
func (s *Store) Get(id string) (*File, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.files[id]
	return f, ok
}

// Open returns the staged file and a reader over its content.
func (s *Store) Open(id string) (*File, io.ReadCloser, error) {
	f, ok := s.Get(id)
	if !ok {
		return nil, nil, ErrNotStaged
	}
	rc, err := os.Open(f.path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open staged file: %w", err)
	}
	return f, rc, nil
}

// PreviewPath returns the on-disk thumbnail for id, when one exists.
func (s *Store) PreviewPath(id string) (string, bool) {
	f, ok := s.Get(id)
	if !ok || f.previewPath == "" {
		return "", false
	}
	return f.previewPath, true
}

// Remove discards a staged file and its preview.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	f, ok := s.files[id]
	delete(s.files, id)
	s.mu.Unlock()
	if !ok {
		return
	}
	os.Remove(f.path)
	if f.previewPath != "" {
		os.Remove(f.previewPath)
	}
}

func (s *Store) makePreview(id, path string) string {
	src, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		// Not a decodable image; the form just shows no preview.
		return ""
	}

	thumb := resize.Thumbnail(previewMaxSize, previewMaxSize, img, resize.Lanczos3)
	out := filepath.Join(s.dir, previewDir, id+".jpg")
	dst, err := os.Create(out)
	if err != nil {
		return ""
	}
	defer dst.Close()
	if err := jpeg.Encode(dst, thumb, &jpeg.Options{Quality: previewQuality}); err != nil {
		os.Remove(out)
		return ""
	}
	return out
}
