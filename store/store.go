// Package store persists generated artifacts (illustrations and rendered pages).
package store

import (
	"fmt"
	"net/http"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"
)

// Store writes artifacts under two directories of an afero filesystem.
type Store struct {
	fs        afero.Fs
	pagesDir  string
	imagesDir string
	now       func() time.Time

	mu sync.Mutex
}

// Entry describes one stored page.
type Entry struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// New creates both directories if they are missing.
func New(fs afero.Fs, pagesDir, imagesDir string) (*Store, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	for _, dir := range []string{pagesDir, imagesDir} {
		if dir == "" {
			return nil, fmt.Errorf("store: empty directory name")
		}
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("store: create %s: %w", dir, err)
		}
	}
	return &Store{fs: fs, pagesDir: pagesDir, imagesDir: imagesDir, now: time.Now}, nil
}

func (s *Store) PagesDir() string  { return s.pagesDir }
func (s *Store) ImagesDir() string { return s.imagesDir }

// SaveImage stores a PNG and returns its slash-separated path.
func (s *Store) SaveImage(data []byte) (string, error) {
	return s.write(s.imagesDir, "image", ".png", data)
}

// SavePage stores an HTML page and returns its slash-separated path.
func (s *Store) SavePage(html []byte) (string, error) {
	return s.write(s.pagesDir, "article", ".html", html)
}

func (s *Store) write(dir, prefix, ext string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	base := fmt.Sprintf("%s_%d", prefix, s.now().UnixNano())
	name := path.Join(dir, base+ext)
	// Runs in parallel can land on the same nanosecond; never overwrite.
	for i := 1; ; i++ {
		if _, err := s.fs.Stat(name); os.IsNotExist(err) {
			break
		}
		name = path.Join(dir, fmt.Sprintf("%s_%d%s", base, i, ext))
	}
	if err := afero.WriteFile(s.fs, name, data, 0o644); err != nil {
		return "", fmt.Errorf("store: write %s: %w", name, err)
	}
	return name, nil
}

// ListPages returns stored HTML pages sorted by name.
func (s *Store) ListPages() ([]Entry, error) {
	infos, err := afero.ReadDir(s.fs, s.pagesDir)
	if err != nil {
		return nil, err
	}
	var out []Entry
	for _, fi := range infos {
		if fi.IsDir() || !strings.HasSuffix(fi.Name(), ".html") {
			continue
		}
		out = append(out, Entry{Name: fi.Name(), Path: "/" + path.Join(s.pagesDir, fi.Name())})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Read returns a stored artifact.
func (s *Store) Read(name string) ([]byte, error) {
	return afero.ReadFile(s.fs, name)
}

// PagesFS and ImagesFS expose the directories for static serving.
func (s *Store) PagesFS() http.FileSystem {
	return afero.NewHttpFs(s.fs).Dir(s.pagesDir)
}

func (s *Store) ImagesFS() http.FileSystem {
	return afero.NewHttpFs(s.fs).Dir(s.imagesDir)
}
