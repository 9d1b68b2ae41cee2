package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"DocPipeline/internal/domain"
	"DocPipeline/internal/ports"
)

const maxUnescapeRounds = 5

var stampPrefix = regexp.MustCompile(`^\d+-`)

// FileStore keeps generated artifacts as flat files under one directory.
type FileStore struct {
	dir            string
	downloadPrefix string
}

var _ ports.ArtifactStore = (*FileStore)(nil)

// NewFileStore creates dir when missing.
func NewFileStore(dir, downloadPrefix string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("artifact output directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &domain.IOError{Op: "create artifact dir", Path: dir, Err: err}
	}
	return &FileStore{dir: dir, downloadPrefix: downloadPrefix}, nil
}

// ValidateName rejects traversal and separators, including URL-encoded forms.
func ValidateName(name string) error {
	decoded := name
	for i := 0; i < maxUnescapeRounds; i++ {
		if err := checkName(decoded); err != nil {
			return err
		}
		next, err := url.PathUnescape(decoded)
		if err != nil {
			return fmt.Errorf("%w: %s", domain.ErrInvalidFilename, name)
		}
		if next == decoded {
			return nil
		}
		decoded = next
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidFilename, name)
}

func checkName(name string) error {
	if name == "" || name == "." ||
		strings.Contains(name, "..") ||
		strings.ContainsAny(name, "/\\\x00") {
		return fmt.Errorf("%w: %s", domain.ErrInvalidFilename, name)
	}
	return nil
}

// DownloadURL is the reference handed back to clients for a stored name.
func (s *FileStore) DownloadURL(name string) string {
	return s.downloadPrefix + name
}

// Write stores payload under a new name and returns its path. An existing
// file is never replaced; the error then wraps fs.ErrExist.
func (s *FileStore) Write(_ context.Context, name string, payload []byte) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", &domain.IOError{Op: "create artifact", Path: path, Err: err}
	}
	_, err = f.Write(payload)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", &domain.IOError{Op: "write artifact", Path: path, Err: err}
	}
	return path, nil
}

// Open returns the artifact content and its size.
func (s *FileStore) Open(_ context.Context, name string) (io.ReadCloser, int64, error) {
	if err := ValidateName(name); err != nil {
		return nil, 0, err
	}
	path := filepath.Join(s.dir, name)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, 0, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, name)
		}
		return nil, 0, &domain.IOError{Op: "open artifact", Path: path, Err: err}
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, 0, &domain.IOError{Op: "stat artifact", Path: path, Err: err}
	}
	return f, info.Size(), nil
}

// List returns stored artifacts, newest first.
func (s *FileStore) List(_ context.Context) ([]domain.StoredArtifact, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, &domain.IOError{Op: "list artifacts", Path: s.dir, Err: err}
	}

	out := make([]domain.StoredArtifact, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		out = append(out, domain.StoredArtifact{
			Filename:     entry.Name(),
			OriginalName: stampPrefix.ReplaceAllString(entry.Name(), ""),
			MIMEType:     domain.MIMETypeForName(entry.Name()),
			Size:         info.Size(),
			CreatedAt:    info.ModTime().UTC(),
			DownloadURL:  s.DownloadURL(entry.Name()),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Filename > out[j].Filename
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Delete removes a stored artifact.
func (s *FileStore) Delete(_ context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	path := filepath.Join(s.dir, name)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, name)
		}
		return &domain.IOError{Op: "delete artifact", Path: path, Err: err}
	}
	return nil
}
