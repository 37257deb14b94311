package filestore

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStore keeps files on disk under Dir and serves them at
// BaseURL + "/uploads/". An empty BaseURL yields process-relative URLs.
type LocalStore struct {
	Dir     string
	BaseURL string
}

func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, err
	}
	return &LocalStore{Dir: dir, BaseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (s *LocalStore) Store(name string, r io.Reader) error {
	f, err := os.Create(path.Join(s.Dir, filepath.Base(name)))
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return err
	}
	return f.Sync()
}

func (s *LocalStore) Delete(name string) error {
	err := os.Remove(path.Join(s.Dir, filepath.Base(name)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *LocalStore) URLFor(name string) string {
	return s.BaseURL + "/uploads/" + name
}
