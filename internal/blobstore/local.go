package blobstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/spf13/afero"
)

// localStore writes blobs into a directory through an afero filesystem
type localStore struct {
	fs afero.Fs
}

// NewLocal creates a Store rooted at dir on the OS filesystem, creating dir if needed
func NewLocal(dir string) (Store, error) {
	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return NewLocalFs(afero.NewBasePathFs(osFs, dir)), nil
}

// NewLocalFs creates a Store writing to the root of fs
func NewLocalFs(fs afero.Fs) Store {
	return &localStore{fs: fs}
}

func (s *localStore) Put(ctx context.Context, name string, r io.Reader) (err error) {
	if err := validName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := s.fs.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", name, cerr)
		}
	}()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

func validName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || path.Clean(name) != name || name == "." || name == ".." {
		return ErrInvalidName
	}
	return nil
}
