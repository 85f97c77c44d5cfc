package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Local writes files below a directory that is served statically under urlPrefix.
type Local struct {
	dir       string
	urlPrefix string
}

func NewLocal(dir, urlPrefix string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Local{dir: dir, urlPrefix: "/" + strings.Trim(urlPrefix, "/")}, nil
}

// Dir is the root directory files are written to.
func (l *Local) Dir() string { return l.dir }

// URLPrefix is the path the directory is mounted at.
func (l *Local) URLPrefix() string { return l.urlPrefix }

// maxKeyAttempts bounds the "-N" suffixes tried when a key is taken.
const maxKeyAttempts = 100

// Save never overwrites: a taken key gets a "-N" suffix before its extension.
func (l *Local) Save(ctx context.Context, key, _ string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f, target, rel, err := l.create(key)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(target)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path.Join(l.urlPrefix, rel), nil
}

func (l *Local) create(key string) (f *os.File, target, rel string, err error) {
	ext := path.Ext(key)
	base := strings.TrimSuffix(key, ext)
	for i := 0; i < maxKeyAttempts; i++ {
		candidate := key
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d%s", base, i, ext)
		}
		target, rel, err = l.resolve(candidate)
		if err != nil {
			return nil, "", "", err
		}
		if err = os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return nil, "", "", err
		}
		f, err = os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, target, rel, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", "", err
		}
	}
	return nil, "", "", fmt.Errorf("no free storage key for %q", key)
}

// Delete removes the file behind url. A file that is already gone is not an error.
func (l *Local) Delete(_ context.Context, url string) error {
	if !strings.HasPrefix(url, l.urlPrefix+"/") {
		return ErrForeignURL
	}
	target, _, err := l.resolve(strings.TrimPrefix(url, l.urlPrefix+"/"))
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// resolve maps key to a path inside dir; ".." segments cannot climb out of it.
func (l *Local) resolve(key string) (target, rel string, err error) {
	clean := filepath.Clean("/" + filepath.FromSlash(key))
	if clean == string(filepath.Separator) {
		return "", "", errors.New("empty storage key")
	}
	return filepath.Join(l.dir, clean), strings.TrimPrefix(filepath.ToSlash(clean), "/"), nil
}
