package workspace

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/apaolillo/pythainer/config"
)

// New creates workspace rooted at root.
func New(root string) *Workspace {
	return &Workspace{
		root: filepath.Clean(root),
	}
}

// Resolve creates workspace based on config.
func Resolve(cfg config.Workspace) *Workspace {
	return New(cfg.Root)
}

// Workspace hands out uniquely named directories under a common root, so concurrent
// builds never share a build directory.
type Workspace struct {
	root string
}

// Acquire creates and returns a fresh build directory.
func (w *Workspace) Acquire() (string, error) {
	dir := filepath.Join(w.root, "build-"+uuid.New().String())
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", errors.WithStack(err)
	}
	return dir, nil
}

// Release removes a directory previously returned by Acquire.
func (w *Workspace) Release(dir string) error {
	dir = filepath.Clean(dir)
	if !strings.HasPrefix(dir, w.root+string(filepath.Separator)) {
		return errors.Errorf("directory %s is not owned by workspace %s", dir, w.root)
	}
	return errors.WithStack(os.RemoveAll(dir))
}
