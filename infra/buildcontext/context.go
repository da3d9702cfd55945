package buildcontext

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/otiai10/copy"
	"github.com/outofforest/parallel"
	"github.com/pkg/errors"
)

// Entry maps a path inside the build context to a path on the host filesystem.
type Entry struct {
	ContextPath string
	HostPath    string
}

// New creates an empty build context. Context paths are derived from basenames of
// registered host paths.
func New() *Context {
	return &Context{entries: map[string]string{}}
}

// NewWithRoot creates an empty build context rooted at root. Context paths of registered
// host paths are computed relative to root, so the directory layout under root is
// preserved inside the build context.
func NewWithRoot(root string) *Context {
	return &Context{root: filepath.Clean(root), entries: map[string]string{}}
}

// Context maps context-relative paths to host paths and materializes them into
// a directory consumable by the container engine during build.
type Context struct {
	root    string
	entries map[string]string
}

// Add registers a host file or directory and returns the context path under which it
// will appear inside the build context. The host path does not have to exist at
// registration time, existence is verified by Materialize. Registering the same host
// path twice returns the same context path. Registering a different host path mapping
// to an already taken context path fails with ErrAmbiguousMapping.
func (c *Context) Add(hostPath string) (string, error) {
	hostPath = filepath.Clean(hostPath)

	var ctxPath string
	if c.root != "" {
		rel, err := filepath.Rel(c.root, hostPath)
		if err != nil {
			return "", errors.Wrapf(err, "host path %s cannot be made relative to context root %s", hostPath, c.root)
		}
		if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return "", errors.Errorf("host path %s is outside context root %s", hostPath, c.root)
		}
		ctxPath = rel
	} else {
		ctxPath = filepath.Base(hostPath)
	}

	if existing, exists := c.entries[ctxPath]; exists && existing != hostPath {
		return "", errors.Wrapf(ErrAmbiguousMapping, "%s maps to both %s and %s", ctxPath, existing, hostPath)
	}
	c.entries[ctxPath] = hostPath
	return ctxPath, nil
}

// Entries returns registered entries sorted by context path.
func (c *Context) Entries() []Entry {
	entries := make([]Entry, 0, len(c.entries))
	for ctxPath, hostPath := range c.entries {
		entries = append(entries, Entry{ContextPath: ctxPath, HostPath: hostPath})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ContextPath < entries[j].ContextPath
	})
	return entries
}

// IsEmpty returns true if no entries are registered.
func (c *Context) IsEmpty() bool {
	return len(c.entries) == 0
}

// Clone returns a deep copy of the context.
func (c *Context) Clone() *Context {
	entries := make(map[string]string, len(c.entries))
	for ctxPath, hostPath := range c.entries {
		entries[ctxPath] = hostPath
	}
	return &Context{root: c.root, entries: entries}
}

// Extend merges entries of other into c. If any context path maps to different host
// paths in the two contexts, the merge fails with ErrMergeConflict listing every
// conflicting path and c is left unmodified.
func (c *Context) Extend(other *Context) error {
	var conflicts []string
	for ctxPath, hostPath := range other.entries {
		if existing, exists := c.entries[ctxPath]; exists && existing != hostPath {
			conflicts = append(conflicts, ctxPath)
		}
	}
	if len(conflicts) > 0 {
		sort.Strings(conflicts)
		return errors.Wrapf(ErrMergeConflict, "%s", strings.Join(conflicts, ", "))
	}
	for ctxPath, hostPath := range other.entries {
		c.entries[ctxPath] = hostPath
	}
	return nil
}

// Merge returns a new context containing entries of both a and b, keeping the context
// root of a. Merging more than two contexts is defined as a left-to-right sequence of
// pairwise merges.
func Merge(a, b *Context) (*Context, error) {
	merged := a.Clone()
	if err := merged.Extend(b); err != nil {
		return nil, err
	}
	return merged, nil
}

// Materialize copies every registered entry into dir, creating it if needed. All
// entries are validated first, then copied in parallel, each to its own subpath.
// After a returned error the content of dir is undefined and must not be passed
// to the engine.
func (c *Context) Materialize(ctx context.Context, dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.WithStack(err)
	}

	entries := c.Entries()
	dirs := make([]bool, len(entries))
	for i, e := range entries {
		isDir, err := validateEntry(e)
		if err != nil {
			return err
		}
		dirs[i] = isDir
	}

	return parallel.Run(ctx, func(ctx context.Context, spawn parallel.SpawnFn) error {
		for i, e := range entries {
			e := e
			isDir := dirs[i]
			spawn("copy:"+e.ContextPath, parallel.Continue, func(ctx context.Context) error {
				return copyEntry(e, isDir, dir)
			})
		}
		return nil
	})
}

func validateEntry(e Entry) (bool, error) {
	if filepath.IsAbs(e.ContextPath) || hasTraversal(e.ContextPath) {
		return false, errors.Wrapf(ErrPathEscape, "%s", e.ContextPath)
	}

	info, err := os.Stat(e.HostPath)
	switch {
	case err == nil:
	case os.IsNotExist(err):
		// A dangling symlink is present on disk but resolves to nothing.
		if _, lErr := os.Lstat(e.HostPath); lErr == nil {
			return false, errors.Wrapf(ErrUnsupportedPathType, "%s", e.HostPath)
		}
		return false, errors.Wrapf(ErrMissingHostPath, "%s", e.HostPath)
	default:
		return false, errors.WithStack(err)
	}

	switch {
	case info.Mode().IsRegular():
		return false, nil
	case info.IsDir():
		return true, nil
	default:
		return false, errors.Wrapf(ErrUnsupportedPathType, "%s", e.HostPath)
	}
}

func copyEntry(e Entry, isDir bool, dir string) error {
	dstPath := filepath.Join(dir, e.ContextPath)
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o700); err != nil {
		return errors.WithStack(err)
	}
	options := copy.Options{
		PreserveTimes: true,
		OnSymlink: func(src string) copy.SymlinkAction {
			return copy.Deep
		},
	}
	if isDir {
		options.OnDirExists = func(src, dst string) copy.DirExistsAction {
			return copy.Merge
		}
	}
	return errors.WithStack(copy.Copy(e.HostPath, dstPath, options))
}

func hasTraversal(ctxPath string) bool {
	for _, part := range strings.Split(filepath.ToSlash(ctxPath), "/") {
		if part == ".." {
			return true
		}
	}
	return false
}
