package buildcontext

import "github.com/pkg/errors"

// ErrAmbiguousMapping is returned if a context path is already registered for a different host path.
var ErrAmbiguousMapping = errors.New("ambiguous context entry")

// ErrMergeConflict is returned if two contexts being merged map the same context path
// to different host paths.
var ErrMergeConflict = errors.New("conflicting context entries")

// ErrPathEscape is returned if a context path is absolute or traverses outside the context.
var ErrPathEscape = errors.New("context path escapes build context")

// ErrMissingHostPath is returned if a registered host path does not exist at materialization time.
var ErrMissingHostPath = errors.New("host path does not exist")

// ErrUnsupportedPathType is returned if a host path is neither a regular file nor a directory.
var ErrUnsupportedPathType = errors.New("host path is neither a file nor a directory")
