package config

import (
	"os"
	"path/filepath"
)

// WorkspaceFactory collects data for workspace config.
type WorkspaceFactory struct {
	// Root is the root location for build workspaces
	Root string
}

// Config creates workspace config.
func (f *WorkspaceFactory) Config() Workspace {
	root := f.Root
	if root == "" {
		root = filepath.Join(os.TempDir(), "pythainer")
	}
	return Workspace{
		Root: root,
	}
}

// Workspace stores configuration related to build workspaces.
type Workspace struct {
	// Root is the root location for build workspaces
	Root string
}
