package defs

import "io/fs"

// File-system permissions for generated artifacts.
const (
	// DirPerm is the mode for directories created during generation.
	DirPerm fs.FileMode = 0o755

	// FilePerm is the mode for regular files written during generation.
	FilePerm fs.FileMode = 0o644
)
