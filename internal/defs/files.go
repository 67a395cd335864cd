package defs

// Common file names used across the project.
const (
	// ManifestJSON is the manifest written to the root of every generated
	// project. Its presence marks a directory as AppForge-generated.
	ManifestJSON = ".appforge.json"

	// ConfigYAML is the user-level tool configuration file, stored under
	// the OS config directory.
	ConfigYAML = "config.yaml"

	// NotesMD is the post-generation notes file rendered after create.
	NotesMD = "NOTES.md"
)

// Template repository layout. Paths are relative to the template root.
const (
	// BaseDir is the per-service directory holding the unconditional
	// skeleton that every generated service starts from.
	BaseDir = "base"

	// VariantsDir is the per-service directory holding one subdirectory
	// per variant name.
	VariantsDir = "variants"

	// VariantFilesDir is the variant subdirectory whose tree is copied
	// over the base copy, overwriting on conflict.
	VariantFilesDir = "files"

	// VariantSectionsDir is the variant subdirectory holding section
	// snippet files named <target-path>.<SECTION_NAME>.
	VariantSectionsDir = "sections"
)

// Per-user state layout.
const (
	// AppDirName is the AppForge subdirectory of both os.UserCacheDir
	// and os.UserConfigDir.
	AppDirName = "appforge"

	// TemplatesDirName is the clone directory for the template repository
	// inside the cache.
	TemplatesDirName = "templates"
)

// DefaultTemplateRepo is the template repository cloned when no override
// is configured.
const DefaultTemplateRepo = "https://github.com/appforge-dev/templates.git"

// DefaultTemplateRef is the branch tracked by the template cache.
const DefaultTemplateRef = "main"
