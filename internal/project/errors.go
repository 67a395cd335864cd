package project

import "errors"

var (
	// ErrInvalidOptions reports a Generate call with unusable options,
	// such as an empty project name or an incomplete choice set.
	ErrInvalidOptions = errors.New("project: invalid options")

	// ErrManifestNotFound reports a directory without a manifest file.
	// Manifest presence is the sole signal that a directory holds a
	// generated project, so callers treat this as "not a project".
	ErrManifestNotFound = errors.New("project: manifest not found")

	// ErrManifestInvalid reports a manifest file that exists but cannot
	// be parsed.
	ErrManifestInvalid = errors.New("project: manifest is not valid JSON")
)
