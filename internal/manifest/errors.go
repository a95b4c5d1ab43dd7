package manifest

import "errors"

var (
	// ErrInvalidPath is returned when a path has no usable final segment to
	// derive a name from.
	ErrInvalidPath = errors.New("path has no usable final segment")

	// ErrDuplicatePath is returned when the relative path is already
	// registered in the manifest.
	ErrDuplicatePath = errors.New("path already registered")

	// ErrNotFound is returned when a removal criterion matches no entry.
	ErrNotFound = errors.New("no matching manifest entry")

	// ErrAmbiguousMatch is returned when a removal criterion matches more
	// than one entry. The uniqueness invariants make this unreachable for a
	// manifest this tool wrote itself.
	ErrAmbiguousMatch = errors.New("criterion matches more than one manifest entry")

	// ErrManifestCorrupt is returned when the on-disk manifest violates its
	// invariants, e.g. after a hand edit.
	ErrManifestCorrupt = errors.New("manifest is corrupt")
)
