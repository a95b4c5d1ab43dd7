package models

// PathRecord represents one row of the path manifest.
type PathRecord struct {
	// ID is the positive, monotonically assigned identifier. IDs are never
	// reused after removal.
	ID int `json:"id"`

	// Name is the symbol derived from the path, unique across the manifest.
	// It doubles as the constant name in the generated module.
	Name string `json:"name"`

	// Path is stored relative to the project root, forward-slash separated
	// regardless of platform.
	Path string `json:"path"`

	// Description is optional free-form text.
	Description string `json:"description,omitempty"`
}

// NewPathRecord creates a new PathRecord instance.
func NewPathRecord(id int, name, path, description string) *PathRecord {
	return &PathRecord{
		ID:          id,
		Name:        name,
		Path:        path,
		Description: description,
	}
}
