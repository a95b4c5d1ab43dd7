package manifest

import (
	"fmt"

	"path-chronicle/internal/models"
)

// Criterion selects a manifest entry by exactly one of id, name, or path.
// The zero value of a field means "not set"; when several are set, id wins
// over name, name over path.
type Criterion struct {
	ID   int
	Name string
	Path string
}

// IsZero reports whether no selector is set.
func (c Criterion) IsZero() bool {
	return c.ID == 0 && c.Name == "" && c.Path == ""
}

// Matches reports whether record is selected by this criterion.
func (c Criterion) Matches(record models.PathRecord) bool {
	switch {
	case c.ID != 0:
		return record.ID == c.ID
	case c.Name != "":
		return record.Name == c.Name
	case c.Path != "":
		return record.Path == c.Path
	default:
		return false
	}
}

// String renders the criterion for error messages.
func (c Criterion) String() string {
	switch {
	case c.ID != 0:
		return fmt.Sprintf("id=%d", c.ID)
	case c.Name != "":
		return fmt.Sprintf("name=%s", c.Name)
	case c.Path != "":
		return fmt.Sprintf("path=%s", c.Path)
	default:
		return "(empty)"
	}
}
