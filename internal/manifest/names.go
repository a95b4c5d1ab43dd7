package manifest

import (
	"fmt"
	"go/token"
	"path"
)

// reservedNames are identifiers the generated module declares itself; a
// record carrying one of them would redeclare the lookup API.
var reservedNames = map[string]struct{}{
	"GetPath":     {},
	"pathsByName": {},
}

// IsReservedName reports whether name belongs to the generated module's own
// declarations and therefore cannot be used as a record name.
func IsReservedName(name string) bool {
	_, ok := reservedNames[name]
	return ok
}

// DeriveName turns the final segment of a root-relative path into a valid
// Go identifier that is unique against the taken name set:
//
//   - characters outside [A-Za-z0-9_] become underscores
//   - a leading digit gets an underscore prefix
//   - Go keywords get an underscore suffix
//   - collisions, including the generated module's reserved identifiers,
//     get a numeric suffix (_2, _3, ...)
//
// Derivation is deterministic: the same path against the same taken set
// always yields the same symbol.
func DeriveName(relPath string, taken map[string]struct{}) (string, error) {
	segment := path.Base(path.Clean(relPath))
	if segment == "" || segment == "." || segment == ".." || segment == "/" {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, relPath)
	}

	name := sanitizeSymbol(segment)
	if nameAvailable(name, taken) {
		return name, nil
	}

	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s_%d", name, i)
		if nameAvailable(candidate, taken) {
			return candidate, nil
		}
	}
}

func nameAvailable(name string, taken map[string]struct{}) bool {
	if IsReservedName(name) {
		return false
	}
	_, exists := taken[name]
	return !exists
}

func sanitizeSymbol(segment string) string {
	symbol := make([]rune, 0, len(segment))
	for _, r := range segment {
		if isWordRune(r) {
			symbol = append(symbol, r)
		} else {
			symbol = append(symbol, '_')
		}
	}

	if symbol[0] >= '0' && symbol[0] <= '9' {
		symbol = append([]rune{'_'}, symbol...)
	}

	name := string(symbol)
	if token.IsKeyword(name) {
		name += "_"
	}

	return name
}

func isWordRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '_':
		return true
	default:
		return false
	}
}
