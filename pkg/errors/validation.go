package errors

import (
	"strings"
	"unicode"
)

// ValidateKeyName validates a shapekey or vertex-group name.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 64 characters (the host list widget truncates
//     anything longer)
func ValidateKeyName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidName, "name too long (max 64 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "name contains control characters")
		}
	}

	return nil
}

// ValidateSceneID validates a scene identifier used in storage and URLs.
// It ensures the ID is a simple token without path components.
func ValidateSceneID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidScene, "scene id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidScene, "scene id too long (max 128 characters)")
	}

	if strings.ContainsAny(id, "/\\") {
		return New(ErrCodeInvalidScene, "scene id cannot contain path separators")
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidScene, "scene id contains invalid characters")
		}
	}

	return nil
}

// ValidateRosterName validates an expected-list name from configuration.
func ValidateRosterName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidRoster, "roster name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidRoster, "roster name too long (max 64 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidRoster, "roster name contains control characters")
		}
	}

	return nil
}
