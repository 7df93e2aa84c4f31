package util

import (
	"errors"
	"strings"
)

var errInvalidFileName = errors.New("invalid file name")

// SanitizeFileName rejects traversal patterns and flattens path separators
// so stored report names always resolve inside the report directory.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errInvalidFileName
	}
	s := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if s == "" {
		return "", errInvalidFileName
	}
	return s, nil
}
